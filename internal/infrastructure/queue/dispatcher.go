package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/api/metrics"
	"github.com/vasaworks/vasa-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Sender delivers one SOS alert to its recipients (panchayat contacts,
// emergency numbers). Delivery failures are logged, never retried here.
type Sender interface {
	Notify(ctx context.Context, alert domain.SOSAlert) error
}

// Dispatcher routes SOS alerts to a fixed set of workers using consistent
// hashing on the user ID, so repeated alerts from one user are delivered in
// order.
type Dispatcher struct {
	workers []chan domain.SOSAlert
	sender  Sender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used; if bufferSize <= 0,
// channelBuffer is used.
func NewDispatcher(numWorkers, bufferSize int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if bufferSize <= 0 {
		bufferSize = channelBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.SOSAlert, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.SOSAlert, bufferSize)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// EnqueueAlert sends an alert to the worker responsible for its user.
// The call is non-blocking up to the channel buffer capacity.
func (d *Dispatcher) EnqueueAlert(alert domain.SOSAlert) {
	idx := d.shardIndex(alert.UserID)
	d.workers[idx] <- alert
	metrics.AlertQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.SOSAlert) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case alert, ok := <-ch:
			if !ok {
				return
			}
			metrics.AlertQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.sender.Notify(ctx, alert); err != nil {
				d.log.Error().Err(err).
					Str("alert_id", alert.ID).
					Str("user_id", alert.UserID).
					Int("worker_id", id).
					Msg("sos notification failed")
			}
		}
	}
}
