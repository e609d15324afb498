package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/api/metrics"
	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// AlertDedup abstracts the rapid-duplicate guard (Redis). A duplicate alert
// is still persisted for the audit trail but not re-dispatched.
type AlertDedup interface {
	IsDuplicate(ctx context.Context, userID string) (bool, error)
	Mark(ctx context.Context, userID string) error
}

// AlertNotifier abstracts the asynchronous fanout (queue dispatcher).
type AlertNotifier interface {
	EnqueueAlert(alert domain.SOSAlert)
}

// SOSService accepts safety alerts and hands them to the notifier.
type SOSService struct {
	repo     ports.SOSRepository
	users    ports.UserRepository
	dedup    AlertDedup
	notifier AlertNotifier
	logger   zerolog.Logger
}

func NewSOSService(
	repo ports.SOSRepository,
	users ports.UserRepository,
	dedup AlertDedup,
	notifier AlertNotifier,
	logger zerolog.Logger,
) *SOSService {
	return &SOSService{repo: repo, users: users, dedup: dedup, notifier: notifier, logger: logger}
}

// Raise persists the alert and enqueues notification fanout. The alert is
// written before any dedup decision: safety audit records are never dropped.
func (s *SOSService) Raise(ctx context.Context, input ports.SOSInput) (*domain.SOSAlert, error) {
	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	alert := &domain.SOSAlert{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Location:  domain.Coordinates{Lat: input.Lat, Lng: input.Lng},
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("raise sos: %w", err)
	}
	metrics.SOSAlertsTotal.Inc()

	isDup := false
	if s.dedup != nil {
		dup, err := s.dedup.IsDuplicate(ctx, user.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("sos dedup check failed, dispatching anyway")
		} else {
			isDup = dup
		}
		if !isDup {
			if err := s.dedup.Mark(ctx, user.ID); err != nil {
				s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to set sos dedup key")
			}
		}
	}

	if isDup {
		s.logger.Info().Str("user_id", user.ID).Msg("duplicate sos within window, fanout skipped")
		return alert, nil
	}

	if s.notifier != nil {
		s.notifier.EnqueueAlert(*alert)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Float64("lat", input.Lat).
		Float64("lng", input.Lng).
		Msg("sos alert raised")

	return alert, nil
}

func (s *SOSService) List(ctx context.Context, limit int) ([]*domain.SOSAlert, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = 50
	}
	return s.repo.List(ctx, limit)
}
