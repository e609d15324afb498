package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// LogSender is the default alert delivery channel: it writes the alert to the
// structured log, where it is picked up by the on-call alerting pipeline.
// SMS and voice delivery plug in as additional Sender implementations.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Notify(_ context.Context, alert domain.SOSAlert) error {
	s.log.Warn().
		Str("alert_id", alert.ID).
		Str("user_id", alert.UserID).
		Str("user_name", alert.UserName).
		Float64("lat", alert.Location.Lat).
		Float64("lng", alert.Location.Lng).
		Str("message", alert.Message).
		Msg("SOS ALERT")
	return nil
}
