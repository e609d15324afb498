package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// SOSInput carries everything reported by the SOS caller.
type SOSInput struct {
	UserID  string
	Lat     float64
	Lng     float64
	Message string
}

// SOSRepository persists safety alerts.
type SOSRepository interface {
	Insert(ctx context.Context, alert *domain.SOSAlert) error
	List(ctx context.Context, limit int) ([]*domain.SOSAlert, error)
}

// SOSService accepts and lists safety alerts.
type SOSService interface {
	// Raise persists the alert and enqueues asynchronous notification fanout.
	// Rapid duplicates from the same user are accepted but not re-dispatched.
	Raise(ctx context.Context, input SOSInput) (*domain.SOSAlert, error)
	List(ctx context.Context, limit int) ([]*domain.SOSAlert, error)
}
