package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// TeamRepository defines persistence operations for teams.
type TeamRepository interface {
	Create(ctx context.Context, t *domain.Team) (*domain.Team, error)
	FindByID(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
}

// TeamService defines team membership use cases.
type TeamService interface {
	Create(ctx context.Context, createdBy, name, description string) (*domain.Team, error)
	Get(ctx context.Context, id string) (*domain.Team, error)
	List(ctx context.Context) ([]*domain.Team, error)
	Join(ctx context.Context, teamID, userID string) (*domain.Team, error)
	Leave(ctx context.Context, teamID, userID string) (*domain.Team, error)
}
