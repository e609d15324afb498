package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// LearningRepository persists the module catalog and per-user progress.
type LearningRepository interface {
	// Seed inserts catalog entries that are not present yet.
	Seed(ctx context.Context, modules []domain.LearningModule) error
	List(ctx context.Context, language string) ([]domain.LearningModule, error)
	FindByID(ctx context.Context, id string) (*domain.LearningModule, error)
	UpsertProgress(ctx context.Context, p *domain.ModuleProgress) error
	ProgressByUser(ctx context.Context, userID string) ([]domain.ModuleProgress, error)
}

// LearningService exposes the skills library.
type LearningService interface {
	List(ctx context.Context, userID, language string) ([]domain.LearningModule, map[string]int, error)
	RecordProgress(ctx context.Context, userID, moduleID string, progress int) error
}
