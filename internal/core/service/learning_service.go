package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// DefaultLearningCatalog is the seed catalog for the skills library.
var DefaultLearningCatalog = []domain.LearningModule{
	{ID: "digital-basics", Title: "Digital Literacy Basics", Description: "Using a smartphone for work: calls, messages and payments.", Type: domain.ModuleVideo, Duration: "15 min", Language: "en", VideoID: "dl-101"},
	{ID: "tailoring-advanced", Title: "Advanced Tailoring Techniques", Description: "Pattern making and finishing for boutique orders.", Type: domain.ModuleVideo, Duration: "45 min", Language: "hi", VideoID: "tl-204"},
	{ID: "food-safety", Title: "Home Kitchen Food Safety", Description: "Hygiene standards for home-based catering businesses.", Type: domain.ModuleArticle, Duration: "10 min", Language: "ta"},
	{ID: "bookkeeping", Title: "Simple Bookkeeping", Description: "Tracking income and expenses for a small business.", Type: domain.ModuleArticle, Duration: "20 min", Language: "en"},
	{ID: "customer-care", Title: "Customer Communication", Description: "Handling bookings, complaints and repeat customers.", Type: domain.ModuleVideo, Duration: "25 min", Language: "bn", VideoID: "cc-310"},
}

// LearningService exposes the read-only skills library with per-user progress.
type LearningService struct {
	repo   ports.LearningRepository
	logger zerolog.Logger
}

func NewLearningService(repo ports.LearningRepository, logger zerolog.Logger) *LearningService {
	return &LearningService{repo: repo, logger: logger}
}

// SeedDefault loads the default catalog; already-present modules are kept.
func (s *LearningService) SeedDefault(ctx context.Context) error {
	if err := s.repo.Seed(ctx, DefaultLearningCatalog); err != nil {
		return fmt.Errorf("seed learning catalog: %w", err)
	}
	return nil
}

// List returns catalog entries (optionally limited to one language) together
// with the caller's progress per module id.
func (s *LearningService) List(ctx context.Context, userID, language string) ([]domain.LearningModule, map[string]int, error) {
	modules, err := s.repo.List(ctx, language)
	if err != nil {
		return nil, nil, fmt.Errorf("list learning modules: %w", err)
	}

	progress := make(map[string]int)
	entries, err := s.repo.ProgressByUser(ctx, userID)
	if err != nil {
		// Progress is a nicety; the catalog still renders without it.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to load module progress")
	} else {
		for _, e := range entries {
			progress[e.ModuleID] = e.Progress
		}
	}

	return modules, progress, nil
}

// RecordProgress upserts the user's progress through a module.
func (s *LearningService) RecordProgress(ctx context.Context, userID, moduleID string, progress int) error {
	if progress < 0 || progress > 100 {
		return domain.ErrInvalidProgress
	}
	if _, err := s.repo.FindByID(ctx, moduleID); err != nil {
		return err
	}

	return s.repo.UpsertProgress(ctx, &domain.ModuleProgress{
		UserID:   userID,
		ModuleID: moduleID,
		Progress: progress,
	})
}
