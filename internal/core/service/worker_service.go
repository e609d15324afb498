package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// WorkerService maintains the panchayat worker registry and implements the
// search contract: name substring, skill and location equality, all
// case-insensitive, AND-ed, with "all" as a bypass sentinel.
type WorkerService struct {
	repo   ports.WorkerRepository
	logger zerolog.Logger
}

func NewWorkerService(repo ports.WorkerRepository, logger zerolog.Logger) *WorkerService {
	return &WorkerService{repo: repo, logger: logger}
}

func (s *WorkerService) Register(ctx context.Context, registeredBy string, input ports.WorkerInput) (*domain.WorkerProfile, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("register worker: name is required")
	}

	now := time.Now().UTC()
	profile := &domain.WorkerProfile{
		Name:         input.Name,
		Skills:       input.Skills,
		Location:     input.Location,
		Rating:       input.Rating,
		MobileNumber: input.MobileNumber,
		RegisteredBy: registeredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	created, err := s.repo.Create(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("register worker: %w", err)
	}

	s.logger.Info().Str("worker_id", created.ID).Str("registered_by", registeredBy).Msg("worker registered")
	return created, nil
}

func (s *WorkerService) Update(ctx context.Context, id string, input ports.WorkerInput) (*domain.WorkerProfile, error) {
	profile, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		profile.Name = input.Name
	}
	if input.Skills != nil {
		profile.Skills = input.Skills
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Rating > 0 {
		profile.Rating = input.Rating
	}
	if input.MobileNumber != "" {
		profile.MobileNumber = input.MobileNumber
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("update worker: %w", err)
	}
	return profile, nil
}

func (s *WorkerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Search filters the registry and paginates the result. Filtering happens
// in-process over the full registry; panchayat registries are small.
func (s *WorkerService) Search(ctx context.Context, criteria ports.SearchWorkersCriteria) (*ports.SearchWorkersResult, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search workers: %w", err)
	}

	matched := filterWorkers(all, criteria)
	total := int64(len(matched))

	page, limit := normalizePage(criteria.Page, criteria.Limit)
	skip := (page - 1) * limit
	if skip > len(matched) {
		skip = len(matched)
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}

	return &ports.SearchWorkersResult{
		Items:      matched[skip:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// filterWorkers applies the search contract. It is pure and idempotent:
// re-applying the same criteria to its own output returns it unchanged.
func filterWorkers(workers []*domain.WorkerProfile, c ports.SearchWorkersCriteria) []*domain.WorkerProfile {
	matched := make([]*domain.WorkerProfile, 0, len(workers))
	for _, w := range workers {
		if !matchesName(w, c.Name) {
			continue
		}
		if !matchesSkill(w, c.Skill) {
			continue
		}
		if !matchesLocation(w, c.Location) {
			continue
		}
		matched = append(matched, w)
	}
	return matched
}

// skipFilter reports whether a criterion is the "all" sentinel (or empty),
// which bypasses that filter entirely.
func skipFilter(value string) bool {
	return value == "" || strings.EqualFold(value, "all")
}

func matchesName(w *domain.WorkerProfile, name string) bool {
	if skipFilter(name) {
		return true
	}
	return strings.Contains(strings.ToLower(w.Name), strings.ToLower(name))
}

func matchesSkill(w *domain.WorkerProfile, skill string) bool {
	if skipFilter(skill) {
		return true
	}
	for _, s := range w.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

func matchesLocation(w *domain.WorkerProfile, location string) bool {
	if skipFilter(location) {
		return true
	}
	return strings.EqualFold(w.Location, location)
}
