package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/api/metrics"
	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// JobService implements job posting, listing and the status state machine.
// Every transition is validated here, never inferred from which button a
// client happened to render.
type JobService struct {
	repo    ports.JobRepository
	workers ports.WorkerRepository
	logger  zerolog.Logger
}

func NewJobService(repo ports.JobRepository, workers ports.WorkerRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, workers: workers, logger: logger}
}

var validJobTypes = map[domain.JobType]struct{}{
	domain.JobTypeFullTime:   {},
	domain.JobTypePartTime:   {},
	domain.JobTypeContract:   {},
	domain.JobTypeInternship: {},
}

// Create posts a new job. If an idempotency key is provided and already seen,
// the previously created job is returned without side effects.
func (s *JobService) Create(ctx context.Context, input ports.CreateJobInput) (*ports.JobResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("reference", existing.Reference).Msg("idempotent replay")
			return &ports.JobResult{
				Reference:      existing.Reference,
				Status:         string(existing.Status),
				CreatedAt:      existing.CreatedAt,
				AlreadyExisted: true,
			}, nil
		}
	}

	jobType := domain.JobType(input.JobType)
	if _, ok := validJobTypes[jobType]; !ok {
		return nil, fmt.Errorf("create job: unknown job type %q", input.JobType)
	}

	source := domain.JobSource(input.Source)
	if source != domain.SourcePanchayat {
		source = domain.SourceMarketplace
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Reference:       generateJobReference(),
		Title:           input.Title,
		CompanyName:     input.CompanyName,
		Location:        input.Location,
		JobType:         jobType,
		Salary:          input.Salary,
		Description:     input.Description,
		SkillsRequired:  input.SkillsRequired,
		Industry:        input.Industry,
		Pay:             input.Pay,
		ScheduledDate:   input.ScheduledDate,
		ScheduledTime:   input.ScheduledTime,
		Status:          domain.StatusYetToAssign,
		AssignedWorkers: []string{},
		PostedBy:        input.PostedBy,
		Source:          source,
		IdempotencyKey:  input.IdempotencyKey,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusYetToAssign, Timestamp: now, Notes: "job posted"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(source), string(jobType)).Inc()
	s.logger.Info().Str("reference", job.Reference).Str("posted_by", input.PostedBy).Msg("job created")

	return &ports.JobResult{
		Reference: job.Reference,
		Status:    string(job.Status),
		CreatedAt: job.CreatedAt,
	}, nil
}

func (s *JobService) Get(ctx context.Context, reference string) (*domain.Job, error) {
	return s.repo.FindByReference(ctx, reference)
}

func (s *JobService) List(ctx context.Context, filter ports.ListJobsFilter) (*ports.ListJobsResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	return &ports.ListJobsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// AssignWorkers links registry workers to a job and performs the
// yet_to_assign → worker_assigned transition. Every worker must exist in the
// registry; the linkage is persisted together with the transition.
func (s *JobService) AssignWorkers(ctx context.Context, input ports.AssignWorkersInput) (*domain.Job, error) {
	if len(input.WorkerIDs) == 0 {
		return nil, fmt.Errorf("assign workers: %w", domain.ErrWorkerNotFound)
	}

	job, err := s.repo.FindByReference(ctx, input.Reference)
	if err != nil {
		return nil, err
	}

	if !job.Status.CanTransitionTo(domain.StatusWorkerAssigned) {
		return nil, fmt.Errorf("assign workers: %w (from %s)", domain.ErrInvalidTransition, job.Status)
	}

	found, err := s.workers.FindByIDs(ctx, input.WorkerIDs)
	if err != nil {
		return nil, fmt.Errorf("assign workers: %w", err)
	}
	if len(found) != len(input.WorkerIDs) {
		return nil, fmt.Errorf("assign workers: %w", domain.ErrWorkerNotFound)
	}

	now := time.Now().UTC()
	notes := fmt.Sprintf("%d worker(s) assigned by %s", len(input.WorkerIDs), input.ActorID)
	if err := s.repo.UpdateStatus(ctx, input.Reference, domain.StatusWorkerAssigned, now, notes, input.WorkerIDs); err != nil {
		return nil, fmt.Errorf("assign workers: %w", err)
	}

	metrics.JobTransitionsTotal.WithLabelValues(string(domain.StatusWorkerAssigned)).Inc()
	s.logger.Info().
		Str("reference", input.Reference).
		Int("workers", len(input.WorkerIDs)).
		Msg("workers assigned")

	return s.repo.FindByReference(ctx, input.Reference)
}

// MarkPaid performs the worker_assigned → paid transition on behalf of the
// wallet service.
func (s *JobService) MarkPaid(ctx context.Context, reference, actorID string) error {
	job, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	if !job.Status.CanTransitionTo(domain.StatusPaid) {
		return fmt.Errorf("mark paid: %w (from %s)", domain.ErrInvalidTransition, job.Status)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, reference, domain.StatusPaid, now, "paid by "+actorID, nil); err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}
	metrics.JobTransitionsTotal.WithLabelValues(string(domain.StatusPaid)).Inc()
	return nil
}

// Complete performs the paid → completed transition.
func (s *JobService) Complete(ctx context.Context, reference, actorID string) (*domain.Job, error) {
	job, err := s.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if !job.Status.CanTransitionTo(domain.StatusCompleted) {
		return nil, fmt.Errorf("complete job: %w (from %s)", domain.ErrInvalidTransition, job.Status)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, reference, domain.StatusCompleted, now, "completed by "+actorID, nil); err != nil {
		return nil, fmt.Errorf("complete job: %w", err)
	}

	metrics.JobTransitionsTotal.WithLabelValues(string(domain.StatusCompleted)).Inc()
	s.logger.Info().Str("reference", reference).Msg("job completed")

	return s.repo.FindByReference(ctx, reference)
}

// generateJobReference returns a unique human-facing reference in the format
// VSA-XXXXXXXX.
func generateJobReference() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("VSA-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("VSA-%08X", b)
}
