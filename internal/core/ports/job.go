package ports

import (
	"context"
	"time"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// CreateJobInput carries all data needed to post a new job.
type CreateJobInput struct {
	Title          string
	CompanyName    string
	Location       string
	JobType        string
	Salary         string
	Description    string
	SkillsRequired []string
	Industry       string
	Pay            int64
	ScheduledDate  string
	ScheduledTime  string
	Source         string
	PostedBy       string
	IdempotencyKey string
}

// JobResult is returned by the service after creating a job.
type JobResult struct {
	Reference string
	Status    string
	CreatedAt time.Time
	// AlreadyExisted is true when the Idempotency-Key matched an existing job.
	AlreadyExisted bool
}

// ListJobsFilter carries all query parameters for listing jobs.
type ListJobsFilter struct {
	Status   string // optional: filter by job status
	JobType  string // optional: filter by job type
	Industry string // optional: exact match, case-insensitive
	Location string // optional: exact match, case-insensitive
	Source   string // optional: marketplace or panchayat
	PostedBy string // optional: scope to a poster
	Search   string // optional: partial match on title or company name
	Page     int    // 1-based
	Limit    int    // capped at 100 by the service
}

// ListJobsResult is a page of jobs plus the total count.
type ListJobsResult struct {
	Items      []*domain.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AssignWorkersInput carries the parameters of a worker assignment.
type AssignWorkersInput struct {
	Reference string
	WorkerIDs []string
	// ActorID is the user performing the assignment, recorded in history notes.
	ActorID string
}

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) error
	FindByReference(ctx context.Context, reference string) (*domain.Job, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	// UpdateStatus atomically sets the job's new status, appends a history
	// entry, and (when workerIDs is non-nil) stores the worker linkage.
	UpdateStatus(ctx context.Context, reference string, status domain.JobStatus, ts time.Time, notes string, workerIDs []string) error
}

// JobService defines use-case operations for jobs.
type JobService interface {
	Create(ctx context.Context, input CreateJobInput) (*JobResult, error)
	Get(ctx context.Context, reference string) (*domain.Job, error)
	List(ctx context.Context, filter ListJobsFilter) (*ListJobsResult, error)
	AssignWorkers(ctx context.Context, input AssignWorkersInput) (*domain.Job, error)
	Complete(ctx context.Context, reference, actorID string) (*domain.Job, error)
	// MarkPaid performs the worker_assigned → paid transition. It is invoked
	// by the wallet service after a successful payment, never directly by a
	// handler.
	MarkPaid(ctx context.Context, reference, actorID string) error
}
