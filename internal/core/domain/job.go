package domain

import (
	"errors"
	"time"
)

// JobStatus represents the lifecycle state of a job posting.
type JobStatus string

const (
	StatusYetToAssign    JobStatus = "yet_to_assign"
	StatusWorkerAssigned JobStatus = "worker_assigned"
	StatusPaid           JobStatus = "paid"
	StatusCompleted      JobStatus = "completed"
)

// validTransitions defines the allowed state machine transitions. The
// lifecycle is strictly linear: a job must be assigned before it can be paid,
// and paid before it can be completed.
var validTransitions = map[JobStatus][]JobStatus{
	StatusYetToAssign:    {StatusWorkerAssigned},
	StatusWorkerAssigned: {StatusPaid},
	StatusPaid:           {StatusCompleted},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrJobNotFound = errors.New("job not found")
var ErrDuplicateJob = errors.New("job already exists")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// JobType classifies the employment arrangement of a posting.
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// JobSource identifies which surface a job was posted from.
type JobSource string

const (
	SourceMarketplace JobSource = "marketplace"
	SourcePanchayat   JobSource = "panchayat"
)

// StatusHistoryEntry records a single status transition on a job.
type StatusHistoryEntry struct {
	Status    JobStatus `json:"status" bson:"status"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Job is the core aggregate root. Marketplace postings and panchayat community
// jobs share this one schema; Source discriminates between them.
type Job struct {
	ID              string               `json:"id" bson:"_id,omitempty"`
	Reference       string               `json:"reference" bson:"reference"`
	Title           string               `json:"title" bson:"title"`
	CompanyName     string               `json:"company_name,omitempty" bson:"company_name,omitempty"`
	Location        string               `json:"location" bson:"location"`
	JobType         JobType              `json:"job_type" bson:"job_type"`
	Salary          string               `json:"salary,omitempty" bson:"salary,omitempty"`
	Description     string               `json:"description" bson:"description"`
	SkillsRequired  []string             `json:"skills_required" bson:"skills_required"`
	Industry        string               `json:"industry,omitempty" bson:"industry,omitempty"`
	Pay             int64                `json:"pay,omitempty" bson:"pay,omitempty"`
	ScheduledDate   string               `json:"scheduled_date,omitempty" bson:"scheduled_date,omitempty"`
	ScheduledTime   string               `json:"scheduled_time,omitempty" bson:"scheduled_time,omitempty"`
	Status          JobStatus            `json:"status" bson:"status"`
	AssignedWorkers []string             `json:"assigned_workers" bson:"assigned_workers"`
	PostedBy        string               `json:"posted_by" bson:"posted_by"`
	Source          JobSource            `json:"source" bson:"source"`
	IdempotencyKey  string               `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	StatusHistory   []StatusHistoryEntry `json:"status_history" bson:"status_history"`
	CreatedAt       time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at" bson:"updated_at"`
}
