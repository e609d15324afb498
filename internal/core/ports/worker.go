package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// SearchWorkersCriteria is the worker search contract: case-insensitive
// substring match on name, exact case-insensitive match on skill and
// location, logical AND across the three. The sentinel "all" (or an empty
// string) bypasses a filter.
type SearchWorkersCriteria struct {
	Name     string
	Skill    string
	Location string
	Page     int
	Limit    int
}

// WorkerInput carries a worker registry entry's editable fields.
type WorkerInput struct {
	Name         string
	Skills       []string
	Location     string
	Rating       float64
	MobileNumber string
}

// SearchWorkersResult is a page of worker profiles plus the total count.
type SearchWorkersResult struct {
	Items      []*domain.WorkerProfile
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// WorkerRepository defines persistence operations for the worker registry.
type WorkerRepository interface {
	Create(ctx context.Context, w *domain.WorkerProfile) (*domain.WorkerProfile, error)
	FindByID(ctx context.Context, id string) (*domain.WorkerProfile, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.WorkerProfile, error)
	Update(ctx context.Context, w *domain.WorkerProfile) error
	Delete(ctx context.Context, id string) error
	// List returns all profiles; the service applies the search contract.
	List(ctx context.Context) ([]*domain.WorkerProfile, error)
}

// WorkerService defines use cases over the panchayat worker registry.
type WorkerService interface {
	Register(ctx context.Context, registeredBy string, input WorkerInput) (*domain.WorkerProfile, error)
	Update(ctx context.Context, id string, input WorkerInput) (*domain.WorkerProfile, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria SearchWorkersCriteria) (*SearchWorkersResult, error)
}
