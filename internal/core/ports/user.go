package ports

import (
	"context"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

// ListUsersFilter carries paging parameters for the admin user listing.
type ListUsersFilter struct {
	Role  string // optional: filter by role
	Page  int    // 1-based
	Limit int    // capped at 100 by the service
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update replaces the stored document with u (last write wins).
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
}

// UpdateProfileInput holds the profile fields a user may edit. Nil slices and
// empty strings mean "leave unchanged" except for Skills and
// IndustryPreferences, which are replaced when non-nil.
type UpdateProfileInput struct {
	Name                string
	AvatarURL           string
	Skills              []string
	Experience          string
	DesiredJobType      string
	LocationPreference  string
	IndustryPreferences []string
	MobileNumber        string
	Address             string
}

// ListUsersResult is a page of users plus the total count.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines profile and membership use cases.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error)
	UpgradeMembership(ctx context.Context, userID string, tier domain.Membership) (*domain.User, error)
	List(ctx context.Context, filter ListUsersFilter) (*ListUsersResult, error)
}
