package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

const maxPageLimit = 100

// UserService implements profile and membership use cases.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile applies the editable profile fields and stores the whole
// document back (last write wins, matching the original persistence model).
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Experience != "" {
		user.Experience = input.Experience
	}
	if input.DesiredJobType != "" {
		user.DesiredJobType = input.DesiredJobType
	}
	if input.LocationPreference != "" {
		user.LocationPreference = input.LocationPreference
	}
	if input.IndustryPreferences != nil {
		user.IndustryPreferences = input.IndustryPreferences
	}
	if input.MobileNumber != "" {
		user.MobileNumber = input.MobileNumber
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

// UpgradeMembership moves the user up the Rise → Bloom → Empower ladder.
// Downgrades and unknown tiers are rejected.
func (s *UserService) UpgradeMembership(ctx context.Context, userID string, tier domain.Membership) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if tier.Rank() < 0 || tier.Rank() <= user.Membership.Rank() {
		return nil, domain.ErrMembershipDowngrade
	}

	user.Membership = tier
	user.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("upgrade membership: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("tier", string(tier)).Msg("membership upgraded")
	return user, nil
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*ports.ListUsersResult, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

// normalizePage clamps paging parameters: page is 1-based, limit defaults to
// 20 and is capped at maxPageLimit.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
