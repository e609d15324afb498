package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// TeamService implements community team membership.
type TeamService struct {
	repo   ports.TeamRepository
	logger zerolog.Logger
}

func NewTeamService(repo ports.TeamRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{repo: repo, logger: logger}
}

// Create starts a new team with the creator as its first member.
func (s *TeamService) Create(ctx context.Context, createdBy, name, description string) (*domain.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("create team: name is required")
	}

	now := time.Now().UTC()
	team := &domain.Team{
		Name:        name,
		Description: description,
		MemberIDs:   []string{createdBy},
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}

	s.logger.Info().Str("team_id", created.ID).Str("created_by", createdBy).Msg("team created")
	return created, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*domain.Team, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TeamService) List(ctx context.Context) ([]*domain.Team, error) {
	return s.repo.List(ctx)
}

func (s *TeamService) Join(ctx context.Context, teamID, userID string) (*domain.Team, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.HasMember(userID) {
		return nil, domain.ErrAlreadyMember
	}

	team.MemberIDs = append(team.MemberIDs, userID)
	team.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("join team: %w", err)
	}

	s.logger.Info().Str("team_id", teamID).Str("user_id", userID).Msg("user joined team")
	return team, nil
}

func (s *TeamService) Leave(ctx context.Context, teamID, userID string) (*domain.Team, error) {
	team, err := s.repo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.HasMember(userID) {
		return nil, domain.ErrNotMember
	}

	members := team.MemberIDs[:0]
	for _, id := range team.MemberIDs {
		if id != userID {
			members = append(members, id)
		}
	}
	team.MemberIDs = members
	team.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, team); err != nil {
		return nil, fmt.Errorf("leave team: %w", err)
	}

	return team, nil
}
