package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

func TestTeamService_Create_CreatorIsFirstMember(t *testing.T) {
	repo := newStubTeamRepo()
	svc := NewTeamService(repo, discardLogger)

	team, err := svc.Create(context.Background(), "user-1", "Tailoring Collective", "Shared boutique orders")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.ID == "" {
		t.Error("expected an assigned id")
	}
	if !team.HasMember("user-1") {
		t.Error("creator should be the first member")
	}
	if team.CreatedBy != "user-1" {
		t.Errorf("created_by = %q", team.CreatedBy)
	}
}

func TestTeamService_Create_NameRequired(t *testing.T) {
	svc := NewTeamService(newStubTeamRepo(), discardLogger)

	if _, err := svc.Create(context.Background(), "user-1", "", "desc"); err == nil {
		t.Fatal("expected error for missing name")
	}
}

func TestTeamService_Join(t *testing.T) {
	repo := newStubTeamRepo()
	svc := NewTeamService(repo, discardLogger)
	team, _ := svc.Create(context.Background(), "user-1", "Tailoring Collective", "")

	joined, err := svc.Join(context.Background(), team.ID, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(joined.MemberIDs) != 2 || !joined.HasMember("user-2") {
		t.Errorf("members = %v", joined.MemberIDs)
	}

	if _, err := svc.Join(context.Background(), team.ID, "user-2"); !errors.Is(err, domain.ErrAlreadyMember) {
		t.Errorf("double join = %v, want ErrAlreadyMember", err)
	}
	if _, err := svc.Join(context.Background(), "ghost", "user-2"); !errors.Is(err, domain.ErrTeamNotFound) {
		t.Errorf("join missing team = %v, want ErrTeamNotFound", err)
	}
}

func TestTeamService_Leave(t *testing.T) {
	repo := newStubTeamRepo()
	svc := NewTeamService(repo, discardLogger)
	team, _ := svc.Create(context.Background(), "user-1", "Tailoring Collective", "")
	_, _ = svc.Join(context.Background(), team.ID, "user-2")

	left, err := svc.Leave(context.Background(), team.ID, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.HasMember("user-2") {
		t.Error("user-2 still a member after leaving")
	}
	if !left.HasMember("user-1") {
		t.Error("other members should be untouched")
	}

	if _, err := svc.Leave(context.Background(), team.ID, "user-2"); !errors.Is(err, domain.ErrNotMember) {
		t.Errorf("leave twice = %v, want ErrNotMember", err)
	}
}
