package service

import (
	"context"
	"testing"
	"time"

	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

func newMatchingFixture(suggester Suggester) (*MatchingService, *stubUserRepo, *stubJobRepo, *stubTeamRepo) {
	users := newStubUserRepo()
	jobs := newStubJobRepo()
	teams := newStubTeamRepo()
	svc := NewMatchingService(users, jobs, teams, suggester, discardLogger)
	return svc, users, jobs, teams
}

func seedOpenJob(t *testing.T, jobs *stubJobRepo, reference, title string, skills []string, jobType domain.JobType, location, industry string) {
	t.Helper()
	now := time.Now().UTC()
	err := jobs.Create(context.Background(), &domain.Job{
		Reference:      reference,
		Title:          title,
		SkillsRequired: skills,
		JobType:        jobType,
		Location:       location,
		Industry:       industry,
		Status:         domain.StatusYetToAssign,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		t.Fatalf("seed job %s: %v", reference, err)
	}
}

func seekerProfile() *domain.User {
	return &domain.User{
		Name:                "Asha",
		Email:               "asha@example.com",
		Role:                domain.RoleSeeker,
		Skills:              []string{"tailoring", "embroidery"},
		DesiredJobType:      "part_time",
		LocationPreference:  "Madurai",
		IndustryPreferences: []string{"textiles"},
	}
}

func TestMatchingService_MatchJobs_LocalScorer(t *testing.T) {
	svc, users, jobs, _ := newMatchingFixture(nil)
	u := users.add(seekerProfile())

	seedOpenJob(t, jobs, "VSA-FIT", "Boutique tailor", []string{"Tailoring", "Embroidery"}, domain.JobTypePartTime, "madurai", "Textiles")
	seedOpenJob(t, jobs, "VSA-MISS", "Forklift operator", []string{"forklift"}, domain.JobTypeFullTime, "Chennai", "logistics")

	matches, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	if matches[0].JobReference != "VSA-FIT" {
		t.Errorf("best match = %s, want VSA-FIT", matches[0].JobReference)
	}
	// Full skill coverage plus job type, location and industry matches.
	if matches[0].RelevanceScore != 1.0 {
		t.Errorf("perfect fit score = %v, want 1.0", matches[0].RelevanceScore)
	}
	if matches[1].RelevanceScore != 0 {
		t.Errorf("no-overlap score = %v, want 0", matches[1].RelevanceScore)
	}
}

func TestMatchingService_MatchJobs_Deterministic(t *testing.T) {
	svc, users, jobs, _ := newMatchingFixture(nil)
	u := users.add(seekerProfile())

	// Identical scores: ordering falls back to the title.
	seedOpenJob(t, jobs, "VSA-B", "Beta job", nil, domain.JobTypeContract, "Salem", "")
	seedOpenJob(t, jobs, "VSA-A", "Alpha job", nil, domain.JobTypeContract, "Salem", "")

	first, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first[0].JobTitle != "Alpha job" {
		t.Errorf("tie broken by title: got %q first", first[0].JobTitle)
	}
	for i := range first {
		if first[i].JobReference != second[i].JobReference {
			t.Errorf("run %d differs: %s vs %s", i, first[i].JobReference, second[i].JobReference)
		}
	}
}

func TestMatchingService_MatchJobs_ModelScores(t *testing.T) {
	suggester := &stubSuggester{jobScores: []ScoredJob{
		{Reference: "VSA-MISS", RelevanceScore: 0.9},
		{Reference: "VSA-FIT", RelevanceScore: 0.2},
		{Reference: "VSA-FABRICATED", RelevanceScore: 1.0},
	}}
	svc, users, jobs, _ := newMatchingFixture(suggester)
	u := users.add(seekerProfile())

	seedOpenJob(t, jobs, "VSA-FIT", "Boutique tailor", []string{"tailoring"}, domain.JobTypePartTime, "Madurai", "textiles")
	seedOpenJob(t, jobs, "VSA-MISS", "Forklift operator", []string{"forklift"}, domain.JobTypeFullTime, "Chennai", "logistics")

	matches, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The fabricated reference is dropped; the model's ranking is kept.
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2 (fabricated reference filtered)", len(matches))
	}
	if matches[0].JobReference != "VSA-MISS" || matches[0].RelevanceScore != 0.9 {
		t.Errorf("top match = %+v, want VSA-MISS at 0.9", matches[0])
	}
}

func TestMatchingService_MatchJobs_ModelOmissionsScoredLocally(t *testing.T) {
	// The model scores only one of two open postings. The other must still
	// show up, scored by the local scorer.
	suggester := &stubSuggester{jobScores: []ScoredJob{
		{Reference: "VSA-MISS", RelevanceScore: 0.9},
	}}
	svc, users, jobs, _ := newMatchingFixture(suggester)
	u := users.add(seekerProfile())

	seedOpenJob(t, jobs, "VSA-FIT", "Boutique tailor", []string{"Tailoring", "Embroidery"}, domain.JobTypePartTime, "Madurai", "textiles")
	seedOpenJob(t, jobs, "VSA-MISS", "Forklift operator", []string{"forklift"}, domain.JobTypeFullTime, "Chennai", "logistics")

	matches, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2 (omitted posting scored locally)", len(matches))
	}
	if matches[0].JobReference != "VSA-FIT" || matches[0].RelevanceScore != 1.0 {
		t.Errorf("top match = %+v, want VSA-FIT at 1.0 from the local scorer", matches[0])
	}
	if matches[1].JobReference != "VSA-MISS" || matches[1].RelevanceScore != 0.9 {
		t.Errorf("second match = %+v, want VSA-MISS at 0.9 from the model", matches[1])
	}
}

func TestMatchingService_MatchJobs_ModelFailureFallsBack(t *testing.T) {
	suggester := &stubSuggester{jobsErr: errStub}
	svc, users, jobs, _ := newMatchingFixture(suggester)
	u := users.add(seekerProfile())

	seedOpenJob(t, jobs, "VSA-FIT", "Boutique tailor", []string{"Tailoring", "Embroidery"}, domain.JobTypePartTime, "Madurai", "textiles")

	matches, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("model failure must not surface: %v", err)
	}
	if suggester.calls != 1 {
		t.Errorf("suggester calls = %d, want 1", suggester.calls)
	}
	if len(matches) != 1 || matches[0].RelevanceScore != 1.0 {
		t.Errorf("fallback matches = %+v", matches)
	}
}

func TestMatchingService_MatchJobs_NoOpenJobs(t *testing.T) {
	svc, users, _, _ := newMatchingFixture(nil)
	u := users.add(seekerProfile())

	matches, err := svc.MatchJobs(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("matches = %v, want empty slice", matches)
	}
}

func TestMatchingService_SuggestTeams_ExcludesOwnTeams(t *testing.T) {
	svc, users, _, teams := newMatchingFixture(nil)
	u := users.add(seekerProfile())

	_, _ = teams.Create(context.Background(), &domain.Team{Name: "Tailoring Collective", Description: "tailoring and embroidery work", MemberIDs: []string{"someone-else"}})
	_, _ = teams.Create(context.Background(), &domain.Team{Name: "My Crew", Description: "already joined", MemberIDs: []string{u.ID}})
	_, _ = teams.Create(context.Background(), &domain.Team{Name: "Drivers Guild", Description: "transport jobs", MemberIDs: []string{"someone-else"}})

	suggestions, err := svc.SuggestTeams(context.Background(), u.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range suggestions {
		if s.Name == "My Crew" {
			t.Error("own team suggested")
		}
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(suggestions))
	}
	// Skill keyword overlap ranks the tailoring team first.
	if suggestions[0].Name != "Tailoring Collective" {
		t.Errorf("top suggestion = %q", suggestions[0].Name)
	}
}

func TestMatchingService_SuggestTeams_ModelFiltersFabricatedIDs(t *testing.T) {
	suggester := &stubSuggester{teams: []SuggestedTeam{
		{ID: "team-9999", Reason: "made up"},
	}}
	svc, users, _, teams := newMatchingFixture(suggester)
	u := users.add(seekerProfile())

	team, _ := teams.Create(context.Background(), &domain.Team{Name: "Tailoring Collective", Description: "tailoring", MemberIDs: []string{"someone-else"}})

	suggestions, err := svc.SuggestTeams(context.Background(), u.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Every model ID was fabricated, so the local scorer takes over.
	if len(suggestions) != 1 || suggestions[0].TeamID != team.ID {
		t.Errorf("suggestions = %+v, want only %s", suggestions, team.ID)
	}
}

func TestMatchingService_SuggestTeamMembers(t *testing.T) {
	svc, users, _, teams := newMatchingFixture(nil)
	member := users.add(&domain.User{Name: "Insider", Email: "in@example.com"})
	fit := users.add(&domain.User{Name: "Tailor", Email: "t@example.com", Skills: []string{"tailoring"}})
	other := users.add(&domain.User{Name: "Driver", Email: "d@example.com", Skills: []string{"driving"}})

	team, _ := teams.Create(context.Background(), &domain.Team{
		Name:        "Tailoring Collective",
		Description: "boutique tailoring orders",
		MemberIDs:   []string{member.ID},
	})

	ids, err := svc.SuggestTeamMembers(context.Background(), ports.SuggestTeamMembersInput{TeamID: team.ID, N: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2", ids)
	}
	if ids[0] != fit.ID {
		t.Errorf("best candidate = %s, want %s (skill overlap)", ids[0], fit.ID)
	}
	if ids[1] != other.ID {
		t.Errorf("second candidate = %s, want %s", ids[1], other.ID)
	}
	for _, id := range ids {
		if id == member.ID {
			t.Error("existing member suggested")
		}
	}
}

func TestMatchingService_SuggestTeamMembers_ModelFiltersFabricatedIDs(t *testing.T) {
	fabricated := &stubSuggester{members: []string{"ghost-1", "ghost-2"}}
	svc, users, _, teams := newMatchingFixture(fabricated)
	candidate := users.add(&domain.User{Name: "Tailor", Email: "t@example.com", Skills: []string{"tailoring"}})
	team, _ := teams.Create(context.Background(), &domain.Team{Name: "Tailoring Collective", Description: "tailoring", MemberIDs: []string{"someone-else"}})

	ids, err := svc.SuggestTeamMembers(context.Background(), ports.SuggestTeamMembersInput{TeamID: team.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// All model IDs fabricated: the deterministic ranking answers instead.
	if len(ids) != 1 || ids[0] != candidate.ID {
		t.Errorf("ids = %v, want [%s]", ids, candidate.ID)
	}
}
