package ports

import "context"

// JobMatch scores one job posting against a user profile. RelevanceScore is
// in [0, 1]; results are sorted descending by score.
type JobMatch struct {
	JobReference   string
	JobTitle       string
	JobDescription string
	RelevanceScore float64
}

// TeamSuggestion recommends one team with a human-readable reason.
type TeamSuggestion struct {
	TeamID      string
	Name        string
	Description string
	MemberCount int
	Reason      string
}

// SuggestTeamMembersInput asks for candidate members for a team.
type SuggestTeamMembersInput struct {
	TeamID string
	N      int
}

// MatchingService scores jobs and suggests teams/members for a user. The
// hosted model is consulted first; every operation degrades to a
// deterministic local scorer when the model is unavailable.
type MatchingService interface {
	MatchJobs(ctx context.Context, userID string) ([]JobMatch, error)
	SuggestTeams(ctx context.Context, userID string, n int) ([]TeamSuggestion, error)
	SuggestTeamMembers(ctx context.Context, input SuggestTeamMembersInput) ([]string, error)
}
