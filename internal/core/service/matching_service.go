package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasaworks/vasa-api/internal/api/metrics"
	"github.com/vasaworks/vasa-api/internal/core/domain"
	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// MatchProfile is the slice of a user profile the suggester sees.
type MatchProfile struct {
	Skills              []string
	Experience          string
	DesiredJobType      string
	LocationPreference  string
	IndustryPreferences []string
}

// JobPosting is the slice of a job the suggester sees.
type JobPosting struct {
	Reference      string
	Title          string
	Description    string
	SkillsRequired []string
	JobType        string
	Location       string
	Industry       string
}

// ScoredJob is one model verdict: a relevance score in [0, 1] per posting.
type ScoredJob struct {
	Reference      string
	RelevanceScore float64
}

// TeamInfo is the slice of a team the suggester sees.
type TeamInfo struct {
	ID          string
	Name        string
	Description string
	MemberCount int
}

// SuggestedTeam is one model team recommendation with its reason.
type SuggestedTeam struct {
	ID     string
	Reason string
}

// Suggester abstracts the hosted generative model (Gemini). Implementations
// return schema-validated structured output; any error makes the matching
// service fall back to its deterministic local scorer.
type Suggester interface {
	MatchJobs(ctx context.Context, profile MatchProfile, jobs []JobPosting) ([]ScoredJob, error)
	SuggestTeams(ctx context.Context, skills []string, teams []TeamInfo, n int) ([]SuggestedTeam, error)
	SuggestTeamMembers(ctx context.Context, teamDescription string, currentMembers, candidateIDs []string, n int) ([]string, error)
}

// MatchingService scores open jobs against a user profile and suggests teams
// and team members. A nil suggester disables the model entirely.
type MatchingService struct {
	users     ports.UserRepository
	jobs      ports.JobRepository
	teams     ports.TeamRepository
	suggester Suggester
	logger    zerolog.Logger
}

func NewMatchingService(
	users ports.UserRepository,
	jobs ports.JobRepository,
	teams ports.TeamRepository,
	suggester Suggester,
	logger zerolog.Logger,
) *MatchingService {
	return &MatchingService{users: users, jobs: jobs, teams: teams, suggester: suggester, logger: logger}
}

// MatchJobs scores every open posting against the caller's profile, sorted
// descending by relevance.
func (s *MatchingService) MatchJobs(ctx context.Context, userID string) ([]ports.JobMatch, error) {
	start := time.Now()

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	open, _, err := s.jobs.List(ctx, ports.ListJobsFilter{
		Status: string(domain.StatusYetToAssign),
		Page:   1,
		Limit:  maxPageLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("match jobs: %w", err)
	}
	if len(open) == 0 {
		return []ports.JobMatch{}, nil
	}

	profile := profileOf(user)
	postings := make([]JobPosting, 0, len(open))
	byRef := make(map[string]*domain.Job, len(open))
	for _, j := range open {
		byRef[j.Reference] = j
		postings = append(postings, JobPosting{
			Reference:      j.Reference,
			Title:          j.Title,
			Description:    j.Description,
			SkillsRequired: j.SkillsRequired,
			JobType:        string(j.JobType),
			Location:       j.Location,
			Industry:       j.Industry,
		})
	}

	scores := s.modelScores(ctx, profile, postings)
	if scores == nil {
		scores = make(map[string]float64, len(open))
	}
	// Every open posting gets a score. The local scorer covers whatever
	// the model left out, so a partial response never hides postings.
	for _, j := range open {
		if _, ok := scores[j.Reference]; !ok {
			scores[j.Reference] = scoreJobForUser(user, j)
		}
	}

	matches := make([]ports.JobMatch, 0, len(open))
	for ref, score := range scores {
		job, ok := byRef[ref]
		if !ok {
			continue
		}
		matches = append(matches, ports.JobMatch{
			JobReference:   ref,
			JobTitle:       job.Title,
			JobDescription: job.Description,
			RelevanceScore: clampScore(score),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].RelevanceScore != matches[j].RelevanceScore {
			return matches[i].RelevanceScore > matches[j].RelevanceScore
		}
		return matches[i].JobTitle < matches[j].JobTitle
	})

	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	return matches, nil
}

// modelScores consults the suggester; a nil map signals "use the fallback".
func (s *MatchingService) modelScores(ctx context.Context, profile MatchProfile, postings []JobPosting) map[string]float64 {
	if s.suggester == nil {
		return nil
	}
	scored, err := s.suggester.MatchJobs(ctx, profile, postings)
	if err != nil {
		metrics.ModelFallbacksTotal.WithLabelValues("match_jobs").Inc()
		s.logger.Warn().Err(err).Msg("model scoring failed, using local scorer")
		return nil
	}
	out := make(map[string]float64, len(scored))
	for _, sc := range scored {
		out[sc.Reference] = sc.RelevanceScore
	}
	return out
}

// SuggestTeams recommends up to n teams the user is not already on.
func (s *MatchingService) SuggestTeams(ctx context.Context, userID string, n int) ([]ports.TeamSuggestion, error) {
	if n <= 0 {
		n = 3
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggest teams: %w", err)
	}

	// Teams the user already belongs to are never suggested.
	candidates := make([]*domain.Team, 0, len(all))
	for _, t := range all {
		if !t.HasMember(userID) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return []ports.TeamSuggestion{}, nil
	}

	byID := make(map[string]*domain.Team, len(candidates))
	infos := make([]TeamInfo, 0, len(candidates))
	for _, t := range candidates {
		byID[t.ID] = t
		infos = append(infos, TeamInfo{ID: t.ID, Name: t.Name, Description: t.Description, MemberCount: len(t.MemberIDs)})
	}

	if s.suggester != nil {
		suggested, err := s.suggester.SuggestTeams(ctx, user.Skills, infos, n)
		if err == nil {
			out := make([]ports.TeamSuggestion, 0, n)
			for _, sg := range suggested {
				t, ok := byID[sg.ID]
				if !ok {
					continue
				}
				out = append(out, suggestionOf(t, sg.Reason))
				if len(out) == n {
					break
				}
			}
			if len(out) > 0 {
				return out, nil
			}
		} else {
			metrics.ModelFallbacksTotal.WithLabelValues("suggest_teams").Inc()
			s.logger.Warn().Err(err).Msg("model team suggestion failed, using local scorer")
		}
	}

	return localTeamSuggestions(user, candidates, n), nil
}

// SuggestTeamMembers returns up to n user IDs fitting a team. Every returned
// ID is re-checked against the user registry so the model can never introduce
// a fabricated user.
func (s *MatchingService) SuggestTeamMembers(ctx context.Context, input ports.SuggestTeamMembersInput) ([]string, error) {
	n := input.N
	if n <= 0 {
		n = 5
	}

	team, err := s.teams.FindByID(ctx, input.TeamID)
	if err != nil {
		return nil, err
	}

	users, _, err := s.users.List(ctx, ports.ListUsersFilter{Page: 1, Limit: maxPageLimit})
	if err != nil {
		return nil, fmt.Errorf("suggest team members: %w", err)
	}

	candidates := make([]*domain.User, 0, len(users))
	candidateIDs := make([]string, 0, len(users))
	valid := make(map[string]struct{}, len(users))
	for _, u := range users {
		if team.HasMember(u.ID) {
			continue
		}
		candidates = append(candidates, u)
		candidateIDs = append(candidateIDs, u.ID)
		valid[u.ID] = struct{}{}
	}
	if len(candidates) == 0 {
		return []string{}, nil
	}

	if s.suggester != nil {
		ids, err := s.suggester.SuggestTeamMembers(ctx, team.Description, team.MemberIDs, candidateIDs, n)
		if err == nil {
			out := make([]string, 0, n)
			for _, id := range ids {
				if _, ok := valid[id]; !ok {
					continue
				}
				out = append(out, id)
				if len(out) == n {
					break
				}
			}
			if len(out) > 0 {
				return out, nil
			}
		} else {
			metrics.ModelFallbacksTotal.WithLabelValues("suggest_members").Inc()
			s.logger.Warn().Err(err).Msg("model member suggestion failed, using local scorer")
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		si := keywordOverlap(candidates[i].Skills, team.Description)
		sj := keywordOverlap(candidates[j].Skills, team.Description)
		if si != sj {
			return si > sj
		}
		return candidates[i].ID < candidates[j].ID
	})
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]string, 0, n)
	for _, u := range candidates[:n] {
		out = append(out, u.ID)
	}
	return out, nil
}

// --- deterministic local scorer ---

// Weights of the local relevance score. Skills dominate; job type, location
// and industry preferences contribute the rest.
const (
	weightSkills   = 0.4
	weightJobType  = 0.2
	weightLocation = 0.2
	weightIndustry = 0.2
)

// scoreJobForUser computes a relevance score in [0, 1]: the covered fraction
// of required skills weighted with exact job-type, location and industry
// preference matches.
func scoreJobForUser(user *domain.User, job *domain.Job) float64 {
	score := skillCoverage(user.Skills, job.SkillsRequired) * weightSkills

	if user.DesiredJobType != "" && strings.EqualFold(user.DesiredJobType, string(job.JobType)) {
		score += weightJobType
	}
	if user.LocationPreference != "" && strings.EqualFold(user.LocationPreference, job.Location) {
		score += weightLocation
	}
	for _, ind := range user.IndustryPreferences {
		if strings.EqualFold(ind, job.Industry) {
			score += weightIndustry
			break
		}
	}

	return clampScore(score)
}

// skillCoverage returns the fraction of required skills the user has,
// case-insensitively. A job with no skill requirements scores a neutral 0.5.
func skillCoverage(userSkills, required []string) float64 {
	if len(required) == 0 {
		return 0.5
	}
	have := make(map[string]struct{}, len(userSkills))
	for _, s := range userSkills {
		have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	covered := 0
	for _, r := range required {
		if _, ok := have[strings.ToLower(strings.TrimSpace(r))]; ok {
			covered++
		}
	}
	return float64(covered) / float64(len(required))
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// localTeamSuggestions ranks candidate teams by overlap between the user's
// skills and the team's name/description.
func localTeamSuggestions(user *domain.User, candidates []*domain.Team, n int) []ports.TeamSuggestion {
	type rankedTeam struct {
		team  *domain.Team
		score int
	}
	ranked := make([]rankedTeam, 0, len(candidates))
	for _, t := range candidates {
		ranked = append(ranked, rankedTeam{team: t, score: keywordOverlap(user.Skills, t.Name+" "+t.Description)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].team.Name < ranked[j].team.Name
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]ports.TeamSuggestion, 0, n)
	for _, r := range ranked[:n] {
		reason := "An active community group you could contribute to."
		if r.score > 0 {
			reason = fmt.Sprintf("Your skills overlap with this team's focus (%d matching keyword(s)).", r.score)
		}
		out = append(out, suggestionOf(r.team, reason))
	}
	return out
}

// keywordOverlap counts how many of the skills appear as words in text,
// case-insensitively.
func keywordOverlap(skills []string, text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && strings.Contains(lower, s) {
			count++
		}
	}
	return count
}

func profileOf(u *domain.User) MatchProfile {
	return MatchProfile{
		Skills:              u.Skills,
		Experience:          u.Experience,
		DesiredJobType:      u.DesiredJobType,
		LocationPreference:  u.LocationPreference,
		IndustryPreferences: u.IndustryPreferences,
	}
}

func suggestionOf(t *domain.Team, reason string) ports.TeamSuggestion {
	return ports.TeamSuggestion{
		TeamID:      t.ID,
		Name:        t.Name,
		Description: t.Description,
		MemberCount: len(t.MemberIDs),
		Reason:      reason,
	}
}
