// Package ai implements the hosted-model suggester on Google's Gemini API.
// Every call requests schema-constrained JSON output; the matching service
// treats any error here as a signal to fall back to its local scorer.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/vasaworks/vasa-api/internal/core/service"
)

const defaultModel = "gemini-2.0-flash"

// GeminiSuggester implements service.Suggester against the Gemini API.
type GeminiSuggester struct {
	client *genai.Client
	model  string
}

// NewGeminiSuggester creates a suggester. An empty model falls back to
// defaultModel.
func NewGeminiSuggester(ctx context.Context, apiKey, model string) (*GeminiSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiSuggester{client: client, model: model}, nil
}

// MatchJobs asks the model to score each posting's relevance to the profile.
func (g *GeminiSuggester) MatchJobs(ctx context.Context, profile service.MatchProfile, jobs []service.JobPosting) ([]service.ScoredJob, error) {
	prompt, err := buildPrompt(
		"You are a job matching expert for a community employment platform in India. "+
			"Score how relevant each job posting is for the candidate, from 0.0 (no fit) to 1.0 (ideal fit). "+
			"Weigh skill overlap most, then job type, location and industry preferences. "+
			"Return a score for every posting.",
		map[string]any{"candidate": profile, "postings": jobs},
	)
	if err != nil {
		return nil, err
	}

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"reference":       {Type: genai.TypeString},
				"relevance_score": {Type: genai.TypeNumber},
			},
			Required: []string{"reference", "relevance_score"},
		},
	}

	var out []struct {
		Reference      string  `json:"reference"`
		RelevanceScore float64 `json:"relevance_score"`
	}
	if err := g.generate(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}

	scored := make([]service.ScoredJob, 0, len(out))
	for _, o := range out {
		scored = append(scored, service.ScoredJob{
			Reference:      o.Reference,
			RelevanceScore: o.RelevanceScore,
		})
	}
	return scored, nil
}

// SuggestTeams asks the model for the n teams best matching the skills.
func (g *GeminiSuggester) SuggestTeams(ctx context.Context, skills []string, teams []service.TeamInfo, n int) ([]service.SuggestedTeam, error) {
	prompt, err := buildPrompt(
		fmt.Sprintf("You are a community team matchmaker. Given a person's skills and a list of teams, "+
			"pick up to %d teams where this person would contribute most, with a one-sentence reason each. "+
			"Only use team ids from the list.", n),
		map[string]any{"skills": skills, "teams": teams},
	)
	if err != nil {
		return nil, err
	}

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"id":     {Type: genai.TypeString},
				"reason": {Type: genai.TypeString},
			},
			Required: []string{"id", "reason"},
		},
	}

	var out []struct {
		ID     string `json:"id"`
		Reason string `json:"reason"`
	}
	if err := g.generate(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}

	suggested := make([]service.SuggestedTeam, 0, len(out))
	for _, o := range out {
		suggested = append(suggested, service.SuggestedTeam{ID: o.ID, Reason: o.Reason})
	}
	return suggested, nil
}

// SuggestTeamMembers asks the model for the n candidates best completing a team.
func (g *GeminiSuggester) SuggestTeamMembers(ctx context.Context, teamDescription string, currentMembers, candidateIDs []string, n int) ([]string, error) {
	prompt, err := buildPrompt(
		fmt.Sprintf("You are a team building assistant. Given a team's purpose, its current member ids and "+
			"a list of candidate ids, pick up to %d candidates who would best complete the team. "+
			"Only use ids from the candidates list.", n),
		map[string]any{
			"team_description": teamDescription,
			"current_members":  currentMembers,
			"candidates":       candidateIDs,
		},
	)
	if err != nil {
		return nil, err
	}

	schema := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	var out []string
	if err := g.generate(ctx, prompt, schema, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// generate runs one schema-constrained completion and unmarshals the JSON
// answer into out.
func (g *GeminiSuggester) generate(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if text == "" {
		return fmt.Errorf("gemini generate: empty response")
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("gemini response decode: %w", err)
	}
	return nil
}

// buildPrompt joins the instruction with the JSON-serialized input payload.
func buildPrompt(instruction string, payload map[string]any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode prompt payload: %w", err)
	}
	return instruction + "\n\nInput:\n" + string(data), nil
}
