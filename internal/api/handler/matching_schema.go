package handler

type jobMatchResponse struct {
	JobReference   string  `json:"job_reference"`
	JobTitle       string  `json:"job_title"`
	JobDescription string  `json:"job_description"`
	RelevanceScore float64 `json:"relevance_score"`
}

type matchJobsResponse struct {
	Data []jobMatchResponse `json:"data"`
}

type teamSuggestionResponse struct {
	TeamID      string `json:"team_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
	Reason      string `json:"reason,omitempty"`
}

type suggestTeamsResponse struct {
	Data []teamSuggestionResponse `json:"data"`
}

type suggestMembersRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	N      int    `json:"n"       validate:"omitempty,gt=0"`
}

type suggestMembersResponse struct {
	UserIDs []string `json:"user_ids"`
}
