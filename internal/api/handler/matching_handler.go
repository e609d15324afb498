package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// MatchingHandler handles HTTP requests for AI job and team matching.
type MatchingHandler struct {
	service ports.MatchingService
}

func NewMatchingHandler(service ports.MatchingService) *MatchingHandler {
	return &MatchingHandler{service: service}
}

// MatchJobs handles GET /v1/match/jobs. It scores open jobs against the
// caller's profile.
//
// @Summary      Match open jobs to the caller's profile
// @Tags         matching
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  matchJobsResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/match/jobs [get]
func (h *MatchingHandler) MatchJobs(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	matches, err := h.service.MatchJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]jobMatchResponse, 0, len(matches))
	for _, m := range matches {
		items = append(items, jobMatchResponse{
			JobReference:   m.JobReference,
			JobTitle:       m.JobTitle,
			JobDescription: m.JobDescription,
			RelevanceScore: m.RelevanceScore,
		})
	}
	return c.JSON(http.StatusOK, matchJobsResponse{Data: items})
}

// SuggestTeams handles GET /v1/match/teams: recommends teams for the caller.
//
// @Summary      Suggest teams for the caller
// @Tags         matching
// @Produce      json
// @Security     BearerAuth
// @Param        n    query     int  false  "Max suggestions (default 3)"
// @Success      200  {object}  suggestTeamsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/match/teams [get]
func (h *MatchingHandler) SuggestTeams(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	n, _ := strconv.Atoi(c.QueryParam("n"))
	suggestions, err := h.service.SuggestTeams(c.Request().Context(), userID, n)
	if err != nil {
		return err
	}

	items := make([]teamSuggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, teamSuggestionResponse{
			TeamID:      s.TeamID,
			Name:        s.Name,
			Description: s.Description,
			MemberCount: s.MemberCount,
			Reason:      s.Reason,
		})
	}
	return c.JSON(http.StatusOK, suggestTeamsResponse{Data: items})
}

// SuggestTeamMembers handles POST /v1/match/team-members. It recommends
// candidates to complete a team.
//
// @Summary      Suggest members for a team
// @Tags         matching
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      suggestMembersRequest  true  "Team and suggestion count"
// @Success      200   {object}  suggestMembersResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/match/team-members [post]
func (h *MatchingHandler) SuggestTeamMembers(c echo.Context) error {
	var req suggestMembersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ids, err := h.service.SuggestTeamMembers(c.Request().Context(), ports.SuggestTeamMembersInput{
		TeamID: req.TeamID,
		N:      req.N,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suggestMembersResponse{UserIDs: ids})
}
