package handler

import "github.com/vasaworks/vasa-api/internal/core/domain"

type createTeamRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description"`
}

type listTeamsResponse struct {
	Data []*domain.Team `json:"data"`
}
