package handler

import "github.com/vasaworks/vasa-api/internal/core/domain"

type workerRequest struct {
	Name         string   `json:"name"          validate:"required"`
	Skills       []string `json:"skills"        validate:"required,min=1"`
	Location     string   `json:"location"      validate:"required"`
	Rating       float64  `json:"rating"        validate:"omitempty,gte=0,lte=5"`
	MobileNumber string   `json:"mobile_number"`
}

type searchWorkersResponse struct {
	Data       []*domain.WorkerProfile `json:"data"`
	Pagination paginationResponse      `json:"pagination"`
}
