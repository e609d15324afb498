package handler

import (
	"time"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

type sosRequest struct {
	Lat     float64 `json:"lat"     validate:"required,gte=-90,lte=90"`
	Lng     float64 `json:"lng"     validate:"required,gte=-180,lte=180"`
	Message string  `json:"message"`
}

type sosResponse struct {
	AlertID   string    `json:"alert_id"`
	CreatedAt time.Time `json:"created_at"`
}

type listSOSResponse struct {
	Data []*domain.SOSAlert `json:"data"`
}
