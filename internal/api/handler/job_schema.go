package handler

import (
	"time"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

type createJobRequest struct {
	Title          string   `json:"title"           validate:"required"`
	CompanyName    string   `json:"company_name"`
	Location       string   `json:"location"        validate:"required"`
	JobType        string   `json:"job_type"        validate:"required,oneof=full_time part_time contract internship"`
	Salary         string   `json:"salary"`
	Description    string   `json:"description"     validate:"required"`
	SkillsRequired []string `json:"skills_required"`
	Industry       string   `json:"industry"`
	Pay            int64    `json:"pay"             validate:"omitempty,gt=0"`
	ScheduledDate  string   `json:"scheduled_date"`
	ScheduledTime  string   `json:"scheduled_time"`
	Source         string   `json:"source"          validate:"omitempty,oneof=marketplace panchayat"`
}

type createJobResponse struct {
	Reference string    `json:"reference"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type assignWorkersRequest struct {
	WorkerIDs []string `json:"worker_ids" validate:"required,min=1"`
}

type listJobsResponse struct {
	Data       []*domain.Job      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
