package handler

import "github.com/vasaworks/vasa-api/internal/core/domain"

type updateProfileRequest struct {
	Name                string   `json:"name"`
	AvatarURL           string   `json:"avatar_url"`
	Skills              []string `json:"skills"`
	Experience          string   `json:"experience"`
	DesiredJobType      string   `json:"desired_job_type"`
	LocationPreference  string   `json:"location_preference"`
	IndustryPreferences []string `json:"industry_preferences"`
	MobileNumber        string   `json:"mobile_number"`
	Address             string   `json:"address"`
}

type upgradeMembershipRequest struct {
	Tier string `json:"tier" validate:"required,oneof=Rise Bloom Empower"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
