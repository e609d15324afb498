package handler

type moduleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	Language    string `json:"language"`
	VideoID     string `json:"video_id,omitempty"`
	Progress    int    `json:"progress"`
}

type listModulesResponse struct {
	Data []moduleResponse `json:"data"`
}

type progressRequest struct {
	Progress int `json:"progress"`
}
