package domain

import "errors"

var ErrModuleNotFound = errors.New("learning module not found")
var ErrInvalidProgress = errors.New("progress must be between 0 and 100")

// ModuleType distinguishes video lessons from articles.
type ModuleType string

const (
	ModuleVideo   ModuleType = "video"
	ModuleArticle ModuleType = "article"
)

// LearningModule is a catalog entry in the skills library. The catalog is
// seeded at startup and read-only; per-user progress is tracked separately.
type LearningModule struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Type        ModuleType `json:"type" bson:"type"`
	Duration    string     `json:"duration" bson:"duration"`
	Language    string     `json:"language" bson:"language"`
	VideoID     string     `json:"video_id,omitempty" bson:"video_id,omitempty"`
}

// ModuleLanguages lists the languages the catalog is published in.
var ModuleLanguages = []string{"en", "hi", "ta", "te", "bn", "mr"}

// ModuleProgress records how far a user has gotten through a module.
type ModuleProgress struct {
	UserID   string `json:"user_id" bson:"user_id"`
	ModuleID string `json:"module_id" bson:"module_id"`
	Progress int    `json:"progress" bson:"progress"`
}
