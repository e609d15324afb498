package domain

import (
	"errors"
	"time"
)

var ErrTeamNotFound = errors.New("team not found")
var ErrAlreadyMember = errors.New("user is already a team member")
var ErrNotMember = errors.New("user is not a team member")

// Team is a community group users join to work together.
type Team struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	MemberIDs   []string  `json:"member_ids" bson:"member_ids"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// HasMember reports whether userID is already on the team.
func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
