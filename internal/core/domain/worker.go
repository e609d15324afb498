package domain

import (
	"errors"
	"time"
)

var ErrWorkerNotFound = errors.New("worker profile not found")

// WorkerProfile is an entry in the panchayat hiring registry. It is a
// lighter shape than User: registry workers need not hold accounts.
type WorkerProfile struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Skills        []string  `json:"skills" bson:"skills"`
	Location      string    `json:"location" bson:"location"`
	Rating        float64   `json:"rating" bson:"rating"`
	JobsCompleted int       `json:"jobs_completed" bson:"jobs_completed"`
	MobileNumber  string    `json:"mobile_number,omitempty" bson:"mobile_number,omitempty"`
	RegisteredBy  string    `json:"registered_by" bson:"registered_by"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
