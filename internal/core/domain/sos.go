package domain

import "time"

// Coordinates represents a geographic point reported by the SOS caller.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// SOSAlert is a persisted safety alert. Alerts are written synchronously;
// notification fanout to panchayat contacts happens asynchronously through
// the dispatcher.
type SOSAlert struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	UserID    string      `json:"user_id" bson:"user_id"`
	UserName  string      `json:"user_name" bson:"user_name"`
	Location  Coordinates `json:"location" bson:"location"`
	Message   string      `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
