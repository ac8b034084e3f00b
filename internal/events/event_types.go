package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventProfileCreated EventType = "profile_created"
	EventProfileUpdated EventType = "profile_updated"
	EventProfileDeleted EventType = "profile_deleted"
)

// Event represents a domain event emitted by the profile service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ProfileID int64       `json:"profile_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ProfileCreatedPayload payload.
type ProfileCreatedPayload struct {
	Name       string `json:"name"`
	Country    string `json:"country"`
	HasPicture bool   `json:"has_picture"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// ProfileDeletedPayload payload.
type ProfileDeletedPayload struct {
	Name string `json:"name"`
}
