package models

type EventType string

const (
	EventTypeProfileCreated  EventType = "profile.created"
	EventTypeProfileUpdated  EventType = "profile.updated"
	EventTypeProfileDeleted  EventType = "profile.deleted"
	EventTypeUserRoleChanged EventType = "user.role-switched"
)

type Event struct {
	EventType EventType      `json:"eventType"`
	UserID    string         `json:"userId"`
	ProfileID string         `json:"profileId,omitempty"`
	Timestamp int            `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}
