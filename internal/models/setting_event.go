package models

import "time"

// SettingEvent is a single entry of the settings audit log.
type SettingEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // SET | EXEC | SNAPSHOT | ERROR
	Path        string    `json:"path,omitempty"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

// Snapshot is a stored parameter snapshot.
type Snapshot struct {
	ID         string     `json:"id"`
	TakenAt    time.Time  `json:"taken_at"`
	Source     string     `json:"source"` // api | monitor | cli
	Parameters Parameters `json:"parameters"`
}
