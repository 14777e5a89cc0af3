package domain

import "time"

// Metadata carries string attributes attached to realtime messages.
type Metadata map[string]string

// Message is the envelope exchanged with websocket clients and read from the broker.
type Message struct {
	Topic      string    `json:"topic"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
