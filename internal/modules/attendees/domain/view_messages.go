package domain

import (
	"strconv"
	"strings"
	"time"
)

// BuildViewMessage wraps view for delivery to the session identified by sessionID.
// The url metadata lets the page replace its history entry without reloading.
func BuildViewMessage(sessionID string, view View, at time.Time) *Message {
	metadata := Metadata{
		"sessionId":  strings.TrimSpace(sessionID),
		"page":       strconv.Itoa(view.Page),
		"totalPages": strconv.Itoa(view.TotalPages),
		"url":        view.URL,
	}
	if view.Search != "" {
		metadata["search"] = view.Search
	}
	if view.Error != "" {
		metadata["error"] = view.Error
	}
	return &Message{
		Topic:      ViewTopic(),
		Entity:     AttendeeEntity,
		Action:     ActionView,
		ResourceID: strings.TrimSpace(sessionID),
		Metadata:   metadata,
		Data:       view,
		Timestamp:  at.UTC(),
	}
}

// BuildErrorMessage reports a rejected command back to a session.
func BuildErrorMessage(sessionID, action, reason string, at time.Time) *Message {
	metadata := Metadata{
		"sessionId": strings.TrimSpace(sessionID),
		"action":    action,
	}
	if strings.TrimSpace(reason) != "" {
		metadata["reason"] = reason
	}
	return &Message{
		Topic:      ErrorTopic(AttendeeEntity),
		Entity:     AttendeeEntity,
		Action:     ActionError,
		ResourceID: strings.TrimSpace(sessionID),
		Metadata:   metadata,
		Data:       map[string]string{"error": reason},
		Timestamp:  at.UTC(),
	}
}
