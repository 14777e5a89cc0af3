package domain

import "strings"

const (
	SystemEntity   = "system"
	AttendeeEntity = "attendees"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionView      = "view"
	ActionCheckedIn = "checked-in"
)

// ViewTopic is the topic carrying rendered attendee views.
func ViewTopic() string {
	return buildEntityTopic(AttendeeEntity, ActionView)
}

// ErrorTopic is the topic carrying command errors for entity.
func ErrorTopic(entity string) string {
	return buildEntityTopic(entity, ActionError)
}

// CustomTopic returns the canonical topic for entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
