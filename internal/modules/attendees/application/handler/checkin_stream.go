package handler

import (
	"context"
	"log/slog"
	"strings"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
)

// CheckInStreamHandler reacts to check-in events from the broker: it drops
// cached pages, relays the event to websocket subscribers and refreshes every
// live view so the new check-in column shows up.
type CheckInStreamHandler struct {
	kafkaTopic  string
	eventID     string
	listUC      *usecase.ListAttendeesUseCase
	broadcastUC *usecase.BroadcastUseCase
	sessions    *usecase.SessionRegistry
}

func NewCheckInStreamHandler(kafkaTopic, eventID string, listUC *usecase.ListAttendeesUseCase, broadcastUC *usecase.BroadcastUseCase, sessions *usecase.SessionRegistry) *CheckInStreamHandler {
	return &CheckInStreamHandler{
		kafkaTopic:  strings.TrimSpace(kafkaTopic),
		eventID:     strings.TrimSpace(eventID),
		listUC:      listUC,
		broadcastUC: broadcastUC,
		sessions:    sessions,
	}
}

func (h *CheckInStreamHandler) Topic() string { return h.kafkaTopic }

func (h *CheckInStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if eventID := strings.TrimSpace(msg.Metadata["eventId"]); eventID != "" && !strings.EqualFold(eventID, h.eventID) {
		slog.Debug("check-in for another event ignored", slog.String("eventId", eventID))
		return nil
	}

	slog.Info("attendee checked in", slog.String("attendeeId", msg.ResourceID), slog.String("eventId", h.eventID))

	if h.listUC != nil {
		h.listUC.Invalidate(ctx)
	}
	if h.broadcastUC != nil {
		relay := *msg
		relay.Topic = domain.CustomTopic(domain.AttendeeEntity, domain.ActionCheckedIn)
		relay.Entity = domain.AttendeeEntity
		relay.Action = domain.ActionCheckedIn
		h.broadcastUC.Execute(ctx, &relay)
	}
	if h.sessions != nil {
		h.sessions.RefreshAll(ctx)
	}
	return nil
}

var _ port.TopicHandler = (*CheckInStreamHandler)(nil)
