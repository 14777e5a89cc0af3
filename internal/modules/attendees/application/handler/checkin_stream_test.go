package handler

import (
	"context"
	"sync"
	"testing"

	"passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
)

const eventID = "264d0ff8-325b-439d-93a8-e433594e4606"

type countingFetcher struct {
	mu    sync.Mutex
	calls int
}

func (f *countingFetcher) FetchPage(context.Context, domain.PageQuery) (*domain.AttendeePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return &domain.AttendeePage{Attendees: []domain.Attendee{{ID: "1", Name: "Ana"}}, Total: 1}, nil
}

func (f *countingFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type purgeCache struct {
	purged int
}

func (c *purgeCache) Get(context.Context, string) (*domain.AttendeePage, bool) { return nil, false }
func (c *purgeCache) Set(context.Context, string, *domain.AttendeePage) {}
func (c *purgeCache) Purge(context.Context) { c.purged++ }

type recordingBroadcaster struct {
	got []*domain.Message
}

func (b *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	b.got = append(b.got, msg)
}

func newHandler(fetcher *countingFetcher, cache *purgeCache, b *recordingBroadcaster, sessions *usecase.SessionRegistry) *CheckInStreamHandler {
	listUC := usecase.NewListAttendeesUseCase(fetcher, cache)
	return NewCheckInStreamHandler("passin.checkins", eventID, listUC, usecase.NewBroadcastUseCase(b), sessions)
}

func TestCheckInStreamHandler_RefreshesLiveViews(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := &purgeCache{}
	broadcaster := &recordingBroadcaster{}
	sessions := usecase.NewSessionRegistry()

	listUC := usecase.NewListAttendeesUseCase(fetcher, cache)
	session := usecase.NewViewSession("s1", domain.PageQuery{Page: 1}, listUC)
	sessions.Add(session)
	defer sessions.Remove("s1")

	h := NewCheckInStreamHandler("passin.checkins", eventID, listUC, usecase.NewBroadcastUseCase(broadcaster), sessions)
	if h.Topic() != "passin.checkins" {
		t.Fatalf("unexpected topic: %s", h.Topic())
	}

	err := h.Handle(context.Background(), &domain.Message{
		Topic:      "passin.checkins",
		ResourceID: "1",
		Metadata:   domain.Metadata{"eventId": eventID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.purged != 1 {
		t.Fatalf("expected cache purge, got %d", cache.purged)
	}
	if len(broadcaster.got) != 1 || broadcaster.got[0].Topic != "attendees.checked-in" {
		t.Fatalf("unexpected broadcasts: %+v", broadcaster.got)
	}
	if fetcher.Calls() != 1 {
		t.Fatalf("expected the live view to refetch once, got %d", fetcher.Calls())
	}
	if state := session.State(); state.Total != 1 {
		t.Fatalf("expected refreshed state, got %+v", state)
	}
}

func TestCheckInStreamHandler_IgnoresOtherEvents(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := &purgeCache{}
	broadcaster := &recordingBroadcaster{}
	h := newHandler(fetcher, cache, broadcaster, usecase.NewSessionRegistry())

	msg := &domain.Message{Topic: "passin.checkins", Metadata: domain.Metadata{"eventId": "another"}}
	if err := h.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.purged != 0 || len(broadcaster.got) != 0 {
		t.Fatal("check-in for another event must be ignored")
	}
	if msg.Topic != "passin.checkins" {
		t.Fatal("handler must not mutate the consumed message")
	}
}
