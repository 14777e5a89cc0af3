package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"passInWeb/internal/modules/attendees/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	closed bool
}

func (f *fakeConn) WriteMessage(int, []byte) error { return nil }
func (f *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (f *fakeConn) ReadJSON(any) error { return errors.New("closed") }
func (f *fakeConn) SetReadLimit(int64) {}
func (f *fakeConn) SetReadDeadline(time.Time) error { return nil }
func (f *fakeConn) SetPongHandler(func(appData string) error) {}
func (f *fakeConn) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func receive(t *testing.T, c *Client) domain.Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg domain.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a message")
	}
	return domain.Message{}
}

func TestHub_BroadcastTargetsSession(t *testing.T) {
	hub := NewHub()
	a := NewClient(hub, &fakeConn{}, "a", 4, nil)
	b := NewClient(hub, &fakeConn{}, "b", 4, nil)
	hub.AttachClient(a, []string{domain.ViewTopic()})
	hub.AttachClient(b, []string{domain.ViewTopic()})

	if hub.ClientCount() != 2 {
		t.Fatalf("expected 2 clients, got %d", hub.ClientCount())
	}

	view := domain.View{Page: 1, TotalPages: 1, URL: "/?page=1"}
	hub.Broadcast(context.Background(), domain.BuildViewMessage("b", view, time.Now()))

	msg := receive(t, b)
	if msg.Topic != domain.ViewTopic() || msg.Metadata["sessionId"] != "b" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	select {
	case <-a.send:
		t.Fatal("session a must not receive b's view")
	default:
	}
}

func TestHub_DetachRunsCloseHooks(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	client := NewClient(hub, conn, "a", 4, nil)
	hooked := make(chan string, 1)
	client.AddCloseHook(func(c *Client) { hooked <- c.SessionID() })
	hub.AttachClient(client, []string{domain.ViewTopic()})

	hub.detachClient(client)

	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", hub.ClientCount())
	}
	if got := <-hooked; got != "a" {
		t.Fatalf("unexpected hook session: %s", got)
	}
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if !conn.closed {
		t.Fatal("expected connection to be closed")
	}

	// sending after close is a no-op
	client.SendDomainMessage(&domain.Message{Topic: domain.ViewTopic()})
}

func TestHub_SlowClientIsDetached(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, &fakeConn{}, "slow", 1, nil)
	done := make(chan struct{})
	client.AddCloseHook(func(*Client) { close(done) })
	hub.AttachClient(client, []string{domain.ViewTopic()})

	msg := &domain.Message{Topic: domain.ViewTopic()}
	hub.Broadcast(context.Background(), msg)
	hub.Broadcast(context.Background(), msg)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected slow client to be detached")
	}
}

func TestHub_ClosedClientIsNotResubscribed(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, &fakeConn{}, "gone", 4, nil)
	hub.AttachClient(client, []string{domain.ViewTopic()})
	hub.detachClient(client)

	hub.subscribe(client, domain.ViewTopic())
	hub.AttachClient(client, []string{domain.ViewTopic()})

	if hub.ClientCount() != 0 {
		t.Fatalf("closed client was registered again: %d clients", hub.ClientCount())
	}
	hub.mu.RLock()
	_, ok := hub.topics[domain.ViewTopic()]
	hub.mu.RUnlock()
	if ok {
		t.Fatal("closed client was subscribed again")
	}

	// must not panic on the closed send channel
	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.ViewTopic()})
}

func TestCommandProcessor_PingAndPlannedJob(t *testing.T) {
	hub := NewHub()
	var planned []string
	jobs := make(chan string, 1)
	processor := NewCommandProcessor(func(c *Client, cmd Command) CommandJob {
		planned = append(planned, cmd.Action)
		if cmd.Action == "noop" {
			return nil
		}
		return func(ctx context.Context) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("job context must carry a deadline")
			}
			jobs <- cmd.Action
		}
	}, time.Second)

	client := NewClient(hub, &fakeConn{}, "a", 4, processor)
	hub.AttachClient(client, nil)

	processor.Process(client, Command{Action: " PING "})
	if msg := receive(t, client); msg.Topic != domain.TopicSystemPong {
		t.Fatalf("expected pong, got %+v", msg)
	}

	processor.Process(client, Command{Action: "noop"})
	processor.Process(client, Command{Action: "next"})
	processor.Process(client, Command{Action: "  "})

	// planning happens inline, in arrival order
	if len(planned) != 2 || planned[0] != "noop" || planned[1] != "next" {
		t.Fatalf("unexpected planning order: %v", planned)
	}
	select {
	case action := <-jobs:
		if action != "next" {
			t.Fatalf("unexpected job: %s", action)
		}
	case <-time.After(time.Second):
		t.Fatal("job was not run")
	}
}

func TestCommandProcessor_SubscribeIsNotACommand(t *testing.T) {
	hub := NewHub()
	var planned []string
	processor := NewCommandProcessor(func(c *Client, cmd Command) CommandJob {
		planned = append(planned, cmd.Action)
		return nil
	}, 0)
	client := NewClient(hub, &fakeConn{}, "a", 4, processor)
	hub.AttachClient(client, []string{domain.ViewTopic()})

	processor.Process(client, Command{Action: "subscribe", Payload: json.RawMessage(`{"topic":"attendees.checked-in"}`)})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "attendees.checked-in"})

	select {
	case <-client.send:
		t.Fatal("client joined a topic it was not attached to")
	default:
	}
	if len(planned) != 1 || planned[0] != "subscribe" {
		t.Fatalf("subscribe should reach the planner like any action: %v", planned)
	}
}

type recordingHandler struct {
	topic string
	got   []*domain.Message
}

func (h *recordingHandler) Topic() string { return h.topic }

func (h *recordingHandler) Handle(_ context.Context, msg *domain.Message) error {
	h.got = append(h.got, msg)
	return nil
}

func TestHandlerRegistry_Dispatch(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := &recordingHandler{topic: "attendees.checked-in"}
	registry.Register(handler)

	if topics := registry.Topics(); len(topics) != 1 || topics[0] != "attendees.checked-in" {
		t.Fatalf("unexpected topics: %v", topics)
	}
	if err := registry.Dispatch(context.Background(), &domain.Message{Topic: "other"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := registry.Dispatch(context.Background(), &domain.Message{Topic: "attendees.checked-in"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(handler.got) != 1 {
		t.Fatalf("expected one dispatched message, got %d", len(handler.got))
	}
}
