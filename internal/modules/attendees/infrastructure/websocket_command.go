package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"passInWeb/internal/modules/attendees/domain"
)

type Command struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

// CommandJob is the part of a command that may block, usually a fetch.
type CommandJob func(ctx context.Context)

// CommandPlanner runs on the read loop in arrival order. It validates cmd,
// stages its effect and returns the remaining work, or nil when there is none.
type CommandPlanner func(client *Client, cmd Command) CommandJob

// CommandProcessor answers ping inline and plans every other action on the
// read loop, so a session sees commands in the order the client sent them.
// Jobs run on their own goroutine and never block the read loop.
type CommandProcessor struct {
	planner    CommandPlanner
	jobTimeout time.Duration
}

func NewCommandProcessor(planner CommandPlanner, jobTimeout time.Duration) *CommandProcessor {
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Second
	}
	return &CommandProcessor{
		planner:    planner,
		jobTimeout: jobTimeout,
	}
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}
	if action == "ping" {
		p.pong(client)
		return
	}

	if p.planner == nil {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("action", action))
		return
	}

	job := p.planner(client, cmd)
	if job == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.jobTimeout)
	go func() {
		defer cancel()
		job(ctx)
	}()
}

func (p *CommandProcessor) pong(client *Client) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
