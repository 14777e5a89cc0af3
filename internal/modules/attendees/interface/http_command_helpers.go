package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
	"passInWeb/internal/modules/attendees/infrastructure"
)

// newLiveViewCommandPlanner maps navigation commands onto session
// transitions. The transition is staged while planning, so the last command
// the client sent decides the final query. Fetch failures reach the client
// through the session observer; only rejected commands are answered here.
func newLiveViewCommandPlanner(session *usecase.ViewSession, validate *validator.Validate) infrastructure.CommandPlanner {
	return func(client *infrastructure.Client, cmd infrastructure.Command) infrastructure.CommandJob {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))

		var transition usecase.Transition
		switch action {
		case "search":
			payload, err := decodeCommand[domain.SearchCommand](cmd.Payload, validate)
			if err != nil {
				rejectCommand(client, action, err)
				return nil
			}
			transition = usecase.ToSearch(payload.Search)
		case "page":
			payload, err := decodeCommand[domain.PageCommand](cmd.Payload, validate)
			if err != nil {
				rejectCommand(client, action, err)
				return nil
			}
			transition = usecase.ToPage(payload.Page)
		case "first":
			transition = usecase.ToFirst()
		case "previous", "prev":
			transition = usecase.ToPrevious()
		case "next":
			transition = usecase.ToNext()
		case "last":
			transition = usecase.ToLast()
		case "refresh":
			transition = usecase.Reload()
		default:
			slog.Debug("live view unknown action", slog.String("sessionId", client.SessionID()), slog.String("action", cmd.Action))
			client.SendDomainMessage(domain.BuildErrorMessage(client.SessionID(), action, "unsupported action", time.Now()))
			return nil
		}

		return runPending(client.SessionID(), action, session.Stage(transition))
	}
}

func runPending(sessionID, action string, pending *usecase.PendingFetch) infrastructure.CommandJob {
	return func(ctx context.Context) {
		if _, err := pending.Run(ctx); err != nil {
			if errors.Is(err, usecase.ErrSuperseded) {
				return
			}
			slog.Debug("live view fetch failed", slog.String("sessionId", sessionID), slog.String("action", action), slog.Any("error", err))
		}
	}
}

func rejectCommand(client *infrastructure.Client, action string, err error) {
	slog.Warn("live view command rejected", slog.String("sessionId", client.SessionID()), slog.String("action", action), slog.Any("error", err))
	client.SendDomainMessage(domain.BuildErrorMessage(client.SessionID(), action, "invalid payload", time.Now()))
}

func decodeCommand[T any](raw json.RawMessage, validate *validator.Validate) (T, error) {
	var payload T
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return payload, err
		}
	}
	if err := validate.Struct(payload); err != nil {
		return payload, err
	}
	return payload, nil
}
