package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
	"passInWeb/internal/modules/attendees/infrastructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveViewDeps groups what a live view connection needs.
type LiveViewDeps struct {
	Hub         *infrastructure.Hub
	ListUC      *usecase.ListAttendeesUseCase
	BroadcastUC *usecase.BroadcastUseCase
	Sessions    *usecase.SessionRegistry
	Presenter   domain.Presenter
	SendBuffer  int
	// CommandTimeout bounds each navigation command, fetch included.
	CommandTimeout time.Duration
}

// NewLiveViewHandler upgrades GET /ws/attendees to a websocket bound to a new
// view session. The session starts from the search and page in the URL and
// pushes an attendees.view message after every applied fetch.
func NewLiveViewHandler(deps LiveViewDeps) echo.HandlerFunc {
	validate := validator.New(validator.WithRequiredStructEnabled())

	return func(c echo.Context) error {
		query := domain.ParsePageQuery(c.QueryParams()).Normalize()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("requestId", requestID), slog.Any("error", err))
			return err
		}

		sessionID := uuid.NewString()
		session := usecase.NewViewSession(sessionID, query, deps.ListUC)
		commands := infrastructure.NewCommandProcessor(newLiveViewCommandPlanner(session, validate), commandTimeout(deps.CommandTimeout))
		client := infrastructure.NewClient(deps.Hub, conn, sessionID, deps.SendBuffer, commands)

		presenter := deps.Presenter
		broadcastUC := deps.BroadcastUC
		session.OnChange(func(state domain.ViewState) {
			view := presenter.Present(state)
			broadcastUC.Execute(context.Background(), domain.BuildViewMessage(sessionID, view, time.Now()))
		})

		deps.Sessions.Add(session)
		client.AddCloseHook(func(*infrastructure.Client) {
			deps.Sessions.Remove(sessionID)
		})

		topics := []string{domain.ViewTopic(), domain.ErrorTopic(domain.AttendeeEntity), domain.CustomTopic(domain.AttendeeEntity, domain.ActionCheckedIn)}
		deps.Hub.AttachClient(client, topics)

		// staged before the read loop starts so the first command supersedes it
		initial := runPending(sessionID, "refresh", session.Stage(usecase.Reload()))

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:    domain.TopicSystemConnected,
			Entity:   domain.SystemEntity,
			Action:   domain.ActionConnected,
			Metadata: domain.Metadata{"sessionId": sessionID},
			Data: map[string]any{
				"sessionId":     sessionID,
				"allowedTopics": topics,
				"url":           query.URL(presenter.Path),
			},
			Timestamp: time.Now().UTC(),
		})
		slog.Info("live view connected", slog.String("sessionId", sessionID), slog.Int("page", query.Page), slog.String("search", query.Search), slog.String("ip", c.RealIP()), slog.String("requestId", requestID))

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout(deps.CommandTimeout))
			defer cancel()
			initial(ctx)
		}()

		return nil
	}
}

func commandTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 15 * time.Second
	}
	return d
}
