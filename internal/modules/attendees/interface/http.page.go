package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
)

const attendeeListTemplate = "attendee_list.html"

type pageData struct {
	View        domain.View
	LiveViewURL string
}

// NewPageHandler serves the attendee list page. search and page come from the
// URL; a page past the end is answered with a redirect to the clamped URL.
func NewPageHandler(listUC *usecase.ListAttendeesUseCase, presenter domain.Presenter, liveViewPath string) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := domain.ParsePageQuery(c.QueryParams())
		state, clamped, err := listUC.LoadView(c.Request().Context(), query)
		if clamped {
			target := state.Query.URL(presenter.Path)
			slog.Debug("attendee page clamped", slog.Int("requested", query.Page), slog.String("location", target))
			return c.Redirect(http.StatusSeeOther, target)
		}
		if err != nil {
			slog.Debug("attendee page rendered with fetch error", slog.Any("error", err))
		}

		view := presenter.Present(state)
		return c.Render(http.StatusOK, attendeeListTemplate, pageData{
			View:        view,
			LiveViewURL: liveViewPath + "?" + state.Query.URLValues().Encode(),
		})
	}
}
