package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/application/usecase"
	"passInWeb/internal/modules/attendees/domain"
	"passInWeb/internal/shared/httputil"
)

// NewFetchErrorMapper maps attendee fetch failures to gateway statuses.
func NewFetchErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(port.ErrFetchFailed, http.StatusBadGateway, domain.FetchFailedMessage)
}

// NewViewHandler answers GET /attendees with the view as JSON. A clamped page
// is fetched again so the body always describes the page it names.
func NewViewHandler(listUC *usecase.ListAttendeesUseCase, presenter domain.Presenter, mapper *httputil.ErrorMapper) echo.HandlerFunc {
	if mapper == nil {
		mapper = NewFetchErrorMapper()
	}
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		state, clamped, err := listUC.LoadView(ctx, domain.ParsePageQuery(c.QueryParams()))
		if clamped {
			state, _, err = listUC.LoadView(ctx, state.Query)
		}

		status := http.StatusOK
		if err != nil {
			status = mapper.Map(err).Status
		}
		return c.JSON(status, presenter.Present(state))
	}
}
