package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/domain"
)

const attendeesPathFormat = "/events/attendees/%s"

// AttendeeHTTPClient implements AttendeeFetcher against the pass.in REST API.
type AttendeeHTTPClient struct {
	rest    *RESTClient
	eventID string
}

func NewAttendeeHTTPClient(baseURL, eventID string, timeout time.Duration, client *http.Client) *AttendeeHTTPClient {
	return &AttendeeHTTPClient{
		rest:    NewRESTClient(baseURL, timeout, client),
		eventID: strings.TrimSpace(eventID),
	}
}

// FetchPage issues GET /events/attendees/<event>?pageIndex=<n>[&query=<search>].
func (c *AttendeeHTTPClient) FetchPage(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
	if c.eventID == "" {
		return nil, fmt.Errorf("%w: missing event id", port.ErrFetchFailed)
	}

	path := fmt.Sprintf(attendeesPathFormat, url.PathEscape(c.eventID))
	req, err := c.rest.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		slog.Error("attendees request build failed", slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.URL.RawQuery = query.UpstreamValues().Encode()
	slog.Debug("attendees request", slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", port.ErrFetchFailed, ctxErr)
		}
		slog.Error("attendees request error", slog.String("path", path), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", port.ErrFetchFailed, err)
	}
	defer res.Body.Close()
	slog.Debug("attendees response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if res.StatusCode == http.StatusNotFound {
		return nil, port.ErrEventNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Error("attendees fetch unexpected status", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()), slog.String("body", strings.TrimSpace(string(body))))
		return nil, fmt.Errorf("%w: Network response was not ok %s", port.ErrFetchFailed, http.StatusText(res.StatusCode))
	}

	return decodeAttendeePage(res.Body)
}

func decodeAttendeePage(body io.Reader) (*domain.AttendeePage, error) {
	var payload struct {
		Attendees *[]domain.Attendee `json:"attendees"`
		Total     *int               `json:"total"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode attendees: %v", port.ErrFetchFailed, err)
	}
	if payload.Attendees == nil || payload.Total == nil {
		return nil, fmt.Errorf("%w: response missing attendees or total", port.ErrFetchFailed)
	}
	return &domain.AttendeePage{Attendees: *payload.Attendees, Total: *payload.Total}, nil
}

var _ port.AttendeeFetcher = (*AttendeeHTTPClient)(nil)
