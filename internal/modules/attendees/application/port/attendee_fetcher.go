package port

import (
	"context"
	"errors"
	"fmt"

	"passInWeb/internal/modules/attendees/domain"
)

var (
	// ErrFetchFailed is the single failure kind of a page fetch. Non-2xx
	// statuses, transport errors and undecodable bodies all wrap it.
	ErrFetchFailed = errors.New("attendees fetch failed")
	// ErrEventNotFound is returned when the event does not exist upstream. It
	// wraps ErrFetchFailed.
	ErrEventNotFound = fmt.Errorf("%w: event not found", ErrFetchFailed)
)

// AttendeeFetcher retrieves one page of attendees from the remote API.
type AttendeeFetcher interface {
	FetchPage(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error)
}
