package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/domain"
	"passInWeb/internal/shared/metrics"
)

// PageLoader loads one page of attendees for a query.
type PageLoader interface {
	Execute(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error)
}

// ListAttendeesUseCase fetches attendee pages, going through the page cache
// when one is configured.
type ListAttendeesUseCase struct {
	fetcher port.AttendeeFetcher
	cache   port.PageCache
}

func NewListAttendeesUseCase(fetcher port.AttendeeFetcher, cache port.PageCache) *ListAttendeesUseCase {
	return &ListAttendeesUseCase{fetcher: fetcher, cache: cache}
}

func (uc *ListAttendeesUseCase) Execute(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
	query = query.Normalize()
	key := query.CanonicalKey()

	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, key); ok {
			metrics.CacheHit()
			slog.Debug("attendees page served from cache", slog.String("key", key))
			return cached, nil
		}
		metrics.CacheMiss()
	}

	started := time.Now()
	page, err := uc.fetcher.FetchPage(ctx, query)
	metrics.ObserveFetch(time.Since(started), err)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Debug("attendees fetch canceled", slog.String("key", key))
			return nil, err
		}
		slog.Error("There was a problem with the fetch operation", slog.Int("page", query.Page), slog.String("search", query.Search), slog.Any("error", err))
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: empty response", port.ErrFetchFailed)
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, key, page)
	}
	return page, nil
}

// LoadView builds the view state for query in one request. It reports whether
// the page had to be clamped after the total was known, and the fetch error
// that left the state in its failure form.
func (uc *ListAttendeesUseCase) LoadView(ctx context.Context, query domain.PageQuery) (domain.ViewState, bool, error) {
	state := domain.NewViewState(query)
	page, err := uc.Execute(ctx, state.Query)
	if err != nil {
		state.ApplyFailure()
		return state, false, err
	}
	return state, state.ApplyPage(*page), nil
}

// Invalidate drops every cached page.
func (uc *ListAttendeesUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	uc.cache.Purge(ctx)
	slog.Info("attendees page cache purged")
}

var _ PageLoader = (*ListAttendeesUseCase)(nil)
