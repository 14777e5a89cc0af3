package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/domain"
)

func TestListAttendeesUseCase_CachesSuccessfulPages(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fn: func(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
		return &domain.AttendeePage{Attendees: attendees("ana"), Total: 1}, nil
	}}
	cache := newMapCache()
	uc := NewListAttendeesUseCase(fetcher, cache)

	for i := 0; i < 2; i++ {
		page, err := uc.Execute(context.Background(), domain.PageQuery{Page: 1, Search: "ana"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 1 {
			t.Fatalf("unexpected total: %d", page.Total)
		}
	}
	if calls := len(fetcher.Calls()); calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}

	uc.Invalidate(context.Background())
	if cache.purged != 1 {
		t.Fatalf("expected cache purge, got %d", cache.purged)
	}
}

func TestListAttendeesUseCase_FailureIsNotCached(t *testing.T) {
	t.Parallel()

	expected := fmt.Errorf("%w: status 500", port.ErrFetchFailed)
	fetcher := &stubFetcher{fn: func(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
		return nil, expected
	}}
	cache := newMapCache()
	uc := NewListAttendeesUseCase(fetcher, cache)

	_, err := uc.Execute(context.Background(), domain.PageQuery{Page: 1})
	if !errors.Is(err, port.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("failure must not be cached: %v", cache.entries)
	}
}

func TestListAttendeesUseCase_NilPageIsFailure(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fn: func(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
		return nil, nil
	}}
	uc := NewListAttendeesUseCase(fetcher, nil)

	if _, err := uc.Execute(context.Background(), domain.PageQuery{Page: 1}); !errors.Is(err, port.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestListAttendeesUseCase_LoadView(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{fn: func(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
		return &domain.AttendeePage{Attendees: []domain.Attendee{}, Total: 12}, nil
	}}
	uc := NewListAttendeesUseCase(fetcher, nil)

	state, clamped, err := uc.LoadView(context.Background(), domain.PageQuery{Page: 9, Search: "ana"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !clamped {
		t.Fatal("expected clamped page")
	}
	if state.Query.Page != 2 || state.Query.Search != "ana" {
		t.Fatalf("unexpected query: %+v", state.Query)
	}

	failing := NewListAttendeesUseCase(&stubFetcher{fn: func(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
		return nil, port.ErrFetchFailed
	}}, nil)
	state, clamped, err = failing.LoadView(context.Background(), domain.PageQuery{Page: 3})
	if !errors.Is(err, port.ErrFetchFailed) {
		t.Fatalf("expected fetch failure, got %v", err)
	}
	if clamped {
		t.Fatal("failure must not clamp")
	}
	if state.Error != domain.FetchFailedMessage {
		t.Fatalf("unexpected error: %q", state.Error)
	}
	if state.Query.Page != 3 {
		t.Fatalf("page should stay as requested, got %d", state.Query.Page)
	}
}
