package usecase

import (
	"context"
	"sync"

	"passInWeb/internal/modules/attendees/domain"
)

type fetchFunc func(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error)

type stubFetcher struct {
	mu    sync.Mutex
	calls []domain.PageQuery
	fn    fetchFunc
}

func (f *stubFetcher) FetchPage(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	fn := f.fn
	f.mu.Unlock()
	return fn(ctx, query)
}

func (f *stubFetcher) Execute(ctx context.Context, query domain.PageQuery) (*domain.AttendeePage, error) {
	return f.FetchPage(ctx, query)
}

func (f *stubFetcher) Calls() []domain.PageQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PageQuery(nil), f.calls...)
}

type mapCache struct {
	mu      sync.Mutex
	entries map[string]*domain.AttendeePage
	purged  int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*domain.AttendeePage)}
}

func (c *mapCache) Get(_ context.Context, key string) (*domain.AttendeePage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	page, ok := c.entries[key]
	return page, ok
}

func (c *mapCache) Set(_ context.Context, key string, page *domain.AttendeePage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = page
}

func (c *mapCache) Purge(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*domain.AttendeePage)
	c.purged++
}

func attendees(names ...string) []domain.Attendee {
	out := make([]domain.Attendee, 0, len(names))
	for _, name := range names {
		out = append(out, domain.Attendee{ID: name, Name: name, Email: name + "@example.com"})
	}
	return out
}
