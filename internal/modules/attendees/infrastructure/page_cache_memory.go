package infrastructure

import (
	"context"
	"strings"
	"sync"
	"time"

	"passInWeb/internal/modules/attendees/application/port"
	"passInWeb/internal/modules/attendees/domain"
)

// MemoryPageCache keeps pages in process for ttl.
type MemoryPageCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*pageCacheEntry
}

type pageCacheEntry struct {
	key       string
	page      domain.AttendeePage
	fetchedAt time.Time
}

func NewMemoryPageCache(ttl time.Duration) *MemoryPageCache {
	return &MemoryPageCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*pageCacheEntry),
	}
}

func (c *MemoryPageCache) Get(_ context.Context, key string) (*domain.AttendeePage, bool) {
	key = strings.TrimSpace(key)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.expired(entry) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.clone(), true
}

func (c *MemoryPageCache) Set(_ context.Context, key string, page *domain.AttendeePage) {
	key = strings.TrimSpace(key)
	if key == "" || page == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &pageCacheEntry{
		key:       key,
		page:      clonePage(*page),
		fetchedAt: c.now().UTC(),
	}
}

func (c *MemoryPageCache) Purge(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*pageCacheEntry)
}

func (c *MemoryPageCache) expired(entry *pageCacheEntry) bool {
	return c.now().UTC().Sub(entry.fetchedAt) >= c.ttl
}

func (e *pageCacheEntry) clone() *domain.AttendeePage {
	page := clonePage(e.page)
	return &page
}

func clonePage(page domain.AttendeePage) domain.AttendeePage {
	cloned := domain.AttendeePage{Total: page.Total, Attendees: make([]domain.Attendee, len(page.Attendees))}
	copy(cloned.Attendees, page.Attendees)
	return cloned
}

var _ port.PageCache = (*MemoryPageCache)(nil)
