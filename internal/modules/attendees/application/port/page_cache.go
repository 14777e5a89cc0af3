package port

import (
	"context"

	"passInWeb/internal/modules/attendees/domain"
)

// PageCache stores fetched pages keyed by PageQuery.CanonicalKey.
type PageCache interface {
	Get(ctx context.Context, key string) (*domain.AttendeePage, bool)
	Set(ctx context.Context, key string, page *domain.AttendeePage)
	Purge(ctx context.Context)
}
