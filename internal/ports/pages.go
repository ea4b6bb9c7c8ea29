package ports

import (
	"context"

	"powerpages/internal/domain"
)

// PageRepository persists page records. Lookups return (nil, nil) when no
// record matches.
type PageRepository interface {
	GetByURL(ctx context.Context, url string) (*domain.Page, error)
	GetByAlias(ctx context.Context, alias string) (*domain.Page, error)

	// ListSubtree returns every page whose URL starts with prefix, ordered by URL.
	ListSubtree(ctx context.Context, prefix string) ([]*domain.Page, error)

	// Save inserts or updates the page by URL and fills in ID and timestamps.
	Save(ctx context.Context, page *domain.Page) error
	Delete(ctx context.Context, url string) error
	SetLocallyEdited(ctx context.Context, url string, edited bool) error
}
