package ports

import (
	"context"
	"time"

	"tinylink/internal/core/domain"
)

// LinkRepository defines storage operations for links. Lookups return
// (nil, nil) when no link exists for the code; errors are reserved for
// storage failures.
type LinkRepository interface {
	// Create persists a new link. The store's unique constraint on code is
	// authoritative: a collision returns domain.ErrDuplicateCode even when a
	// prior existence check passed.
	Create(ctx context.Context, link *domain.Link) error
	GetByCode(ctx context.Context, code string) (*domain.Link, error)
	// IncrementClicks adds one click and stamps lastClicked in a single
	// atomic statement, with no prior read. Returns (nil, nil) when the link
	// no longer exists.
	IncrementClicks(ctx context.Context, code string, now time.Time) (*domain.Link, error)
	// Delete removes the link and reports whether a row was deleted.
	Delete(ctx context.Context, code string) (bool, error)
	// List returns all links, newest first.
	List(ctx context.Context) ([]domain.Link, error)
	Ping(ctx context.Context) error
}

// LinkService defines the business logic operations.
type LinkService interface {
	Register(ctx context.Context, targetURL, customCode string) (*domain.Link, error)
	Resolve(ctx context.Context, code string) (string, error)
	Remove(ctx context.Context, code string) error
	List(ctx context.Context) ([]domain.Link, error)
	Stats(ctx context.Context, code string) (*domain.Link, error)
}
