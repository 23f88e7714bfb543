package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tinylink/internal/core/domain"
)

// Repository is a mutex-guarded in-memory store. It backs local development
// without a database and doubles as the store for tests.
type Repository struct {
	mu    sync.RWMutex
	links map[string]*domain.Link
}

func NewRepository() *Repository {
	return &Repository{links: make(map[string]*domain.Link)}
}

func (r *Repository) Create(_ context.Context, link *domain.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[link.Code]; ok {
		return domain.ErrDuplicateCode
	}
	cp := *link
	r.links[link.Code] = &cp
	return nil
}

func (r *Repository) GetByCode(_ context.Context, code string) (*domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	link, ok := r.links[code]
	if !ok {
		return nil, nil
	}
	cp := *link
	return &cp, nil
}

func (r *Repository) IncrementClicks(_ context.Context, code string, now time.Time) (*domain.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[code]
	if !ok {
		return nil, nil
	}
	link.Clicks++
	t := now
	link.LastClicked = &t

	cp := *link
	return &cp, nil
}

func (r *Repository) Delete(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[code]; !ok {
		return false, nil
	}
	delete(r.links, code)
	return true, nil
}

func (r *Repository) List(_ context.Context) ([]domain.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	links := make([]domain.Link, 0, len(r.links))
	for _, link := range r.links {
		links = append(links, *link)
	}
	sort.Slice(links, func(i, j int) bool {
		// Map iteration order is random; tie-break on code so equal
		// timestamps still list deterministically.
		if links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].Code < links[j].Code
		}
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}

func (r *Repository) Ping(_ context.Context) error {
	return nil
}
