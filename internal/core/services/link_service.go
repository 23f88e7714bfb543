package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tinylink/internal/core/domain"
	"tinylink/internal/core/shortcode"
	"tinylink/internal/ports"
)

// maxGenerateAttempts bounds the random-code retry loop so registration
// terminates even when the code space is saturated. Collisions on create
// count toward the bound.
const maxGenerateAttempts = 10

type LinkService struct {
	repo ports.LinkRepository
}

func NewLinkService(repo ports.LinkRepository) *LinkService {
	return &LinkService{repo: repo}
}

// Register creates a new link for targetURL. With a customCode the code must
// be valid and free; without one a random code is generated and retried on
// collision.
func (s *LinkService) Register(ctx context.Context, targetURL, customCode string) (*domain.Link, error) {
	if targetURL == "" {
		return nil, domain.ErrMissingTargetURL
	}
	if !shortcode.IsValidURL(targetURL) {
		return nil, domain.ErrInvalidURL
	}

	if customCode != "" {
		return s.registerCustom(ctx, targetURL, customCode)
	}
	return s.registerRandom(ctx, targetURL)
}

func (s *LinkService) registerCustom(ctx context.Context, targetURL, code string) (*domain.Link, error) {
	if !shortcode.IsValidCode(code) {
		return nil, domain.ErrInvalidCode
	}

	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("check code %q: %w", code, err)
	}
	if existing != nil {
		return nil, domain.ErrCodeTaken
	}

	link := newLink(code, targetURL)
	if err := s.repo.Create(ctx, link); err != nil {
		// The pre-check is only an optimization; the store's unique
		// constraint is the authority on write-time collisions.
		if errors.Is(err, domain.ErrDuplicateCode) {
			return nil, domain.ErrCodeTaken
		}
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *LinkService) registerRandom(ctx context.Context, targetURL string) (*domain.Link, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := shortcode.Generate(shortcode.DefaultLength)
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		existing, err := s.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("check code %q: %w", code, err)
		}
		if existing != nil {
			continue
		}

		link := newLink(code, targetURL)
		err = s.repo.Create(ctx, link)
		if err == nil {
			return link, nil
		}
		if errors.Is(err, domain.ErrDuplicateCode) {
			// Lost the race for this code; the attempt still counts.
			continue
		}
		return nil, fmt.Errorf("create link: %w", err)
	}
	return nil, domain.ErrCodeExhausted
}

// Resolve returns the target URL for code and counts the click. The click
// update is a single atomic statement so concurrent redirects never lose
// counts. If the link is deleted between lookup and update, the increment is
// a no-op and the redirect still uses the target already read.
func (s *LinkService) Resolve(ctx context.Context, code string) (string, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("lookup %q: %w", code, err)
	}
	if link == nil {
		return "", domain.ErrNotFound
	}

	if _, err := s.repo.IncrementClicks(ctx, code, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("count click for %q: %w", code, err)
	}
	return link.TargetURL, nil
}

func (s *LinkService) Remove(ctx context.Context, code string) error {
	deleted, err := s.repo.Delete(ctx, code)
	if err != nil {
		return fmt.Errorf("delete %q: %w", code, err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *LinkService) List(ctx context.Context) ([]domain.Link, error) {
	links, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Stats is a pure read of a single link, used for the stats view.
func (s *LinkService) Stats(ctx context.Context, code string) (*domain.Link, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", code, err)
	}
	if link == nil {
		return nil, domain.ErrNotFound
	}
	return link, nil
}

func newLink(code, targetURL string) *domain.Link {
	return &domain.Link{
		Code:      code,
		TargetURL: targetURL,
		CreatedAt: time.Now().UTC(),
	}
}
