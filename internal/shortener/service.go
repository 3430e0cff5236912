package shortener

import (
	"context"
	"errors"
	"time"
)

// Service owns validation, code generation and persistence of short URLs.
// It holds no mutable state besides the injected repository and is safe for
// concurrent use.
type Service struct {
	store        Repository
	generateCode CodeGenerator
	now          func() time.Time
}

// NewService creates a service backed by store. A nil generator falls back to
// random base62 codes.
func NewService(store Repository, generator CodeGenerator) *Service {
	if generator == nil {
		generator = NewBase62Generator(nil)
	}

	return &Service{
		store:        store,
		generateCode: generator,
		now:          time.Now,
	}
}

// Create validates originalURL and stores it under a freshly generated code.
// Every successful call inserts a new record; identical URLs are not deduplicated.
func (s *Service) Create(ctx context.Context, originalURL string) (*ShortURL, error) {
	if !IsValidURL(originalURL) {
		return nil, ErrInvalidURL
	}

	shortURL := &ShortURL{
		Code:        Code(s.generateCode()),
		OriginalURL: originalURL,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Save(ctx, shortURL); err != nil {
		return nil, &DatabaseError{Op: "save short url", Err: err}
	}

	return shortURL, nil
}

// Resolve returns the original URL stored under code. The match is exact and
// case-sensitive.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	shortURL, err := s.store.GetByCode(ctx, Code(code))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrNotFound
		}

		return "", &DatabaseError{Op: "get short url", Err: err}
	}

	return shortURL.OriginalURL, nil
}

// List returns every stored short URL. There is no pagination: the whole
// collection is loaded into memory.
func (s *Service) List(ctx context.Context) ([]*ShortURL, error) {
	urls, err := s.store.List(ctx)
	if err != nil {
		return nil, &DatabaseError{Op: "list short urls", Err: err}
	}

	return urls, nil
}
