package shortener

import "context"

// Repository persists short URLs.
//
// Implementations return ErrNotFound from GetByCode when no record matches and
// the raw driver error for everything else. Save never checks for an existing
// code: uniqueness of generated codes is probabilistic.
type Repository interface {
	Save(ctx context.Context, shortURL *ShortURL) error
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)

	// List returns every stored record in store-native order.
	List(ctx context.Context) ([]*ShortURL, error)
}
