package port

import (
	"context"

	"github.com/toytopia/toystore/internal/core/domain"
)

// Driven adapters.

// FavoritesKV is the durable per-user key/value store backing favorites.
// Get reports false when no value exists for the key.
type FavoritesKV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

type CatalogSource interface {
	ReadToys() ([]domain.Toy, error)
}

type FavoriteEventsProducer interface {
	ProduceEvent(context.Context, domain.FavoriteEvent) error
}

type FavoriteEventsStorage interface {
	StoreEvents(context.Context, []domain.FavoriteEvent) error
}

type ReviewsStorage interface {
	StoreReview(context.Context, domain.Review) error
	ReviewByID(ctx context.Context, reviewID string) (domain.Review, error)
	ReviewsByToy(ctx context.Context, toyID string) ([]domain.Review, error)
	UpdateReview(context.Context, domain.Review) error
	DeleteReview(ctx context.Context, reviewID string) error
}

type DemoRequestsStorage interface {
	StoreDemoRequest(context.Context, domain.DemoRequest) error
}

// FavoriteCounts reads the folded favorite counters.
type FavoriteCounts interface {
	Count(toyID string) (int64, error)
	TopToys(n int) ([]domain.FavoriteCount, error)
}

// Driving ports consumed by the inbound adapters.

type FavoritesReadWriter interface {
	Load(userID string) []domain.FavoriteEntry
	Add(userID, toyID string) bool
	Remove(userID, toyID string) bool
	IsFavorite(toyID string) bool
}

type CatalogReader interface {
	Toys(domain.FilterCriteria) []domain.Toy
	Toy(toyID string) (domain.Toy, bool)
	Categories() []string
}

type ReviewsService interface {
	Submit(ctx context.Context, userID, userEmail, toyID string, rating int, comment string) (domain.Review, error)
	Update(ctx context.Context, userID, reviewID string, rating int, comment string) (domain.Review, error)
	Delete(ctx context.Context, userID, reviewID string) error
	ByToy(ctx context.Context, toyID string) ([]domain.Review, error)
}

type DemoRequestsService interface {
	Submit(ctx context.Context, toyID, name, contact string) (domain.DemoRequest, error)
}
