package repositories

import (
	"context"
	"time"

	"storerating/internal/models"
)

// StoreFilter narrows a store listing. When both Name and Address are set a
// store matching either is returned.
type StoreFilter struct {
	Name    string
	Address string
	Page
}

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	// CreateWithOwnerPromotion promotes store.OwnerID to STORE_OWNER and inserts
	// the store in one transaction. ErrNotFound when the owner does not exist or
	// is an administrator; ErrDuplicate on a taken email or an owner that already
	// has a store. Nothing is written on failure.
	CreateWithOwnerPromotion(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uint) (*models.Store, error)
	GetByEmail(ctx context.Context, email string) (*models.Store, error)
	GetByOwnerID(ctx context.Context, ownerID uint) (*models.Store, error)
	// List returns one page, newest first, with Owner and Ratings loaded.
	List(ctx context.Context, filter StoreFilter) ([]models.Store, int64, error)
	// ListAllWithRatings returns every store, newest first, with Owner and Ratings loaded.
	ListAllWithRatings(ctx context.Context) ([]models.Store, error)
	Count(ctx context.Context) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
