package repositories

import (
	"context"

	"storerating/internal/models"
)

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	// Create inserts a rating; ErrDuplicate when the (user, store) pair exists.
	Create(ctx context.Context, rating *models.Rating) error
	// GetByID loads the rating with its User and Store.
	GetByID(ctx context.Context, id uint) (*models.Rating, error)
	GetByUserAndStore(ctx context.Context, userID, storeID uint) (*models.Rating, error)
	UpdateValue(ctx context.Context, id uint, value int) error
	// ListByStore returns one page ordered by id descending with raters loaded.
	ListByStore(ctx context.Context, storeID uint, page Page) ([]models.Rating, int64, error)
	// ListAllByStore returns every rating of the store, id descending, with raters loaded.
	ListAllByStore(ctx context.Context, storeID uint) ([]models.Rating, error)
	// ListByUser returns the user's ratings, newest first, with stores loaded.
	ListByUser(ctx context.Context, userID uint) ([]models.Rating, error)
	Count(ctx context.Context) (int64, error)
}
