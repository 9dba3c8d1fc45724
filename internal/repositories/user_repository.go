package repositories

import (
	"context"
	"time"

	"storerating/internal/models"
)

// UserFilter narrows a user listing.
type UserFilter struct {
	// Search matches name, email or address, case-insensitively.
	Search string
	Role   models.Role
	Page
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns one page, newest first, and the total matching the filter.
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	ListAll(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}
