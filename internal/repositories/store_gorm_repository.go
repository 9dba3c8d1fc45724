package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"storerating/internal/models"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{db: db}
}

func (r *GORMStoreRepository) CreateWithOwnerPromotion(ctx context.Context, store *models.Store) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND role <> ?", store.OwnerID, models.RoleSystemAdmin).
			Update("role", models.RoleStoreOwner)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		return tx.Preload("Owner", ownerColumns).First(store, store.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create store: %w", translate(err))
	}
	return nil
}

func (r *GORMStoreRepository) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Preload("Owner", ownerColumns).First(&store, id).Error; err != nil {
		return nil, fmt.Errorf("failed to get store %d: %w", id, translate(err))
	}
	return &store, nil
}

func (r *GORMStoreRepository) GetByEmail(ctx context.Context, email string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("failed to get store by email: %w", translate(err))
	}
	return &store, nil
}

func (r *GORMStoreRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "owner_id = ?", ownerID).Error; err != nil {
		return nil, fmt.Errorf("failed to get store of owner %d: %w", ownerID, translate(err))
	}
	return &store, nil
}

func (r *GORMStoreRepository) List(ctx context.Context, filter StoreFilter) ([]models.Store, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Store{})
	switch {
	case filter.Name != "" && filter.Address != "":
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(address) LIKE ?)",
			containsPattern(filter.Name), containsPattern(filter.Address))
	case filter.Name != "":
		q = q.Where("LOWER(name) LIKE ?", containsPattern(filter.Name))
	case filter.Address != "":
		q = q.Where("LOWER(address) LIKE ?", containsPattern(filter.Address))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}
	var stores []models.Store
	err := filter.Page.apply(q.Order("created_at DESC").Order("id DESC")).
		Preload("Owner", ownerColumns).
		Preload("Ratings").
		Find(&stores).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, total, nil
}

func (r *GORMStoreRepository) ListAllWithRatings(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Preload("Owner", ownerColumns).
		Preload("Ratings").
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (r *GORMStoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return n, nil
}

func (r *GORMStoreRepository) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.db.WithContext(ctx).Model(&models.Store{}).
		Where("created_at >= ?", since.UTC()).
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load store creation times: %w", err)
	}
	return times, nil
}
