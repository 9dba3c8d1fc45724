package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storerating/internal/models"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{db: db}
}

func (r *GORMRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("failed to create rating: %w", translate(err))
	}
	return nil
}

func (r *GORMRatingRepository) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Preload("User", raterColumns).
		Preload("Store").
		First(&rating, id).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating %d: %w", id, translate(err))
	}
	return &rating, nil
}

func (r *GORMRatingRepository) GetByUserAndStore(ctx context.Context, userID, storeID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get rating of user %d for store %d: %w", userID, storeID, translate(err))
	}
	return &rating, nil
}

// UpdateValue changes only the rating value and updated_at.
func (r *GORMRatingRepository) UpdateValue(ctx context.Context, id uint, value int) error {
	res := r.db.WithContext(ctx).Model(&models.Rating{}).Where("id = ?", id).Update("rating", value)
	if res.Error != nil {
		return fmt.Errorf("failed to update rating %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("failed to update rating %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GORMRatingRepository) ListByStore(ctx context.Context, storeID uint, page Page) ([]models.Rating, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Rating{}).Where("store_id = ?", storeID).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings of store %d: %w", storeID, err)
	}
	var ratings []models.Rating
	if err := page.apply(q.Order("id DESC")).Preload("User", raterColumns).Find(&ratings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings of store %d: %w", storeID, err)
	}
	return ratings, total, nil
}

func (r *GORMRatingRepository) ListAllByStore(ctx context.Context, storeID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id DESC").
		Preload("User", raterColumns).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings of store %d: %w", storeID, err)
	}
	return ratings, nil
}

func (r *GORMRatingRepository) ListByUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Preload("Store", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "address")
		}).
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings of user %d: %w", userID, err)
	}
	return ratings, nil
}

func (r *GORMRatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return n, nil
}
