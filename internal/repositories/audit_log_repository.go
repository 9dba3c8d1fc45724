package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storerating/internal/models"
)

// AuditLogRepository stores consumed domain events.
type AuditLogRepository interface {
	// Create inserts the entry; ErrDuplicate when its EventID was already stored.
	Create(ctx context.Context, entry *models.AuditLog) error
}

type GORMAuditLogRepository struct {
	db *gorm.DB
}

func NewGORMAuditLogRepository(db *gorm.DB) *GORMAuditLogRepository {
	return &GORMAuditLogRepository{db: db}
}

func (r *GORMAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", translate(err))
	}
	return nil
}
