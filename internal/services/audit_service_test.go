package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storerating/internal/apperrors"
	"storerating/internal/logger"
	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/internal/services"
)

const auditBody = `{"eventId":"c7b5f9a4-0d43-4e0c-9a55-0e7f0d7a2b11","type":"rating.submitted","occurredAt":"2024-06-01T10:00:00Z","actorId":3,"entityType":"rating","entityId":9,"data":{"storeId":2}}`

func TestAuditService_Record(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditLogRepository)
	svc := services.NewAuditService(repo, logger.Discard())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.EventType == "rating.submitted" && e.EntityID == 9 && e.ActorID != nil && *e.ActorID == 3 &&
			e.Payload == `{"storeId":2}`
	})).Return(nil).Once()
	assert.NoError(t, svc.Record(ctx, []byte(auditBody)))

	// redelivery
	repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate).Once()
	assert.NoError(t, svc.Record(ctx, []byte(auditBody)))

	err := svc.Record(ctx, []byte(`{"type":"x"}`))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	repo.AssertExpectations(t)
}
