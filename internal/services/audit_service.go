package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"storerating/internal/apperrors"
	"storerating/internal/events"
	"storerating/internal/models"
	"storerating/internal/repositories"
)

// AuditService persists domain events consumed from the broker.
type AuditService struct {
	logs repositories.AuditLogRepository
	log  *slog.Logger
}

func NewAuditService(logs repositories.AuditLogRepository, log *slog.Logger) *AuditService {
	if log == nil {
		log = slog.Default()
	}
	return &AuditService{logs: logs, log: log}
}

// Record stores one event. Redelivered events are ignored.
func (s *AuditService) Record(ctx context.Context, body []byte) error {
	ev, err := events.Decode(body)
	if err != nil {
		return apperrors.Validation("Malformed event", nil).Wrap(err)
	}
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return err
	}
	entry := &models.AuditLog{
		EventID:    ev.ID,
		EventType:  ev.Type,
		ActorID:    ev.ActorID,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Payload:    string(payload),
		OccurredAt: ev.OccurredAt,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			s.log.DebugContext(ctx, "duplicate event ignored", "eventId", ev.ID)
			return nil
		}
		return err
	}
	return nil
}
