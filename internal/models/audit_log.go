package models

import "time"

// AuditLog records a domain event consumed from the message broker.
type AuditLog struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID    string    `json:"eventId" gorm:"type:varchar(36);uniqueIndex;not null"`
	EventType  string    `json:"eventType" gorm:"type:varchar(64);not null;index"`
	ActorID    *uint     `json:"actorId,omitempty"`
	EntityType string    `json:"entityType" gorm:"type:varchar(32);not null"`
	EntityID   uint      `json:"entityId" gorm:"index"`
	Payload    string    `json:"payload" gorm:"type:text"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// All returns every model managed by migrations.
func All() []interface{} {
	return []interface{}{&User{}, &Store{}, &Rating{}, &AuditLog{}}
}
