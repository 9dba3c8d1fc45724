package models

import "time"

// Role is the fixed set of user roles. There is no hierarchy between them.
type Role string

const (
	RoleNormalUser  Role = "NORMAL_USER"
	RoleStoreOwner  Role = "STORE_OWNER"
	RoleSystemAdmin Role = "SYSTEM_ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleNormalUser, RoleStoreOwner, RoleSystemAdmin:
		return true
	}
	return false
}

// User represents an account of the rating platform.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(60);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Address      string    `json:"address" gorm:"type:varchar(400)"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'NORMAL_USER';index"`
	PasswordHash string    `json:"-" gorm:"column:password;type:varchar(255);not null"` // never serialized
	CreatedAt    time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
