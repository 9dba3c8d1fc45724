package models

import "time"

// Store is a rateable shop. Each store has exactly one owner and a user owns at most one store.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Address   string    `json:"address" gorm:"type:varchar(400)"`
	OwnerID   uint      `json:"ownerId" gorm:"not null;uniqueIndex"`
	Owner     *User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Ratings   []Rating  `json:"-" gorm:"foreignKey:StoreID"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}
