package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a single user's score for a store. (UserID, StoreID) is unique.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Value     int       `json:"rating" gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   uint      `json:"storeId" gorm:"not null;uniqueIndex:idx_ratings_user_store;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
	Store     *Store    `json:"-" gorm:"foreignKey:StoreID"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRatingValue reports whether v is an allowed rating value.
func ValidRatingValue(v int) bool {
	return v >= MinRating && v <= MaxRating
}
