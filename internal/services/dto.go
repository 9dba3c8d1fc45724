package services

import (
	"time"

	"storerating/internal/auth"
	"storerating/internal/models"
	"storerating/internal/stats"
)

// UserSummary is the public identity returned with tokens.
type UserSummary struct {
	ID      uint        `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Role    models.Role `json:"role"`
	Address string      `json:"address"`
}

func newUserSummary(u *models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Address: u.Address}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	auth.TokenPair
	User UserSummary `json:"user"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type ProfileResponse struct {
	User UserSummary `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserView is a user without credentials.
type UserView struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Address   string      `json:"address"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func newUserView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type UserList struct {
	Users []UserView `json:"users"`
	Pagination
}

type OwnerRef struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RaterRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type StoreRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// StoreRating is a rating as listed under its store.
type StoreRating struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	User      RaterRef  `json:"user"`
}

func newStoreRating(r *models.Rating) StoreRating {
	out := StoreRating{ID: r.ID, Rating: r.Value, CreatedAt: r.CreatedAt, User: RaterRef{ID: r.UserID}}
	if r.User != nil {
		out.User.Name = r.User.Name
	}
	return out
}

// StoreView is a store with its owner and rating aggregate.
type StoreView struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Address       string        `json:"address"`
	OwnerID       uint          `json:"ownerId"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Owner         OwnerRef      `json:"owner"`
	Ratings       []StoreRating `json:"ratings,omitempty"`
	AverageRating float64       `json:"averageRating"`
	TotalRatings  int           `json:"totalRatings"`
}

func newStoreView(s *models.Store, values []int) StoreView {
	v := StoreView{
		ID:            s.ID,
		Name:          s.Name,
		Email:         s.Email,
		Address:       s.Address,
		OwnerID:       s.OwnerID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Owner:         OwnerRef{ID: s.OwnerID},
		AverageRating: stats.RoundedAverage(values),
		TotalRatings:  len(values),
	}
	if s.Owner != nil {
		v.Owner.Name = s.Owner.Name
		v.Owner.Email = s.Owner.Email
	}
	return v
}

type StoreList struct {
	Stores []StoreView `json:"stores"`
	Pagination
}

// RatingView is a single rating with its author and store.
type RatingView struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	UserID    uint      `json:"userId"`
	StoreID   uint      `json:"storeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      RaterRef  `json:"user"`
	Store     StoreRef  `json:"store"`
}

func newRatingView(r *models.Rating) RatingView {
	v := RatingView{
		ID:        r.ID,
		Rating:    r.Value,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		User:      RaterRef{ID: r.UserID},
		Store:     StoreRef{ID: r.StoreID},
	}
	if r.User != nil {
		v.User.Name = r.User.Name
	}
	if r.Store != nil {
		v.Store.Name = r.Store.Name
	}
	return v
}

// StoreRatings is a page of a store's ratings plus aggregates over all of them.
type StoreRatings struct {
	StoreID            uint          `json:"storeId"`
	StoreName          string        `json:"storeName"`
	Ratings            []StoreRating `json:"ratings"`
	AverageRating      float64       `json:"averageRating"`
	TotalRatings       int           `json:"totalRatings"`
	RatingDistribution map[int]int   `json:"ratingDistribution"`
	Pagination
}

type StoreContact struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// MyRating is one of the caller's own ratings.
type MyRating struct {
	ID        uint         `json:"id"`
	Rating    int          `json:"rating"`
	StoreID   uint         `json:"storeId"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Store     StoreContact `json:"store"`
}

type RecentUser struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type RecentStore struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	OwnerName string    `json:"ownerName"`
	CreatedAt time.Time `json:"createdAt"`
}

type StoreAverage struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	OwnerID       uint      `json:"ownerId"`
	CreatedAt     time.Time `json:"createdAt"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
}

// EnrichedUser carries store figures for owners that have a store.
type EnrichedUser struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Address       string      `json:"address"`
	Role          models.Role `json:"role"`
	CreatedAt     time.Time   `json:"createdAt"`
	StoreName     string      `json:"storeName,omitempty"`
	AverageRating *float64    `json:"averageRating,omitempty"`
	TotalRatings  *int        `json:"totalRatings,omitempty"`
}

type AdminDashboard struct {
	TotalUsers               int64              `json:"totalUsers"`
	TotalStores              int64              `json:"totalStores"`
	TotalRatings             int64              `json:"totalRatings"`
	TotalStoreOwners         int64              `json:"totalStoreOwners"`
	TotalNormalUsers         int64              `json:"totalNormalUsers"`
	RecentUsers              []RecentUser       `json:"recentUsers"`
	RecentStores             []RecentStore      `json:"recentStores"`
	TopRatedStores           []stats.Ranked     `json:"topRatedStores"`
	StoresWithAverageRatings []StoreAverage     `json:"storesWithAverageRatings"`
	EnrichedUsers            []EnrichedUser     `json:"enrichedUsers"`
	UserGrowth               []stats.MonthCount `json:"userGrowth"`
	StoreGrowth              []stats.MonthCount `json:"storeGrowth"`
}

type RecentRating struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type OwnerDashboard struct {
	StoreID            uint               `json:"storeId"`
	StoreName          string             `json:"storeName"`
	TotalRatings       int                `json:"totalRatings"`
	AverageRating      float64            `json:"averageRating"`
	RatingDistribution map[int]int        `json:"ratingDistribution"`
	RecentRatings      []RecentRating     `json:"recentRatings"`
	RatingTrend        []stats.MonthTrend `json:"ratingTrend"`
}
