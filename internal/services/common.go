package services

import (
	"errors"
	"strings"

	"storerating/internal/apperrors"
	"storerating/internal/models"
	"storerating/internal/repositories"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageQuery is a 1-based page request.
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize applies defaults and caps the limit at MaxLimit.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func (q PageQuery) window() repositories.Page {
	return repositories.Page{Offset: (q.Page - 1) * q.Limit, Limit: q.Limit}
}

func (q PageQuery) pagination(total int64) Pagination {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return Pagination{Total: total, Page: q.Page, Limit: q.Limit, TotalPages: pages}
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// notFound converts repositories.ErrNotFound into a NotFound error with msg.
func notFound(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(msg).Wrap(err)
	}
	return err
}

func ratingValues(ratings []models.Rating) []int {
	values := make([]int, len(ratings))
	for i, r := range ratings {
		values[i] = r.Value
	}
	return values
}
