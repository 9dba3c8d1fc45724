package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storerating/internal/apperrors"
	"storerating/internal/events"
	"storerating/internal/metrics"
	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/internal/stats"
)

// RatingService enforces one rating per user and store, forbids owners from
// rating their own store and lets only the author amend a rating.
type RatingService struct {
	ratings repositories.RatingRepository
	stores  repositories.StoreRepository
	events  *events.Emitter
	log     *slog.Logger
}

func NewRatingService(ratings repositories.RatingRepository, stores repositories.StoreRepository, emitter *events.Emitter, log *slog.Logger) *RatingService {
	if log == nil {
		log = slog.Default()
	}
	return &RatingService{ratings: ratings, stores: stores, events: emitter, log: log}
}

func invalidRating() error {
	return apperrors.Validation("Rating must be between 1 and 5", map[string]string{
		"rating": fmt.Sprintf("must be between %d and %d", models.MinRating, models.MaxRating),
	})
}

// Submit records raterID's rating of storeID. Checks run in order: the store
// exists, the rater is not its owner, no rating exists yet, the value is valid.
func (s *RatingService) Submit(ctx context.Context, raterID, storeID uint, value int) (*RatingView, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, notFound(err, "Store not found")
	}
	if store.OwnerID == raterID {
		return nil, apperrors.Forbidden("You cannot rate your own store")
	}
	if _, err := s.ratings.GetByUserAndStore(ctx, raterID, storeID); err == nil {
		return nil, apperrors.Conflict("You have already rated this store")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if !models.ValidRatingValue(value) {
		return nil, invalidRating()
	}

	rating := &models.Rating{UserID: raterID, StoreID: storeID, Value: value}
	if err := s.ratings.Create(ctx, rating); err != nil {
		// lost a race with a concurrent submit for the same pair
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("You have already rated this store").Wrap(err)
		}
		return nil, err
	}

	metrics.RatingsSubmitted.Inc()
	s.events.Emit(ctx, events.Event{
		Type:       events.RatingSubmitted,
		ActorID:    events.Actor(raterID),
		EntityType: "rating",
		EntityID:   rating.ID,
		Data:       map[string]interface{}{"storeId": storeID, "rating": value},
	})
	return s.view(ctx, rating.ID)
}

// Amend changes the value of ratingID. Only its author may do so.
func (s *RatingService) Amend(ctx context.Context, ratingID, callerID uint, value int) (*RatingView, error) {
	rating, err := s.ratings.GetByID(ctx, ratingID)
	if err != nil {
		return nil, notFound(err, "Rating not found")
	}
	if rating.UserID != callerID {
		return nil, apperrors.Forbidden("You can only update your own ratings")
	}
	if !models.ValidRatingValue(value) {
		return nil, invalidRating()
	}
	if err := s.ratings.UpdateValue(ctx, rating.ID, value); err != nil {
		return nil, notFound(err, "Rating not found")
	}

	metrics.RatingsAmended.Inc()
	s.events.Emit(ctx, events.Event{
		Type:       events.RatingAmended,
		ActorID:    events.Actor(callerID),
		EntityType: "rating",
		EntityID:   rating.ID,
		Data:       map[string]interface{}{"storeId": rating.StoreID, "from": rating.Value, "to": value},
	})
	return s.view(ctx, rating.ID)
}

func (s *RatingService) view(ctx context.Context, id uint) (*RatingView, error) {
	rating, err := s.ratings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload rating: %w", err)
	}
	v := newRatingView(rating)
	return &v, nil
}

// StoreRatings returns one page of a store's ratings, newest id first, with
// aggregates computed over all of the store's ratings.
func (s *RatingService) StoreRatings(ctx context.Context, storeID uint, q PageQuery) (*StoreRatings, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, notFound(err, "Store not found")
	}
	page := q.Normalize()
	ratings, total, err := s.ratings.ListByStore(ctx, store.ID, page.window())
	if err != nil {
		return nil, err
	}
	all, err := s.ratings.ListAllByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	values := ratingValues(all)

	out := &StoreRatings{
		StoreID:            store.ID,
		StoreName:          store.Name,
		Ratings:            make([]StoreRating, len(ratings)),
		AverageRating:      stats.RoundedAverage(values),
		TotalRatings:       len(values),
		RatingDistribution: stats.Distribution(values),
		Pagination:         page.pagination(total),
	}
	for i := range ratings {
		out.Ratings[i] = newStoreRating(&ratings[i])
	}
	return out, nil
}

// UserRatings lists the caller's own ratings, newest first.
func (s *RatingService) UserRatings(ctx context.Context, userID uint) ([]MyRating, error) {
	ratings, err := s.ratings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]MyRating, len(ratings))
	for i, r := range ratings {
		out[i] = MyRating{
			ID:        r.ID,
			Rating:    r.Value,
			StoreID:   r.StoreID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Store:     StoreContact{ID: r.StoreID},
		}
		if r.Store != nil {
			out[i].Store = StoreContact{ID: r.Store.ID, Name: r.Store.Name, Email: r.Store.Email, Address: r.Store.Address}
		}
	}
	return out, nil
}
