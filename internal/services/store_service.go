package services

import (
	"context"
	"errors"
	"log/slog"

	"storerating/internal/apperrors"
	"storerating/internal/events"
	"storerating/internal/metrics"
	"storerating/internal/models"
	"storerating/internal/repositories"
)

// StoreService manages stores and their public listings.
type StoreService struct {
	stores  repositories.StoreRepository
	users   repositories.UserRepository
	ratings repositories.RatingRepository
	events  *events.Emitter
	log     *slog.Logger
}

func NewStoreService(stores repositories.StoreRepository, users repositories.UserRepository, ratings repositories.RatingRepository, emitter *events.Emitter, log *slog.Logger) *StoreService {
	if log == nil {
		log = slog.Default()
	}
	return &StoreService{stores: stores, users: users, ratings: ratings, events: emitter, log: log}
}

// CreateStoreInput is an administrator request to open a store for an existing user.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID uint
}

// Create opens a store and promotes its owner to STORE_OWNER atomically.
func (s *StoreService) Create(ctx context.Context, actorID uint, in CreateStoreInput) (*StoreView, error) {
	email := NormalizeEmail(in.Email)
	if _, err := s.stores.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("Store with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, in.OwnerID)
	if err != nil {
		return nil, notFound(err, "Owner not found")
	}
	if owner.Role == models.RoleSystemAdmin {
		return nil, apperrors.Validation("A system administrator cannot own a store", map[string]string{
			"ownerId": "must not be a system administrator",
		})
	}
	if _, err := s.stores.GetByOwnerID(ctx, owner.ID); err == nil {
		return nil, apperrors.Conflict("This user already owns a store")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	store := &models.Store{Name: in.Name, Email: email, Address: in.Address, OwnerID: owner.ID}
	if err := s.stores.CreateWithOwnerPromotion(ctx, store); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.Conflict("Store email or owner is already in use").Wrap(err)
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.NotFound("Owner not found").Wrap(err)
		}
		return nil, err
	}
	if store.Owner == nil {
		store.Owner = owner
	}

	metrics.StoresCreated.Inc()
	s.log.InfoContext(ctx, "store created", "storeId", store.ID, "ownerId", owner.ID, "by", actorID)
	s.events.Emit(ctx, events.Event{
		Type:       events.StoreCreated,
		ActorID:    events.Actor(actorID),
		EntityType: "store",
		EntityID:   store.ID,
		Data:       map[string]interface{}{"ownerId": owner.ID},
	})

	v := newStoreView(store, nil)
	return &v, nil
}

// List returns stores newest first with their rating aggregate.
func (s *StoreService) List(ctx context.Context, q PageQuery) (*StoreList, error) {
	return s.list(ctx, repositories.StoreFilter{}, q)
}

// StoreSearchQuery matches name or address case-insensitively.
type StoreSearchQuery struct {
	Name    string
	Address string
	PageQuery
}

func (s *StoreService) Search(ctx context.Context, q StoreSearchQuery) (*StoreList, error) {
	return s.list(ctx, repositories.StoreFilter{Name: q.Name, Address: q.Address}, q.PageQuery)
}

func (s *StoreService) list(ctx context.Context, filter repositories.StoreFilter, q PageQuery) (*StoreList, error) {
	page := q.Normalize()
	filter.Page = page.window()
	stores, total, err := s.stores.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &StoreList{Stores: make([]StoreView, len(stores)), Pagination: page.pagination(total)}
	for i := range stores {
		out.Stores[i] = newStoreView(&stores[i], ratingValues(stores[i].Ratings))
	}
	return out, nil
}

// Get returns one store with every rating, newest id first.
func (s *StoreService) Get(ctx context.Context, id uint) (*StoreView, error) {
	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Store not found")
	}
	ratings, err := s.ratings.ListAllByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	v := newStoreView(store, ratingValues(ratings))
	v.Ratings = make([]StoreRating, len(ratings))
	for i := range ratings {
		v.Ratings[i] = newStoreRating(&ratings[i])
	}
	return &v, nil
}
