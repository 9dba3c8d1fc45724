package services

import (
	"context"
	"time"

	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/internal/stats"
)

const recentItems = 10

// DashboardService builds the administrator and store-owner dashboards.
type DashboardService struct {
	users   repositories.UserRepository
	stores  repositories.StoreRepository
	ratings repositories.RatingRepository
	now     func() time.Time
}

// NewDashboardService wires the dashboard; a nil clock means time.Now in UTC.
func NewDashboardService(users repositories.UserRepository, stores repositories.StoreRepository, ratings repositories.RatingRepository, now func() time.Time) *DashboardService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &DashboardService{users: users, stores: stores, ratings: ratings, now: now}
}

func (s *DashboardService) Admin(ctx context.Context) (*AdminDashboard, error) {
	out := &AdminDashboard{}
	var err error
	if out.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalStores, err = s.stores.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalRatings, err = s.ratings.Count(ctx); err != nil {
		return nil, err
	}
	if out.TotalStoreOwners, err = s.users.CountByRole(ctx, models.RoleStoreOwner); err != nil {
		return nil, err
	}
	if out.TotalNormalUsers, err = s.users.CountByRole(ctx, models.RoleNormalUser); err != nil {
		return nil, err
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	stores, err := s.stores.ListAllWithRatings(ctx)
	if err != nil {
		return nil, err
	}

	ranked := make([]stats.Ranked, len(stores))
	byOwner := make(map[uint]*StoreAverage, len(stores))
	out.StoresWithAverageRatings = make([]StoreAverage, len(stores))
	for i := range stores {
		st := &stores[i]
		values := ratingValues(st.Ratings)
		avg := stats.RoundedAverage(values)
		out.StoresWithAverageRatings[i] = StoreAverage{
			ID:            st.ID,
			Name:          st.Name,
			Email:         st.Email,
			Address:       st.Address,
			OwnerID:       st.OwnerID,
			CreatedAt:     st.CreatedAt,
			AverageRating: avg,
			TotalRatings:  len(values),
		}
		byOwner[st.OwnerID] = &out.StoresWithAverageRatings[i]
		ranked[i] = stats.Ranked{ID: st.ID, Name: st.Name, AverageRating: avg, TotalRatings: len(values)}
	}
	out.TopRatedStores = stats.TopRated(ranked, 5)

	out.RecentStores = make([]RecentStore, 0, recentItems)
	for i := 0; i < len(stores) && i < recentItems; i++ {
		rs := RecentStore{ID: stores[i].ID, Name: stores[i].Name, Email: stores[i].Email, CreatedAt: stores[i].CreatedAt}
		if stores[i].Owner != nil {
			rs.OwnerName = stores[i].Owner.Name
		}
		out.RecentStores = append(out.RecentStores, rs)
	}

	out.RecentUsers = make([]RecentUser, 0, recentItems)
	out.EnrichedUsers = make([]EnrichedUser, len(users))
	for i, u := range users {
		if i < recentItems {
			out.RecentUsers = append(out.RecentUsers, RecentUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt})
		}
		eu := EnrichedUser{ID: u.ID, Name: u.Name, Email: u.Email, Address: u.Address, Role: u.Role, CreatedAt: u.CreatedAt}
		if st, ok := byOwner[u.ID]; ok && u.Role == models.RoleStoreOwner {
			avg, total := st.AverageRating, st.TotalRatings
			eu.StoreName = st.Name
			eu.AverageRating = &avg
			eu.TotalRatings = &total
		}
		out.EnrichedUsers[i] = eu
	}

	now := s.now()
	since := stats.WindowStart(now, stats.DefaultMonths)
	userTimes, err := s.users.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	storeTimes, err := s.stores.CreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	out.UserGrowth = stats.BucketByMonth(userTimes, now, stats.DefaultMonths)
	out.StoreGrowth = stats.BucketByMonth(storeTimes, now, stats.DefaultMonths)
	return out, nil
}

// Owner returns the dashboard of the store owned by ownerID.
func (s *DashboardService) Owner(ctx context.Context, ownerID uint) (*OwnerDashboard, error) {
	store, err := s.stores.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "Store not found for this user")
	}
	ratings, err := s.ratings.ListAllByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	values := ratingValues(ratings)
	samples := make([]stats.Sample, len(ratings))
	for i, r := range ratings {
		samples[i] = stats.Sample{Value: r.Value, At: r.CreatedAt}
	}

	recent := make([]RecentRating, 0, recentItems)
	for i := 0; i < len(ratings) && i < recentItems; i++ {
		r := ratings[i]
		rr := RecentRating{ID: r.ID, Rating: r.Value, CreatedAt: r.CreatedAt}
		if r.User != nil {
			rr.UserName = r.User.Name
			rr.Email = r.User.Email
			rr.Address = r.User.Address
		}
		recent = append(recent, rr)
	}

	return &OwnerDashboard{
		StoreID:            store.ID,
		StoreName:          store.Name,
		TotalRatings:       len(values),
		AverageRating:      stats.RoundedAverage(values),
		RatingDistribution: stats.Distribution(values),
		RecentRatings:      recent,
		RatingTrend:        stats.TrendByMonth(samples, s.now(), stats.DefaultMonths),
	}, nil
}
