package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storerating/internal/apperrors"
	"storerating/internal/logger"
	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/internal/services"
)

func newUserService(repo *MockUserRepository) *services.UserService {
	return services.NewUserService(repo, testHasher, nil, logger.Discard())
}

func TestUserService_List(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo)

	repo.On("List", mock.Anything, repositories.UserFilter{
		Search: "ann",
		Role:   models.RoleNormalUser,
		Page:   repositories.Page{Offset: 0, Limit: 10},
	}).Return([]models.User{{ID: 1, Name: "Ann", PasswordHash: "secret"}}, int64(1), nil)

	out, err := svc.List(context.Background(), services.UserListQuery{Search: "ann", Role: models.RoleNormalUser})
	require.NoError(t, err)
	require.Len(t, out.Users, 1)
	assert.Equal(t, "Ann", out.Users[0].Name)
	assert.Equal(t, 1, out.TotalPages)
}

func TestUserService_Get(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newUserService(repo)
	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Name: "Ann"}, nil)
	repo.On("GetByID", mock.Anything, uint(2)).Return(nil, repositories.ErrNotFound)

	v, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", v.Name)

	_, err = svc.Get(context.Background(), 2)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newUserService(repo)
		repo.On("GetByEmail", mock.Anything, "olga@x.com").Return(nil, repositories.ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Role == models.RoleStoreOwner && u.Email == "olga@x.com" && u.PasswordHash != "password1"
		})).Return(nil).Once()

		v, err := svc.Create(ctx, 1, services.CreateUserInput{Name: "Olga", Email: "Olga@x.com", Role: models.RoleStoreOwner, Password: "password1"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleStoreOwner, v.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newUserService(repo)
		repo.On("GetByEmail", mock.Anything, "olga@x.com").Return(&models.User{ID: 3}, nil)

		_, err := svc.Create(ctx, 1, services.CreateUserInput{Email: "olga@x.com", Role: models.RoleNormalUser, Password: "password1"})
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("invalid role", func(t *testing.T) {
		repo := new(MockUserRepository)
		_, err := newUserService(repo).Create(ctx, 1, services.CreateUserInput{Email: "x@x.com", Role: "KING", Password: "password1"})
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}

func TestUserService_SetPassword(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := newUserService(repo)
	repo.On("GetByID", mock.Anything, uint(4)).Return(&models.User{ID: 4, PasswordHash: hashOf(t, "password1")}, nil)

	_, err := svc.SetPassword(ctx, 1, 4, "password1")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	repo.On("UpdatePassword", mock.Anything, uint(4), mock.AnythingOfType("string")).Return(nil).Once()
	resp, err := svc.SetPassword(ctx, 1, 4, "password2")
	require.NoError(t, err)
	assert.Equal(t, "Password updated successfully", resp.Message)
	repo.AssertExpectations(t)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := newUserService(repo)
	repo.On("GetByEmail", mock.Anything, "admin@x.com").Return(nil, repositories.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleSystemAdmin
	})).Return(nil).Once()

	created, err := svc.EnsureAdmin(ctx, "Root", "admin@x.com", "Admin123!")
	require.NoError(t, err)
	assert.True(t, created)

	repo.On("GetByEmail", mock.Anything, "admin@x.com").Return(&models.User{ID: 1}, nil).Once()
	created, err = svc.EnsureAdmin(ctx, "Root", "admin@x.com", "Admin123!")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(ctx, "Root", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	repo.AssertExpectations(t)
}
