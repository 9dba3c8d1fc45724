package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storerating/internal/apperrors"
	"storerating/internal/auth"
	"storerating/internal/logger"
	"storerating/internal/models"
	"storerating/internal/repositories"
	"storerating/internal/services"
)

var (
	testHasher = auth.NewPasswordHasher(bcrypt.MinCost)
	testTokens = auth.NewTokenManager("test_access_secret", "test_refresh_secret", time.Hour, 24*time.Hour)
)

func hashOf(t *testing.T, plain string) string {
	t.Helper()
	h, err := testHasher.Hash(plain)
	require.NoError(t, err)
	return h
}

func newAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, testHasher, testTokens, nil, logger.Discard())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a normal user and signs in", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)

		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, repositories.ErrNotFound).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 11 }).
			Return(nil).Once()

		resp, err := svc.Register(ctx, services.RegisterInput{Name: "Ann", Email: " Ann@X.com ", Address: "1 St", Password: "Abcdef1!"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleNormalUser, resp.User.Role)
		assert.Equal(t, "ann@x.com", resp.User.Email)
		assert.Equal(t, uint(11), resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)

		created := repo.Calls[1].Arguments.Get(1).(*models.User)
		assert.NotEqual(t, "Abcdef1!", created.PasswordHash)
		assert.True(t, testHasher.Verify("Abcdef1!", created.PasswordHash))

		claims, err := testTokens.ParseAccess(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, models.RoleNormalUser, claims.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email found up front", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(&models.User{ID: 1}, nil).Once()

		_, err := svc.Register(ctx, services.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "Abcdef1!"})
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email on insert", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(nil, repositories.ErrNotFound).Once()
		repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate).Once()

		_, err := svc.Register(ctx, services.RegisterInput{Name: "Ann", Email: "ann@x.com", Password: "Abcdef1!"})
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newAuthService(repo)
		repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		_, err := svc.Register(ctx, services.RegisterInput{Email: "ann@x.com", Password: "Abcdef1!"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 5, Name: "Ann", Email: "ann@x.com", Role: models.RoleStoreOwner, PasswordHash: hashOf(t, "Abcdef1!")}

	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	repo.On("GetByEmail", mock.Anything, "ann@x.com").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, repositories.ErrNotFound)

	resp, err := svc.Login(ctx, "ANN@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, uint(5), resp.User.ID)
	assert.Equal(t, models.RoleStoreOwner, resp.User.Role)

	_, wrongPassword := svc.Login(ctx, "ann@x.com", "nope")
	_, unknownUser := svc.Login(ctx, "ghost@x.com", "Abcdef1!")
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(wrongPassword))
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(unknownUser))
	// the caller cannot tell which part failed
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := newAuthService(repo)

	pair, err := testTokens.IssuePair(5, "ann@x.com", models.RoleNormalUser)
	require.NoError(t, err)

	// promoted since the pair was issued
	repo.On("GetByID", mock.Anything, uint(5)).Return(&models.User{ID: 5, Email: "ann@x.com", Role: models.RoleStoreOwner}, nil).Once()
	resp, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err := testTokens.ParseAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStoreOwner, claims.Role)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	repo.On("GetByID", mock.Anything, uint(5)).Return(nil, repositories.ErrNotFound).Once()
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
	repo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	newRepo := func() (*MockUserRepository, *services.AuthService) {
		repo := new(MockUserRepository)
		repo.On("GetByID", mock.Anything, uint(5)).Return(&models.User{ID: 5, PasswordHash: hashOf(t, "Current1!")}, nil)
		return repo, newAuthService(repo)
	}

	t.Run("success", func(t *testing.T) {
		repo, svc := newRepo()
		repo.On("UpdatePassword", mock.Anything, uint(5), mock.AnythingOfType("string")).Return(nil).Once()

		resp, err := svc.ChangePassword(ctx, 5, "Current1!", "Another1&")
		require.NoError(t, err)
		assert.Equal(t, "Password updated successfully", resp.Message)
		stored := repo.Calls[1].Arguments.String(2)
		assert.True(t, testHasher.Verify("Another1&", stored))
	})

	t.Run("wrong current password", func(t *testing.T) {
		repo, svc := newRepo()
		_, err := svc.ChangePassword(ctx, 5, "Wrong1!", "Another1&")
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("new equals current", func(t *testing.T) {
		repo, svc := newRepo()
		_, err := svc.ChangePassword(ctx, 5, "Current1!", "Current1!")
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByID", mock.Anything, uint(9)).Return(nil, repositories.ErrNotFound)
		_, err := newAuthService(repo).ChangePassword(ctx, 9, "a", "b")
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestAuthService_ProfileAndLogout(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	repo.On("GetByID", mock.Anything, uint(5)).Return(&models.User{ID: 5, Name: "Ann", Role: models.RoleNormalUser}, nil)

	p, err := svc.Profile(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Ann", p.User.Name)

	assert.Equal(t, "Logged out successfully", svc.Logout(ctx, 5).Message)
}
