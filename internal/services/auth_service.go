package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storerating/internal/apperrors"
	"storerating/internal/auth"
	"storerating/internal/events"
	"storerating/internal/metrics"
	"storerating/internal/models"
	"storerating/internal/repositories"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	users  repositories.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	events *events.Emitter
	log    *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repositories.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, emitter *events.Emitter, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, events: emitter, log: log}
}

// RegisterInput is a self-registration request; it has passed request validation.
type RegisterInput struct {
	Name     string
	Email    string
	Address  string
	Password string
}

// Register creates a NORMAL_USER account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	email := NormalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Conflict("User with this email already exists")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         in.Name,
		Email:        email,
		Address:      in.Address,
		Role:         models.RoleNormalUser,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("User with this email already exists").Wrap(err)
		}
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	metrics.UsersRegistered.WithLabelValues("register").Inc()
	s.log.InfoContext(ctx, "user registered", "userId", user.ID)
	s.events.Emit(ctx, events.Event{
		Type:       events.UserRegistered,
		ActorID:    events.Actor(user.ID),
		EntityType: "user",
		EntityID:   user.ID,
		Data:       map[string]interface{}{"role": user.Role},
	})

	return &AuthResponse{TokenPair: tokens, User: newUserSummary(user)}, nil
}

// Login verifies credentials. Every mismatch yields the same Unauthorized error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, apperrors.Unauthorized("Invalid email or password")
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperrors.Unauthorized("Invalid email or password")
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &AuthResponse{TokenPair: tokens, User: newUserSummary(user)}, nil
}

// Refresh exchanges a refresh token for a new access token. The role is read
// from the database, so a promotion shows up in the new token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid refresh token").Wrap(err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid refresh token").Wrap(err)
		}
		return nil, err
	}
	access, err := s.tokens.IssueAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AccessTokenResponse{AccessToken: access}, nil
}

// ChangePassword replaces the caller's password after verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) (*MessageResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	if !s.hasher.Verify(current, user.PasswordHash) {
		return nil, apperrors.Validation("Current password is incorrect", map[string]string{
			"currentPassword": "is incorrect",
		})
	}
	if s.hasher.Verify(next, user.PasswordHash) {
		return nil, apperrors.Validation("New password must be different from current password", map[string]string{
			"newPassword": "must differ from the current password",
		})
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("change password: %w", notFound(err, "User not found"))
	}

	s.events.Emit(ctx, events.Event{
		Type:       events.UserPasswordChanged,
		ActorID:    events.Actor(user.ID),
		EntityType: "user",
		EntityID:   user.ID,
	})
	return &MessageResponse{Message: "Password updated successfully"}, nil
}

// Profile returns the caller's summary.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return &ProfileResponse{User: newUserSummary(user)}, nil
}

// Logout is stateless: issued tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID uint) *MessageResponse {
	s.log.DebugContext(ctx, "user logged out", "userId", userID)
	return &MessageResponse{Message: "Logged out successfully"}
}
