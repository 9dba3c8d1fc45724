package services

import (
	"context"
	"errors"
	"log/slog"

	"storerating/internal/apperrors"
	"storerating/internal/auth"
	"storerating/internal/events"
	"storerating/internal/metrics"
	"storerating/internal/models"
	"storerating/internal/repositories"
)

// UserService implements administrator user management.
type UserService struct {
	users  repositories.UserRepository
	hasher *auth.PasswordHasher
	events *events.Emitter
	log    *slog.Logger
}

func NewUserService(users repositories.UserRepository, hasher *auth.PasswordHasher, emitter *events.Emitter, log *slog.Logger) *UserService {
	if log == nil {
		log = slog.Default()
	}
	return &UserService{users: users, hasher: hasher, events: emitter, log: log}
}

// UserListQuery filters the administrator user listing.
type UserListQuery struct {
	Search string
	Role   models.Role
	PageQuery
}

func (s *UserService) List(ctx context.Context, q UserListQuery) (*UserList, error) {
	page := q.PageQuery.Normalize()
	users, total, err := s.users.List(ctx, repositories.UserFilter{
		Search: q.Search,
		Role:   q.Role,
		Page:   page.window(),
	})
	if err != nil {
		return nil, err
	}
	out := &UserList{Users: make([]UserView, len(users)), Pagination: page.pagination(total)}
	for i := range users {
		out.Users[i] = newUserView(&users[i])
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*UserView, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	v := newUserView(user)
	return &v, nil
}

// CreateUserInput is an administrator request to add an account with an explicit role.
type CreateUserInput struct {
	Name     string
	Email    string
	Address  string
	Role     models.Role
	Password string
}

func (s *UserService) Create(ctx context.Context, actorID uint, in CreateUserInput) (*UserView, error) {
	if !in.Role.Valid() {
		return nil, apperrors.Validation("Invalid role provided", map[string]string{"role": "is invalid"})
	}
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
	user := &models.User{Name: in.Name, Email: email, Address: in.Address, Role: in.Role, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Conflict("User with this email already exists").Wrap(err)
		}
		return nil, err
	}

	metrics.UsersRegistered.WithLabelValues("admin").Inc()
	s.log.InfoContext(ctx, "user created", "userId", user.ID, "role", user.Role, "by", actorID)
	s.events.Emit(ctx, events.Event{
		Type:       events.UserCreated,
		ActorID:    events.Actor(actorID),
		EntityType: "user",
		EntityID:   user.ID,
		Data:       map[string]interface{}{"role": user.Role},
	})
	v := newUserView(user)
	return &v, nil
}

// SetPassword replaces a user's password. The new password must differ from the current one.
func (s *UserService) SetPassword(ctx context.Context, actorID, userID uint, password string) (*MessageResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	if s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.Validation("New password must be different from current password", map[string]string{
			"password": "must differ from the current password",
		})
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return nil, notFound(err, "User not found")
	}

	s.events.Emit(ctx, events.Event{
		Type:       events.UserPasswordChanged,
		ActorID:    events.Actor(actorID),
		EntityType: "user",
		EntityID:   user.ID,
	})
	return &MessageResponse{Message: "Password updated successfully"}, nil
}

// EnsureAdmin creates the bootstrap administrator unless the email is taken.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{Name: name, Email: email, Role: models.RoleSystemAdmin, PasswordHash: hash}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return false, nil
		}
		return false, err
	}
	metrics.UsersRegistered.WithLabelValues("seed").Inc()
	s.log.InfoContext(ctx, "administrator account created", "userId", admin.ID)
	return true, nil
}
