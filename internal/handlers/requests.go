package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storerating/internal/apperrors"
	"storerating/internal/middleware"
	"storerating/internal/services"
	"storerating/internal/validation"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"max=400"`
	Password string `json:"password" validate:"required,password"`
}

// LoginRequest accepts JSON or form bodies.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,newpassword"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"max=400"`
	Role     string `json:"role" validate:"required,role"`
	Password string `json:"password" validate:"required,min=8,max=16"`
}

type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=16"`
}

type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"max=400"`
	OwnerID uint   `json:"ownerId" validate:"required,gt=0"`
}

// CreateRatingRequest leaves the value range to the rating service, which
// checks it after ownership and duplicates.
type CreateRatingRequest struct {
	StoreID uint `json:"storeId" validate:"required,gt=0"`
	Rating  int  `json:"rating"`
}

type UpdateRatingRequest struct {
	Rating int `json:"rating"`
}

type pageParams struct {
	Page  int `query:"page" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0"`
}

func (p pageParams) query() services.PageQuery {
	return services.PageQuery{Page: p.Page, Limit: p.Limit}
}

type userListParams struct {
	Page   int    `query:"page" validate:"gte=0"`
	Limit  int    `query:"limit" validate:"gte=0"`
	Search string `query:"search"`
	Role   string `query:"role" validate:"omitempty,role"`
}

type storeSearchParams struct {
	Page    int    `query:"page" validate:"gte=0"`
	Limit   int    `query:"limit" validate:"gte=0"`
	Name    string `query:"name"`
	Address string `query:"address"`
}

func invalidBody(err error) error {
	return apperrors.Validation("Invalid request body", nil).Wrap(err)
}

// parseBody decodes the request body into dst and validates it.
func parseBody(c *fiber.Ctx, v *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return invalidBody(err)
	}
	return validation.Struct(v, dst)
}

func parseQuery(c *fiber.Ctx, v *validator.Validate, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return apperrors.Validation("Invalid query parameters", nil).Wrap(err)
	}
	return validation.Struct(v, dst)
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("Validation failed", map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}

// callerID returns the authenticated caller. Guard has already rejected
// anonymous requests on routes that use it.
func callerID(c *fiber.Ctx) (uint, error) {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return 0, apperrors.Unauthorized("Authentication required")
	}
	return id.UserID, nil
}
