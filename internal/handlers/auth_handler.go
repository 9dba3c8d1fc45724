package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storerating/internal/middleware"
	"storerating/internal/policy"
	"storerating/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", guard.For(policy.OpRegister), h.HandleRegister)
	authRoutes.Post("/login", guard.For(policy.OpLogin), h.HandleLogin)
	authRoutes.Post("/refresh-token", guard.For(policy.OpRefreshToken), h.HandleRefreshToken)
	authRoutes.Put("/change-password", guard.For(policy.OpChangePassword), h.HandleChangePassword)
	authRoutes.Get("/profile", guard.For(policy.OpProfile), h.HandleProfile)
	authRoutes.Post("/logout", guard.For(policy.OpLogout), h.HandleLogout)
}

// HandleRegister creates a NORMAL_USER account and signs it in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	resp, err := h.authService.Register(c.UserContext(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleLogin issues a token pair for valid credentials.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandler) HandleRefreshToken(c *fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	resp, err := h.authService.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req ChangePasswordRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	resp, err := h.authService.ChangePassword(c.UserContext(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	resp, err := h.authService.Profile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	return c.JSON(h.authService.Logout(c.UserContext(), userID))
}
