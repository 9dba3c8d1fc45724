package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storerating/internal/middleware"
	"storerating/internal/models"
	"storerating/internal/policy"
	"storerating/internal/services"
)

// UserHandler serves user administration and the caller's own ratings.
type UserHandler struct {
	users    *services.UserService
	ratings  *services.RatingService
	validate *validator.Validate
}

func NewUserHandler(users *services.UserService, ratings *services.RatingService, validate *validator.Validate) *UserHandler {
	return &UserHandler{users: users, ratings: ratings, validate: validate}
}

// RegisterRoutes registers the user routes. /users/ratings must precede /users/:id.
func (h *UserHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", guard.For(policy.OpListUsers), h.HandleListUsers)
	userRoutes.Post("/", guard.For(policy.OpCreateUser), h.HandleCreateUser)
	userRoutes.Get("/ratings", guard.For(policy.OpListMyRatings), h.HandleMyRatings)
	userRoutes.Get("/:id", guard.For(policy.OpGetUser), h.HandleGetUser)
	userRoutes.Put("/:id/password", guard.For(policy.OpSetPassword), h.HandleSetPassword)
}

func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	var params userListParams
	if err := parseQuery(c, h.validate, &params); err != nil {
		return err
	}

	list, err := h.users.List(c.UserContext(), services.UserListQuery{
		Search:    params.Search,
		Role:      models.Role(params.Role),
		PageQuery: services.PageQuery{Page: params.Page, Limit: params.Limit},
	})
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateUserRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), actorID, services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Role:     models.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleMyRatings lists every rating the caller has submitted.
func (h *UserHandler) HandleMyRatings(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	ratings, err := h.ratings.UserRatings(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(ratings)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleSetPassword(c *fiber.Ctx) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req SetPasswordRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	resp, err := h.users.SetPassword(c.UserContext(), actorID, id, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
