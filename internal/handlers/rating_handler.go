package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storerating/internal/middleware"
	"storerating/internal/policy"
	"storerating/internal/services"
)

// RatingHandler handles submitting and amending ratings.
type RatingHandler struct {
	ratings  *services.RatingService
	validate *validator.Validate
}

func NewRatingHandler(ratings *services.RatingService, validate *validator.Validate) *RatingHandler {
	return &RatingHandler{ratings: ratings, validate: validate}
}

func (h *RatingHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	ratingRoutes := router.Group("/ratings")
	ratingRoutes.Post("/", guard.For(policy.OpCreateRating), h.HandleCreateRating)
	ratingRoutes.Put("/:id", guard.For(policy.OpUpdateRating), h.HandleUpdateRating)
}

func (h *RatingHandler) HandleCreateRating(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateRatingRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	rating, err := h.ratings.Submit(c.UserContext(), userID, req.StoreID, req.Rating)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// HandleUpdateRating changes the value of the caller's own rating.
func (h *RatingHandler) HandleUpdateRating(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateRatingRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	rating, err := h.ratings.Amend(c.UserContext(), id, userID, req.Rating)
	if err != nil {
		return err
	}
	return c.JSON(rating)
}
