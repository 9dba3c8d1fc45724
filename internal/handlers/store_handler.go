package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storerating/internal/middleware"
	"storerating/internal/policy"
	"storerating/internal/services"
)

// StoreHandler serves store listings and the per-store rating page.
type StoreHandler struct {
	stores   *services.StoreService
	ratings  *services.RatingService
	validate *validator.Validate
}

func NewStoreHandler(stores *services.StoreService, ratings *services.RatingService, validate *validator.Validate) *StoreHandler {
	return &StoreHandler{stores: stores, ratings: ratings, validate: validate}
}

// RegisterRoutes registers the store routes. /stores/search must precede /stores/:id.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", guard.For(policy.OpListStores), h.HandleListStores)
	storeRoutes.Get("/search", guard.For(policy.OpSearchStores), h.HandleSearchStores)
	storeRoutes.Post("/", guard.For(policy.OpCreateStore), h.HandleCreateStore)
	storeRoutes.Get("/:id", guard.For(policy.OpGetStore), h.HandleGetStore)
	storeRoutes.Get("/:id/ratings", guard.For(policy.OpStoreRatings), h.HandleStoreRatings)
}

func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	var params pageParams
	if err := parseQuery(c, h.validate, &params); err != nil {
		return err
	}
	list, err := h.stores.List(c.UserContext(), params.query())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

func (h *StoreHandler) HandleSearchStores(c *fiber.Ctx) error {
	var params storeSearchParams
	if err := parseQuery(c, h.validate, &params); err != nil {
		return err
	}
	list, err := h.stores.Search(c.UserContext(), services.StoreSearchQuery{
		Name:      params.Name,
		Address:   params.Address,
		PageQuery: services.PageQuery{Page: params.Page, Limit: params.Limit},
	})
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// HandleCreateStore opens a store and promotes its owner.
func (h *StoreHandler) HandleCreateStore(c *fiber.Ctx) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateStoreRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return err
	}

	store, err := h.stores.Create(c.UserContext(), actorID, services.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

func (h *StoreHandler) HandleGetStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	store, err := h.stores.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(store)
}

func (h *StoreHandler) HandleStoreRatings(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var params pageParams
	if err := parseQuery(c, h.validate, &params); err != nil {
		return err
	}
	page, err := h.ratings.StoreRatings(c.UserContext(), id, params.query())
	if err != nil {
		return err
	}
	return c.JSON(page)
}
