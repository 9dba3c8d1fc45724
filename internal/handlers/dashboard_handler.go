package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storerating/internal/middleware"
	"storerating/internal/policy"
	"storerating/internal/services"
)

// DashboardHandler serves the administrator and store-owner dashboards.
type DashboardHandler struct {
	dashboards *services.DashboardService
}

func NewDashboardHandler(dashboards *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

func (h *DashboardHandler) RegisterRoutes(router fiber.Router, guard *middleware.Guard) {
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Get("/admin", guard.For(policy.OpAdminDashboard), h.HandleAdmin)
	dashboardRoutes.Get("/store", guard.For(policy.OpOwnerDashboard), h.HandleOwner)
}

func (h *DashboardHandler) HandleAdmin(c *fiber.Ctx) error {
	out, err := h.dashboards.Admin(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *DashboardHandler) HandleOwner(c *fiber.Ctx) error {
	ownerID, err := callerID(c)
	if err != nil {
		return err
	}
	out, err := h.dashboards.Owner(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
