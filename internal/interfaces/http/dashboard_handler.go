package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/analytics"
	"github.com/tu-usuario/planta-pro/internal/application/dto"
)

// DashboardHandler expone los agregados de solo lectura del dashboard (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Resumen general de planta
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.DashboardStatsDTO}
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// CriticalStock godoc
// @Summary      Materiales en stock crítico (current_stock <= min_stock)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.MaterialResponse}
// @Router       /api/dashboard/critical-stock [get]
func (h *DashboardHandler) CriticalStock(c *fiber.Ctx) error {
	out, err := h.uc.GetCriticalStock(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// RecentMovements godoc
// @Summary      Últimos movimientos de stock
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.MovementResponse}
// @Router       /api/dashboard/recent-movements [get]
func (h *DashboardHandler) RecentMovements(c *fiber.Ctx) error {
	out, err := h.uc.GetRecentMovements(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// WorkOrderStats godoc
// @Summary      Conteo de órdenes por estado
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.WorkOrderStatsDTO}
// @Router       /api/dashboard/work-order-stats [get]
func (h *DashboardHandler) WorkOrderStats(c *fiber.Ctx) error {
	out, err := h.uc.GetWorkOrderStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}
