package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
)

// AdminHandler operaciones administrativas (protegido, solo admin).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// Backup godoc
// @Summary      Backup de base de datos (simulado)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/backup [post]
func (h *AdminHandler) Backup(c *fiber.Ctx) error {
	return h.runMaintenance(c, "backup")
}

// Optimize godoc
// @Summary      Optimización de base de datos (simulado)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/optimize [post]
func (h *AdminHandler) Optimize(c *fiber.Ctx) error {
	return h.runMaintenance(c, "optimize")
}

// Restore godoc
// @Summary      Restauración de base de datos (simulado)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/restore [post]
func (h *AdminHandler) Restore(c *fiber.Ctx) error {
	return h.runMaintenance(c, "restore")
}

func (h *AdminHandler) runMaintenance(c *fiber.Ctx, action string) error {
	if err := h.uc.RunMaintenance(c.UserContext(), action, GetEmail(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OKMessage(nil, fmt.Sprintf("operación %s completada (simulada)", action)))
}

// ClearLogs godoc
// @Summary      Vaciar la bitácora del sistema
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/admin/clear-logs [post]
func (h *AdminHandler) ClearLogs(c *fiber.Ctx) error {
	removed, err := h.uc.ClearLogs(GetEmail(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OKMessage(fiber.Map{"removed": removed}, "bitácora vaciada"))
}

// ListLogs godoc
// @Summary      Listar la bitácora del sistema
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.Envelope{data=[]dto.SystemLogDTO}
// @Router       /api/admin/logs [get]
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.ListLogs(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}
