package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/inventory"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// InventoryHandler maneja el registro y consulta de movimientos de stock (protegido).
type InventoryHandler struct {
	registerUC *inventory.RegisterMovementUseCase
	queryUC    *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(registerUC *inventory.RegisterMovementUseCase, queryUC *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{registerUC: registerUC, queryUC: queryUC}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (IN, OUT, ADJUSTMENT)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.Envelope{data=dto.MovementResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	mov, err := h.registerUC.RegisterMovement(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("material_id, tipo válido y cantidad válida son requeridos"))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("material no encontrado"))
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.Fail("stock insuficiente"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(inventory.ToMovementResponse(mov), "movimiento registrado"))
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  string  false  "Filtro por material"
// @Param        type         query  string  false  "IN | OUT | ADJUSTMENT"
// @Param        limit        query  int     false  "Límite"   default(50)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.Envelope{data=[]dto.MovementResponse}
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		MaterialID: c.Query("material_id"),
		Type:       c.Query("type"),
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.queryUC.List(filter, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("tipo de movimiento desconocido"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Envelope{data=dto.MovementResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.queryUC.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("movimiento no encontrado"))
	}
	return c.JSON(dto.OK(out))
}
