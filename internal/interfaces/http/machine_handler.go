package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
	"github.com/tu-usuario/planta-pro/internal/domain"
)

// MachineHandler maneja las peticiones HTTP para Machine y su BOM (protegido).
type MachineHandler struct {
	uc *usecase.MachineUseCase
}

// NewMachineHandler construye el handler.
func NewMachineHandler(uc *usecase.MachineUseCase) *MachineHandler {
	return &MachineHandler{uc: uc}
}

// Create godoc
// @Summary      Crear máquina
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMachineRequest  true  "Datos de la máquina"
// @Success      201   {object}  dto.Envelope{data=dto.MachineResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/machines [post]
func (h *MachineHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMachineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("code y name son requeridos; status desconocido"))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.Fail("el código de máquina ya existe"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "máquina creada"))
}

// GetByID godoc
// @Summary      Obtener máquina por ID
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la máquina"
// @Success      200  {object}  dto.Envelope{data=dto.MachineResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/machines/{id} [get]
func (h *MachineHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("máquina no encontrada"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar máquinas
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200  {object}  dto.Envelope{data=[]dto.MachineResponse}
// @Router       /api/machines [get]
func (h *MachineHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar máquina (patch parcial)
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la máquina"
// @Param        body  body  dto.UpdateMachineRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.MachineResponse}
// @Failure      404   {object}  dto.Envelope
// @Router       /api/machines/{id} [put]
func (h *MachineHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMachineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("máquina no encontrada"))
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("status desconocido"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OKMessage(out, "máquina actualizada"))
}

// Delete godoc
// @Summary      Eliminar máquina
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la máquina"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      409  {object}  dto.Envelope
// @Router       /api/machines/{id} [delete]
func (h *MachineHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("máquina no encontrada"))
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.Fail("máquina referenciada por BOM u órdenes"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OKMessage(nil, "máquina eliminada"))
}

// GetBOM godoc
// @Summary      Listar BOM de una máquina
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la máquina"
// @Success      200  {object}  dto.Envelope{data=[]dto.BOMItemResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/machines/{id}/bom [get]
func (h *MachineHandler) GetBOM(c *fiber.Ctx) error {
	out, err := h.uc.GetBOM(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("máquina no encontrada"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out))
}

// AddBOMItem godoc
// @Summary      Agregar línea al BOM de una máquina
// @Tags         machines
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la máquina"
// @Param        body  body  dto.AddBOMItemRequest  true  "Línea de BOM"
// @Success      201   {object}  dto.Envelope{data=dto.BOMItemResponse}
// @Failure      404   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/machines/{id}/bom [post]
func (h *MachineHandler) AddBOMItem(c *fiber.Ctx) error {
	var in dto.AddBOMItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	out, err := h.uc.AddBOMItem(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("máquina o material no encontrado"))
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("material_id y cantidad positiva son requeridos"))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.Fail("el material ya está en el BOM de esta máquina"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(out, "línea de BOM agregada"))
}

// DeleteBOMItem godoc
// @Summary      Eliminar línea del BOM
// @Tags         machines
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la máquina"
// @Param        itemId  path  string  true  "ID de la línea de BOM"
// @Success      200     {object}  dto.Envelope
// @Failure      404     {object}  dto.Envelope
// @Router       /api/machines/{id}/bom/{itemId} [delete]
func (h *MachineHandler) DeleteBOMItem(c *fiber.Ctx) error {
	err := h.uc.DeleteBOMItem(c.Params("itemId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("línea de BOM no encontrada"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OKMessage(nil, "línea de BOM eliminada"))
}
