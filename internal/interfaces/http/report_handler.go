package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/analytics"
	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// ReportHandler expone los reportes exportables (protegido).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Reporte de inventario valorizado
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        format  query  string  false  "json | csv | xlsx | pdf"  default(json)
// @Success      200  {object}  dto.Envelope{data=[]dto.InventoryReportRowDTO}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	format := c.Query("format", analytics.FormatJSON)
	if format == analytics.FormatJSON {
		rows, err := h.uc.InventoryRows(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
		}
		return c.JSON(dto.OK(inventoryRowsDTO(rows)))
	}
	file, err := h.uc.ExportInventory(c.UserContext(), format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return sendFile(c, file)
}

// Movements godoc
// @Summary      Reporte de movimientos por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial (YYYY-MM-DD); por defecto 30 días atrás"
// @Param        to      query  string  false  "Fecha final (YYYY-MM-DD); por defecto hoy"
// @Param        format  query  string  false  "json | csv | xlsx"  default(json)
// @Success      200  {object}  dto.Envelope{data=[]dto.MovementReportRowDTO}
// @Failure      400  {object}  dto.Envelope
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	from, to, err := parsePeriod(c.Query("from"), c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	format := c.Query("format", analytics.FormatJSON)
	if format == analytics.FormatJSON {
		rows, err := h.uc.MovementRows(c.UserContext(), from, to)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
		}
		return c.JSON(dto.OK(movementRowsDTO(rows)))
	}
	file, err := h.uc.ExportMovements(c.UserContext(), from, to, format)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(err.Error()))
	}
	return sendFile(c, file)
}

// parsePeriod resuelve el rango [from, to]; to incluye el día completo.
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now
	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from inválido, formato esperado YYYY-MM-DD")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to inválido, formato esperado YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("el rango de fechas es inválido: to es anterior a from")
	}
	return from, to, nil
}

func sendFile(c *fiber.Ctx, file *analytics.ReportFile) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", file.Filename))
	return c.Send(file.Content)
}

func inventoryRowsDTO(rows []repository.InventoryReportRow) []dto.InventoryReportRowDTO {
	out := make([]dto.InventoryReportRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InventoryReportRowDTO{
			Code:         r.Code,
			Name:         r.Name,
			Category:     r.Category,
			Unit:         r.Unit,
			CurrentStock: r.CurrentStock,
			MinStock:     r.MinStock,
			UnitPrice:    r.UnitPrice,
			StockValue:   r.StockValue,
			Supplier:     r.Supplier,
			Location:     r.Location,
		})
	}
	return out
}

func movementRowsDTO(rows []repository.MovementReportRow) []dto.MovementReportRowDTO {
	out := make([]dto.MovementReportRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.MovementReportRowDTO{
			Date:         r.Date,
			MaterialCode: r.MaterialCode,
			MaterialName: r.MaterialName,
			Type:         r.Type,
			Quantity:     r.Quantity,
			Unit:         r.Unit,
			Reason:       r.Reason,
			CreatedBy:    r.CreatedBy,
		})
	}
	return out
}
