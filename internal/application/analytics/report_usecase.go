package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// Formatos de exportación de reportes.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// SheetExporter genera un libro XLSX a partir de encabezados y filas (puerto;
// adaptador excelize en infrastructure/excel).
type SheetExporter interface {
	Export(sheetName string, headers []string, rows [][]string) ([]byte, error)
}

// InventoryPDFGenerator genera el reporte de inventario en PDF (puerto;
// adaptador maroto en infrastructure/pdf).
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, generatedAt time.Time, rows []repository.InventoryReportRow) ([]byte, error)
}

// ReportFile archivo exportado listo para servir.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportUseCase arma los reportes de inventario valorizado y de movimientos
// por período, en JSON o exportados a CSV/XLSX/PDF.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	sheets        SheetExporter
	pdf           InventoryPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository, sheets SheetExporter, pdf InventoryPDFGenerator) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo, sheets: sheets, pdf: pdf}
}

// InventoryRows devuelve las filas del reporte de inventario (formato json).
func (uc *ReportUseCase) InventoryRows(ctx context.Context) ([]repository.InventoryReportRow, error) {
	return uc.analyticsRepo.GetInventoryReport(ctx)
}

// MovementRows devuelve las filas del reporte de movimientos del período.
func (uc *ReportUseCase) MovementRows(ctx context.Context, from, to time.Time) ([]repository.MovementReportRow, error) {
	return uc.analyticsRepo.GetMovementReport(ctx, from, to)
}

var inventoryHeaders = []string{"Código", "Nombre", "Categoría", "Unidad", "Stock", "Stock mínimo", "Precio unitario", "Valor", "Proveedor", "Ubicación"}

// ExportInventory genera el reporte de inventario en el formato pedido.
func (uc *ReportUseCase) ExportInventory(ctx context.Context, format string) (*ReportFile, error) {
	rows, err := uc.analyticsRepo.GetInventoryReport(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	switch format {
	case FormatPDF:
		content, err := uc.pdf.GenerateInventoryPDF(ctx, now, rows)
		if err != nil {
			return nil, err
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("inventario_%s.pdf", now.Format("20060102")),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	case FormatXLSX:
		content, err := uc.sheets.Export("Inventario", inventoryHeaders, inventoryToCells(rows))
		if err != nil {
			return nil, err
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("inventario_%s.xlsx", now.Format("20060102")),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	case FormatCSV:
		content, err := writeCSV(inventoryHeaders, inventoryToCells(rows))
		if err != nil {
			return nil, err
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("inventario_%s.csv", now.Format("20060102")),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("formato de exportación no soportado: %s", format)
}

var movementHeaders = []string{"Fecha", "Código material", "Material", "Tipo", "Cantidad", "Unidad", "Motivo", "Registrado por"}

// ExportMovements genera el reporte de movimientos del período en CSV o XLSX.
func (uc *ReportUseCase) ExportMovements(ctx context.Context, from, to time.Time, format string) (*ReportFile, error) {
	rows, err := uc.analyticsRepo.GetMovementReport(ctx, from, to)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	cells := movementsToCells(rows)

	switch format {
	case FormatXLSX:
		content, err := uc.sheets.Export("Movimientos", movementHeaders, cells)
		if err != nil {
			return nil, err
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("movimientos_%s.xlsx", now.Format("20060102")),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	case FormatCSV:
		content, err := writeCSV(movementHeaders, cells)
		if err != nil {
			return nil, err
		}
		return &ReportFile{
			Filename:    fmt.Sprintf("movimientos_%s.csv", now.Format("20060102")),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	}
	return nil, fmt.Errorf("formato de exportación no soportado: %s", format)
}

func inventoryToCells(rows []repository.InventoryReportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Code, r.Name, r.Category, r.Unit,
			r.CurrentStock.String(), r.MinStock.String(),
			r.UnitPrice.StringFixed(2), r.StockValue.StringFixed(2),
			r.Supplier, r.Location,
		})
	}
	return out
}

func movementsToCells(rows []repository.MovementReportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Date.Format("2006-01-02 15:04"),
			r.MaterialCode, r.MaterialName, r.Type,
			r.Quantity.String(), r.Unit, r.Reason, r.CreatedBy,
		})
	}
	return out
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
