package analytics_test

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pro/internal/application/analytics"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

type stubAnalyticsRepo struct {
	inventory []repository.InventoryReportRow
	movements []repository.MovementReportRow
}

func (r *stubAnalyticsRepo) GetDashboardStats(context.Context) (*repository.DashboardStats, error) {
	return &repository.DashboardStats{}, nil
}

func (r *stubAnalyticsRepo) GetWorkOrderStats(context.Context) ([]repository.WorkOrderStatusCount, error) {
	return nil, nil
}

func (r *stubAnalyticsRepo) GetInventoryReport(context.Context) ([]repository.InventoryReportRow, error) {
	return r.inventory, nil
}

func (r *stubAnalyticsRepo) GetMovementReport(context.Context, time.Time, time.Time) ([]repository.MovementReportRow, error) {
	return r.movements, nil
}

type spySheetExporter struct {
	sheetName string
	headers   []string
	rows      [][]string
}

func (e *spySheetExporter) Export(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	e.sheetName = sheetName
	e.headers = headers
	e.rows = rows
	return []byte("xlsx"), nil
}

type spyPDFGenerator struct {
	rows []repository.InventoryReportRow
}

func (g *spyPDFGenerator) GenerateInventoryPDF(_ context.Context, _ time.Time, rows []repository.InventoryReportRow) ([]byte, error) {
	g.rows = rows
	return []byte("%PDF-1.4"), nil
}

func sampleInventory() []repository.InventoryReportRow {
	return []repository.InventoryReportRow{
		{
			Code: "MAT001", Name: "Acero 1045", Category: "ACERO", Unit: "kg",
			CurrentStock: decimal.NewFromInt(120), MinStock: decimal.NewFromInt(50),
			UnitPrice:  decimal.RequireFromString("3.50"),
			StockValue: decimal.RequireFromString("420.00"),
			Supplier:   "Aceros del Norte S.A.", Location: "A-01",
		},
	}
}

func TestExportInventory_CSV(t *testing.T) {
	repo := &stubAnalyticsRepo{inventory: sampleInventory()}
	uc := analytics.NewReportUseCase(repo, &spySheetExporter{}, &spyPDFGenerator{})

	file, err := uc.ExportInventory(context.Background(), analytics.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", file.ContentType)
	assert.Contains(t, file.Filename, ".csv")

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "encabezado más una fila de datos")
	assert.Equal(t, "Código", records[0][0])
	assert.Equal(t, "MAT001", records[1][0])
	assert.Equal(t, "420.00", records[1][7], "el valor usa dos decimales")
}

func TestExportInventory_XLSX(t *testing.T) {
	repo := &stubAnalyticsRepo{inventory: sampleInventory()}
	sheets := &spySheetExporter{}
	uc := analytics.NewReportUseCase(repo, sheets, &spyPDFGenerator{})

	file, err := uc.ExportInventory(context.Background(), analytics.FormatXLSX)
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)
	assert.Equal(t, "Inventario", sheets.sheetName)
	require.Len(t, sheets.rows, 1)
	assert.Equal(t, len(sheets.headers), len(sheets.rows[0]),
		"cada fila debe tener una celda por encabezado")
}

func TestExportInventory_PDF(t *testing.T) {
	repo := &stubAnalyticsRepo{inventory: sampleInventory()}
	pdf := &spyPDFGenerator{}
	uc := analytics.NewReportUseCase(repo, &spySheetExporter{}, pdf)

	file, err := uc.ExportInventory(context.Background(), analytics.FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Len(t, pdf.rows, 1)
}

func TestExportInventory_FormatoDesconocido(t *testing.T) {
	uc := analytics.NewReportUseCase(&stubAnalyticsRepo{}, &spySheetExporter{}, &spyPDFGenerator{})

	_, err := uc.ExportInventory(context.Background(), "docx")
	assert.Error(t, err)
}

func TestExportMovements_CSV(t *testing.T) {
	repo := &stubAnalyticsRepo{movements: []repository.MovementReportRow{
		{
			Date:         time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC),
			MaterialCode: "MAT001", MaterialName: "Acero 1045", Type: "OUT",
			Quantity: decimal.NewFromInt(-20), Unit: "kg",
			Reason: "producción", CreatedBy: "operador@planta.local",
		},
	}}
	uc := analytics.NewReportUseCase(repo, &spySheetExporter{}, &spyPDFGenerator{})

	file, err := uc.ExportMovements(context.Background(), time.Now().AddDate(0, -1, 0), time.Now(), analytics.FormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(file.Content))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-08-15 10:30", records[1][0])
	assert.Equal(t, "-20", records[1][4], "las salidas conservan el signo negativo")

	// PDF no aplica al reporte de movimientos
	_, err = uc.ExportMovements(context.Background(), time.Now(), time.Now(), analytics.FormatPDF)
	assert.Error(t, err)
}
