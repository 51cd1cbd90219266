package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats resumen general de planta para el dashboard.
type DashboardStats struct {
	TotalMaterials   int64
	LowStockCount    int64
	InventoryValue   decimal.Decimal
	TotalMachines    int64
	ActiveMachines   int64
	TotalWorkOrders  int64
	OrdersInProgress int64
	MovementsToday   int64
}

// WorkOrderStatusCount conteo de órdenes por estado.
type WorkOrderStatusCount struct {
	Status string
	Count  int64
}

// InventoryReportRow fila del reporte de inventario valorizado.
type InventoryReportRow struct {
	Code         string
	Name         string
	Category     string
	Unit         string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	UnitPrice    decimal.Decimal
	StockValue   decimal.Decimal
	Supplier     string
	Location     string
}

// MovementReportRow fila del reporte de movimientos por período.
type MovementReportRow struct {
	Date         time.Time
	MaterialCode string
	MaterialName string
	Type         string
	Quantity     decimal.Decimal
	Unit         string
	Reason       string
	CreatedBy    string
}

// AnalyticsRepository consultas de solo lectura para el dashboard y los reportes.
// Todo se recalcula en la DB; no hay mantenimiento incremental.
type AnalyticsRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetWorkOrderStats(ctx context.Context) ([]WorkOrderStatusCount, error)
	GetInventoryReport(ctx context.Context) ([]InventoryReportRow, error)
	GetMovementReport(ctx context.Context, from, to time.Time) ([]MovementReportRow, error)
}
