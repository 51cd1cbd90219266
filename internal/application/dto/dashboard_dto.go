package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsDTO resumen general para la vista principal.
type DashboardStatsDTO struct {
	TotalMaterials   int64           `json:"total_materials"`
	LowStockCount    int64           `json:"low_stock_count"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	TotalMachines    int64           `json:"total_machines"`
	ActiveMachines   int64           `json:"active_machines"`
	TotalWorkOrders  int64           `json:"total_work_orders"`
	OrdersInProgress int64           `json:"orders_in_progress"`
	MovementsToday   int64           `json:"movements_today"`
}

// WorkOrderStatsDTO conteo de órdenes por estado.
type WorkOrderStatsDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// InventoryReportRowDTO fila del reporte de inventario valorizado.
type InventoryReportRowDTO struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	StockValue   decimal.Decimal `json:"stock_value"`
	Supplier     string          `json:"supplier,omitempty"`
	Location     string          `json:"location,omitempty"`
}

// MovementReportRowDTO fila del reporte de movimientos.
type MovementReportRowDTO struct {
	Date         time.Time       `json:"date"`
	MaterialCode string          `json:"material_code"`
	MaterialName string          `json:"material_name"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Reason       string          `json:"reason,omitempty"`
	CreatedBy    string          `json:"created_by,omitempty"`
}

// SystemLogDTO entrada de la bitácora administrativa.
type SystemLogDTO struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
