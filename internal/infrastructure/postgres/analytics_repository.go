package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reportes.
// Todos los agregados se calculan en la DB en cada llamada.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de consultas analíticas.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardStats calcula el resumen general de planta.
func (r *AnalyticsRepo) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	var s repository.DashboardStats
	query := `
		SELECT
			(SELECT COUNT(*) FROM materials),
			(SELECT COUNT(*) FROM materials WHERE current_stock <= min_stock),
			(SELECT COALESCE(SUM(current_stock * unit_price), 0) FROM materials),
			(SELECT COUNT(*) FROM machines),
			(SELECT COUNT(*) FROM machines WHERE status = 'active'),
			(SELECT COUNT(*) FROM work_orders),
			(SELECT COUNT(*) FROM work_orders WHERE status = 'IN_PROGRESS'),
			(SELECT COUNT(*) FROM material_movements WHERE created_at >= date_trunc('day', now()))`
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalMaterials, &s.LowStockCount, &s.InventoryValue,
		&s.TotalMachines, &s.ActiveMachines,
		&s.TotalWorkOrders, &s.OrdersInProgress, &s.MovementsToday,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}

// GetWorkOrderStats cuenta órdenes agrupadas por estado.
func (r *AnalyticsRepo) GetWorkOrderStats(ctx context.Context) ([]repository.WorkOrderStatusCount, error) {
	query := `SELECT status, COUNT(*) FROM work_orders GROUP BY status ORDER BY status`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("work order stats: %w", err)
	}
	defer rows.Close()
	var stats []repository.WorkOrderStatusCount
	for rows.Next() {
		var c repository.WorkOrderStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan work order stat: %w", err)
		}
		stats = append(stats, c)
	}
	return stats, rows.Err()
}

// GetInventoryReport devuelve el inventario valorizado con el proveedor de cada material.
func (r *AnalyticsRepo) GetInventoryReport(ctx context.Context) ([]repository.InventoryReportRow, error) {
	query := `
		SELECT m.code, m.name, m.category, m.unit,
		       m.current_stock, m.min_stock, m.unit_price,
		       m.current_stock * m.unit_price AS stock_value,
		       COALESCE(s.name, '') AS supplier, m.location
		FROM materials m
		LEFT JOIN suppliers s ON s.id = m.supplier_id
		ORDER BY m.code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventory report: %w", err)
	}
	defer rows.Close()
	var report []repository.InventoryReportRow
	for rows.Next() {
		var row repository.InventoryReportRow
		if err := rows.Scan(
			&row.Code, &row.Name, &row.Category, &row.Unit,
			&row.CurrentStock, &row.MinStock, &row.UnitPrice,
			&row.StockValue, &row.Supplier, &row.Location,
		); err != nil {
			return nil, fmt.Errorf("scan inventory report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}

// GetMovementReport devuelve los movimientos del período [from, to] con datos del material.
func (r *AnalyticsRepo) GetMovementReport(ctx context.Context, from, to time.Time) ([]repository.MovementReportRow, error) {
	query := `
		SELECT mv.created_at, m.code, m.name, mv.movement_type,
		       mv.quantity, mv.unit, mv.reason, mv.created_by
		FROM material_movements mv
		JOIN materials m ON m.id = mv.material_id
		WHERE mv.created_at >= $1 AND mv.created_at <= $2
		ORDER BY mv.created_at DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("movement report: %w", err)
	}
	defer rows.Close()
	var report []repository.MovementReportRow
	for rows.Next() {
		var row repository.MovementReportRow
		if err := rows.Scan(
			&row.Date, &row.MaterialCode, &row.MaterialName, &row.Type,
			&row.Quantity, &row.Unit, &row.Reason, &row.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement report row: %w", err)
		}
		report = append(report, row)
	}
	return report, rows.Err()
}
