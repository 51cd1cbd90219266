// Package analytics contiene los casos de uso de solo lectura del dashboard
// de planta y de los reportes exportables.
package analytics

import (
	"context"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

const recentMovementsLimit = 10 // movimientos en el widget del dashboard

// DashboardUseCase genera el resumen de planta: inventario, máquinas y órdenes.
//
// Fuente de datos: AnalyticsRepository (consultas read-only recalculadas en la
// DB en cada petición; no hay mantenimiento incremental ni caché).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	materialRepo  repository.MaterialRepository
	movementRepo  repository.MovementRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	materialRepo repository.MaterialRepository,
	movementRepo repository.MovementRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		materialRepo:  materialRepo,
		movementRepo:  movementRepo,
	}
}

// GetStats devuelve los totales del dashboard.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	stats, err := uc.analyticsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsDTO{
		TotalMaterials:   stats.TotalMaterials,
		LowStockCount:    stats.LowStockCount,
		InventoryValue:   stats.InventoryValue,
		TotalMachines:    stats.TotalMachines,
		ActiveMachines:   stats.ActiveMachines,
		TotalWorkOrders:  stats.TotalWorkOrders,
		OrdersInProgress: stats.OrdersInProgress,
		MovementsToday:   stats.MovementsToday,
	}, nil
}

// GetCriticalStock lista los materiales con current_stock <= min_stock.
func (uc *DashboardUseCase) GetCriticalStock(ctx context.Context) ([]*dto.MaterialResponse, error) {
	materials, err := uc.materialRepo.List(repository.MaterialFilter{LowStock: true}, 100, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, &dto.MaterialResponse{
			ID:           m.ID,
			Code:         m.Code,
			Name:         m.Name,
			Category:     m.Category,
			Unit:         m.Unit,
			CurrentStock: m.CurrentStock,
			MinStock:     m.MinStock,
			MaxStock:     m.MaxStock,
			UnitPrice:    m.UnitPrice,
			Location:     m.Location,
			LowStock:     true,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		})
	}
	return out, nil
}

// GetRecentMovements devuelve los últimos movimientos registrados.
func (uc *DashboardUseCase) GetRecentMovements(ctx context.Context) ([]*dto.MovementResponse, error) {
	movements, err := uc.movementRepo.List(repository.MovementFilter{}, recentMovementsLimit, 0)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movements))
	for _, mv := range movements {
		out = append(out, &dto.MovementResponse{
			ID:         mv.ID,
			MaterialID: mv.MaterialID,
			Type:       mv.Type,
			Quantity:   mv.Quantity,
			Unit:       mv.Unit,
			Reason:     mv.Reason,
			Reference:  mv.Reference,
			StockAfter: mv.StockAfter,
			CreatedBy:  mv.CreatedBy,
			CreatedAt:  mv.CreatedAt,
		})
	}
	return out, nil
}

// GetWorkOrderStats devuelve el conteo de órdenes por estado.
func (uc *DashboardUseCase) GetWorkOrderStats(ctx context.Context) ([]dto.WorkOrderStatsDTO, error) {
	counts, err := uc.analyticsRepo.GetWorkOrderStats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkOrderStatsDTO, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.WorkOrderStatsDTO{Status: c.Status, Count: c.Count})
	}
	return out, nil
}
