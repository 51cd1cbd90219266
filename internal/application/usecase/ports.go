package usecase

import (
	"context"

	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// WorkOrderTxRunner ejecuta el cierre de una orden dentro de una transacción
// de BD, pasando repos atados a esa transacción. Error -> Rollback completo:
// ni los descuentos de stock ni el cambio de estado sobreviven solos.
type WorkOrderTxRunner interface {
	RunWorkOrder(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
		orderRepo repository.WorkOrderRepository,
	) error) error
}
