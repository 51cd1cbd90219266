package inventory

import (
	"context"

	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el contador de stock del material
// y el registro del movimiento se escriban de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
	) error) error
}
