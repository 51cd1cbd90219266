package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock (IN, OUT, ADJUSTMENT)
// de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el
// material y Commit/Rollback. El stock nunca queda negativo y el movimiento
// nunca se inserta sin su actualización de stock correspondiente.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// RegisterMovement valida la entrada, inicia la transacción y aplica el
// movimiento. Devuelve el movimiento creado con el stock resultante.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.MaterialMovement, error) {
	if in.MaterialID == "" || !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if in.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now().UTC()
	var created *entity.MaterialMovement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
	) error {
		// Bloquea la fila del material para evitar lost updates concurrentes.
		material, err := materialRepo.GetForUpdate(in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}

		delta := in.Quantity
		if in.Type == entity.MovementTypeOUT {
			delta = in.Quantity.Neg()
		}
		newStock := material.CurrentStock.Add(delta)
		if newStock.IsNegative() {
			return domain.ErrInsufficientStock
		}

		if err := materialRepo.UpdateStock(material.ID, newStock); err != nil {
			return err
		}

		mov := &entity.MaterialMovement{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Type:       in.Type,
			Quantity:   delta,
			Unit:       material.Unit,
			Reason:     in.Reason,
			Reference:  in.Reference,
			StockAfter: newStock,
			CreatedBy:  userID,
			CreatedAt:  now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// IssueMaterials descuenta los materiales de una orden como salidas OUT sobre
// repos YA atados a la transacción del llamador: el cierre de la orden ejecuta
// descuentos y cambio de estado bajo un único Commit. Falla completa si algún
// material no alcanza: o se descuenta todo, o nada.
func IssueMaterials(
	movRepo repository.MovementRepository,
	materialRepo repository.MaterialRepository,
	userID string,
	order *entity.WorkOrder,
) error {
	now := time.Now().UTC()
	for _, line := range order.Materials {
		material, err := materialRepo.GetForUpdate(line.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		newStock := material.CurrentStock.Sub(line.Quantity)
		if newStock.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := materialRepo.UpdateStock(material.ID, newStock); err != nil {
			return err
		}
		mov := &entity.MaterialMovement{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Type:       entity.MovementTypeOUT,
			Quantity:   line.Quantity.Neg(),
			Unit:       material.Unit,
			Reason:     "consumo orden de producción",
			Reference:  order.OrderNumber,
			StockAfter: newStock,
			CreatedBy:  userID,
			CreatedAt:  now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}
