package repository

import "github.com/tu-usuario/planta-pro/internal/domain/entity"

// WorkOrderRepository define el puerto de persistencia para WorkOrder (DIP).
// NextSequence consume la secuencia de numeración de órdenes en la DB; el
// número nunca se deriva del tamaño de la colección.
type WorkOrderRepository interface {
	Create(order *entity.WorkOrder) error
	GetByID(id string) (*entity.WorkOrder, error)
	// GetForUpdate bloquea la fila de la orden dentro de la transacción en
	// curso; nil si no existe.
	GetForUpdate(id string) (*entity.WorkOrder, error)
	Update(order *entity.WorkOrder) error
	List(status string, limit, offset int) ([]*entity.WorkOrder, error)
	Delete(id string) error
	NextSequence() (int64, error)
}
