package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pro/internal/domain/entity"
)

// MaterialFilter filtros opcionales para listados de materiales.
type MaterialFilter struct {
	Category string
	LowStock bool // solo materiales con current_stock <= min_stock
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro
// de una transacción del motor de movimientos.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	GetForUpdate(id string) (*entity.Material, error)
	Update(material *entity.Material) error
	UpdateStock(id string, stock decimal.Decimal) error
	List(filter MaterialFilter, limit, offset int) ([]*entity.Material, error)
	Delete(id string) error
}
