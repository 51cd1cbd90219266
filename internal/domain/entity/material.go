package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima o insumo de planta.
// CurrentStock es el campo autoritativo; se actualiza en la misma transacción
// que inserta el movimiento correspondiente, nunca de forma independiente.
// Invariante: CurrentStock >= 0.
type Material struct {
	ID           string
	Code         string // código único (ej. MAT001)
	Name         string
	Category     string
	Unit         string // kg, m, unidad, litro...
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	MaxStock     decimal.Decimal
	UnitPrice    decimal.Decimal
	SupplierID   *string // proveedor principal, opcional
	Location     string  // ubicación física en bodega
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock indica si el material está en o por debajo del mínimo.
func (m *Material) IsLowStock() bool {
	return m.CurrentStock.LessThanOrEqual(m.MinStock)
}

// StockValue devuelve el valor del inventario del material (stock × precio unitario).
func (m *Material) StockValue() decimal.Decimal {
	return m.CurrentStock.Mul(m.UnitPrice)
}
