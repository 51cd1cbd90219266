package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"
	MovementTypeOUT        = "OUT"
	MovementTypeADJUSTMENT = "ADJUSTMENT"
)

// MaterialMovement representa un movimiento de stock contra un material.
// Quantity se guarda con signo: positivo para entradas, negativo para salidas.
// StockAfter es el snapshot del stock resultante, tomado dentro de la misma
// transacción que actualizó el contador del material.
type MaterialMovement struct {
	ID         string
	MaterialID string
	Type       string // IN, OUT, ADJUSTMENT
	Quantity   decimal.Decimal
	Unit       string
	Reason     string
	Reference  string // orden de producción, nota de ajuste, etc.
	StockAfter decimal.Decimal
	CreatedBy  string // UserID
	CreatedAt  time.Time
}

// ValidMovementType indica si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}
