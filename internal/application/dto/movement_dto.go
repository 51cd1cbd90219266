package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest registro de un movimiento de stock.
// Quantity siempre positiva; el signo lo determina Type. Para ADJUSTMENT,
// Quantity puede ser negativa (ajuste a la baja).
type RegisterMovementRequest struct {
	MaterialID string          `json:"material_id"`
	Type       string          `json:"type"` // IN, OUT, ADJUSTMENT
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	Reference  string          `json:"reference"`
}

// MovementResponse proyección del movimiento.
type MovementResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Type       string          `json:"type"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Reason     string          `json:"reason,omitempty"`
	Reference  string          `json:"reference,omitempty"`
	StockAfter decimal.Decimal `json:"stock_after"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}
