package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMItem es una línea de la lista de materiales (BOM) de una máquina:
// qué material consume y en qué cantidad por unidad producida.
type BOMItem struct {
	ID         string
	MachineID  string
	MaterialID string
	Quantity   decimal.Decimal
	Unit       string
	Position   string // posición o referencia dentro del ensamble
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
