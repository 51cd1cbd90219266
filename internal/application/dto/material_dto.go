package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest alta de material. CurrentStock es el stock inicial;
// después del alta el stock solo cambia vía movimientos.
type CreateMaterialRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierID   *string         `json:"supplier_id"`
	Location     string          `json:"location"`
}

// UpdateMaterialRequest patch parcial: solo los campos presentes se aplican
// (merge superficial sobre el registro existente). El stock no se toca aquí.
type UpdateMaterialRequest struct {
	Name       *string          `json:"name"`
	Category   *string          `json:"category"`
	Unit       *string          `json:"unit"`
	MinStock   *decimal.Decimal `json:"min_stock"`
	MaxStock   *decimal.Decimal `json:"max_stock"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	SupplierID NullString       `json:"supplier_id"`
	Location   *string          `json:"location"`
}

// MaterialResponse proyección del material.
type MaterialResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	Location     string          `json:"location,omitempty"`
	LowStock     bool            `json:"low_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
