package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMachineRequest alta de máquina.
type CreateMachineRequest struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	MachineType    string `json:"machine_type"`
	Status         string `json:"status"`
	Specifications string `json:"specifications"`
}

// UpdateMachineRequest patch parcial de máquina.
type UpdateMachineRequest struct {
	Name           *string `json:"name"`
	Category       *string `json:"category"`
	MachineType    *string `json:"machine_type"`
	Status         *string `json:"status"`
	Specifications *string `json:"specifications"`
}

// MachineResponse proyección de la máquina.
type MachineResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	MachineType    string    `json:"machine_type"`
	Status         string    `json:"status"`
	Specifications string    `json:"specifications,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AddBOMItemRequest agrega una línea al BOM de una máquina.
type AddBOMItemRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Position   string          `json:"position"`
	Notes      string          `json:"notes"`
}

// BOMItemResponse proyección de una línea de BOM.
type BOMItemResponse struct {
	ID         string          `json:"id"`
	MachineID  string          `json:"machine_id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
	Position   string          `json:"position,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
