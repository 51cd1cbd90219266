package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderMaterialInput línea de material requerido al crear la orden.
type WorkOrderMaterialInput struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
}

// CreateWorkOrderRequest alta de orden de producción. El número de orden lo
// genera el servidor; el cliente nunca lo envía.
type CreateWorkOrderRequest struct {
	MachineID  string                   `json:"machine_id"`
	AssignedTo string                   `json:"assigned_to"`
	Priority   string                   `json:"priority"`
	Quantity   decimal.Decimal          `json:"quantity"`
	DueDate    *time.Time               `json:"due_date"`
	Notes      string                   `json:"notes"`
	Materials  []WorkOrderMaterialInput `json:"materials"`
}

// UpdateWorkOrderRequest patch parcial; Status pasa por la máquina de estados.
type UpdateWorkOrderRequest struct {
	Status     *string          `json:"status"`
	Priority   *string          `json:"priority"`
	AssignedTo *string          `json:"assigned_to"`
	Quantity   *decimal.Decimal `json:"quantity"`
	DueDate    *time.Time       `json:"due_date"`
	Notes      *string          `json:"notes"`
}

// WorkOrderMaterialResponse línea de material de la orden.
type WorkOrderMaterialResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       string          `json:"unit"`
}

// WorkOrderResponse proyección de la orden.
type WorkOrderResponse struct {
	ID          string                      `json:"id"`
	OrderNumber string                      `json:"order_number"`
	Status      string                      `json:"status"`
	Priority    string                      `json:"priority"`
	Quantity    decimal.Decimal             `json:"quantity"`
	MachineID   string                      `json:"machine_id"`
	AssignedTo  string                      `json:"assigned_to,omitempty"`
	DueDate     *time.Time                  `json:"due_date,omitempty"`
	Notes       string                      `json:"notes,omitempty"`
	CreatedBy   string                      `json:"created_by"`
	StartedAt   *time.Time                  `json:"started_at,omitempty"`
	CompletedAt *time.Time                  `json:"completed_at,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
	Materials   []WorkOrderMaterialResponse `json:"materials,omitempty"`
}
