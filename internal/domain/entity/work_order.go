package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de producción.
const (
	WOStatusPlanned    = "PLANNED"
	WOStatusInProgress = "IN_PROGRESS"
	WOStatusCompleted  = "COMPLETED"
	WOStatusCancelled  = "CANCELLED"
)

// Prioridades de orden.
const (
	WOPriorityLow    = "low"
	WOPriorityNormal = "normal"
	WOPriorityHigh   = "high"
	WOPriorityUrgent = "urgent"
)

// WorkOrder representa una orden de producción sobre una máquina, con su lista
// de materiales requeridos. OrderNumber se genera desde una secuencia de la DB
// (WO-<año>-<seq>), nunca por conteo de la colección.
type WorkOrder struct {
	ID          string
	OrderNumber string
	Status      string // PLANNED, IN_PROGRESS, COMPLETED, CANCELLED
	Priority    string // low, normal, high, urgent
	Quantity    decimal.Decimal
	MachineID   string
	AssignedTo  string // UserID del operario asignado
	DueDate     *time.Time
	Notes       string
	CreatedBy   string
	StartedAt   *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Materials []WorkOrderMaterial
}

// WorkOrderMaterial es una línea de material requerido por la orden.
type WorkOrderMaterial struct {
	ID          string
	WorkOrderID string
	MaterialID  string
	Quantity    decimal.Decimal
	Unit        string
}

// validTransitions define la máquina de estados de la orden. Los estados
// terminales (COMPLETED, CANCELLED) no admiten salida.
var validTransitions = map[string][]string{
	WOStatusPlanned:    {WOStatusInProgress, WOStatusCancelled},
	WOStatusInProgress: {WOStatusCompleted, WOStatusCancelled},
	WOStatusCompleted:  {},
	WOStatusCancelled:  {},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
// from == to se considera no-op permitido.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidWOStatus indica si el estado es uno de los conocidos.
func ValidWOStatus(s string) bool {
	_, ok := validTransitions[s]
	return ok
}

// ValidWOPriority indica si la prioridad es una de las conocidas.
func ValidWOPriority(p string) bool {
	switch p {
	case WOPriorityLow, WOPriorityNormal, WOPriorityHigh, WOPriorityUrgent:
		return true
	}
	return false
}
