package entity

import "time"

// Estados de máquina.
const (
	MachineStatusActive      = "active"
	MachineStatusMaintenance = "maintenance"
	MachineStatusInactive    = "inactive"
)

// Machine representa una máquina o centro de trabajo de la planta.
type Machine struct {
	ID             string
	Code           string // código único (ej. MAQ001)
	Name           string
	Category       string
	MachineType    string
	Status         string // active, maintenance, inactive
	Specifications string // texto libre
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidMachineStatus indica si el estado es uno de los conocidos.
func ValidMachineStatus(s string) bool {
	switch s {
	case MachineStatusActive, MachineStatusMaintenance, MachineStatusInactive:
		return true
	}
	return false
}
