package repository

import "github.com/tu-usuario/planta-pro/internal/domain/entity"

// MachineRepository define el puerto de persistencia para Machine (DIP).
type MachineRepository interface {
	Create(machine *entity.Machine) error
	GetByID(id string) (*entity.Machine, error)
	GetByCode(code string) (*entity.Machine, error)
	Update(machine *entity.Machine) error
	List(limit, offset int) ([]*entity.Machine, error)
	Delete(id string) error
}
