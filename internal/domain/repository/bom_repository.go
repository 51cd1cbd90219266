package repository

import "github.com/tu-usuario/planta-pro/internal/domain/entity"

// BOMRepository define el puerto de persistencia para BOMItem (DIP).
type BOMRepository interface {
	Create(item *entity.BOMItem) error
	GetByID(id string) (*entity.BOMItem, error)
	ListByMachine(machineID string) ([]*entity.BOMItem, error)
	Delete(id string) error
}
