package repository

import "github.com/tu-usuario/planta-pro/internal/domain/entity"

// MovementFilter filtros opcionales para listados de movimientos.
type MovementFilter struct {
	MaterialID string
	Type       string
}

// MovementRepository define el puerto de persistencia para MaterialMovement (DIP).
// Los movimientos son inmutables: no hay Update ni Delete.
type MovementRepository interface {
	Create(mov *entity.MaterialMovement) error
	GetByID(id string) (*entity.MaterialMovement, error)
	List(filter MovementFilter, limit, offset int) ([]*entity.MaterialMovement, error)
}
