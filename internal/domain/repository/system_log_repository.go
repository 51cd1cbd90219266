package repository

import "github.com/tu-usuario/planta-pro/internal/domain/entity"

// SystemLogRepository define el puerto de persistencia para SystemLog (DIP).
type SystemLogRepository interface {
	Create(log *entity.SystemLog) error
	List(limit, offset int) ([]*entity.SystemLog, error)
	Clear() (int64, error)
}
