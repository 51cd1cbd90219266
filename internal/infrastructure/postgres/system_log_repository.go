package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

var _ repository.SystemLogRepository = (*SystemLogRepo)(nil)

// SystemLogRepo implementación del puerto SystemLogRepository sobre PostgreSQL.
type SystemLogRepo struct {
	q Querier
}

// NewSystemLogRepository construye el adaptador de persistencia para la bitácora.
func NewSystemLogRepository(q Querier) *SystemLogRepo {
	return &SystemLogRepo{q: q}
}

// Create persiste una entrada de bitácora.
func (r *SystemLogRepo) Create(log *entity.SystemLog) error {
	query := `
		INSERT INTO system_logs (id, level, action, detail, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.Level, log.Action, log.Detail, log.Actor, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert system log: %w", err)
	}
	return nil
}

// List lista entradas de bitácora de la más reciente a la más antigua.
func (r *SystemLogRepo) List(limit, offset int) ([]*entity.SystemLog, error) {
	query := `
		SELECT id, level, action, detail, actor, created_at
		FROM system_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list system logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SystemLog
	for rows.Next() {
		var l entity.SystemLog
		if err := rows.Scan(&l.ID, &l.Level, &l.Action, &l.Detail, &l.Actor, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan system log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Clear vacía la bitácora y devuelve cuántas entradas había.
func (r *SystemLogRepo) Clear() (int64, error) {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM system_logs`)
	if err != nil {
		return 0, fmt.Errorf("clear system logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
