package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, material_id, movement_type, quantity, unit, reason,
	reference, stock_after, created_by, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Los movimientos son inmutables: solo inserción y lectura.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(mov *entity.MaterialMovement) error {
	query := `
		INSERT INTO material_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.MaterialID, mov.Type, mov.Quantity, mov.Unit,
		mov.Reason, mov.Reference, mov.StockAfter, mov.CreatedBy, mov.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.MaterialMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM material_movements WHERE id = $1`
	var m entity.MaterialMovement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.Unit,
		&m.Reason, &m.Reference, &m.StockAfter, &m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista movimientos del más reciente al más antiguo, con filtros opcionales.
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.MaterialMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM material_movements`
	args := []any{}
	where := ""
	if filter.MaterialID != "" {
		args = append(args, filter.MaterialID)
		where = fmt.Sprintf(` WHERE material_id = $%d`, len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		if where == "" {
			where = fmt.Sprintf(` WHERE movement_type = $%d`, len(args))
		} else {
			where += fmt.Sprintf(` AND movement_type = $%d`, len(args))
		}
	}
	query += where + fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialMovement
	for rows.Next() {
		var m entity.MaterialMovement
		if err := rows.Scan(
			&m.ID, &m.MaterialID, &m.Type, &m.Quantity, &m.Unit,
			&m.Reason, &m.Reference, &m.StockAfter, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
