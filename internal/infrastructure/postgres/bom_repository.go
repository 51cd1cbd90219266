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

var _ repository.BOMRepository = (*BOMRepo)(nil)

const bomColumns = `id, machine_id, material_id, quantity, unit, position, notes, created_at, updated_at`

// BOMRepo implementación del puerto BOMRepository sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador de persistencia para líneas de BOM.
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Create persiste una línea de BOM. El par (machine_id, material_id) es único.
func (r *BOMRepo) Create(item *entity.BOMItem) error {
	query := `
		INSERT INTO bom_items (` + bomColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.MachineID, item.MaterialID, item.Quantity, item.Unit,
		item.Position, item.Notes, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert bom item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de BOM por ID; nil si no existe.
func (r *BOMRepo) GetByID(id string) (*entity.BOMItem, error) {
	query := `SELECT ` + bomColumns + ` FROM bom_items WHERE id = $1`
	var b entity.BOMItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.MachineID, &b.MaterialID, &b.Quantity, &b.Unit,
		&b.Position, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom item: %w", err)
	}
	return &b, nil
}

// ListByMachine lista las líneas de BOM de una máquina.
func (r *BOMRepo) ListByMachine(machineID string) ([]*entity.BOMItem, error) {
	query := `SELECT ` + bomColumns + ` FROM bom_items WHERE machine_id = $1 ORDER BY position, created_at`
	rows, err := r.q.Query(context.Background(), query, machineID)
	if err != nil {
		return nil, fmt.Errorf("list bom items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMItem
	for rows.Next() {
		var b entity.BOMItem
		if err := rows.Scan(
			&b.ID, &b.MachineID, &b.MaterialID, &b.Quantity, &b.Unit,
			&b.Position, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bom item: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Delete elimina una línea de BOM.
func (r *BOMRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM bom_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bom item: %w", err)
	}
	return nil
}
