package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, code, name, category, unit, current_stock, min_stock, max_stock, unit_price, supplier_id, location, created_at, updated_at`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo. Código duplicado -> ErrDuplicate.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (` + materialColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.Name, m.Category, m.Unit,
		m.CurrentStock, m.MinStock, m.MaxStock, m.UnitPrice,
		m.SupplierID, m.Location, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID; nil si no existe.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetByCode obtiene un material por código; nil si no existe.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE code = $1`, code)
}

// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE). Solo tiene
// sentido dentro de una transacción; con pool directo el lock se libera solo.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.getOne(`SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *MaterialRepo) getOne(query string, arg any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.Unit,
		&m.CurrentStock, &m.MinStock, &m.MaxStock, &m.UnitPrice,
		&m.SupplierID, &m.Location, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// Update actualiza los campos editables del material. El stock no se toca aquí
// (se maneja vía UpdateStock dentro del motor de movimientos).
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials
		SET name = $2, category = $3, unit = $4, min_stock = $5, max_stock = $6,
		    unit_price = $7, supplier_id = $8, location = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Category, m.Unit, m.MinStock, m.MaxStock,
		m.UnitPrice, m.SupplierID, m.Location, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStock fija el contador de stock (usado por el motor de movimientos,
// dentro de la misma transacción que inserta el movimiento).
func (r *MaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET current_stock = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

// List lista materiales con filtros opcionales y paginación.
func (r *MaterialRepo) List(filter repository.MaterialFilter, limit, offset int) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE 1=1`
	args := []any{}
	idx := 1
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, filter.Category)
		idx++
	}
	if filter.LowStock {
		query += " AND current_stock <= min_stock"
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Name, &m.Category, &m.Unit,
			&m.CurrentStock, &m.MinStock, &m.MaxStock, &m.UnitPrice,
			&m.SupplierID, &m.Location, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un material. Referenciado por BOM, órdenes o movimientos -> ErrConflict.
func (r *MaterialRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}
