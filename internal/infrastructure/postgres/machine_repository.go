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

var _ repository.MachineRepository = (*MachineRepo)(nil)

const machineColumns = `id, code, name, category, machine_type, status, specifications, created_at, updated_at`

// MachineRepo implementación del puerto MachineRepository sobre PostgreSQL.
type MachineRepo struct {
	q Querier
}

// NewMachineRepository construye el adaptador de persistencia para máquinas.
func NewMachineRepository(q Querier) *MachineRepo {
	return &MachineRepo{q: q}
}

// Create persiste una máquina nueva. Código duplicado -> ErrDuplicate.
func (r *MachineRepo) Create(m *entity.Machine) error {
	query := `
		INSERT INTO machines (` + machineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.Name, m.Category, m.MachineType,
		m.Status, m.Specifications, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert machine: %w", err)
	}
	return nil
}

// GetByID obtiene una máquina por ID; nil si no existe.
func (r *MachineRepo) GetByID(id string) (*entity.Machine, error) {
	return r.getOne(`SELECT `+machineColumns+` FROM machines WHERE id = $1`, id)
}

// GetByCode obtiene una máquina por código; nil si no existe.
func (r *MachineRepo) GetByCode(code string) (*entity.Machine, error) {
	return r.getOne(`SELECT `+machineColumns+` FROM machines WHERE code = $1`, code)
}

func (r *MachineRepo) getOne(query string, arg any) (*entity.Machine, error) {
	var m entity.Machine
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.MachineType,
		&m.Status, &m.Specifications, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get machine: %w", err)
	}
	return &m, nil
}

// Update actualiza una máquina existente.
func (r *MachineRepo) Update(m *entity.Machine) error {
	query := `
		UPDATE machines
		SET name = $2, category = $3, machine_type = $4, status = $5,
		    specifications = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Category, m.MachineType, m.Status,
		m.Specifications, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update machine: %w", err)
	}
	return nil
}

// List lista máquinas con paginación.
func (r *MachineRepo) List(limit, offset int) ([]*entity.Machine, error) {
	query := `SELECT ` + machineColumns + ` FROM machines ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Machine
	for rows.Next() {
		var m entity.Machine
		if err := rows.Scan(
			&m.ID, &m.Code, &m.Name, &m.Category, &m.MachineType,
			&m.Status, &m.Specifications, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan machine: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina una máquina. Referenciada por BOM u órdenes -> ErrConflict.
func (r *MachineRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM machines WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete machine: %w", err)
	}
	return nil
}
