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

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

const workOrderColumns = `id, order_number, status, priority, quantity, machine_id,
	assigned_to, due_date, notes, created_by, started_at, completed_at, created_at, updated_at`

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre PostgreSQL.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador de persistencia para órdenes.
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// NextSequence consume la secuencia de numeración de órdenes.
func (r *WorkOrderRepo) NextSequence() (int64, error) {
	var seq int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('work_order_seq')`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next work order sequence: %w", err)
	}
	return seq, nil
}

// Create persiste la orden y sus líneas de material.
func (r *WorkOrderRepo) Create(order *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.Status, order.Priority, order.Quantity,
		order.MachineID, nullableStr(order.AssignedTo), order.DueDate, order.Notes,
		order.CreatedBy, order.StartedAt, order.CompletedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	for i := range order.Materials {
		if err := r.insertMaterial(&order.Materials[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *WorkOrderRepo) insertMaterial(line *entity.WorkOrderMaterial) error {
	query := `
		INSERT INTO work_order_materials (id, work_order_id, material_id, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.WorkOrderID, line.MaterialID, line.Quantity, line.Unit,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert work order material: %w", err)
	}
	return nil
}

// GetByID obtiene una orden con sus líneas de material; nil si no existe.
func (r *WorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para que el
// cierre transaccional no compita con otro cierre o cancelación concurrente.
func (r *WorkOrderRepo) GetForUpdate(id string) (*entity.WorkOrder, error) {
	return r.get(id, true)
}

func (r *WorkOrderRepo) get(id string, forUpdate bool) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.WorkOrder
	var assignedTo *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.Status, &o.Priority, &o.Quantity, &o.MachineID,
		&assignedTo, &o.DueDate, &o.Notes, &o.CreatedBy,
		&o.StartedAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if assignedTo != nil {
		o.AssignedTo = *assignedTo
	}

	lines, err := r.listMaterials(o.ID)
	if err != nil {
		return nil, err
	}
	o.Materials = lines
	return &o, nil
}

func (r *WorkOrderRepo) listMaterials(orderID string) ([]entity.WorkOrderMaterial, error) {
	query := `
		SELECT id, work_order_id, material_id, quantity, unit
		FROM work_order_materials WHERE work_order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list work order materials: %w", err)
	}
	defer rows.Close()
	var lines []entity.WorkOrderMaterial
	for rows.Next() {
		var l entity.WorkOrderMaterial
		if err := rows.Scan(&l.ID, &l.WorkOrderID, &l.MaterialID, &l.Quantity, &l.Unit); err != nil {
			return nil, fmt.Errorf("scan work order material: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// Update actualiza la cabecera de la orden; las líneas son inmutables.
func (r *WorkOrderRepo) Update(order *entity.WorkOrder) error {
	query := `
		UPDATE work_orders
		SET status = $2, priority = $3, quantity = $4, assigned_to = $5,
		    due_date = $6, notes = $7, started_at = $8, completed_at = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.Priority, order.Quantity,
		nullableStr(order.AssignedTo), order.DueDate, order.Notes,
		order.StartedAt, order.CompletedAt, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update work order: %w", err)
	}
	return nil
}

// List lista órdenes sin sus líneas, opcionalmente filtradas por estado.
func (r *WorkOrderRepo) List(status string, limit, offset int) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkOrder
	for rows.Next() {
		var o entity.WorkOrder
		var assignedTo *string
		if err := rows.Scan(
			&o.ID, &o.OrderNumber, &o.Status, &o.Priority, &o.Quantity, &o.MachineID,
			&assignedTo, &o.DueDate, &o.Notes, &o.CreatedBy,
			&o.StartedAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		if assignedTo != nil {
			o.AssignedTo = *assignedTo
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Delete elimina la orden y sus líneas.
func (r *WorkOrderRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM work_order_materials WHERE work_order_id = $1`, id); err != nil {
		return fmt.Errorf("delete work order materials: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM work_orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete work order: %w", err)
	}
	return nil
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
