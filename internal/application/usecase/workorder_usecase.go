package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/inventory"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// WorkOrderUseCase gestiona el ciclo de vida de las órdenes de producción:
// alta con número de secuencia, máquina de estados y cierre con descarga de
// materiales vía el motor de movimientos.
type WorkOrderUseCase struct {
	orderRepo   repository.WorkOrderRepository
	machineRepo repository.MachineRepository
	txRunner    WorkOrderTxRunner
}

// NewWorkOrderUseCase construye el caso de uso.
func NewWorkOrderUseCase(orderRepo repository.WorkOrderRepository, machineRepo repository.MachineRepository, txRunner WorkOrderTxRunner) *WorkOrderUseCase {
	return &WorkOrderUseCase{orderRepo: orderRepo, machineRepo: machineRepo, txRunner: txRunner}
}

// Create valida la orden y la persiste con número WO-<año>-<seq> tomado de la
// secuencia de la DB (a prueba de concurrencia, sin reutilización tras borrados).
func (uc *WorkOrderUseCase) Create(createdBy string, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if in.MachineID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.WOPriorityNormal
	}
	if !entity.ValidWOPriority(priority) {
		return nil, domain.ErrInvalidInput
	}
	machine, err := uc.machineRepo.GetByID(in.MachineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}

	seq, err := uc.orderRepo.NextSequence()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	order := &entity.WorkOrder{
		ID:          uuid.New().String(),
		OrderNumber: fmt.Sprintf("WO-%d-%04d", now.Year(), seq),
		Status:      entity.WOStatusPlanned,
		Priority:    priority,
		Quantity:    in.Quantity,
		MachineID:   in.MachineID,
		AssignedTo:  in.AssignedTo,
		DueDate:     in.DueDate,
		Notes:       in.Notes,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, line := range in.Materials {
		if line.MaterialID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		order.Materials = append(order.Materials, entity.WorkOrderMaterial{
			ID:          uuid.New().String(),
			WorkOrderID: order.ID,
			MaterialID:  line.MaterialID,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
		})
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// GetByID obtiene una orden o ErrNotFound.
func (uc *WorkOrderUseCase) GetByID(id string) (*dto.WorkOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toWorkOrderResponse(order), nil
}

// List lista órdenes, opcionalmente filtradas por estado.
func (uc *WorkOrderUseCase) List(status string, page dto.PageRequest) ([]*dto.WorkOrderResponse, error) {
	if status != "" && !entity.ValidWOStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	orders, err := uc.orderRepo.List(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toWorkOrderResponse(o))
	}
	return out, nil
}

// Update aplica un patch parcial. Un cambio de Status pasa por la máquina de
// estados: transición inválida -> ErrInvalidTransition (409).
func (uc *WorkOrderUseCase) Update(id string, in dto.UpdateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	if in.Status != nil && *in.Status != order.Status {
		if !entity.ValidWOStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		if !entity.CanTransition(order.Status, *in.Status) {
			return nil, domain.ErrInvalidTransition
		}
		order.Status = *in.Status
		switch order.Status {
		case entity.WOStatusInProgress:
			order.StartedAt = &now
		case entity.WOStatusCompleted:
			order.CompletedAt = &now
		}
	}
	if in.Priority != nil {
		if !entity.ValidWOPriority(*in.Priority) {
			return nil, domain.ErrInvalidInput
		}
		order.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		order.AssignedTo = *in.AssignedTo
	}
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		order.Quantity = *in.Quantity
	}
	if in.DueDate != nil {
		order.DueDate = in.DueDate
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	order.UpdatedAt = now
	if err := uc.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return toWorkOrderResponse(order), nil
}

// Complete cierra una orden IN_PROGRESS en una ÚNICA transacción: bloquea la
// orden, descuenta sus materiales como salidas OUT y marca COMPLETED bajo el
// mismo Commit. Si algo falla, ni el stock ni el estado cambian; el reintento
// nunca descuenta dos veces.
func (uc *WorkOrderUseCase) Complete(ctx context.Context, userID, id string) (*dto.WorkOrderResponse, error) {
	var completed *entity.WorkOrder
	err := uc.txRunner.RunWorkOrder(ctx, func(
		movRepo repository.MovementRepository,
		materialRepo repository.MaterialRepository,
		orderRepo repository.WorkOrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(order.Status, entity.WOStatusCompleted) || order.Status == entity.WOStatusCompleted {
			return domain.ErrInvalidTransition
		}
		if err := inventory.IssueMaterials(movRepo, materialRepo, userID, order); err != nil {
			return err
		}
		now := time.Now().UTC()
		order.Status = entity.WOStatusCompleted
		order.CompletedAt = &now
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWorkOrderResponse(completed), nil
}

// Delete elimina una orden no iniciada. Órdenes IN_PROGRESS o COMPLETED no se
// borran (conservan la trazabilidad de consumos).
func (uc *WorkOrderUseCase) Delete(id string) error {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	if order.Status == entity.WOStatusInProgress || order.Status == entity.WOStatusCompleted {
		return domain.ErrConflict
	}
	return uc.orderRepo.Delete(id)
}

func toWorkOrderResponse(o *entity.WorkOrder) *dto.WorkOrderResponse {
	resp := &dto.WorkOrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Priority:    o.Priority,
		Quantity:    o.Quantity,
		MachineID:   o.MachineID,
		AssignedTo:  o.AssignedTo,
		DueDate:     o.DueDate,
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy,
		StartedAt:   o.StartedAt,
		CompletedAt: o.CompletedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, m := range o.Materials {
		resp.Materials = append(resp.Materials, dto.WorkOrderMaterialResponse{
			ID:         m.ID,
			MaterialID: m.MaterialID,
			Quantity:   m.Quantity,
			Unit:       m.Unit,
		})
	}
	return resp
}
