package usecase_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// Fakes en memoria para la capa de casos de uso.

type fakeMaterialRepo struct {
	materials map[string]*entity.Material
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[string]*entity.Material)}
}

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	for _, existing := range r.materials {
		if existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	copied := *m
	r.materials[m.ID] = &copied
	return nil
}

func (r *fakeMaterialRepo) GetByID(id string) (*entity.Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMaterialRepo) GetByCode(code string) (*entity.Material, error) {
	for _, m := range r.materials {
		if m.Code == code {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	stored, ok := r.materials[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := stored.CurrentStock // Update nunca toca el stock
	copied := *m
	copied.CurrentStock = stock
	r.materials[m.ID] = &copied
	return nil
}

func (r *fakeMaterialRepo) UpdateStock(id string, stock decimal.Decimal) error {
	m, ok := r.materials[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.CurrentStock = stock
	return nil
}

func (r *fakeMaterialRepo) List(filter repository.MaterialFilter, limit, offset int) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, m := range r.materials {
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.LowStock && !m.IsLowStock() {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMaterialRepo) Delete(id string) error {
	delete(r.materials, id)
	return nil
}

type fakeMachineRepo struct {
	machines map[string]*entity.Machine
}

func newFakeMachineRepo() *fakeMachineRepo {
	return &fakeMachineRepo{machines: make(map[string]*entity.Machine)}
}

func (r *fakeMachineRepo) Create(m *entity.Machine) error {
	copied := *m
	r.machines[m.ID] = &copied
	return nil
}

func (r *fakeMachineRepo) GetByID(id string) (*entity.Machine, error) {
	m, ok := r.machines[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMachineRepo) GetByCode(string) (*entity.Machine, error) { return nil, nil }

func (r *fakeMachineRepo) Update(m *entity.Machine) error {
	copied := *m
	r.machines[m.ID] = &copied
	return nil
}

func (r *fakeMachineRepo) List(int, int) ([]*entity.Machine, error) { return nil, nil }
func (r *fakeMachineRepo) Delete(id string) error                   { delete(r.machines, id); return nil }

type fakeWorkOrderRepo struct {
	orders map[string]*entity.WorkOrder
	seq    int64
	// failUpdates hace fallar los próximos N Update; simula un error de DB
	// a mitad del cierre transaccional.
	failUpdates int
}

func newFakeWorkOrderRepo() *fakeWorkOrderRepo {
	return &fakeWorkOrderRepo{orders: make(map[string]*entity.WorkOrder)}
}

func (r *fakeWorkOrderRepo) NextSequence() (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeWorkOrderRepo) Create(o *entity.WorkOrder) error {
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *fakeWorkOrderRepo) GetByID(id string) (*entity.WorkOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *fakeWorkOrderRepo) GetForUpdate(id string) (*entity.WorkOrder, error) {
	return r.GetByID(id)
}

func (r *fakeWorkOrderRepo) Update(o *entity.WorkOrder) error {
	if r.failUpdates > 0 {
		r.failUpdates--
		return errUpdateFailed
	}
	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	copied := *o
	r.orders[o.ID] = &copied
	return nil
}

func (r *fakeWorkOrderRepo) List(status string, limit, offset int) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for _, o := range r.orders {
		if status != "" && o.Status != status {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeWorkOrderRepo) Delete(id string) error {
	delete(r.orders, id)
	return nil
}

type fakeBOMRepo struct {
	items map[string]*entity.BOMItem
}

func newFakeBOMRepo() *fakeBOMRepo {
	return &fakeBOMRepo{items: make(map[string]*entity.BOMItem)}
}

func (r *fakeBOMRepo) Create(item *entity.BOMItem) error {
	for _, existing := range r.items {
		if existing.MachineID == item.MachineID && existing.MaterialID == item.MaterialID {
			return domain.ErrDuplicate
		}
	}
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeBOMRepo) GetByID(id string) (*entity.BOMItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (r *fakeBOMRepo) ListByMachine(machineID string) ([]*entity.BOMItem, error) {
	var out []*entity.BOMItem
	for _, item := range r.items {
		if item.MachineID == machineID {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBOMRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

type fakeSystemLogRepo struct {
	logs []*entity.SystemLog
}

func (r *fakeSystemLogRepo) Create(log *entity.SystemLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeSystemLogRepo) List(limit, offset int) ([]*entity.SystemLog, error) {
	if offset >= len(r.logs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.logs) {
		end = len(r.logs)
	}
	return r.logs[offset:end], nil
}

func (r *fakeSystemLogRepo) Clear() (int64, error) {
	n := int64(len(r.logs))
	r.logs = nil
	return n, nil
}

var errUpdateFailed = errors.New("update falló")

// fakeTxRunner ejecuta el callback directamente sobre los repos en memoria,
// con snapshot previo y restauración en caso de error: reproduce la semántica
// todo-o-nada del runner real sin una DB.
type fakeTxRunner struct {
	materialRepo *fakeMaterialRepo
	orderRepo    *fakeWorkOrderRepo
	sink         *fakeMovementSink
}

func newFakeTxRunner(materialRepo *fakeMaterialRepo, orderRepo *fakeWorkOrderRepo) *fakeTxRunner {
	return &fakeTxRunner{
		materialRepo: materialRepo,
		orderRepo:    orderRepo,
		sink:         &fakeMovementSink{},
	}
}

func (r *fakeTxRunner) RunWorkOrder(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	materialRepo repository.MaterialRepository,
	orderRepo repository.WorkOrderRepository,
) error) error {
	stocks := make(map[string]decimal.Decimal, len(r.materialRepo.materials))
	for id, m := range r.materialRepo.materials {
		stocks[id] = m.CurrentStock
	}
	orders := make(map[string]*entity.WorkOrder, len(r.orderRepo.orders))
	for id, o := range r.orderRepo.orders {
		copied := *o
		orders[id] = &copied
	}
	issued := len(r.sink.created)

	if err := fn(r.sink, r.materialRepo, r.orderRepo); err != nil {
		for id, stock := range stocks {
			r.materialRepo.materials[id].CurrentStock = stock
		}
		r.orderRepo.orders = orders
		r.sink.created = r.sink.created[:issued]
		return err
	}
	return nil
}

type fakeMovementSink struct {
	created []*entity.MaterialMovement
}

func (r *fakeMovementSink) Create(mov *entity.MaterialMovement) error {
	r.created = append(r.created, mov)
	return nil
}

func (r *fakeMovementSink) GetByID(string) (*entity.MaterialMovement, error) { return nil, nil }
func (r *fakeMovementSink) List(repository.MovementFilter, int, int) ([]*entity.MaterialMovement, error) {
	return nil, nil
}

func materialLowStockFilter() repository.MaterialFilter {
	return repository.MaterialFilter{LowStock: true}
}

func activeMachine(id string) *entity.Machine {
	now := time.Now().UTC()
	return &entity.Machine{
		ID: id, Code: "MAQ001", Name: "Prensa hidráulica",
		Status: entity.MachineStatusActive, CreatedAt: now, UpdatedAt: now,
	}
}
