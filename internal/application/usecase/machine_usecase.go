package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// MachineUseCase CRUD de máquinas y gestión de su BOM.
type MachineUseCase struct {
	machineRepo  repository.MachineRepository
	bomRepo      repository.BOMRepository
	materialRepo repository.MaterialRepository
}

// NewMachineUseCase construye el caso de uso.
func NewMachineUseCase(machineRepo repository.MachineRepository, bomRepo repository.BOMRepository, materialRepo repository.MaterialRepository) *MachineUseCase {
	return &MachineUseCase{machineRepo: machineRepo, bomRepo: bomRepo, materialRepo: materialRepo}
}

// Create valida y persiste una máquina nueva.
func (uc *MachineUseCase) Create(in dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.MachineStatusActive
	}
	if !entity.ValidMachineStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	machine := &entity.Machine{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		Category:       in.Category,
		MachineType:    in.MachineType,
		Status:         status,
		Specifications: in.Specifications,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.machineRepo.Create(machine); err != nil {
		return nil, err
	}
	return toMachineResponse(machine), nil
}

// GetByID obtiene una máquina o ErrNotFound.
func (uc *MachineUseCase) GetByID(id string) (*dto.MachineResponse, error) {
	machine, err := uc.machineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	return toMachineResponse(machine), nil
}

// List lista máquinas con paginación.
func (uc *MachineUseCase) List(page dto.PageRequest) ([]*dto.MachineResponse, error) {
	page.DefaultPage()
	machines, err := uc.machineRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MachineResponse, 0, len(machines))
	for _, m := range machines {
		out = append(out, toMachineResponse(m))
	}
	return out, nil
}

// Update aplica un patch parcial y refresca updated_at.
func (uc *MachineUseCase) Update(id string, in dto.UpdateMachineRequest) (*dto.MachineResponse, error) {
	machine, err := uc.machineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		machine.Name = *in.Name
	}
	if in.Category != nil {
		machine.Category = *in.Category
	}
	if in.MachineType != nil {
		machine.MachineType = *in.MachineType
	}
	if in.Status != nil {
		if !entity.ValidMachineStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		machine.Status = *in.Status
	}
	if in.Specifications != nil {
		machine.Specifications = *in.Specifications
	}
	machine.UpdatedAt = time.Now().UTC()
	if err := uc.machineRepo.Update(machine); err != nil {
		return nil, err
	}
	return toMachineResponse(machine), nil
}

// Delete elimina una máquina; referenciada por órdenes -> ErrConflict.
func (uc *MachineUseCase) Delete(id string) error {
	machine, err := uc.machineRepo.GetByID(id)
	if err != nil {
		return err
	}
	if machine == nil {
		return domain.ErrNotFound
	}
	return uc.machineRepo.Delete(id)
}

// GetBOM lista las líneas de BOM de la máquina.
func (uc *MachineUseCase) GetBOM(machineID string) ([]*dto.BOMItemResponse, error) {
	machine, err := uc.machineRepo.GetByID(machineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.bomRepo.ListByMachine(machineID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BOMItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toBOMItemResponse(it))
	}
	return out, nil
}

// AddBOMItem agrega una línea al BOM validando que máquina y material existan.
func (uc *MachineUseCase) AddBOMItem(machineID string, in dto.AddBOMItemRequest) (*dto.BOMItemResponse, error) {
	if in.MaterialID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	machine, err := uc.machineRepo.GetByID(machineID)
	if err != nil {
		return nil, err
	}
	if machine == nil {
		return nil, domain.ErrNotFound
	}
	material, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	unit := in.Unit
	if unit == "" {
		unit = material.Unit
	}
	now := time.Now().UTC()
	item := &entity.BOMItem{
		ID:         uuid.New().String(),
		MachineID:  machineID,
		MaterialID: in.MaterialID,
		Quantity:   in.Quantity,
		Unit:       unit,
		Position:   in.Position,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.bomRepo.Create(item); err != nil {
		return nil, err
	}
	return toBOMItemResponse(item), nil
}

// DeleteBOMItem elimina una línea de BOM.
func (uc *MachineUseCase) DeleteBOMItem(itemID string) error {
	item, err := uc.bomRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.bomRepo.Delete(itemID)
}

func toMachineResponse(m *entity.Machine) *dto.MachineResponse {
	return &dto.MachineResponse{
		ID:             m.ID,
		Code:           m.Code,
		Name:           m.Name,
		Category:       m.Category,
		MachineType:    m.MachineType,
		Status:         m.Status,
		Specifications: m.Specifications,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBOMItemResponse(it *entity.BOMItem) *dto.BOMItemResponse {
	return &dto.BOMItemResponse{
		ID:         it.ID,
		MachineID:  it.MachineID,
		MaterialID: it.MaterialID,
		Quantity:   it.Quantity,
		Unit:       it.Unit,
		Position:   it.Position,
		Notes:      it.Notes,
		CreatedAt:  it.CreatedAt,
	}
}
