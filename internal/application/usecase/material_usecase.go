package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// MaterialUseCase CRUD de materiales. El stock se modifica únicamente vía el
// motor de movimientos; aquí solo se fija el stock inicial en el alta.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create valida y persiste un material nuevo con ID UUID y timestamps.
func (uc *MaterialUseCase) Create(in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if in.Code == "" || in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CurrentStock.IsNegative() || in.MinStock.IsNegative() || in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	material := &entity.Material{
		ID:           uuid.New().String(),
		Code:         in.Code,
		Name:         in.Name,
		Category:     in.Category,
		Unit:         in.Unit,
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		UnitPrice:    in.UnitPrice,
		SupplierID:   in.SupplierID,
		Location:     in.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material o ErrNotFound.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toMaterialResponse(material), nil
}

// List lista materiales con filtros y paginación.
func (uc *MaterialUseCase) List(filter repository.MaterialFilter, page dto.PageRequest) ([]*dto.MaterialResponse, error) {
	page.DefaultPage()
	materials, err := uc.repo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toMaterialResponse(m))
	}
	return out, nil
}

// Update aplica un patch parcial: solo los campos presentes en el request se
// copian sobre el registro. Un patch vacío únicamente refresca updated_at.
func (uc *MaterialUseCase) Update(id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.Category != nil {
		material.Category = *in.Category
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		material.MaxStock = *in.MaxStock
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		material.UnitPrice = *in.UnitPrice
	}
	if in.SupplierID.Set {
		// null explícito desasocia el proveedor
		material.SupplierID = in.SupplierID.Value
	}
	if in.Location != nil {
		material.Location = *in.Location
	}
	material.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina un material. Material referenciado por BOM u órdenes ->
// ErrConflict (violación FK mapeada en el repositorio).
func (uc *MaterialUseCase) Delete(id string) error {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Category:     m.Category,
		Unit:         m.Unit,
		CurrentStock: m.CurrentStock,
		MinStock:     m.MinStock,
		MaxStock:     m.MaxStock,
		UnitPrice:    m.UnitPrice,
		SupplierID:   m.SupplierID,
		Location:     m.Location,
		LowStock:     m.IsLowStock(),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
