package inventory

import (
	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// MovementQueryUseCase consultas de lectura sobre el historial de movimientos.
type MovementQueryUseCase struct {
	movRepo repository.MovementRepository
}

// NewMovementQueryUseCase construye el caso de uso de consulta.
func NewMovementQueryUseCase(movRepo repository.MovementRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo}
}

// List lista movimientos con filtros opcionales por material y tipo.
func (uc *MovementQueryUseCase) List(filter repository.MovementFilter, page dto.PageRequest) ([]*dto.MovementResponse, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	movs, err := uc.movRepo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// GetByID obtiene un movimiento; nil si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return ToMovementResponse(m), nil
}

// ToMovementResponse proyecta la entidad al DTO de respuesta.
func ToMovementResponse(m *entity.MaterialMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:         m.ID,
		MaterialID: m.MaterialID,
		Type:       m.Type,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		Reason:     m.Reason,
		Reference:  m.Reference,
		StockAfter: m.StockAfter,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
	}
}
