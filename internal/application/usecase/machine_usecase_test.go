package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
	"github.com/tu-usuario/planta-pro/internal/domain"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
)

func buildMachineUC(t *testing.T) *usecase.MachineUseCase {
	t.Helper()
	machineRepo := newFakeMachineRepo()
	require.NoError(t, machineRepo.Create(activeMachine("maq-1")))

	materialRepo := newFakeMaterialRepo()
	now := time.Now().UTC()
	require.NoError(t, materialRepo.Create(&entity.Material{
		ID: "mat-1", Code: "MAT001", Name: "Acero", Unit: "kg",
		CreatedAt: now, UpdatedAt: now,
	}))
	return usecase.NewMachineUseCase(machineRepo, newFakeBOMRepo(), materialRepo)
}

func TestMachineCreate_EstadoPorDefecto(t *testing.T) {
	uc := buildMachineUC(t)

	out, err := uc.Create(dto.CreateMachineRequest{Code: "MAQ002", Name: "Torno CNC"})
	require.NoError(t, err)
	assert.Equal(t, entity.MachineStatusActive, out.Status,
		"sin estado explícito la máquina nace ACTIVE")
	assert.NotEmpty(t, out.ID)

	_, err = uc.Create(dto.CreateMachineRequest{Code: "MAQ003", Name: "Prensa", Status: "ENCENDIDA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMachineAddBOMItem_UnidadDelMaterial(t *testing.T) {
	uc := buildMachineUC(t)

	item, err := uc.AddBOMItem("maq-1", dto.AddBOMItemRequest{
		MaterialID: "mat-1", Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "kg", item.Unit, "sin unidad explícita se hereda la del material")
	assert.Equal(t, "maq-1", item.MachineID)
}

func TestMachineAddBOMItem_ParRepetido(t *testing.T) {
	uc := buildMachineUC(t)

	_, err := uc.AddBOMItem("maq-1", dto.AddBOMItemRequest{
		MaterialID: "mat-1", Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	_, err = uc.AddBOMItem("maq-1", dto.AddBOMItemRequest{
		MaterialID: "mat-1", Quantity: decimal.NewFromInt(5),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"un material solo aparece una vez en el BOM de cada máquina")
}

func TestMachineAddBOMItem_Inexistentes(t *testing.T) {
	uc := buildMachineUC(t)

	_, err := uc.AddBOMItem("no-existe", dto.AddBOMItemRequest{
		MaterialID: "mat-1", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AddBOMItem("maq-1", dto.AddBOMItemRequest{
		MaterialID: "no-existe", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.AddBOMItem("maq-1", dto.AddBOMItemRequest{
		MaterialID: "mat-1", Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMachineDeleteBOMItem(t *testing.T) {
	uc := buildMachineUC(t)

	item, err := uc.AddBOMItem("maq-1", dto.AddBOMItemRequest{
		MaterialID: "mat-1", Quantity: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteBOMItem(item.ID))

	bom, err := uc.GetBOM("maq-1")
	require.NoError(t, err)
	assert.Empty(t, bom)

	assert.ErrorIs(t, uc.DeleteBOMItem(item.ID), domain.ErrNotFound)
}
