package usecase_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
	"github.com/tu-usuario/planta-pro/internal/domain"
)

func TestMaterialCreate_GeneraIDYTimestamps(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := usecase.NewMaterialUseCase(repo)

	out, err := uc.Create(dto.CreateMaterialRequest{
		Code:         "MAT001",
		Name:         "Lámina de acero",
		Unit:         "kg",
		CurrentStock: decimal.NewFromInt(100),
		MinStock:     decimal.NewFromInt(20),
		UnitPrice:    decimal.NewFromFloat(4.25),
	})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(out.ID)
	assert.NoError(t, parseErr, "el ID debe ser un UUID, no un consecutivo")
	assert.False(t, out.CreatedAt.IsZero())
	assert.Equal(t, out.CreatedAt, out.UpdatedAt, "en el alta created_at == updated_at")
	assert.False(t, out.LowStock, "100 > 20 no es stock crítico")
}

func TestMaterialCreate_Validaciones(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	cases := []dto.CreateMaterialRequest{
		{Name: "sin código", Unit: "kg"},
		{Code: "MAT001", Unit: "kg"},
		{Code: "MAT001", Name: "sin unidad"},
		{Code: "MAT001", Name: "stock negativo", Unit: "kg", CurrentStock: decimal.NewFromInt(-1)},
		{Code: "MAT001", Name: "precio negativo", Unit: "kg", UnitPrice: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := uc.Create(in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada inválida: %+v", in)
	}
}

func TestMaterialCreate_CodigoDuplicado(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	in := dto.CreateMaterialRequest{Code: "MAT001", Name: "Acero", Unit: "kg"}
	_, err := uc.Create(in)
	require.NoError(t, err)

	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMaterialUpdate_PatchParcial(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	created, err := uc.Create(dto.CreateMaterialRequest{
		Code: "MAT001", Name: "Acero", Category: "metales", Unit: "kg",
		UnitPrice: decimal.NewFromFloat(4.25),
	})
	require.NoError(t, err)

	newName := "Acero inoxidable"
	out, err := uc.Update(created.ID, dto.UpdateMaterialRequest{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Acero inoxidable", out.Name)
	assert.Equal(t, "metales", out.Category, "los campos ausentes del patch no cambian")
	assert.True(t, out.UnitPrice.Equal(decimal.NewFromFloat(4.25)))
}

// El proveedor distingue tres estados en el patch: ausente (no tocar), string
// (asignar) y null explícito (desasociar).
func TestMaterialUpdate_ProveedorAsignaYDesasocia(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	created, err := uc.Create(dto.CreateMaterialRequest{Code: "MAT001", Name: "Acero", Unit: "kg"})
	require.NoError(t, err)

	supplier := "prov-1"
	out, err := uc.Update(created.ID, dto.UpdateMaterialRequest{
		SupplierID: dto.NullString{Set: true, Value: &supplier},
	})
	require.NoError(t, err)
	require.NotNil(t, out.SupplierID)
	assert.Equal(t, "prov-1", *out.SupplierID)

	// patch sin la clave: el proveedor queda intacto
	out, err = uc.Update(created.ID, dto.UpdateMaterialRequest{})
	require.NoError(t, err)
	require.NotNil(t, out.SupplierID, "un patch sin supplier_id no desasocia")

	// null explícito: desasocia
	out, err = uc.Update(created.ID, dto.UpdateMaterialRequest{
		SupplierID: dto.NullString{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, out.SupplierID, "supplier_id: null debe limpiar el proveedor")
}

func TestMaterialUpdate_PatchVacioSoloRefrescaUpdatedAt(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	created, err := uc.Create(dto.CreateMaterialRequest{Code: "MAT001", Name: "Acero", Unit: "kg"})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateMaterialRequest{})
	require.NoError(t, err)

	assert.Equal(t, created.Name, out.Name)
	assert.Equal(t, created.Code, out.Code)
	assert.False(t, out.UpdatedAt.Before(created.UpdatedAt))
}

func TestMaterialUpdate_NoExiste(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	_, err := uc.Update(uuid.New().String(), dto.UpdateMaterialRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialDelete_NoExiste(t *testing.T) {
	uc := usecase.NewMaterialUseCase(newFakeMaterialRepo())

	err := uc.Delete(uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterialList_FiltroStockCritico(t *testing.T) {
	repo := newFakeMaterialRepo()
	uc := usecase.NewMaterialUseCase(repo)

	_, err := uc.Create(dto.CreateMaterialRequest{
		Code: "MAT001", Name: "Con stock", Unit: "kg",
		CurrentStock: decimal.NewFromInt(100), MinStock: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateMaterialRequest{
		Code: "MAT002", Name: "Crítico", Unit: "kg",
		CurrentStock: decimal.NewFromInt(5), MinStock: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateMaterialRequest{
		Code: "MAT003", Name: "Justo en el mínimo", Unit: "kg",
		CurrentStock: decimal.NewFromInt(20), MinStock: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	out, err := uc.List(materialLowStockFilter(), dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, out, 2, "stock == mínimo también cuenta como crítico")
	for _, m := range out {
		assert.True(t, m.LowStock)
	}
}
