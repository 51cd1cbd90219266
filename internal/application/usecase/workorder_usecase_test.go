package usecase_test

import (
	"context"
	"fmt"
	"regexp"
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

func buildWorkOrderUC(t *testing.T) (*usecase.WorkOrderUseCase, *fakeWorkOrderRepo, *fakeMaterialRepo, *fakeTxRunner) {
	t.Helper()
	orderRepo := newFakeWorkOrderRepo()
	machineRepo := newFakeMachineRepo()
	require.NoError(t, machineRepo.Create(activeMachine("maq-1")))

	materialRepo := newFakeMaterialRepo()
	now := time.Now().UTC()
	require.NoError(t, materialRepo.Create(&entity.Material{
		ID: "mat-1", Code: "MAT001", Name: "Acero", Unit: "kg",
		CurrentStock: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now,
	}))

	runner := newFakeTxRunner(materialRepo, orderRepo)
	return usecase.NewWorkOrderUseCase(orderRepo, machineRepo, runner), orderRepo, materialRepo, runner
}

func TestWorkOrderCreate_NumeroDesdeSecuencia(t *testing.T) {
	uc, _, _, _ := buildWorkOrderUC(t)

	pattern := regexp.MustCompile(fmt.Sprintf(`^WO-%d-\d{4}$`, time.Now().UTC().Year()))

	first, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	second, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	assert.Regexp(t, pattern, first.OrderNumber)
	assert.Regexp(t, pattern, second.OrderNumber)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber,
		"la secuencia nunca repite números, incluso tras borrados")
	assert.Equal(t, entity.WOStatusPlanned, first.Status, "toda orden nace PLANNED")
}

func TestWorkOrderCreate_MaquinaInexistente(t *testing.T) {
	uc, _, _, _ := buildWorkOrderUC(t)

	_, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "no-existe", Quantity: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkOrderUpdate_TransicionesDeEstado(t *testing.T) {
	uc, _, _, _ := buildWorkOrderUC(t)

	created, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	// PLANNED -> COMPLETED directo no está permitido
	completed := entity.WOStatusCompleted
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &completed})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// PLANNED -> IN_PROGRESS sí, y fija started_at
	inProgress := entity.WOStatusInProgress
	out, err := uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusInProgress, out.Status)
	require.NotNil(t, out.StartedAt)

	// IN_PROGRESS -> PLANNED (retroceso) no está permitido
	planned := entity.WOStatusPlanned
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &planned})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestWorkOrderComplete_DescuentaMateriales(t *testing.T) {
	uc, _, materialRepo, _ := buildWorkOrderUC(t)

	created, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
		Materials: []dto.WorkOrderMaterialInput{
			{MaterialID: "mat-1", Quantity: decimal.NewFromInt(40), Unit: "kg"},
		},
	})
	require.NoError(t, err)

	inProgress := entity.WOStatusInProgress
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &inProgress})
	require.NoError(t, err)

	out, err := uc.Complete(context.Background(), "user-1", created.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.WOStatusCompleted, out.Status)
	require.NotNil(t, out.CompletedAt)

	mat, err := materialRepo.GetByID("mat-1")
	require.NoError(t, err)
	assert.True(t, mat.CurrentStock.Equal(decimal.NewFromInt(60)),
		"completar la orden descuenta sus materiales del stock")
}

func TestWorkOrderComplete_SinStock_NoCambiaEstado(t *testing.T) {
	uc, orderRepo, materialRepo, _ := buildWorkOrderUC(t)

	created, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
		Materials: []dto.WorkOrderMaterialInput{
			{MaterialID: "mat-1", Quantity: decimal.NewFromInt(500), Unit: "kg"},
		},
	})
	require.NoError(t, err)

	inProgress := entity.WOStatusInProgress
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &inProgress})
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), "user-1", created.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, err := orderRepo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusInProgress, stored.Status,
		"si el descuento falla la orden sigue IN_PROGRESS")

	mat, err := materialRepo.GetByID("mat-1")
	require.NoError(t, err)
	assert.True(t, mat.CurrentStock.Equal(decimal.NewFromInt(100)), "el stock no debe cambiar")
}

// El cierre es una única transacción: si la actualización de la orden falla
// después de descontar materiales, el descuento se revierte, y el reintento
// descuenta exactamente una vez.
func TestWorkOrderComplete_FalloEnUpdate_NoDescuentaDosVeces(t *testing.T) {
	uc, orderRepo, materialRepo, runner := buildWorkOrderUC(t)

	created, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
		Materials: []dto.WorkOrderMaterialInput{
			{MaterialID: "mat-1", Quantity: decimal.NewFromInt(20), Unit: "kg"},
		},
	})
	require.NoError(t, err)

	inProgress := entity.WOStatusInProgress
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &inProgress})
	require.NoError(t, err)

	// primer intento: el Update de la orden falla dentro de la transacción
	orderRepo.failUpdates = 1
	_, err = uc.Complete(context.Background(), "user-1", created.ID)
	require.Error(t, err)

	mat, err := materialRepo.GetByID("mat-1")
	require.NoError(t, err)
	assert.True(t, mat.CurrentStock.Equal(decimal.NewFromInt(100)),
		"el fallo revierte también los descuentos de stock")

	stored, err := orderRepo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusInProgress, stored.Status)
	assert.Empty(t, runner.sink.created, "ningún movimiento sobrevive al rollback")

	// reintento: descuenta una sola vez
	out, err := uc.Complete(context.Background(), "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WOStatusCompleted, out.Status)

	mat, err = materialRepo.GetByID("mat-1")
	require.NoError(t, err)
	assert.True(t, mat.CurrentStock.Equal(decimal.NewFromInt(80)),
		"tras el reintento el stock refleja un único consumo")
	assert.Len(t, runner.sink.created, 1)
}

func TestWorkOrderComplete_DesdePlanned_NoPermitido(t *testing.T) {
	uc, _, _, _ := buildWorkOrderUC(t)

	created, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = uc.Complete(context.Background(), "user-1", created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"una orden PLANNED debe iniciarse antes de completarse")
}

func TestWorkOrderDelete_SoloNoIniciadas(t *testing.T) {
	uc, _, _, _ := buildWorkOrderUC(t)

	created, err := uc.Create("user-1", dto.CreateWorkOrderRequest{
		MachineID: "maq-1", Quantity: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	inProgress := entity.WOStatusInProgress
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &inProgress})
	require.NoError(t, err)

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "una orden en curso no se borra")

	cancelled := entity.WOStatusCancelled
	_, err = uc.Update(created.ID, dto.UpdateWorkOrderRequest{Status: &cancelled})
	require.NoError(t, err)

	assert.NoError(t, uc.Delete(created.ID), "una orden cancelada sí se puede borrar")
}
