package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
)

func TestAdminRunMaintenance_RegistraEnBitacora(t *testing.T) {
	logRepo := &fakeSystemLogRepo{}
	uc := usecase.NewAdminUseCase(logRepo).WithDelay(0)

	require.NoError(t, uc.RunMaintenance(context.Background(), "backup", "admin@planta.local"))

	require.Len(t, logRepo.logs, 1)
	assert.Equal(t, "backup", logRepo.logs[0].Action)
	assert.Equal(t, entity.LogLevelInfo, logRepo.logs[0].Level)
	assert.Contains(t, logRepo.logs[0].Detail, "simulada",
		"la bitácora debe dejar claro que la operación es simulada")
}

func TestAdminRunMaintenance_RespetaCancelacion(t *testing.T) {
	logRepo := &fakeSystemLogRepo{}
	uc := usecase.NewAdminUseCase(logRepo).WithDelay(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := uc.RunMaintenance(ctx, "optimize", "admin@planta.local")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, logRepo.logs, "una operación cancelada no se registra")
}

func TestAdminClearLogs_DejaUnaEntrada(t *testing.T) {
	logRepo := &fakeSystemLogRepo{}
	for i := 0; i < 3; i++ {
		require.NoError(t, logRepo.Create(&entity.SystemLog{
			ID: uuid.New().String(), Level: entity.LogLevelInfo,
			Action: "login", CreatedAt: time.Now().UTC(),
		}))
	}
	uc := usecase.NewAdminUseCase(logRepo)

	removed, err := uc.ClearLogs("admin@planta.local")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	require.Len(t, logRepo.logs, 1, "tras limpiar queda solo la entrada de auditoría")
	assert.Equal(t, "clear_logs", logRepo.logs[0].Action)
}

func TestAdminListLogs_Paginacion(t *testing.T) {
	logRepo := &fakeSystemLogRepo{}
	for i := 0; i < 5; i++ {
		require.NoError(t, logRepo.Create(&entity.SystemLog{
			ID: uuid.New().String(), Level: entity.LogLevelInfo,
			Action: "login", CreatedAt: time.Now().UTC(),
		}))
	}
	uc := usecase.NewAdminUseCase(logRepo)

	page, err := uc.ListLogs(dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
