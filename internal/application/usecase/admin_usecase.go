package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/domain/repository"
)

// AdminUseCase operaciones de mantenimiento. backup/optimize/restore siguen
// siendo simulaciones (solo esperan y registran en bitácora, como el sistema
// original), pero lo dicen explícitamente en el log. clear-logs sí ejecuta.
type AdminUseCase struct {
	logRepo repository.SystemLogRepository
	delay   time.Duration // duración de la simulación; reducible en tests
}

// NewAdminUseCase construye el caso de uso con el delay de simulación por defecto.
func NewAdminUseCase(logRepo repository.SystemLogRepository) *AdminUseCase {
	return &AdminUseCase{logRepo: logRepo, delay: 2 * time.Second}
}

// WithDelay fija el delay de simulación (tests).
func (uc *AdminUseCase) WithDelay(d time.Duration) *AdminUseCase {
	uc.delay = d
	return uc
}

// RunMaintenance ejecuta una operación simulada (backup, optimize, restore) y
// la registra en system_logs. Respeta la cancelación del contexto.
func (uc *AdminUseCase) RunMaintenance(ctx context.Context, action, actor string) error {
	select {
	case <-time.After(uc.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	return uc.logRepo.Create(&entity.SystemLog{
		ID:        uuid.New().String(),
		Level:     entity.LogLevelInfo,
		Action:    action,
		Detail:    fmt.Sprintf("operación %s simulada completada", action),
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	})
}

// ClearLogs vacía la bitácora y deja una única entrada registrando la limpieza.
func (uc *AdminUseCase) ClearLogs(actor string) (int64, error) {
	removed, err := uc.logRepo.Clear()
	if err != nil {
		return 0, err
	}
	err = uc.logRepo.Create(&entity.SystemLog{
		ID:        uuid.New().String(),
		Level:     entity.LogLevelInfo,
		Action:    "clear_logs",
		Detail:    fmt.Sprintf("%d entradas eliminadas", removed),
		Actor:     actor,
		CreatedAt: time.Now().UTC(),
	})
	return removed, err
}

// ListLogs lista la bitácora con paginación.
func (uc *AdminUseCase) ListLogs(page dto.PageRequest) ([]*dto.SystemLogDTO, error) {
	page.DefaultPage()
	logs, err := uc.logRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SystemLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, &dto.SystemLogDTO{
			ID:        l.ID,
			Level:     l.Level,
			Action:    l.Action,
			Detail:    l.Detail,
			Actor:     l.Actor,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}
