package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/tu-usuario/planta-pro/internal/application/analytics"
	"github.com/tu-usuario/planta-pro/internal/application/auth"
	"github.com/tu-usuario/planta-pro/internal/application/inventory"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
	infraexcel "github.com/tu-usuario/planta-pro/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/planta-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/planta-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/planta-pro/internal/interfaces/http"
	"github.com/tu-usuario/planta-pro/pkg/config"
	"github.com/tu-usuario/planta-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("level", cfg.App.LogLevel).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	machineRepo := postgres.NewMachineRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	systemLogRepo := postgres.NewSystemLogRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	movementQueryUC := inventory.NewMovementQueryUseCase(movementRepo)
	materialUC := usecase.NewMaterialUseCase(materialRepo)
	machineUC := usecase.NewMachineUseCase(machineRepo, bomRepo, materialRepo)
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo, machineRepo, txRunner)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	adminUC := usecase.NewAdminUseCase(systemLogRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, materialRepo, movementRepo)
	reportUC := appanalytics.NewReportUseCase(
		analyticsRepo,
		infraexcel.NewExporter(),
		infrapdf.NewMarotoReportGenerator(),
	)
	authUC := auth.NewAuthUseCase(userRepo, systemLogRepo, auth.JWTConfig{
		Secret:          cfg.JWT.Secret,
		ExpMinutes:      cfg.JWT.Expiration,
		RefreshExpHours: cfg.JWT.RefreshExpiration,
		Issuer:          cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Planta Pro API",
	}))

	app.Get("/api/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded", "service": cfg.App.Name, "db": "down",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "db": "up"})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		MaterialUC:       materialUC,
		MachineUC:        machineUC,
		WorkOrderUC:      workOrderUC,
		SupplierUC:       supplierUC,
		AdminUC:          adminUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		DashboardUC:      dashboardUC,
		ReportUC:         reportUC,
		Users:            userRepo,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
