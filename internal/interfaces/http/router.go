package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/analytics"
	"github.com/tu-usuario/planta-pro/internal/application/auth"
	"github.com/tu-usuario/planta-pro/internal/application/inventory"
	"github.com/tu-usuario/planta-pro/internal/application/usecase"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	MaterialUC       *usecase.MaterialUseCase
	MachineUC        *usecase.MachineUseCase
	WorkOrderUC      *usecase.WorkOrderUseCase
	SupplierUC       *usecase.SupplierUseCase
	AdminUC          *usecase.AdminUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	DashboardUC      *analytics.DashboardUseCase
	ReportUC         *analytics.ReportUseCase
	Users            UserResolver
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login y refresh públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret, deps.Users), authHandler.Me)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret, deps.Users), RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))

	// Materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Machines + BOM (protegido)
	machines := protected.Group("/machines")
	machineHandler := NewMachineHandler(deps.MachineUC)
	machines.Post("/", machineHandler.Create)
	machines.Get("/", machineHandler.List)
	machines.Get("/:id", machineHandler.GetByID)
	machines.Put("/:id", machineHandler.Update)
	machines.Delete("/:id", machineHandler.Delete)
	machines.Get("/:id/bom", machineHandler.GetBOM)
	machines.Post("/:id/bom", machineHandler.AddBOMItem)
	machines.Delete("/:id/bom/:itemId", machineHandler.DeleteBOMItem)

	// Work orders (protegido)
	workorders := protected.Group("/workorders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workorders.Post("/", workOrderHandler.Create)
	workorders.Get("/", workOrderHandler.List)
	workorders.Get("/:id", workOrderHandler.GetByID)
	workorders.Put("/:id", workOrderHandler.Update)
	workorders.Post("/:id/complete", workOrderHandler.Complete)
	workorders.Delete("/:id", workOrderHandler.Delete)

	// Movimientos de inventario (protegido)
	movements := protected.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery)
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Get("/:id", inventoryHandler.GetMovement)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Dashboard (protegido, solo lectura)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)
	dashboard.Get("/critical-stock", dashboardHandler.CriticalStock)
	dashboard.Get("/recent-movements", dashboardHandler.RecentMovements)
	dashboard.Get("/work-order-stats", dashboardHandler.WorkOrderStats)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/inventory", reportHandler.Inventory)
	reports.Get("/movements", reportHandler.Movements)

	// Admin (protegido, solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin.Post("/backup", adminHandler.Backup)
	admin.Post("/optimize", adminHandler.Optimize)
	admin.Post("/restore", adminHandler.Restore)
	admin.Post("/clear-logs", adminHandler.ClearLogs)
	admin.Get("/logs", adminHandler.ListLogs)

	// Rutas desconocidas bajo /api
	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "API no encontrada",
		})
	})
}
