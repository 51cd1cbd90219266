// seed puebla la base de datos con datos de demostración: un usuario admin,
// proveedores, materiales, una máquina con su BOM y stock inicial.
//
// Uso: go run ./cmd/seed
// Requiere las mismas variables de entorno que el servidor (DB_*, o DATABASE_URL).
// La contraseña del admin se toma de SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/planta-pro/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}
	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		fail("SEED_ADMIN_PASSWORD es obligatorio; no hay contraseñas por defecto")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	now := time.Now().UTC()

	// Admin
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		fail("hash de contraseña: %v", err)
	}
	userRepo := postgres.NewUserRepository(pool)
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        "admin@planta-pro.local",
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := userRepo.Create(admin); err != nil {
		fail("crear admin: %v", err)
	}

	// Proveedor
	supplierRepo := postgres.NewSupplierRepository(pool)
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        "Aceros del Norte S.A.",
		ContactName: "Laura Méndez",
		Email:       "ventas@acerosdelnorte.example",
		Phone:       "+57 300 555 0134",
		Address:     "Parque Industrial Km 4, Bodega 12",
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := supplierRepo.Create(supplier); err != nil {
		fail("crear proveedor: %v", err)
	}

	// Materiales
	materialRepo := postgres.NewMaterialRepository(pool)
	materials := []*entity.Material{
		{
			ID: uuid.New().String(), Code: "MAT001", Name: "Lámina de acero 3mm",
			Category: "metales", Unit: "kg",
			CurrentStock: decimal.NewFromInt(500), MinStock: decimal.NewFromInt(100),
			MaxStock: decimal.NewFromInt(2000), UnitPrice: decimal.NewFromFloat(4.25),
			SupplierID: &supplier.ID, Location: "A-01-03",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Code: "MAT002", Name: "Tornillo hexagonal M8",
			Category: "ferretería", Unit: "unidad",
			CurrentStock: decimal.NewFromInt(10000), MinStock: decimal.NewFromInt(2000),
			MaxStock: decimal.NewFromInt(50000), UnitPrice: decimal.NewFromFloat(0.08),
			SupplierID: &supplier.ID, Location: "B-02-11",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), Code: "MAT003", Name: "Pintura epóxica gris",
			Category: "químicos", Unit: "litro",
			CurrentStock: decimal.NewFromInt(40), MinStock: decimal.NewFromInt(50),
			MaxStock: decimal.NewFromInt(300), UnitPrice: decimal.NewFromFloat(12.90),
			Location:  "C-01-01",
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, m := range materials {
		if err := materialRepo.Create(m); err != nil {
			fail("crear material %s: %v", m.Code, err)
		}
	}

	// Máquina con BOM
	machineRepo := postgres.NewMachineRepository(pool)
	machine := &entity.Machine{
		ID:             uuid.New().String(),
		Code:           "MAQ001",
		Name:           "Prensa hidráulica PH-200",
		Category:       "conformado",
		MachineType:    "prensa",
		Status:         entity.MachineStatusActive,
		Specifications: "200 toneladas, mesa 1200x800mm",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := machineRepo.Create(machine); err != nil {
		fail("crear máquina: %v", err)
	}

	bomRepo := postgres.NewBOMRepository(pool)
	bom := []*entity.BOMItem{
		{
			ID: uuid.New().String(), MachineID: machine.ID, MaterialID: materials[0].ID,
			Quantity: decimal.NewFromFloat(12.5), Unit: "kg", Position: "bastidor",
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.New().String(), MachineID: machine.ID, MaterialID: materials[1].ID,
			Quantity: decimal.NewFromInt(48), Unit: "unidad", Position: "ensamble",
			CreatedAt: now, UpdatedAt: now,
		},
	}
	for _, item := range bom {
		if err := bomRepo.Create(item); err != nil {
			fail("crear línea de BOM: %v", err)
		}
	}

	fmt.Println("datos de demostración creados")
	fmt.Printf("admin: %s (rol %s)\n", admin.Email, admin.Role)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
