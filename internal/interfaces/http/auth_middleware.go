package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	"github.com/tu-usuario/planta-pro/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// UserResolver re-resuelve al usuario del token en cada petición; lo satisface
// repository.UserRepository.
type UserResolver interface {
	GetByID(id string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT de acceso, re-resuelve al usuario
// en DB y extrae los claims a c.Locals. Token ausente o de usuario borrado ->
// 401; token inválido, expirado o de refresh -> 403; cuenta inactiva -> 403.
// Un token firmado deja de servir en cuanto el usuario se borra o desactiva.
func AuthMiddleware(jwtSecret string, users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token de acceso requerido"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token vacío"))
		}
		claims, err := jwt.ParseAccess(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("token inválido o expirado"))
		}
		user, err := users.GetByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("usuario no encontrado"))
		}
		if user.Status != entity.UserStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.Fail("cuenta inactiva"))
		}
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole exige que el rol del usuario autenticado esté entre los
// permitidos. Se apila después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("token de acceso requerido"))
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("permisos insuficientes"))
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
