package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/planta-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/planta-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "test@planta-pro.local"
	testIssuer    = "planta-pro-test"
	testExpMin    = 60
)

// stubUserResolver resuelve usuarios desde un mapa en memoria; nil simula un
// usuario borrado después de emitido el token.
type stubUserResolver struct {
	users map[string]*entity.User
}

func (r *stubUserResolver) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func activeUser(role string) *entity.User {
	return &entity.User{
		ID: testUserID, Email: testEmail, Role: role,
		Status: entity.UserStatusActive,
	}
}

func resolverFor(user *entity.User) *stubUserResolver {
	r := &stubUserResolver{users: make(map[string]*entity.User)}
	if user != nil {
		r.users[user.ID] = user
	}
	return r
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT, re-resolver al usuario y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(user *entity.User, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, resolverFor(user)),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un access token con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — presencia y validez del token
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → HTTP 401.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(activeUser("admin"), "admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"petición sin token debe retornar 401")
}

// Token malformado → HTTP 403 (token presente pero inválido).
func TestAuthMiddleware_TokenInvalido_Retorna403(t *testing.T) {
	app := buildTestApp(activeUser("admin"), "admin")
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"token inválido debe retornar 403")
}

// Token expirado → HTTP 403.
func TestAuthMiddleware_TokenExpirado_Retorna403(t *testing.T) {
	app := buildTestApp(activeUser("admin"), "admin")
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "admin", testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"token expirado debe retornar 403")
}

// Un refresh token no sirve para rutas protegidas → HTTP 403.
func TestAuthMiddleware_RefreshTokenEnRutaProtegida_Retorna403(t *testing.T) {
	app := buildTestApp(activeUser("admin"), "admin")
	tok, err := pkgjwt.GenerateRefresh(testJWTSecret, testUserID, testEmail, "admin", testIssuer, 24)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"refresh token no debe autorizar rutas protegidas")
}

// Token válido pero el usuario ya no existe → HTTP 401 en cualquier ruta
// protegida: el borrado del usuario revoca de facto sus tokens vigentes.
func TestAuthMiddleware_UsuarioBorrado_Retorna401(t *testing.T) {
	app := buildTestApp(nil, "admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token de un usuario borrado debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "usuario no encontrado")
}

// Token válido pero la cuenta fue desactivada → HTTP 403.
func TestAuthMiddleware_CuentaDesactivada_Retorna403(t *testing.T) {
	user := activeUser("admin")
	user.Status = entity.UserStatusInactive
	app := buildTestApp(user, "admin")

	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"token de una cuenta desactivada debe retornar 403")
}

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me",
		apphttp.AuthMiddleware(testJWTSecret, resolverFor(activeUser("admin"))),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"email":   apphttp.GetEmail(c),
				"role":    apphttp.GetRole(c),
			})
		})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
	assert.Equal(t, "admin", body["role"])
}

// Los locals reflejan el estado actual en DB, no el claim del token: un cambio
// de rol aplica en la siguiente petición sin esperar a que el token expire.
func TestAuthMiddleware_RolVieneDeDB(t *testing.T) {
	app := buildTestApp(activeUser("viewer"), "admin")

	// el token todavía dice admin, pero en DB el usuario ya es viewer
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el rol autorizado es el de DB, no el del token")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(activeUser("admin"), "admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "admin", body["role"], "el role debe ser admin")
}

// El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_PlannerAccedeRutaAdminOPlanner(t *testing.T) {
	app := buildTestApp(activeUser("planner"), "admin", "planner")
	resp := doRequest(t, app, tokenForRole(t, "planner"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"planner debe poder acceder a ruta que permite admin o planner")
}

// El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_ViewerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(activeUser("viewer"), "admin")
	resp := doRequest(t, app, tokenForRole(t, "viewer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"viewer no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "permisos insuficientes",
		"la respuesta de error debe explicar la falta de permisos")
}

// Usuario sin rol asignado en DB → HTTP 401.
func TestRequireRole_UsuarioSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(activeUser(""), "admin")
	resp := doRequest(t, app, tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"usuario sin rol debe retornar 401")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "operator", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, pkgjwt.UseAccess, claims.TokenUse)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_ParseAccess_RechazaRefresh(t *testing.T) {
	tok, err := pkgjwt.GenerateRefresh(testJWTSecret, testUserID, testEmail, "admin", testIssuer, 24)
	require.NoError(t, err)

	_, err = pkgjwt.ParseAccess(testJWTSecret, tok)
	assert.Error(t, err, "un refresh token no debe pasar como access")

	claims, err := pkgjwt.ParseRefresh(testJWTSecret, tok)
	require.NoError(t, err, "el mismo token sí debe pasar como refresh")
	assert.Equal(t, pkgjwt.UseRefresh, claims.TokenUse)
}
