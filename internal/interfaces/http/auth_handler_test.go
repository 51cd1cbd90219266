package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/planta-pro/internal/application/auth"
	"github.com/tu-usuario/planta-pro/internal/application/dto"
	"github.com/tu-usuario/planta-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/planta-pro/internal/interfaces/http"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

const loginPassword = "Planta#2026!"

// authApp arma la ruta de login con un usuario operador ya registrado.
func authApp(t *testing.T) *fiber.App {
	t.Helper()
	uc := auth.NewAuthUseCase(newMemUserRepo(), nil, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, RefreshExpHours: 168, Issuer: testIssuer,
	})
	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "operador@planta.local", Password: loginPassword,
		Name: "Operador", Role: entity.RoleOperator,
	})
	require.NoError(t, err)

	h := apphttp.NewAuthHandler(uc)
	app := fiber.New()
	app.Post("/api/auth/login", h.Login)
	return app
}

func TestAuthHandlerLogin_Exitoso(t *testing.T) {
	app := authApp(t)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "operador@planta.local", "password": loginPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, true, env["success"])
	data, ok := env["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "operador@planta.local", user["email"])
	assert.NotContains(t, user, "password", "la respuesta nunca incluye el password")
}

func TestAuthHandlerLogin_PasswordIncorrecto(t *testing.T) {
	app := authApp(t)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "operador@planta.local", "password": "incorrecta",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "credenciales inválidas", env["error"])
	assert.NotContains(t, env, "data")
}

func TestAuthHandlerLogin_EmailDesconocido_MismaRespuesta(t *testing.T) {
	app := authApp(t)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "nadie@planta.local", "password": loginPassword,
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	env := decodeEnvelope(t, resp)
	assert.Equal(t, "credenciales inválidas", env["error"],
		"email desconocido y password incorrecto responden igual")
}

// Un token vigente deja de servir en cuanto el usuario es borrado: /me debe
// responder 401, no 404.
func TestAuthHandlerMe_UsuarioBorrado_Retorna401(t *testing.T) {
	repo := newMemUserRepo()
	uc := auth.NewAuthUseCase(repo, nil, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, RefreshExpHours: 168, Issuer: testIssuer,
	})
	created, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "efimero@planta.local", Password: loginPassword,
		Name: "Efímero", Role: entity.RoleOperator,
	})
	require.NoError(t, err)

	h := apphttp.NewAuthHandler(uc)
	app := fiber.New()
	app.Post("/api/auth/login", h.Login)
	app.Get("/api/auth/me", apphttp.AuthMiddleware(testJWTSecret, repo), h.Me)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "efimero@planta.local", "password": loginPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	data := env["data"].(map[string]interface{})
	token := data["access_token"].(string)

	require.NoError(t, repo.Delete(created.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, meResp.StatusCode,
		"usuario borrado con token vigente debe recibir 401")
}

func TestAuthHandlerLogin_CamposRequeridos(t *testing.T) {
	app := authApp(t)

	resp := postJSON(t, app, "/api/auth/login", fiber.Map{"email": "operador@planta.local"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandlerLogin_CuerpoInvalido(t *testing.T) {
	app := authApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
