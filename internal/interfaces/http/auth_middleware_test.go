package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Siparis-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Siparis-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testSessionID = "00000000-0000-0000-0000-0000000000aa"
	testIssuer    = "siparis-api-test"
	testExpMin    = 60
)

// fakeSessions registra las validaciones y responde con err.
type fakeSessions struct {
	err     error
	touches []bool
}

func (f *fakeSessions) Validate(_ context.Context, sessionID string, touch bool) (*entity.Session, error) {
	f.touches = append(f.touches, touch)
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Session{ID: sessionID, UserID: testUserID}, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y validar la sesión
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(sessions *fakeSessions, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	auth := apphttp.AuthMiddleware(apphttp.AuthConfig{
		Secret:       testJWTSecret,
		Sessions:     sessions,
		PassivePaths: []string{"/session"},
	})
	ok := func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"ok":         true,
			"user_id":    apphttp.GetUserID(c),
			"role":       apphttp.GetRole(c),
			"session_id": apphttp.GetSessionID(c),
		})
	}
	app.Get("/protected", auth, apphttp.RequireRole(allowedRoles...), ok)
	app.Get("/session", auth, ok)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, Role: role, SessionID: testSessionID}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(&fakeSessions{}, "admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testSessionID, body["session_id"])
}

func TestRequireRole_BodegueroAccedeRutaAdminOBodeguero(t *testing.T) {
	app := buildTestApp(&fakeSessions{}, "admin", "bodeguero")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "bodeguero"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(&fakeSessions{}, "admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, "vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeSessions{}, "admin")
	resp := doRequest(t, app, "/protected", tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "UNAUTHORIZED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	sessions := &fakeSessions{}
	app := buildTestApp(sessions)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, sessions.touches, "sin token no se consulta la sesión")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeSessions{})
	for _, h := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := doRequest(t, app, "/protected", h)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_SesionExpirada_Retorna401SessionInvalid(t *testing.T) {
	app := buildTestApp(&fakeSessions{err: domain.ErrSessionInvalid})
	resp := doRequest(t, app, "/protected", tokenForRole(t, "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyOf(t, resp), "SESSION_INVALID")
}

func TestAuthMiddleware_RutaPasivaNoRenuevaSesion(t *testing.T) {
	sessions := &fakeSessions{}
	app := buildTestApp(sessions)

	resp := doRequest(t, app, "/protected", tokenForRole(t, "vendedor"))
	resp.Body.Close()
	resp = doRequest(t, app, "/session", tokenForRole(t, "vendedor"))
	resp.Body.Close()

	assert.Equal(t, []bool{true, false}, sessions.touches)
}
