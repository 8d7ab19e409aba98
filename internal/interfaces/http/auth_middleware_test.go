package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-pruebas"

// newProtectedApp monta una ruta protegida que devuelve lo que el middleware
// dejó en Locals.
func newProtectedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	app.Get("/protegida", handlers...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &out))
	}
	return resp, out
}

func TestAuthMiddlewareSinHeader(t *testing.T) {
	app := newProtectedApp()
	resp, body := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestAuthMiddlewareFormatoInvalido(t *testing.T) {
	app := newProtectedApp()
	for _, header := range []string{"Basic abc123", "Bearer", "solo-el-token"} {
		resp, _ := doRequest(t, app, header)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddlewareTokenInvalido(t *testing.T) {
	app := newProtectedApp()

	resp, _ := doRequest(t, app, "Bearer no-es-un-jwt")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Firmado con otro secreto.
	ajeno, err := jwt.Generate("otro-secreto", "u1", entity.RoleAdmin, "test", 60)
	require.NoError(t, err)
	resp, _ = doRequest(t, app, "Bearer "+ajeno)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Expirado.
	vencido, err := jwt.Generate(testSecret, "u1", entity.RoleAdmin, "test", -5)
	require.NoError(t, err)
	resp, _ = doRequest(t, app, "Bearer "+vencido)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareTokenValidoExponeLocals(t *testing.T) {
	app := newProtectedApp()
	token, err := jwt.Generate(testSecret, "user-42", entity.RoleAdmin, "test", 60)
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-42", body["user_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole(t *testing.T) {
	app := newProtectedApp(RequireRole(entity.RoleSuperAdmin, entity.RoleAdmin))

	adminToken, err := jwt.Generate(testSecret, "user-42", entity.RoleAdmin, "test", 60)
	require.NoError(t, err)
	resp, _ := doRequest(t, app, "Bearer "+adminToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	driverToken, err := jwt.Generate(testSecret, "user-7", entity.RoleDriver, "test", 60)
	require.NoError(t, err)
	resp, body := doRequest(t, app, "Bearer "+driverToken)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}
