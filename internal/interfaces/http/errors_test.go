package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failWith monta una ruta que siempre responde el error dado.
func failWith(err error) *fiber.App {
	app := fiber.New()
	app.Get("/fallo", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func getFallo(t *testing.T, app *fiber.App) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fallo", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestRespondErrorMapeoDeStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest},
		{"transferencia inválida", domain.ErrInvalidTransfer, fiber.StatusBadRequest},
		{"no autenticado", domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{"sin acceso", domain.ErrForbidden, fiber.StatusForbidden},
		{"sin acceso envuelto", fmt.Errorf("no administras esta bodega: %w", domain.ErrForbidden), fiber.StatusForbidden},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound},
		{"entidad nombrada", domain.NewEntityNotFound("rate"), fiber.StatusNotFound},
		{"email duplicado", domain.ErrEmailAlreadyExists, fiber.StatusConflict},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict},
		{"conflicto", domain.ErrConflict, fiber.StatusConflict},
		{"interno", errors.New("se cayó la base"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, body := getFallo(t, failWith(tc.err))
		assert.Equal(t, tc.status, status, tc.name)
		assert.Equal(t, false, body["success"], tc.name)
		assert.NotEmpty(t, body["message"], tc.name)
		assert.Nil(t, body["stockDetails"], tc.name)
	}
}

func TestRespondErrorStockInsuficienteConDesglose(t *testing.T) {
	err := domain.NewStockShortage(decimal.NewFromInt(70), decimal.NewFromInt(100), "kg")
	status, body := getFallo(t, failWith(err))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, false, body["success"])

	details, ok := body["stockDetails"].(map[string]interface{})
	require.True(t, ok, "la respuesta debe incluir stockDetails")
	assert.Equal(t, "70", details["available"])
	assert.Equal(t, "100", details["requested"])
	assert.Equal(t, "30", details["shortfall"])
	assert.Equal(t, "kg", details["unit"])
}
