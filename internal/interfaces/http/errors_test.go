package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockpos-backend/internal/application/dto"
	"github.com/tu-usuario/stockpos-backend/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func respondErrorVia(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()

	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var parsed dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &parsed))
	return resp.StatusCode, parsed
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRespondError_StockInsuficienteEs400ConDetalle(t *testing.T) {
	status, body := respondErrorVia(t, &domain.InsufficientStockError{
		ProductID:   "prod-1",
		WarehouseID: "bod-1",
		Current:     decimal.NewFromInt(65),
		Requested:   decimal.NewFromInt(100),
	})

	assert.Equal(t, fiber.StatusBadRequest, status, "el rechazo por stock insuficiente es 400")
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	detail, ok := body.Detail.(map[string]interface{})
	require.True(t, ok, "el detalle debe ser un objeto")
	assert.Equal(t, "prod-1", detail["product_id"])
	assert.Equal(t, "65", fmt.Sprint(detail["current"]))
	assert.Equal(t, "100", fmt.Sprint(detail["requested"]))
}

func TestRespondError_SobreDevolucionEs400ConDetalle(t *testing.T) {
	status, body := respondErrorVia(t, &domain.OverReturnError{
		ReferenceID: "venta-1",
		ProductID:   "prod-1",
		Issued:      decimal.NewFromInt(10),
		Returned:    decimal.NewFromInt(6),
		Requested:   decimal.NewFromInt(11),
	})

	assert.Equal(t, fiber.StatusBadRequest, status, "la sobre-devolución es 400")
	assert.Equal(t, "OVER_RETURN", body.Code)

	detail, ok := body.Detail.(map[string]interface{})
	require.True(t, ok, "el detalle debe ser un objeto")
	assert.Equal(t, "venta-1", detail["reference_id"])
	assert.Equal(t, "10", fmt.Sprint(detail["issued"]))
	assert.Equal(t, "6", fmt.Sprint(detail["returned"]))
	assert.Equal(t, "11", fmt.Sprint(detail["requested"]))
}

func TestRespondError_MapeoDeSentinelas(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"cantidad inválida", domain.ErrInvalidQuantity, fiber.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"producto inexistente", domain.ErrProductNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "CONFLICT"},
		{"conflicto de estado", domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{"contención", domain.ErrBusy, fiber.StatusServiceUnavailable, "BUSY"},
		{"error desconocido", fmt.Errorf("falla de red"), fiber.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respondErrorVia(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}
