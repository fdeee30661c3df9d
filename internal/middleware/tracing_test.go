package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fameboard/internal/observability"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingMiddleware(t *testing.T) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "fameboard-test",
		Environment:  "test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1.0,
	})
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	app := fiber.New()
	app.Use(TracingMiddleware())

	var traceID string
	app.Get("/traced", func(c *fiber.Ctx) error {
		traceID, _ = c.Locals("traceID").(string)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/traced", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, traceID, 32)
	assert.NotEqual(t, "00000000000000000000000000000000", traceID)
	assert.Equal(t, traceID, resp.Header.Get("X-Trace-ID"))
}
