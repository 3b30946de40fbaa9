package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-ai/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

// ── Helpers de test ──────────────────────────────────────────────────────────

// buildLoggedApp app con RequestLogger delante de la auth, escribiendo JSON en buf.
func buildLoggedApp(t *testing.T, buf *bytes.Buffer) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	seedProfiles(t, s)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(logger.NewWithWriter(buf, "info")))
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, s.Profiles()),
		apphttp.RequireRole(entity.RoleAdmin, entity.RoleManager),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) },
	)
	return app
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

// ── Tests RequestLogger ──────────────────────────────────────────────────────

func TestRequestLogger_RegistraUsuarioYRol(t *testing.T) {
	var buf bytes.Buffer
	app := buildLoggedApp(t, &buf)

	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, entity.RoleManager), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "http request", entry["message"])
	assert.Equal(t, testProfiles[entity.RoleManager].ID, entry["user_id"])
	assert.Equal(t, "manager", entry["role"])
	assert.EqualValues(t, fiber.StatusNoContent, entry["status"])
}

func TestRequestLogger_SinAutenticarRolVacio(t *testing.T) {
	var buf bytes.Buffer
	app := buildLoggedApp(t, &buf)

	resp := doRequest(t, app, http.MethodGet, "/protected", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	entry := lastLogLine(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "", entry["role"])
	assert.Equal(t, "", entry["user_id"])
}
