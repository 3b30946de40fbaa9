package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-ai/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-ai/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "inventario-ai-test"
	testExpMin    = 60
)

// Un perfil por rol; el id es el sub del token.
var testProfiles = map[entity.Role]*entity.Profile{
	entity.RoleAdmin:   {ID: "00000000-0000-0000-0000-0000000000a1", Email: "admin@example.com", Role: entity.RoleAdmin},
	entity.RoleManager: {ID: "00000000-0000-0000-0000-0000000000b2", Email: "manager@example.com", Role: entity.RoleManager},
	entity.RoleViewer:  {ID: "00000000-0000-0000-0000-0000000000c3", Email: "viewer@example.com", Role: entity.RoleViewer},
}

const noProfileUserID = "00000000-0000-0000-0000-0000000000ff"

// seedProfiles registra los perfiles de test en el store.
func seedProfiles(t *testing.T, s *memory.Store) {
	t.Helper()
	for _, p := range testProfiles {
		cp := *p
		require.NoError(t, s.Profiles().Upsert(context.Background(), &cp))
	}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar el perfil
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(t *testing.T, allowedRoles ...entity.Role) *fiber.App {
	t.Helper()
	s := memory.NewStore()
	seedProfiles(t, s)

	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, s.Profiles()),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT con sub=userID.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, "user@example.com", testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// tokenForRole token del perfil de test con ese rol.
func tokenForRole(t *testing.T, role entity.Role) string {
	t.Helper()
	return tokenFor(t, testProfiles[role].ID)
}

// doRequest lanza una petición y devuelve la respuesta. body nil = sin cuerpo.
func doRequest(t *testing.T, app *fiber.App, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody decodifica la respuesta en un mapa genérico.
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, entity.RoleAdmin), nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "admin", body["role"], "el rol sale del perfil")
	assert.Equal(t, testProfiles[entity.RoleAdmin].ID, body["user_id"])
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_ManagerAccedeRutaAdminOManager(t *testing.T) {
	app := buildTestApp(t, entity.ItemWriteRoles...)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, entity.RoleManager), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"manager debe poder acceder a ruta que permite admin o manager")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_ViewerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenForRole(t, entity.RoleViewer), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"viewer no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: Token válido pero sin perfil registrado → HTTP 401.
func TestAuthMiddleware_SinPerfil_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", tokenFor(t, noProfileUserID), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin perfil debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_PROFILE")
}

// Caso 4: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decodeBody(t, resp)["code"])
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", "Bearer token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, resp)["code"])
}

func TestAuthMiddleware_EsquemaNoBearer_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, http.MethodGet, "/protected", "Basic dXNlcjpwYXNz", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, resp)["code"])
}

func TestAuthMiddleware_TokenFirmadoConOtroSecret_Retorna401(t *testing.T) {
	app := buildTestApp(t, entity.RoleAdmin)
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testProfiles[entity.RoleAdmin].ID, "a@b.c", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/protected", "Bearer "+tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testProfiles[entity.RoleViewer].ID, "viewer@example.com", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testProfiles[entity.RoleViewer].ID, userID)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testProfiles[entity.RoleAdmin].ID, "a@b.c", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}
