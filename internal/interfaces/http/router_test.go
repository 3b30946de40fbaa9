package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/application/assistant"
	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-ai/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ai/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeIdentity proveedor de identidad en memoria.
type fakeIdentity struct {
	userID string
	err    error
	emails []string
}

func (f *fakeIdentity) InviteUser(_ context.Context, email, _, _ string) (string, error) {
	f.emails = append(f.emails, email)
	return f.userID, f.err
}

// fakePDF registra los borradores recibidos y devuelve un documento fijo.
type fakePDF struct {
	drafts []dto.SupplierDraft
}

func (f *fakePDF) RenderSupplierDrafts(_ context.Context, drafts []dto.SupplierDraft, _ time.Time) ([]byte, error) {
	f.drafts = drafts
	return []byte("%PDF-1.3 fake"), nil
}

type apiEnv struct {
	app      *fiber.App
	store    *memory.Store
	identity *fakeIdentity
	pdf      *fakePDF
	tools    *entity.Category
}

// newAPI levanta el router completo sobre el store en memoria y sin modelo de lenguaje.
func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	s := memory.NewStore()
	seedProfiles(t, s)
	tools := &entity.Category{Name: "Tools"}
	require.NoError(t, s.Categories().Create(context.Background(), tools))

	identity := &fakeIdentity{userID: "00000000-0000-0000-0000-0000000000d4"}
	pdf := &fakePDF{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:     usecase.NewItemUseCase(s.Items(), s.Categories()),
		CategoryUC: usecase.NewCategoryUseCase(s.Categories(), s),
		TeamUC:     usecase.NewTeamUseCase(s.Profiles(), identity, "http://localhost:3000/login"),
		Assistant:  assistant.NewService(nil, s.Items(), s.Categories(), nil, logger.Nop(), 0),
		DraftsPDF:  pdf,
		Profiles:   s.Profiles(),
		JWTSecret:  testJWTSecret,
	})
	return &apiEnv{app: app, store: s, identity: identity, pdf: pdf, tools: tools}
}

func (e *apiEnv) createItem(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	if _, ok := payload["categoryId"]; !ok {
		payload["categoryId"] = e.tools.ID
	}
	resp := doRequest(t, e.app, http.MethodPost, "/api/items", tokenForRole(t, entity.RoleManager), payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)["data"].(map[string]interface{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Items
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_CrearDerivaEstadoYDevuelve201(t *testing.T) {
	e := newAPI(t)
	item := e.createItem(t, map[string]interface{}{
		"name": "Hammer", "quantity": 2, "status": "in_stock", "reorder_threshold": 5,
	})

	assert.Equal(t, "low_stock", item["status"], "cantidad <= umbral deriva low_stock")
	assert.Equal(t, "Tools", item["category"])
	assert.Nil(t, item["sku"], "opcional ausente se serializa como null")
	assert.Equal(t, testProfiles[entity.RoleManager].ID, item["updated_by"])
}

func TestItems_ViewerNoPuedeCrear(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/items", tokenForRole(t, entity.RoleViewer), map[string]interface{}{
		"name": "Hammer", "quantity": 1, "status": "in_stock", "categoryId": e.tools.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decodeBody(t, resp)["code"])
}

func TestItems_PayloadInvalidoDevuelveDetalles(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/items", tokenForRole(t, entity.RoleAdmin), map[string]interface{}{
		"name": "H", "quantity": -1, "status": "lost", "categoryId": e.tools.ID,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok, "el error de validación lleva el detalle por campo")
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "quantity")
	assert.Contains(t, details, "status")
}

func TestItems_JSONMalformado(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/items", tokenForRole(t, entity.RoleAdmin), "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
}

func TestItems_CategoriaInexistente(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/items", tokenForRole(t, entity.RoleAdmin), map[string]interface{}{
		"name": "Hammer", "quantity": 1, "status": "in_stock",
		"categoryId": "00000000-0000-0000-0000-000000000999",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_CATEGORY", decodeBody(t, resp)["code"])
}

func TestItems_ListarConFiltros(t *testing.T) {
	e := newAPI(t)
	e.createItem(t, map[string]interface{}{"name": "Hammer", "quantity": 1, "status": "in_stock", "reorder_threshold": 3})
	e.createItem(t, map[string]interface{}{"name": "Drill", "quantity": 40, "status": "in_stock", "reorder_threshold": 3})

	resp := doRequest(t, e.app, http.MethodGet, "/api/items?lowStockOnly=true", tokenForRole(t, entity.RoleViewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows := decodeBody(t, resp)["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Hammer", rows[0].(map[string]interface{})["name"])

	resp = doRequest(t, e.app, http.MethodGet, "/api/items?sortBy=name&sortDir=asc", tokenForRole(t, entity.RoleViewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows = decodeBody(t, resp)["data"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, "Drill", rows[0].(map[string]interface{})["name"])
}

func TestItems_ListarConParametroInvalido(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodGet, "/api/items?sortBy=price", tokenForRole(t, entity.RoleViewer), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeBody(t, resp)["code"])
}

func TestItems_GetInexistenteOIdNoUUID(t *testing.T) {
	e := newAPI(t)
	for _, id := range []string{"00000000-0000-0000-0000-000000000999", "not-a-uuid"} {
		resp := doRequest(t, e.app, http.MethodGet, "/api/items/"+id, tokenForRole(t, entity.RoleViewer), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, id)
		resp.Body.Close()
	}
}

func TestItems_PedirDiscontinuadoEsConflicto(t *testing.T) {
	e := newAPI(t)
	item := e.createItem(t, map[string]interface{}{"name": "Old saw", "quantity": 0, "status": "discontinued"})
	id := item["id"].(string)

	resp := doRequest(t, e.app, http.MethodPatch, "/api/items/"+id, tokenForRole(t, entity.RoleManager), map[string]interface{}{"status": "ordered"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeBody(t, resp)["code"])

	resp = doRequest(t, e.app, http.MethodGet, "/api/items/"+id, tokenForRole(t, entity.RoleViewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "discontinued", decodeBody(t, resp)["data"].(map[string]interface{})["status"], "el ítem queda intacto")
}

func TestItems_PatchParcialYBorrado(t *testing.T) {
	e := newAPI(t)
	item := e.createItem(t, map[string]interface{}{"name": "Hammer", "quantity": 10, "status": "in_stock", "sku": "HM-1"})
	id := item["id"].(string)

	resp := doRequest(t, e.app, http.MethodPatch, "/api/items/"+id, tokenForRole(t, entity.RoleAdmin), map[string]interface{}{"sku": "", "quantity": 12})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)["data"].(map[string]interface{})
	assert.Nil(t, updated["sku"], `"" borra el opcional`)
	assert.Equal(t, float64(12), updated["quantity"])
	assert.Equal(t, "Hammer", updated["name"], "campo ausente no cambia")

	resp = doRequest(t, e.app, http.MethodDelete, "/api/items/"+id, tokenForRole(t, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["success"])

	resp = doRequest(t, e.app, http.MethodDelete, "/api/items/"+id, tokenForRole(t, entity.RoleManager), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Categories
// ──────────────────────────────────────────────────────────────────────────────

func TestCategories_SoloAdminEscribe(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/categories", tokenForRole(t, entity.RoleManager), map[string]interface{}{"name": "Paint"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, e.app, http.MethodPost, "/api/categories", tokenForRole(t, entity.RoleAdmin), map[string]interface{}{"name": "  Paint "})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Paint", decodeBody(t, resp)["data"].(map[string]interface{})["name"])
}

func TestCategories_NombreDuplicado(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/categories", tokenForRole(t, entity.RoleAdmin), map[string]interface{}{"name": "tools"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeBody(t, resp)["code"])
}

func TestCategories_BorrarConItemsEsConflicto(t *testing.T) {
	e := newAPI(t)
	e.createItem(t, map[string]interface{}{"name": "Hammer", "quantity": 1, "status": "in_stock"})

	resp := doRequest(t, e.app, http.MethodDelete, "/api/categories/"+e.tools.ID, tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeBody(t, resp)["code"])

	resp = doRequest(t, e.app, http.MethodGet, "/api/categories", tokenForRole(t, entity.RoleViewer), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["data"], 1, "la categoría sigue existiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin
// ──────────────────────────────────────────────────────────────────────────────

func TestAdmin_ManagerNoAccede(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodGet, "/api/admin/roles", tokenForRole(t, entity.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdmin_CambiarRol(t *testing.T) {
	e := newAPI(t)
	viewerID := testProfiles[entity.RoleViewer].ID
	resp := doRequest(t, e.app, http.MethodPatch, "/api/admin/roles", tokenForRole(t, entity.RoleAdmin),
		map[string]interface{}{"userId": viewerID, "role": "manager"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeBody(t, resp)["success"])

	p, err := e.store.Profiles().GetByID(context.Background(), viewerID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, p.Role)

	resp = doRequest(t, e.app, http.MethodGet, "/api/admin/roles", tokenForRole(t, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody(t, resp)["data"], 3)
}

func TestAdmin_InvitarRegistraPerfil(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/admin/invite", tokenForRole(t, entity.RoleAdmin),
		map[string]interface{}{"email": "new@example.com", "role": "viewer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, e.identity.userID, body["userId"])

	p, err := e.store.Profiles().GetByID(context.Background(), e.identity.userID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleViewer, p.Role)
}

func TestAdmin_InvitarFalloDelProveedor(t *testing.T) {
	e := newAPI(t)
	e.identity.err = errors.New("User already registered")
	resp := doRequest(t, e.app, http.MethodPost, "/api/admin/invite", tokenForRole(t, entity.RoleAdmin),
		map[string]interface{}{"email": "new@example.com", "role": "viewer"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "User already registered")
}

// ──────────────────────────────────────────────────────────────────────────────
// AI (sin modelo: siempre fallback)
// ──────────────────────────────────────────────────────────────────────────────

func TestAI_ChatDataFallback(t *testing.T) {
	e := newAPI(t)
	e.createItem(t, map[string]interface{}{"name": "Hammer", "quantity": 1, "status": "in_stock", "reorder_threshold": 3})

	resp := doRequest(t, e.app, http.MethodPost, "/api/ai/chat-data", tokenForRole(t, entity.RoleViewer),
		map[string]interface{}{"message": "show me low stock items"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "fallback", body["source"])
	assert.Equal(t, "count_low_stock", body["action"])
	assert.Equal(t, "I found 1 low-stock item(s).", body["answer"])
}

func TestAI_ChatDataMensajeCorto(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/ai/chat-data", tokenForRole(t, entity.RoleViewer),
		map[string]interface{}{"message": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAI_NLSearchFallback(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/ai/nl-search", tokenForRole(t, entity.RoleViewer),
		map[string]interface{}{"query": "hammers in aisle 3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "fallback", body["source"])
	assert.Empty(t, body["filters"])
}

func TestAI_RestockSoloPlanificacion(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/ai/restock", tokenForRole(t, entity.RoleViewer), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	e.createItem(t, map[string]interface{}{"name": "Hammer", "quantity": 0, "status": "in_stock", "reorder_threshold": 10})
	resp = doRequest(t, e.app, http.MethodPost, "/api/ai/restock", tokenForRole(t, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "fallback", body["source"])
	rows := body["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, "high", rows[0].(map[string]interface{})["urgency"])
}

func TestAI_SupplierDraftsSinCandidatos(t *testing.T) {
	e := newAPI(t)
	resp := doRequest(t, e.app, http.MethodPost, "/api/ai/supplier-drafts", tokenForRole(t, entity.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "fallback", body["source"])
	assert.Equal(t, []interface{}{}, body["data"])
}

func TestAI_SupplierDraftsPDF(t *testing.T) {
	e := newAPI(t)
	e.createItem(t, map[string]interface{}{"name": "Hammer", "quantity": 1, "status": "in_stock", "reorder_threshold": 4, "supplier": "Acme"})

	resp := doRequest(t, e.app, http.MethodPost, "/api/ai/supplier-drafts/pdf", tokenForRole(t, entity.RoleManager), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "supplier-drafts-")
	assert.Equal(t, "fallback", resp.Header.Get("X-Drafts-Source"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(raw))

	require.Len(t, e.pdf.drafts, 1)
	assert.Equal(t, "Acme", e.pdf.drafts[0].Supplier)
}
