package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ai/internal/application/assistant"
	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
)

// AIHandler endpoints asistidos por IA. Nunca responden error por fallos del modelo:
// el campo source indica si el resultado viene del modelo ("ai") o del fallback.
type AIHandler struct {
	svc *assistant.Service
	pdf ports.DraftsPDFRenderer
}

// NewAIHandler construye el handler. pdf nil deshabilita la exportación de borradores.
func NewAIHandler(svc *assistant.Service, pdf ports.DraftsPDFRenderer) *AIHandler {
	return &AIHandler{svc: svc, pdf: pdf}
}

// NLSearch godoc
// @Summary      Búsqueda en lenguaje natural
// @Description  Traduce una consulta libre a filtros del listado de ítems.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NLSearchRequest  true  "query (3-500 caracteres)"
// @Success      200   {object}  dto.NLSearchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/nl-search [post]
func (h *AIHandler) NLSearch(c *fiber.Ctx) error {
	var in dto.NLSearchRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.NLSearch(c.UserContext(), GetProfile(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChatData godoc
// @Summary      Preguntas sobre los datos de inventario
// @Description  Resuelve la intención, consulta con filtros seguros y da forma a la respuesta.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatDataRequest  true  "message (2-1000 caracteres)"
// @Success      200   {object}  dto.ChatDataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/chat-data [post]
func (h *AIHandler) ChatData(c *fiber.Ctx) error {
	var in dto.ChatDataRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.ChatData(c.UserContext(), GetProfile(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Sugerencias de reposición
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RestockResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ai/restock [post]
func (h *AIHandler) Restock(c *fiber.Ctx) error {
	out, err := h.svc.Restock(c.UserContext(), GetProfile(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SupplierDrafts godoc
// @Summary      Borradores de pedido por proveedor
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SupplierDraftsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ai/supplier-drafts [post]
func (h *AIHandler) SupplierDrafts(c *fiber.Ctx) error {
	out, err := h.svc.SupplierDrafts(c.UserContext(), GetProfile(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SupplierDraftsPDF godoc
// @Summary      Borradores de pedido en PDF
// @Description  Mismos borradores que supplier-drafts, listos para imprimir o adjuntar.
// @Tags         ai
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ai/supplier-drafts/pdf [post]
func (h *AIHandler) SupplierDraftsPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "exportación PDF no disponible"})
	}
	out, err := h.svc.SupplierDrafts(c.UserContext(), GetProfile(c))
	if err != nil {
		return writeError(c, err)
	}
	now := time.Now().UTC()
	doc, err := h.pdf.RenderSupplierDrafts(c.UserContext(), out.Data, now)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="supplier-drafts-`+now.Format("20060102")+`.pdf"`)
	c.Set("X-Drafts-Source", string(out.Source))
	return c.Send(doc)
}
