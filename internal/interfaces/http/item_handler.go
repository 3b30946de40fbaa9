package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
)

// ItemHandler maneja las peticiones HTTP de ítems de inventario (protegido).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Listar ítems
// @Description  Filtros combinados con AND. Orden por defecto updated_at desc. Máximo 100 filas.
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q             query  string  false  "Nombre (subcadena)"
// @Param        categoryId    query  string  false  "ID de categoría"
// @Param        status        query  string  false  "in_stock | low_stock | ordered | discontinued"
// @Param        sku           query  string  false  "SKU (subcadena)"
// @Param        location      query  string  false  "Ubicación (subcadena)"
// @Param        supplier      query  string  false  "Proveedor (subcadena)"
// @Param        maxQuantity   query  int     false  "Cantidad máxima"
// @Param        lowStockOnly  query  bool    false  "Solo bajo stock"
// @Param        sortBy        query  string  false  "name | quantity | updated_at | category"
// @Param        sortDir       query  string  false  "asc | desc"
// @Param        limit         query  int     false  "Límite"  default(100)
// @Success      200  {object}  dto.DataResponse{data=[]dto.ItemResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var q dto.ListItemsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(c.UserContext(), GetProfile(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Create godoc
// @Summary      Crear ítem
// @Description  El estado se deriva de cantidad y umbral salvo ordered/discontinued explícitos.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.DataResponse{data=dto.ItemResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetProfile(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Data: out})
}

// GetByID godoc
// @Summary      Obtener ítem por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.DataResponse{data=dto.ItemResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetProfile(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Update godoc
// @Summary      Actualizar ítem (parcial)
// @Description  Campos ausentes o null no cambian; "" borra un texto opcional.
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del ítem"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DataResponse{data=dto.ItemResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetProfile(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetProfile(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
