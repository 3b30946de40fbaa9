package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
)

// CategoryHandler maneja las peticiones HTTP de categorías.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.CategoryResponse}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetProfile(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Nombre y descripción"
// @Success      201   {object}  dto.DataResponse{data=dto.CategoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetProfile(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Data: out})
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.DataResponse{data=dto.CategoryResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [patch]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
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
// @Summary      Eliminar categoría
// @Description  409 si algún ítem la referencia.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetProfile(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
