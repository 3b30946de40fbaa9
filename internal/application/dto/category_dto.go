package dto

import "strings"

// CategoryRequest entrada para crear una categoría.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=80"`
	Description *string `json:"description" validate:"omitempty,max=250"`
}

// Normalize recorta el nombre antes de validar.
func (r *CategoryRequest) Normalize() { r.Name = strings.TrimSpace(r.Name) }

// UpdateCategoryRequest entrada parcial (PATCH).
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=80"`
	Description *string `json:"description" validate:"omitempty,max=250"`
}

// Normalize recorta el nombre antes de validar.
func (r *UpdateCategoryRequest) Normalize() {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
