// Package filter define el conjunto de filtros sobre el inventario y la intención de chat,
// junto con el extractor determinista que los deriva de texto libre.
package filter

import "github.com/jhoicas/Inventario-ai/internal/domain/entity"

// SortField campo de ordenamiento permitido.
type SortField string

const (
	SortByName      SortField = "name"
	SortByQuantity  SortField = "quantity"
	SortByUpdatedAt SortField = "updated_at"
	SortByCategory  SortField = "category"
)

// Valid indica si f es un campo de orden conocido.
func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByQuantity, SortByUpdatedAt, SortByCategory:
		return true
	}
	return false
}

// SortDir dirección del orden.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// Valid indica si d es asc o desc.
func (d SortDir) Valid() bool { return d == Asc || d == Desc }

// Set criterios de búsqueda de ítems. Todos los campos son opcionales; el valor cero significa "sin filtro".
// Un Set vacío selecciona todos los ítems ordenados por updated_at desc.
type Set struct {
	Q            string            `json:"q,omitempty"`
	Category     string            `json:"category,omitempty"`
	CategoryID   string            `json:"categoryId,omitempty"`
	Status       entity.ItemStatus `json:"status,omitempty"`
	SKU          string            `json:"sku,omitempty"`
	MaxQuantity  *int              `json:"maxQuantity,omitempty"`
	Location     string            `json:"location,omitempty"`
	Supplier     string            `json:"supplier,omitempty"`
	LowStockOnly bool              `json:"lowStockOnly,omitempty"`
	SortBy       SortField         `json:"sortBy,omitempty"`
	SortDir      SortDir           `json:"sortDir,omitempty"`
}

// IsZero indica que no hay ningún criterio.
func (s Set) IsZero() bool {
	return s == Set{} // MaxQuantity nil en ambos lados
}

// Overlay devuelve base con cada campo presente en top sobrescrito por top.
// top gana siempre: así los valores extraídos del texto prevalecen sobre los del modelo.
func Overlay(base, top Set) Set {
	out := base
	if top.Q != "" {
		out.Q = top.Q
	}
	if top.Category != "" {
		out.Category = top.Category
	}
	if top.CategoryID != "" {
		out.CategoryID = top.CategoryID
	}
	if top.Status != "" {
		out.Status = top.Status
	}
	if top.SKU != "" {
		out.SKU = top.SKU
	}
	if top.MaxQuantity != nil {
		n := *top.MaxQuantity
		out.MaxQuantity = &n
	}
	if top.Location != "" {
		out.Location = top.Location
	}
	if top.Supplier != "" {
		out.Supplier = top.Supplier
	}
	if top.LowStockOnly {
		out.LowStockOnly = true
	}
	if top.SortBy != "" {
		out.SortBy = top.SortBy
	}
	if top.SortDir != "" {
		out.SortDir = top.SortDir
	}
	return out
}
