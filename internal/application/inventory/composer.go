package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

// Compose traduce un filtro a criterios de consulta independientes del almacenamiento.
//
//   - q, location, supplier y sku se buscan como subcadena sin distinguir mayúsculas.
//   - lowStockOnly fuerza status=low_stock por encima de cualquier status explícito.
//   - Category sin CategoryID se resuelve contra categories; si no hay coincidencia se ignora.
//   - El límite queda en [1, filter.MaxLimit]; <= 0 equivale al máximo.
func Compose(f filter.Set, limit int, categories []*entity.Category) criteria.Query {
	q := criteria.Query{Order: orderFor(f), Limit: ClampLimit(limit)}

	if f.Q != "" {
		q = q.Where(criteria.Contains{Field: criteria.FieldName, Value: f.Q})
	}
	if f.SKU != "" {
		q = q.Where(criteria.Contains{Field: criteria.FieldSKU, Value: f.SKU})
	}
	if f.Location != "" {
		q = q.Where(criteria.Contains{Field: criteria.FieldLocation, Value: f.Location})
	}
	if f.Supplier != "" {
		q = q.Where(criteria.Contains{Field: criteria.FieldSupplier, Value: f.Supplier})
	}

	status := f.Status
	if f.LowStockOnly {
		status = entity.StatusLowStock
	}
	if status != "" {
		q = q.Where(criteria.Equals{Field: criteria.FieldStatus, Value: string(status)})
	}

	categoryID := f.CategoryID
	if categoryID == "" && f.Category != "" {
		if c := ResolveCategory(f.Category, categories); c != nil {
			categoryID = c.ID
		}
	}
	if categoryID != "" {
		q = q.Where(criteria.Equals{Field: criteria.FieldCategoryID, Value: categoryID})
	}

	if f.MaxQuantity != nil {
		q = q.Where(criteria.AtMost{Field: criteria.FieldQuantity, Value: *f.MaxQuantity})
	}
	return q
}

// ClampLimit acota limit a [1, filter.MaxLimit].
func ClampLimit(limit int) int {
	if limit <= 0 || limit > filter.MaxLimit {
		return filter.MaxLimit
	}
	return limit
}

// ResolveCategory busca una categoría por nombre exacto sin distinguir mayúsculas (plegado Unicode).
func ResolveCategory(name string, categories []*entity.Category) *entity.Category {
	want := fold(name)
	if want == "" {
		return nil
	}
	for _, c := range categories {
		if fold(c.Name) == want {
			return c
		}
	}
	return nil
}

// cases.Caser no es seguro entre goroutines; se crea uno por llamada.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func orderFor(f filter.Set) criteria.Order {
	o := criteria.DefaultOrder
	switch f.SortBy {
	case filter.SortByName:
		o.Field = criteria.FieldName
	case filter.SortByQuantity:
		o.Field = criteria.FieldQuantity
	case filter.SortByCategory:
		o.Field = criteria.FieldCategory
	case filter.SortByUpdatedAt:
		o.Field = criteria.FieldUpdatedAt
	}
	if f.SortDir != "" {
		o.Desc = f.SortDir == filter.Desc
	}
	return o
}
