package validation

import (
	"strconv"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

// ListQuery valida los parámetros de listado y devuelve el filtro y el límite pedido (0 = por defecto).
// sortBy/sortDir por defecto: updated_at / desc.
func ListQuery(q dto.ListItemsQuery) (filter.Set, int, error) {
	if err := Struct(&q); err != nil {
		return filter.Set{}, 0, err
	}

	f := filter.Set{
		Q:            q.Q,
		CategoryID:   q.CategoryID,
		Status:       entity.ItemStatus(q.Status),
		SKU:          q.SKU,
		Location:     q.Location,
		Supplier:     q.Supplier,
		LowStockOnly: q.LowStockOnly == "true",
		SortBy:       filter.SortField(q.SortBy),
		SortDir:      filter.SortDir(q.SortDir),
	}
	if f.SortBy == "" {
		f.SortBy = filter.SortByUpdatedAt
	}
	if f.SortDir == "" {
		f.SortDir = filter.Desc
	}
	if q.MaxQuantity != "" {
		n, err := strconv.Atoi(q.MaxQuantity)
		if err != nil {
			return filter.Set{}, 0, NewError("maxQuantity", "number")
		}
		f.MaxQuantity = &n
	}

	limit := 0
	if q.Limit != "" {
		n, err := strconv.Atoi(q.Limit)
		if err != nil {
			return filter.Set{}, 0, NewError("limit", "number")
		}
		limit = n
	}
	return f, limit, nil
}

// FilterSet valida un filtro ya tipado (por ejemplo el propuesto por el modelo)
// con las mismas reglas que los parámetros de listado.
func FilterSet(f filter.Set) error {
	fields := map[string]string{}
	if f.Status != "" && !f.Status.Valid() {
		fields["status"] = "oneof"
	}
	if f.MaxQuantity != nil && *f.MaxQuantity < 0 {
		fields["maxQuantity"] = "min=0"
	}
	if f.SortBy != "" && !f.SortBy.Valid() {
		fields["sortBy"] = "oneof"
	}
	if f.SortDir != "" && !f.SortDir.Valid() {
		fields["sortDir"] = "oneof"
	}
	if f.CategoryID != "" {
		if err := validate.Var(f.CategoryID, "uuid"); err != nil {
			fields["categoryId"] = "uuid"
		}
	}
	if len(fields) > 0 {
		return &Error{Fields: fields}
	}
	return nil
}
