package assistant

import (
	"fmt"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

// Etiquetas de los grupos sin clave.
const (
	uncategorized   = "Uncategorized"
	unknownSupplier = "Unknown Supplier"
)

// Shape arma la respuesta de chat según la acción. N cuenta las filas devueltas (tras el límite).
func Shape(intent filter.Intent, rows []*entity.InventoryItem) *dto.ChatDataResponse {
	res := &dto.ChatDataResponse{
		Action:         intent.Action,
		AppliedFilters: intent.Filters,
		Source:         intent.Source,
	}

	switch intent.Action {
	case filter.ActionGroupByCategory:
		groups := groupCounts(rows, func(it *entity.InventoryItem) string { return it.Category }, uncategorized)
		out := make([]dto.CategoryGroup, 0, len(groups))
		for _, g := range groups {
			out = append(out, dto.CategoryGroup{Category: g.key, ItemCount: g.count})
		}
		res.Rows = out
		res.Answer = fmt.Sprintf("Found %d category group(s).", len(out))

	case filter.ActionGroupBySupplier:
		groups := groupCounts(rows, func(it *entity.InventoryItem) string { return it.Supplier }, unknownSupplier)
		out := make([]dto.SupplierGroup, 0, len(groups))
		for _, g := range groups {
			out = append(out, dto.SupplierGroup{Supplier: g.key, ItemCount: g.count})
		}
		res.Rows = out
		res.Answer = fmt.Sprintf("Found %d supplier group(s).", len(out))

	case filter.ActionCountLowStock:
		res.Rows = toChatRows(rows)
		res.Answer = fmt.Sprintf("I found %d low-stock item(s).", len(rows))

	default:
		res.Rows = toChatRows(rows)
		res.Answer = fmt.Sprintf("Found %d matching item(s).", len(rows))
	}
	return res
}

type groupCount struct {
	key   string
	count int
}

// groupCounts agrupa en orden de primera aparición; clave vacía → sentinel.
func groupCounts(rows []*entity.InventoryItem, key func(*entity.InventoryItem) string, sentinel string) []groupCount {
	var groups []groupCount
	index := map[string]int{}
	for _, it := range rows {
		k := key(it)
		if k == "" {
			k = sentinel
		}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, groupCount{key: k})
		}
		groups[i].count++
	}
	return groups
}

func toChatRows(rows []*entity.InventoryItem) []dto.ChatRow {
	out := make([]dto.ChatRow, 0, len(rows))
	for _, it := range rows {
		out = append(out, dto.ChatRow{
			ID:        it.ID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Status:    string(it.Status),
			Supplier:  optional(it.Supplier),
			Location:  optional(it.Location),
			Category:  it.Category,
			UpdatedAt: it.UpdatedAt,
		})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
