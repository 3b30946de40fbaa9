package postgres

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
)

// itemSelect columnas de un ítem con el nombre vigente de su categoría.
const itemSelect = `
		SELECT i.id, i.name, i.quantity, i.category_id, COALESCE(c.name, i.category, ''),
		       i.status, i.sku, i.location, i.supplier, i.unit_cost, i.reorder_threshold,
		       i.notes, i.last_updated_at, i.updated_by
		FROM inventory_items i
		LEFT JOIN categories c ON c.id = i.category_id`

var itemColumns = map[criteria.Field]string{
	criteria.FieldID:         "i.id::text",
	criteria.FieldName:       "i.name",
	criteria.FieldSKU:        "i.sku",
	criteria.FieldLocation:   "i.location",
	criteria.FieldSupplier:   "i.supplier",
	criteria.FieldStatus:     "i.status",
	criteria.FieldCategoryID: "i.category_id::text",
	criteria.FieldCategory:   "COALESCE(c.name, i.category, '')",
	criteria.FieldQuantity:   "i.quantity",
	criteria.FieldUpdatedAt:  "i.last_updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildItemQuery traduce q a SQL parametrizado. Los valores nunca se interpolan en el texto.
func buildItemQuery(q criteria.Query) (string, []any, error) {
	var (
		sb    strings.Builder
		where []string
		args  []any
	)
	sb.WriteString(itemSelect)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	for _, p := range q.Predicates {
		col, ok := itemColumns[p.Target()]
		if !ok {
			return "", nil, fmt.Errorf("campo no consultable: %q", p.Target())
		}
		switch p := p.(type) {
		case criteria.Contains:
			where = append(where, fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, arg("%"+likeEscaper.Replace(p.Value)+"%")))
		case criteria.Equals:
			where = append(where, fmt.Sprintf("%s = %s", col, arg(p.Value)))
		case criteria.NotEquals:
			where = append(where, fmt.Sprintf("%s IS DISTINCT FROM %s", col, arg(p.Value)))
		case criteria.AtMost:
			where = append(where, fmt.Sprintf("%s <= %s", col, arg(p.Value)))
		default:
			return "", nil, fmt.Errorf("predicado no soportado: %T", p)
		}
	}
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}

	order := q.Order
	if order.Field == "" {
		order = criteria.DefaultOrder
	}
	col, ok := itemColumns[order.Field]
	if !ok {
		return "", nil, fmt.Errorf("campo de orden no soportado: %q", order.Field)
	}
	dir := "ASC"
	if order.Desc {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, "\n\t\tORDER BY %s %s, i.id ASC", col, dir)

	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %s", arg(q.Limit))
	}
	return sb.String(), args, nil
}
