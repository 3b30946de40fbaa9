package assistant

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

// modelFilters filtros tal como los propone el modelo. Las claves desconocidas se ignoran.
type modelFilters struct {
	Q            *string `json:"q"`
	Category     *string `json:"category"`
	Status       *string `json:"status" validate:"omitempty,oneof=in_stock low_stock ordered discontinued"`
	MaxQuantity  *int    `json:"maxQuantity" validate:"omitempty,min=0"`
	Location     *string `json:"location"`
	Supplier     *string `json:"supplier"`
	LowStockOnly *bool   `json:"lowStockOnly"`
	SortBy       *string `json:"sortBy" validate:"omitempty,oneof=name quantity updated_at category"`
	SortDir      *string `json:"sortDir" validate:"omitempty,oneof=asc desc"`
}

func (m *modelFilters) toSet() filter.Set {
	if m == nil {
		return filter.Set{}
	}
	f := filter.Set{
		Q:           str(m.Q),
		Category:    str(m.Category),
		Status:      entity.ItemStatus(str(m.Status)),
		MaxQuantity: m.MaxQuantity,
		Location:    str(m.Location),
		Supplier:    str(m.Supplier),
		SortBy:      filter.SortField(str(m.SortBy)),
		SortDir:     filter.SortDir(str(m.SortDir)),
	}
	if m.LowStockOnly != nil {
		f.LowStockOnly = *m.LowStockOnly
	}
	return f
}

type intentPayload struct {
	Action  string        `json:"action" validate:"required,oneof=list_items count_low_stock group_by_category group_by_supplier"`
	Filters *modelFilters `json:"filters"`
	Limit   *int          `json:"limit" validate:"omitempty,min=1,max=100"`
}

type intentEnvelope struct {
	Intent *intentPayload `json:"intent" validate:"required"`
}

type intentRequest struct {
	Message             string   `json:"message"`
	AvailableCategories []string `json:"availableCategories"`
}

// ResolveIntent combina el extractor determinista con la propuesta del modelo.
// Los valores extraídos del texto siempre ganan sobre los del modelo. Nunca devuelve error:
// si el modelo falla o responde fuera de esquema se usa filter.Fallback.
func (s *Service) ResolveIntent(ctx context.Context, message string, categories []*entity.Category) filter.Intent {
	det := filter.Extract(message)

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	var out intentEnvelope
	err := s.complete(ctx, intentPrompt, intentRequest{Message: message, AvailableCategories: names}, &out)
	if err != nil {
		s.fellBack(featureChat, err)
		return filter.Fallback(message, det)
	}
	s.usedAI(featureChat)

	limit := filter.DefaultLimit
	if out.Intent.Limit != nil {
		limit = *out.Intent.Limit
	}
	return filter.Intent{
		Action:  filter.Action(out.Intent.Action),
		Filters: filter.Overlay(out.Intent.Filters.toSet(), det),
		Limit:   limit,
		Source:  filter.SourceAI,
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
