package assistant

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/inventory"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

type nlSearchEnvelope struct {
	Filters *modelFilters `json:"filters" validate:"required"`
}

// NLSearch traduce una consulta libre a filtros del listado. El nombre de categoría
// propuesto se resuelve a categoryId; un candidato que no pasa las reglas del listado se descarta.
func (s *Service) NLSearch(ctx context.Context, actor *entity.Profile, in dto.NLSearchRequest) (*dto.NLSearchResponse, error) {
	if err := entity.Authorize(actor, entity.AssistantRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	fallback := &dto.NLSearchResponse{Filters: filter.Set{}, Source: filter.SourceFallback}

	var out nlSearchEnvelope
	if err := s.complete(ctx, nlSearchPrompt, in.Query, &out); err != nil {
		s.fellBack(featureNL, err)
		return fallback, nil
	}

	proposed := out.Filters.toSet()
	proposed.LowStockOnly = false // no es una clave permitida en esta función

	if proposed.Category != "" {
		categories, err := s.categories.List(ctx)
		if err != nil {
			s.fellBack(featureNL, err)
			return fallback, nil
		}
		if c := inventory.ResolveCategory(proposed.Category, categories); c != nil {
			proposed.CategoryID = c.ID
		}
		proposed.Category = ""
	}
	s.usedAI(featureNL)

	if err := validation.FilterSet(proposed); err != nil {
		return &dto.NLSearchResponse{Filters: filter.Set{}, Source: filter.SourceAI}, nil
	}
	return &dto.NLSearchResponse{Filters: proposed, Source: filter.SourceAI}, nil
}
