package assistant

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

const restockReason = "Quantity is at or below threshold"

type restockEnvelope struct {
	Suggestions []dto.RestockSuggestion `json:"suggestions" validate:"required,dive"`
}

type restockItem struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	ReorderThreshold *int    `json:"reorder_threshold"`
	Status           string  `json:"status"`
	Supplier         *string `json:"supplier"`
	Category         string  `json:"category"`
}

// Restock sugiere reposiciones. El fallback cubre los ítems no discontinuados con
// cantidad <= umbral (0 si no hay umbral).
func (s *Service) Restock(ctx context.Context, actor *entity.Profile) (*dto.RestockResponse, error) {
	if err := entity.Authorize(actor, entity.PlanningRoles...); err != nil {
		return nil, err
	}
	items, err := s.items.Find(ctx, criteria.All())
	if err != nil {
		return nil, err
	}

	payload := make([]restockItem, 0, len(items))
	for _, it := range items {
		payload = append(payload, restockItem{
			ID:               it.ID,
			Name:             it.Name,
			Quantity:         it.Quantity,
			ReorderThreshold: it.ReorderThreshold,
			Status:           string(it.Status),
			Supplier:         optional(it.Supplier),
			Category:         it.Category,
		})
	}

	var out restockEnvelope
	if err := s.complete(ctx, restockPrompt, map[string]interface{}{"items": payload}, &out); err != nil {
		s.fellBack(featureRestock, err)
		return &dto.RestockResponse{Data: RestockFallback(items), Source: filter.SourceFallback}, nil
	}
	s.usedAI(featureRestock)
	return &dto.RestockResponse{Data: out.Suggestions, Source: filter.SourceAI}, nil
}

// RestockFallback cantidad = umbral - cantidad + max(5, ceil(cantidad*0.2)); urgencia high si no queda stock.
func RestockFallback(items []*entity.InventoryItem) []dto.RestockSuggestion {
	out := []dto.RestockSuggestion{}
	for _, it := range items {
		threshold := it.ThresholdOrZero()
		if it.Status == entity.StatusDiscontinued || threshold < it.Quantity {
			continue
		}
		qty := threshold - it.Quantity + max(5, (it.Quantity+4)/5)
		urgency := "medium"
		if it.Quantity == 0 {
			urgency = "high"
		}
		out = append(out, dto.RestockSuggestion{
			ItemID:              it.ID,
			Reason:              restockReason,
			RecommendedOrderQty: &qty,
			Urgency:             urgency,
		})
	}
	return out
}
