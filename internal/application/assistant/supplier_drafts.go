package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

const (
	generalSupplier = "General Supplier"
	draftReason     = "Quantity is below reorder threshold."
)

type draftsEnvelope struct {
	Drafts []dto.SupplierDraft `json:"drafts" validate:"required,dive"`
}

type draftItemInput struct {
	SKU              *string `json:"sku"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	ReorderThreshold *int    `json:"reorder_threshold"`
	Supplier         *string `json:"supplier"`
	Status           string  `json:"status"`
}

// SupplierDrafts prepara correos de pedido por proveedor para los ítems que necesitan reposición.
// Sin candidatos responde vacío sin consultar al modelo.
func (s *Service) SupplierDrafts(ctx context.Context, actor *entity.Profile) (*dto.SupplierDraftsResponse, error) {
	if err := entity.Authorize(actor, entity.PlanningRoles...); err != nil {
		return nil, err
	}
	all, err := s.items.Find(ctx, criteria.All().Where(
		criteria.NotEquals{Field: criteria.FieldStatus, Value: string(entity.StatusDiscontinued)},
	))
	if err != nil {
		return nil, err
	}

	candidates := reorderCandidates(all)
	if len(candidates) == 0 {
		return &dto.SupplierDraftsResponse{Data: []dto.SupplierDraft{}, Source: filter.SourceFallback}, nil
	}

	payload := make([]draftItemInput, 0, len(candidates))
	for _, it := range candidates {
		payload = append(payload, draftItemInput{
			SKU:              optional(it.SKU),
			Name:             it.Name,
			Quantity:         it.Quantity,
			ReorderThreshold: it.ReorderThreshold,
			Supplier:         optional(it.Supplier),
			Status:           string(it.Status),
		})
	}

	var out draftsEnvelope
	if err := s.complete(ctx, draftsPrompt, map[string]interface{}{"items": payload}, &out); err != nil {
		s.fellBack(featureDrafts, err)
		return &dto.SupplierDraftsResponse{Data: DraftsFallback(candidates), Source: filter.SourceFallback}, nil
	}
	s.usedAI(featureDrafts)
	return &dto.SupplierDraftsResponse{Data: out.Drafts, Source: filter.SourceAI}, nil
}

// reorderCandidates low_stock, o cantidad <= umbral cuando hay umbral.
func reorderCandidates(items []*entity.InventoryItem) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	for _, it := range items {
		if it.Status == entity.StatusLowStock ||
			(it.ReorderThreshold != nil && it.Quantity <= *it.ReorderThreshold) {
			out = append(out, it)
		}
	}
	return out
}

// DraftsFallback agrupa por proveedor en orden de aparición y arma un correo por grupo.
func DraftsFallback(items []*entity.InventoryItem) []dto.SupplierDraft {
	var drafts []dto.SupplierDraft
	index := map[string]int{}

	for _, it := range items {
		supplier := strings.TrimSpace(it.Supplier)
		if supplier == "" {
			supplier = generalSupplier
		}
		i, ok := index[supplier]
		if !ok {
			i = len(drafts)
			index[supplier] = i
			drafts = append(drafts, dto.SupplierDraft{Supplier: supplier, Items: []dto.DraftItem{}})
		}
		qty := max(1, it.ThresholdOrZero()-it.Quantity+5)
		drafts[i].Items = append(drafts[i].Items, dto.DraftItem{
			SKU:        optional(it.SKU),
			Name:       it.Name,
			QtyToOrder: &qty,
			Reason:     draftReason,
		})
	}

	for i := range drafts {
		d := &drafts[i]
		lines := make([]string, 0, len(d.Items))
		for _, line := range d.Items {
			sku := "no-sku"
			if line.SKU != nil {
				sku = *line.SKU
			}
			lines = append(lines, fmt.Sprintf("- %s (%s): qty %d", line.Name, sku, *line.QtyToOrder))
		}
		d.Subject = "Reorder Request - " + d.Supplier
		d.Body = fmt.Sprintf("Hello %s team,\n\nPlease prepare a quote/order for the following items:\n%s\n\nThanks.",
			d.Supplier, strings.Join(lines, "\n"))
	}
	return drafts
}
