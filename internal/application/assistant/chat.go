package assistant

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/inventory"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

// ChatData responde una pregunta en lenguaje natural sobre el inventario.
// Solo los fallos del store se propagan.
func (s *Service) ChatData(ctx context.Context, actor *entity.Profile, in dto.ChatDataRequest) (*dto.ChatDataResponse, error) {
	if err := entity.Authorize(actor, entity.AssistantRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	intent := s.ResolveIntent(ctx, in.Message, categories)

	rows, err := s.items.Find(ctx, inventory.Compose(intent.Filters, intent.Limit, categories))
	if err != nil {
		return nil, err
	}
	return Shape(intent, rows), nil
}
