package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/inventory"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para ítems de inventario.
// Cada operación recibe el perfil que actúa; autorización y validación ocurren antes de tocar el store.
type ItemUseCase struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	now        func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.ItemRepository, categories repository.CategoryRepository) *ItemUseCase {
	return &ItemUseCase{items: items, categories: categories, now: func() time.Time { return time.Now().UTC() }}
}

// List aplica los filtros del listado. Sin filtros devuelve todo por updated_at desc (máx. 100 filas).
func (uc *ItemUseCase) List(ctx context.Context, actor *entity.Profile, in dto.ListItemsQuery) ([]dto.ItemResponse, error) {
	if err := entity.Authorize(actor, entity.ReadRoles...); err != nil {
		return nil, err
	}
	f, limit, err := validation.ListQuery(in)
	if err != nil {
		return nil, err
	}
	list, err := uc.items.Find(ctx, inventory.Compose(f, limit, nil))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// GetByID domain.ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, actor *entity.Profile, id string) (*dto.ItemResponse, error) {
	if err := entity.Authorize(actor, entity.ReadRoles...); err != nil {
		return nil, err
	}
	item, err := uc.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Create crea un ítem. La categoría debe existir; el estado se deriva salvo ordered/discontinued.
func (uc *ItemUseCase) Create(ctx context.Context, actor *entity.Profile, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if err := entity.Authorize(actor, entity.ItemWriteRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	requested := entity.ItemStatus(in.Status)
	if requested == entity.StatusDiscontinued && *in.Quantity > 0 {
		return nil, fmt.Errorf("%w: un ítem discontinuado debe tener cantidad 0", domain.ErrInvalidInput)
	}

	category, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidCategory
	}

	item := &entity.InventoryItem{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Quantity:         *in.Quantity,
		CategoryID:       category.ID,
		Category:         category.Name,
		SKU:              deref(in.SKU),
		Location:         deref(in.Location),
		Supplier:         deref(in.Supplier),
		UnitCost:         in.UnitCost,
		ReorderThreshold: in.ReorderThreshold,
		Notes:            deref(in.Notes),
		UpdatedAt:        uc.now(),
		UpdatedBy:        actor.ID,
	}
	item.Status = entity.ResolveStatus(requested, item.Quantity, item.ReorderThreshold)

	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update aplica un parche parcial. Cantidad y umbral se combinan con los actuales para re-derivar
// el estado; un ordered/discontinued existente se conserva si el parche no trae estado.
// El servicio Next.js anterior re-derivaba siempre desde cantidad y umbral en ese caso.
// Pedir (ordered) un ítem discontinuado es un conflicto y el ítem queda intacto.
func (uc *ItemUseCase) Update(ctx context.Context, actor *entity.Profile, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := entity.Authorize(actor, entity.ItemWriteRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	item, err := uc.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	requested := item.Status
	if in.Status != nil {
		requested = entity.ItemStatus(*in.Status)
	}
	if item.Status == entity.StatusDiscontinued && requested == entity.StatusOrdered {
		return nil, fmt.Errorf("%w: no se puede pedir un ítem discontinuado", domain.ErrConflict)
	}

	if in.CategoryID != nil {
		category, err := uc.categories.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrInvalidCategory
		}
		item.CategoryID = category.ID
		item.Category = category.Name
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.ReorderThreshold != nil {
		item.ReorderThreshold = in.ReorderThreshold
	}
	if in.SKU != nil {
		item.SKU = *in.SKU
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.UnitCost != nil {
		item.UnitCost = in.UnitCost
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	item.Status = entity.ResolveStatus(requested, item.Quantity, item.ReorderThreshold)
	item.UpdatedAt = uc.now()
	item.UpdatedBy = actor.ID

	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un ítem. domain.ErrNotFound si no existe.
func (uc *ItemUseCase) Delete(ctx context.Context, actor *entity.Profile, id string) error {
	if err := entity.Authorize(actor, entity.ItemWriteRoles...); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	return uc.items.Delete(ctx, id)
}

func (uc *ItemUseCase) findItem(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:               it.ID,
		Name:             it.Name,
		Quantity:         it.Quantity,
		CategoryID:       it.CategoryID,
		Category:         it.Category,
		Status:           string(it.Status),
		SKU:              optional(it.SKU),
		Location:         optional(it.Location),
		Supplier:         optional(it.Supplier),
		UnitCost:         it.UnitCost,
		ReorderThreshold: it.ReorderThreshold,
		Notes:            optional(it.Notes),
		UpdatedAt:        it.UpdatedAt,
		UpdatedBy:        it.UpdatedBy,
	}
}

// checkID un id que no es uuid no puede existir en el store.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// optional "" → nil para serializar null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
