package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ItemRepository interface {
	Find(ctx context.Context, q criteria.Query) ([]*entity.InventoryItem, error)
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	Delete(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}
