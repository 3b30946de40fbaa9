package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// List ordena por nombre; Create/Update devuelven domain.ErrDuplicate si el nombre ya existe.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
