package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Lo usa el borrado de categorías: el conteo de ítems y el delete deben ver el mismo estado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}
