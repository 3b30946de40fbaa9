package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
)

// DraftsPDFRenderer genera la versión imprimible de los borradores de pedido.
type DraftsPDFRenderer interface {
	RenderSupplierDrafts(ctx context.Context, drafts []dto.SupplierDraft, generatedAt time.Time) ([]byte, error)
}
