package dto

import (
	"time"

	"github.com/jhoicas/Inventario-ai/internal/domain/filter"
)

// ChatDataRequest POST /api/ai/chat-data.
type ChatDataRequest struct {
	Message string `json:"message" validate:"required,min=2,max=1000"`
}

// NLSearchRequest POST /api/ai/nl-search.
type NLSearchRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}

// NLSearchResponse filtros propuestos para la pantalla de listado.
type NLSearchResponse struct {
	Filters filter.Set    `json:"filters"`
	Source  filter.Source `json:"source"`
}

// ChatRow fila devuelta por list_items / count_low_stock.
type ChatRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	Supplier  *string   `json:"supplier"`
	Location  *string   `json:"location"`
	Category  string    `json:"category"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryGroup fila de group_by_category.
type CategoryGroup struct {
	Category  string `json:"category"`
	ItemCount int    `json:"item_count"`
}

// SupplierGroup fila de group_by_supplier.
type SupplierGroup struct {
	Supplier  string `json:"supplier"`
	ItemCount int    `json:"item_count"`
}

// ChatDataResponse respuesta de chat-data. Rows es []ChatRow, []CategoryGroup o []SupplierGroup según Action.
type ChatDataResponse struct {
	Answer         string        `json:"answer"`
	Action         filter.Action `json:"action"`
	Rows           interface{}   `json:"rows"`
	AppliedFilters filter.Set    `json:"appliedFilters"`
	Source         filter.Source `json:"source"`
}

// RestockSuggestion sugerencia de reposición.
type RestockSuggestion struct {
	ItemID              string `json:"item_id" validate:"required,uuid"`
	Reason              string `json:"reason" validate:"required,min=1"`
	RecommendedOrderQty *int   `json:"recommended_order_qty" validate:"required,min=0"`
	Urgency             string `json:"urgency" validate:"required,oneof=low medium high"`
}

// RestockResponse POST /api/ai/restock.
type RestockResponse struct {
	Data   []RestockSuggestion `json:"data"`
	Source filter.Source       `json:"source"`
}

// DraftItem línea de un borrador de pedido.
type DraftItem struct {
	SKU        *string `json:"sku"`
	Name       string  `json:"name" validate:"required,min=1"`
	QtyToOrder *int    `json:"qty_to_order" validate:"required,min=1"`
	Reason     string  `json:"reason" validate:"required,min=1"`
}

// SupplierDraft borrador de correo a un proveedor.
type SupplierDraft struct {
	Supplier string      `json:"supplier" validate:"required,min=1"`
	Subject  string      `json:"subject" validate:"required,min=1"`
	Body     string      `json:"body" validate:"required,min=1"`
	Items    []DraftItem `json:"items" validate:"required,dive"`
}

// SupplierDraftsResponse POST /api/ai/supplier-drafts.
type SupplierDraftsResponse struct {
	Data   []SupplierDraft `json:"data"`
	Source filter.Source   `json:"source"`
}
