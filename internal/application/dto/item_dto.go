package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem.
type CreateItemRequest struct {
	Name             string           `json:"name" validate:"required,min=2,max=120"`
	Quantity         *int             `json:"quantity" validate:"required,min=0"`
	CategoryID       string           `json:"categoryId" validate:"required,uuid"`
	Status           string           `json:"status" validate:"required,oneof=in_stock low_stock ordered discontinued"`
	SKU              *string          `json:"sku" validate:"omitempty,max=80"`
	Location         *string          `json:"location" validate:"omitempty,max=120"`
	Supplier         *string          `json:"supplier" validate:"omitempty,max=120"`
	UnitCost         *decimal.Decimal `json:"unit_cost" validate:"omitempty,min=0"`
	ReorderThreshold *int             `json:"reorder_threshold" validate:"omitempty,min=0"`
	Notes            *string          `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateItemRequest entrada parcial (PATCH). Campo ausente o null = sin cambio; "" borra un texto opcional.
type UpdateItemRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=2,max=120"`
	Quantity         *int             `json:"quantity" validate:"omitempty,min=0"`
	CategoryID       *string          `json:"categoryId" validate:"omitempty,uuid"`
	Status           *string          `json:"status" validate:"omitempty,oneof=in_stock low_stock ordered discontinued"`
	SKU              *string          `json:"sku" validate:"omitempty,max=80"`
	Location         *string          `json:"location" validate:"omitempty,max=120"`
	Supplier         *string          `json:"supplier" validate:"omitempty,max=120"`
	UnitCost         *decimal.Decimal `json:"unit_cost" validate:"omitempty,min=0"`
	ReorderThreshold *int             `json:"reorder_threshold" validate:"omitempty,min=0"`
	Notes            *string          `json:"notes" validate:"omitempty,max=2000"`
}

// ListItemsQuery parámetros de GET /api/items. Llegan como texto y se convierten tras validar.
type ListItemsQuery struct {
	Q            string `query:"q"`
	CategoryID   string `query:"categoryId" validate:"omitempty,uuid"`
	Status       string `query:"status" validate:"omitempty,oneof=in_stock low_stock ordered discontinued"`
	SKU          string `query:"sku"`
	Location     string `query:"location"`
	Supplier     string `query:"supplier"`
	MaxQuantity  string `query:"maxQuantity" validate:"omitempty,number"`
	LowStockOnly string `query:"lowStockOnly" validate:"omitempty,oneof=true false"`
	SortBy       string `query:"sortBy" validate:"omitempty,oneof=name quantity updated_at category"`
	SortDir      string `query:"sortDir" validate:"omitempty,oneof=asc desc"`
	Limit        string `query:"limit" validate:"omitempty,number"`
}

// ItemResponse salida de un ítem. Los opcionales ausentes se serializan como null.
type ItemResponse struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Quantity         int              `json:"quantity"`
	CategoryID       string           `json:"category_id"`
	Category         string           `json:"category"`
	Status           string           `json:"status"`
	SKU              *string          `json:"sku"`
	Location         *string          `json:"location"`
	Supplier         *string          `json:"supplier"`
	UnitCost         *decimal.Decimal `json:"unit_cost"`
	ReorderThreshold *int             `json:"reorder_threshold"`
	Notes            *string          `json:"notes"`
	UpdatedAt        time.Time        `json:"updated_at"`
	UpdatedBy        string           `json:"updated_by"`
}
