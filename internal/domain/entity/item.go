package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus estado de un ítem de inventario.
type ItemStatus string

const (
	StatusInStock      ItemStatus = "in_stock"
	StatusLowStock     ItemStatus = "low_stock"
	StatusOrdered      ItemStatus = "ordered"
	StatusDiscontinued ItemStatus = "discontinued"
)

// ItemStatuses valores válidos, en el orden en que se documentan.
var ItemStatuses = []ItemStatus{StatusInStock, StatusLowStock, StatusOrdered, StatusDiscontinued}

// Valid indica si s es uno de los estados conocidos.
func (s ItemStatus) Valid() bool {
	for _, v := range ItemStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Manual indica que el estado lo fija el usuario y no se deriva de la cantidad.
func (s ItemStatus) Manual() bool {
	return s == StatusOrdered || s == StatusDiscontinued
}

// InventoryItem ítem del inventario. Los campos opcionales de texto usan "" como ausente.
type InventoryItem struct {
	ID               string
	Name             string
	Quantity         int
	CategoryID       string
	Category         string // nombre denormalizado, se sincroniza en cada escritura
	Status           ItemStatus
	SKU              string
	Location         string
	Supplier         string
	UnitCost         *decimal.Decimal
	ReorderThreshold *int
	Notes            string
	UpdatedAt        time.Time
	UpdatedBy        string
}

// DeriveStatus low_stock si hay umbral y quantity <= umbral; in_stock en otro caso.
func DeriveStatus(quantity int, threshold *int) ItemStatus {
	if threshold != nil && quantity <= *threshold {
		return StatusLowStock
	}
	return StatusInStock
}

// ResolveStatus respeta ordered/discontinued explícitos; cualquier otro valor se deriva.
func ResolveStatus(requested ItemStatus, quantity int, threshold *int) ItemStatus {
	if requested.Manual() {
		return requested
	}
	return DeriveStatus(quantity, threshold)
}

// ThresholdOrZero umbral de reposición, 0 si no está definido.
func (i *InventoryItem) ThresholdOrZero() int {
	if i.ReorderThreshold == nil {
		return 0
	}
	return *i.ReorderThreshold
}
