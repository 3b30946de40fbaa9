package filter

import (
	"strings"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

// Action acción pedida en una consulta de chat.
type Action string

const (
	ActionListItems       Action = "list_items"
	ActionCountLowStock   Action = "count_low_stock"
	ActionGroupByCategory Action = "group_by_category"
	ActionGroupBySupplier Action = "group_by_supplier"
)

// Actions acciones válidas.
var Actions = []Action{ActionListItems, ActionCountLowStock, ActionGroupByCategory, ActionGroupBySupplier}

// Valid indica si a es una acción conocida.
func (a Action) Valid() bool {
	for _, v := range Actions {
		if a == v {
			return true
		}
	}
	return false
}

// Límites de filas por intención.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Source origen de una intención resuelta.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Intent intención resuelta de una consulta de chat.
type Intent struct {
	Action  Action
	Filters Set
	Limit   int
	Source  Source
}

// Fallback intención usada cuando el modelo no responde o responde algo no válido.
// "low stock" o "below" en el texto piden un conteo de bajo stock; si no, un listado con det.
func Fallback(text string, det Set) Intent {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "low stock") || strings.Contains(lower, "below") {
		f := det
		f.LowStockOnly = true
		f.Status = entity.StatusLowStock
		return Intent{Action: ActionCountLowStock, Filters: f, Limit: DefaultLimit, Source: SourceFallback}
	}
	return Intent{Action: ActionListItems, Filters: det, Limit: DefaultLimit, Source: SourceFallback}
}
