package entity

import "time"

// Category agrupa ítems de inventario. Name es único (sin distinguir mayúsculas en la búsqueda por nombre).
type Category struct {
	ID          string
	Name        string
	Description string // vacío = sin descripción
	CreatedBy   string
	CreatedAt   time.Time
}
