package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

var (
	locationRe    = regexp.MustCompile(`(?i)\b(?:from|in)\s+(warehouse\s+[a-z0-9-]+)\b`)
	maxQuantityRe = regexp.MustCompile(`(?i)\b(?:under|below|less than)\s+(\d+)\b`)
)

// Extract deriva filtros de texto libre con reglas fijas. Es pura: mismo texto, mismo resultado.
//
// Las frases de estado se evalúan en orden y la última que aparece gana:
// "low stock", "discontinued", "ordered", "in stock".
func Extract(text string) Set {
	var out Set
	lower := strings.ToLower(text)

	if m := locationRe.FindStringSubmatch(text); m != nil {
		out.Location = m[1]
	}

	if strings.Contains(lower, "low stock") {
		out.LowStockOnly = true
		out.Status = entity.StatusLowStock
	}
	if strings.Contains(lower, "discontinued") {
		out.Status = entity.StatusDiscontinued
	}
	if strings.Contains(lower, "ordered") {
		out.Status = entity.StatusOrdered
	}
	if strings.Contains(lower, "in stock") {
		out.Status = entity.StatusInStock
	}

	if m := maxQuantityRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out.MaxQuantity = &n
		}
	}
	return out
}
