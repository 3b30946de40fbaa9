package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/criteria"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems en memoria.
type ItemRepo struct {
	s    *Store
	held bool
}

// Find evalúa q: conjunción de predicados, orden con desempate por id y límite.
func (r *ItemRepo) Find(ctx context.Context, q criteria.Query) ([]*entity.InventoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*entity.InventoryItem
	r.s.read(r.held, func() {
		for _, it := range r.s.items {
			item := r.withCategoryName(it)
			if matchesAll(&item, q.Predicates) {
				out = append(out, &item)
			}
		}
	})

	order := q.Order
	if order.Field == "" {
		order = criteria.DefaultOrder
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareField(out[i], out[j], order.Field)
		if c == 0 {
			return out[i].ID < out[j].ID
		}
		if order.Desc {
			return c > 0
		}
		return c < 0
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *entity.InventoryItem
	r.s.read(r.held, func() {
		if it, ok := r.s.items[id]; ok {
			item := r.withCategoryName(it)
			found = &item
		}
	})
	return found, nil
}

// Create asigna ID si viene vacío.
func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	var err error
	r.s.write(r.held, func() {
		if _, exists := r.s.items[item.ID]; exists {
			err = domain.ErrDuplicate
			return
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = r.s.now()
		}
		r.s.items[item.ID] = *item
	})
	return err
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(r.held, func() {
		if _, ok := r.s.items[item.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		r.s.items[item.ID] = *item
	})
	return err
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(r.held, func() {
		if _, ok := r.s.items[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		delete(r.s.items, id)
	})
	return err
}

func (r *ItemRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	r.s.read(r.held, func() {
		for _, it := range r.s.items {
			if it.CategoryID == categoryID {
				n++
			}
		}
	})
	return n, nil
}

// withCategoryName usa el nombre vigente de la categoría si existe. Llamar con el lock tomado.
func (r *ItemRepo) withCategoryName(it entity.InventoryItem) entity.InventoryItem {
	if c, ok := r.s.categories[it.CategoryID]; ok {
		it.Category = c.Name
	}
	return it
}

func matchesAll(it *entity.InventoryItem, preds []criteria.Predicate) bool {
	for _, p := range preds {
		if !matches(it, p) {
			return false
		}
	}
	return true
}

func matches(it *entity.InventoryItem, p criteria.Predicate) bool {
	switch p := p.(type) {
	case criteria.Contains:
		v := textField(it, p.Field)
		return v != "" && strings.Contains(fold(v), fold(p.Value))
	case criteria.Equals:
		return textField(it, p.Field) == p.Value
	case criteria.NotEquals:
		return textField(it, p.Field) != p.Value
	case criteria.AtMost:
		return p.Field == criteria.FieldQuantity && it.Quantity <= p.Value
	}
	return false
}

func textField(it *entity.InventoryItem, f criteria.Field) string {
	switch f {
	case criteria.FieldID:
		return it.ID
	case criteria.FieldName:
		return it.Name
	case criteria.FieldSKU:
		return it.SKU
	case criteria.FieldLocation:
		return it.Location
	case criteria.FieldSupplier:
		return it.Supplier
	case criteria.FieldStatus:
		return string(it.Status)
	case criteria.FieldCategoryID:
		return it.CategoryID
	case criteria.FieldCategory:
		return it.Category
	}
	return ""
}

func compareField(a, b *entity.InventoryItem, f criteria.Field) int {
	switch f {
	case criteria.FieldQuantity:
		return a.Quantity - b.Quantity
	case criteria.FieldUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return strings.Compare(textField(a, f), textField(b, f))
}

func fold(s string) string { return cases.Fold().String(s) }
