package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías en memoria. El nombre es único sin distinguir mayúsculas.
type CategoryRepo struct {
	s    *Store
	held bool
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []*entity.Category{}
	r.s.read(r.held, func() {
		for _, c := range r.s.categories {
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *entity.Category
	r.s.read(r.held, func() {
		if c, ok := r.s.categories[id]; ok {
			found = &c
		}
	})
	return found, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	var err error
	r.s.write(r.held, func() {
		if r.nameTaken(category.Name, category.ID) {
			err = domain.ErrDuplicate
			return
		}
		if category.CreatedAt.IsZero() {
			category.CreatedAt = r.s.now()
		}
		r.s.categories[category.ID] = *category
	})
	return err
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(r.held, func() {
		if _, ok := r.s.categories[category.ID]; !ok {
			err = domain.ErrNotFound
			return
		}
		if r.nameTaken(category.Name, category.ID) {
			err = domain.ErrDuplicate
			return
		}
		r.s.categories[category.ID] = *category
	})
	return err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(r.held, func() {
		if _, ok := r.s.categories[id]; !ok {
			err = domain.ErrNotFound
			return
		}
		delete(r.s.categories, id)
	})
	return err
}

func (r *CategoryRepo) nameTaken(name, exceptID string) bool {
	want := fold(name)
	for id, c := range r.s.categories {
		if id != exceptID && fold(c.Name) == want {
			return true
		}
	}
	return false
}
