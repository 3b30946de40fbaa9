package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles en memoria.
type ProfileRepo struct {
	s *Store
}

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var found *entity.Profile
	r.s.read(false, func() {
		if p, ok := r.s.profiles[id]; ok {
			found = &p
		}
	})
	return found, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []*entity.Profile{}
	r.s.read(false, func() {
		for _, p := range r.s.profiles {
			p := p
			out = append(out, &p)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *ProfileRepo) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	r.s.write(false, func() {
		p, ok := r.s.profiles[id]
		if !ok {
			err = domain.ErrNotFound
			return
		}
		p.Role = role
		r.s.profiles[id] = p
	})
	return err
}

// Upsert crea o reemplaza el perfil conservando CreatedAt si ya existía.
func (r *ProfileRepo) Upsert(ctx context.Context, profile *entity.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.write(false, func() {
		if prev, ok := r.s.profiles[profile.ID]; ok && profile.CreatedAt.IsZero() {
			profile.CreatedAt = prev.CreatedAt
		}
		if profile.CreatedAt.IsZero() {
			profile.CreatedAt = r.s.now()
		}
		r.s.profiles[profile.ID] = *profile
	})
	return nil
}
