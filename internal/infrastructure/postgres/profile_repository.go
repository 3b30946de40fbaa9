package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo perfiles de usuario sobre PostgreSQL.
type ProfileRepo struct {
	db Querier
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(db Querier) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileSelect = `SELECT id, email, full_name, role, created_at FROM profiles`

func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, profileSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]*entity.Profile, error) {
	rows, err := r.db.Query(ctx, profileSelect+` ORDER BY email ASC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProfileRepo) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	cmd, err := r.db.Exec(ctx, `UPDATE profiles SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert inserta o actualiza email, nombre y rol por id.
func (r *ProfileRepo) Upsert(ctx context.Context, p *entity.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, email, full_name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, full_name = EXCLUDED.full_name, role = EXCLUDED.role
		RETURNING created_at`,
		p.ID, p.Email, nullable(p.FullName), p.Role,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var (
		p        entity.Profile
		fullName *string
	)
	if err := row.Scan(&p.ID, &p.Email, &fullName, &p.Role, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.FullName = deref(fullName)
	return &p, nil
}
