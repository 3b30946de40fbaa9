package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile (DIP).
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error) // ordenado por email
	UpdateRole(ctx context.Context, id string, role entity.Role) error
	Upsert(ctx context.Context, profile *entity.Profile) error
}
