package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/ports"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
)

// TeamUseCase administración del equipo: perfiles, roles e invitaciones. Solo admin.
type TeamUseCase struct {
	profiles   repository.ProfileRepository
	identity   ports.IdentityAdmin
	redirectTo string
}

// NewTeamUseCase redirectTo es el destino del enlace de la invitación (la pantalla de login).
func NewTeamUseCase(profiles repository.ProfileRepository, identity ports.IdentityAdmin, redirectTo string) *TeamUseCase {
	return &TeamUseCase{profiles: profiles, identity: identity, redirectTo: redirectTo}
}

// ListProfiles perfiles ordenados por email.
func (uc *TeamUseCase) ListProfiles(ctx context.Context, actor *entity.Profile) ([]dto.ProfileResponse, error) {
	if err := entity.Authorize(actor, entity.TeamAdminRoles...); err != nil {
		return nil, err
	}
	list, err := uc.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProfileResponse{
			ID:       p.ID,
			Email:    p.Email,
			FullName: optional(p.FullName),
			Role:     string(p.Role),
		})
	}
	return out, nil
}

// UpdateRole cambia el rol de un perfil.
func (uc *TeamUseCase) UpdateRole(ctx context.Context, actor *entity.Profile, in dto.UpdateRoleRequest) error {
	if err := entity.Authorize(actor, entity.TeamAdminRoles...); err != nil {
		return err
	}
	if err := validation.Struct(&in); err != nil {
		return err
	}
	return uc.profiles.UpdateRole(ctx, in.UserID, entity.Role(in.Role))
}

// Invite crea la cuenta en el proveedor de identidad y registra su perfil con el rol pedido.
func (uc *TeamUseCase) Invite(ctx context.Context, actor *entity.Profile, in dto.InviteRequest) (*dto.InviteResponse, error) {
	if err := entity.Authorize(actor, entity.TeamAdminRoles...); err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}
	fullName := deref(in.FullName)
	userID, err := uc.identity.InviteUser(ctx, in.Email, fullName, uc.redirectTo)
	if err != nil {
		return nil, fmt.Errorf("invitar usuario: %w", err)
	}
	profile := &entity.Profile{ID: userID, Email: in.Email, FullName: fullName, Role: entity.Role(in.Role)}
	if err := uc.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return &dto.InviteResponse{Success: true, UserID: userID}, nil
}
