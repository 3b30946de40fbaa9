package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/memory"
)

type fakeIdentity struct {
	userID     string
	err        error
	email      string
	redirectTo string
}

func (f *fakeIdentity) InviteUser(_ context.Context, email, _ string, redirectTo string) (string, error) {
	f.email = email
	f.redirectTo = redirectTo
	return f.userID, f.err
}

func TestTeamInvite_CreaPerfilConRol(t *testing.T) {
	s := memory.NewStore()
	idp := &fakeIdentity{userID: "5d6f1b2a-3c4d-4e5f-8a9b-0c1d2e3f4a5b"}
	team := usecase.NewTeamUseCase(s.Profiles(), idp, "http://app.test/login")
	ctx := context.Background()

	res, err := team.Invite(ctx, admin, dto.InviteRequest{Email: " new@example.com ", Role: "manager", FullName: strPtr("New Person")})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, idp.userID, res.UserID)
	assert.Equal(t, "new@example.com", idp.email)
	assert.Equal(t, "http://app.test/login", idp.redirectTo)

	p, err := s.Profiles().GetByID(ctx, idp.userID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleManager, p.Role)
	assert.Equal(t, "New Person", p.FullName)
}

func TestTeamInvite_FalloDelProveedorNoCreaPerfil(t *testing.T) {
	s := memory.NewStore()
	team := usecase.NewTeamUseCase(s.Profiles(), &fakeIdentity{err: errors.New("smtp down")}, "")

	_, err := team.Invite(context.Background(), admin, dto.InviteRequest{Email: "x@example.com", Role: "viewer"})
	require.Error(t, err)

	list, err := s.Profiles().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTeam_SoloAdmin(t *testing.T) {
	s := memory.NewStore()
	team := usecase.NewTeamUseCase(s.Profiles(), &fakeIdentity{}, "")
	_, err := team.ListProfiles(context.Background(), manager)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTeamUpdateRole(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Profiles().Upsert(ctx, &entity.Profile{ID: viewer.ID, Email: viewer.Email, Role: entity.RoleViewer}))
	team := usecase.NewTeamUseCase(s.Profiles(), &fakeIdentity{}, "")

	require.NoError(t, team.UpdateRole(ctx, admin, dto.UpdateRoleRequest{UserID: viewer.ID, Role: "manager"}))
	list, err := team.ListProfiles(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "manager", list[0].Role)

	err = team.UpdateRole(ctx, admin, dto.UpdateRoleRequest{UserID: "nope", Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
