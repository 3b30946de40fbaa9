package entity

import (
	"time"

	"github.com/jhoicas/Inventario-ai/internal/domain"
)

// Role rol de un perfil de usuario.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// Valid indica si r es un rol conocido.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleViewer
}

// Listas de roles permitidos por operación. Las comparten el router HTTP y los casos de uso.
var (
	ReadRoles          = []Role{RoleAdmin, RoleManager, RoleViewer}
	ItemWriteRoles     = []Role{RoleAdmin, RoleManager}
	CategoryAdminRoles = []Role{RoleAdmin}
	TeamAdminRoles     = []Role{RoleAdmin}
	PlanningRoles      = []Role{RoleAdmin, RoleManager} // restock y borradores a proveedores
	AssistantRoles     = []Role{RoleAdmin, RoleManager, RoleViewer}
)

// Profile usuario autenticado con su rol. Solo lo modifica el flujo de equipo.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	CreatedAt time.Time
}

// HasRole indica si el perfil tiene alguno de los roles dados.
func (p *Profile) HasRole(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Authorize nil → ErrUnauthorized; rol fuera de allowed → ErrForbidden.
func Authorize(actor *Profile, allowed ...Role) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if !actor.HasRole(allowed...) {
		return domain.ErrForbidden
	}
	return nil
}
