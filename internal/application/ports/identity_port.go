package ports

import "context"

// IdentityAdmin puerto hacia el proveedor de identidad externo (alta de cuentas por invitación).
type IdentityAdmin interface {
	// InviteUser envía la invitación por email y devuelve el id de la cuenta creada.
	InviteUser(ctx context.Context, email, fullName, redirectTo string) (string, error)
}
