package dto

import "strings"

// UpdateRoleRequest PATCH /api/admin/roles.
type UpdateRoleRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Role   string `json:"role" validate:"required,oneof=admin manager viewer"`
}

// InviteRequest POST /api/admin/invite.
type InviteRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"required,oneof=admin manager viewer"`
	FullName *string `json:"fullName" validate:"omitempty,min=1,max=120"`
}

// Normalize recorta el email.
func (r *InviteRequest) Normalize() { r.Email = strings.TrimSpace(r.Email) }

// InviteResponse resultado de una invitación.
type InviteResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

// ProfileResponse perfil de un miembro del equipo.
type ProfileResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}
