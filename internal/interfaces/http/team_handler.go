package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/application/validation"
)

// TeamHandler panel de administración del equipo (solo admin).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// ListRoles godoc
// @Summary      Listar perfiles y roles
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DataResponse{data=[]dto.ProfileResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/roles [get]
func (h *TeamHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListProfiles(c.UserContext(), GetProfile(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse{Data: out})
}

// UpdateRole godoc
// @Summary      Cambiar el rol de un usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateRoleRequest  true  "userId y role"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/roles [patch]
func (h *TeamHandler) UpdateRole(c *fiber.Ctx) error {
	var in dto.UpdateRoleRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	if err := h.uc.UpdateRole(c.UserContext(), GetProfile(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Invite godoc
// @Summary      Invitar a un usuario por email
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRequest  true  "email, role y fullName opcional"
// @Success      200   {object}  dto.InviteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/admin/invite [post]
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := validation.Decode(c.Body(), &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Invite(c.UserContext(), GetProfile(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
