package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ai/internal/application/dto"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
	"github.com/jhoicas/Inventario-ai/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID  = "user_id"
	LocalProfile = "profile"
)

// AuthMiddleware valida el Bearer Token JWT y carga el perfil del usuario (con su rol) en c.Locals.
// El rol siempre sale de la tabla de perfiles, nunca del token.
func AuthMiddleware(jwtSecret string, profiles repository.ProfileRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		profile, err := profiles.GetByID(c.UserContext(), userID)
		if err != nil {
			return writeError(c, err)
		}
		if profile == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_PROFILE", Message: "el usuario no tiene perfil"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalProfile, profile)
		return c.Next()
	}
}

// RequireRole autoriza la ruta para los roles dados. Va después de AuthMiddleware.
func RequireRole(roles ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := GetProfile(c)
		if profile == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		}
		if !profile.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Forbidden"})
		}
		return c.Next()
	}
}

// GetProfile devuelve el perfil autenticado o nil.
func GetProfile(c *fiber.Ctx) *entity.Profile {
	p, _ := c.Locals(LocalProfile).(*entity.Profile)
	return p
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole rol del perfil autenticado, "" si no hay.
func GetRole(c *fiber.Ctx) string {
	if p := GetProfile(c); p != nil {
		return string(p.Role)
	}
	return ""
}
