package http

import (
	"context"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/internal/domain/entity"
	"github.com/jhoicas/Siparis-api/pkg/jwt"
)

// Locals keys de la identidad autenticada en Fiber.
const (
	LocalUserID    = "user_id"
	LocalRole      = "role"
	LocalSessionID = "session_id"
)

// SessionValidator valida (y opcionalmente renueva) la sesión de servidor de un token.
type SessionValidator interface {
	Validate(ctx context.Context, sessionID string, touch bool) (*entity.Session, error)
}

// AuthConfig parámetros del middleware de auth.
// PassivePaths: rutas que consultan la sesión sin contar como actividad.
type AuthConfig struct {
	Secret       string
	Sessions     SessionValidator
	PassivePaths []string
}

// AuthMiddleware valida el Bearer Token JWT, carga la sesión de servidor y deja
// user_id, role y session_id en c.Locals. Una sesión expirada por inactividad -> 401 SESSION_INVALID.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return respondError(c, domain.ErrUnauthorized)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respondError(c, domain.ErrUnauthorized)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respondError(c, domain.ErrUnauthorized)
		}
		id, err := jwt.Parse(cfg.Secret, tokenString)
		if err != nil || id.UserID == "" || id.SessionID == "" {
			return respondError(c, domain.ErrUnauthorized)
		}

		touch := !slices.Contains(cfg.PassivePaths, c.Path())
		if _, err := cfg.Sessions.Validate(c.Context(), id.SessionID, touch); err != nil {
			return respondError(c, err)
		}

		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalRole, id.Role)
		c.Locals(LocalSessionID, id.SessionID)
		return c.Next()
	}
}

// RequireRole deja pasar solo a los roles indicados. Sin roles, cualquier usuario autenticado.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return respondError(c, domain.ErrUnauthorized)
		}
		if len(roles) > 0 && !slices.Contains(roles, role) {
			return respondError(c, domain.ErrForbidden)
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetSessionID devuelve el id de la sesión de servidor.
func GetSessionID(c *fiber.Ctx) string { return localString(c, LocalSessionID) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
