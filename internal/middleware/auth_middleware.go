package middleware

import (
	"go-toko-admin/internal/repository"
	"go-toko-admin/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the session cookie set at login.
const SessionCookie = "toko_session"

// RequireAdmin is the session gate: every guarded route needs a valid
// session cookie whose token version still matches the admin row. Anything
// else redirects to the login form.
func RequireAdmin(secret []byte, adminRepo repository.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			return c.Redirect("/login")
		}

		claims, err := jwt.ValidateToken(secret, tokenString)
		if err != nil {
			c.ClearCookie(SessionCookie)
			return c.Redirect("/login")
		}

		admin, err := adminRepo.FindByID(claims.AdminID)
		if err != nil {
			c.ClearCookie(SessionCookie)
			return c.Redirect("/login")
		}

		if admin.TokenVersion != claims.TokenVersion {
			c.ClearCookie(SessionCookie)
			return c.Redirect("/login")
		}

		// Request-scoped admin identity for downstream handlers.
		c.Locals("admin_id", admin.ID)
		c.Locals("admin_username", admin.Username)

		return c.Next()
	}
}
