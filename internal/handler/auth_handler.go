package handler

import (
	"time"

	"go-toko-admin/internal/middleware"
	"go-toko-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService service.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

// ShowLogin renders the login form
// GET /login
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Error": c.Query("error"),
	})
}

// Login validates the submitted credentials and establishes the session
// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.authService.Login(username, password)
	if err != nil {
		return c.Redirect("/login?error=1")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/")
}

// Logout destroys the session
// GET /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if adminID, ok := c.Locals("admin_id").(uint); ok {
		_ = h.authService.Logout(adminID)
	}
	c.ClearCookie(middleware.SessionCookie)
	return c.Redirect("/login")
}
