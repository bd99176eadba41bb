package handler

import (
	"go-toko-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	service service.PembelianService
	log     *logrus.Logger
}

func NewDashboardHandler(s service.PembelianService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{service: s, log: log}
}

// Dashboard renders the admin landing page with the overview stats
// GET /
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		h.log.WithError(err).Error("fetch dashboard stats")
		stats = &service.DashboardStats{}
	}

	return c.Render("dashboard", fiber.Map{
		"Admin": c.Locals("admin_username"),
		"Stats": stats,
	})
}
