package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"pminternship/internship-ai/internal/services"
)

type AdminHandler struct {
	coordinator services.SessionCoordinator
}

func NewAdminHandler(coordinator services.SessionCoordinator) *AdminHandler {
	return &AdminHandler{coordinator: coordinator}
}

func (h *AdminHandler) Register(r fiber.Router) {
	r.Get("/admin/dashboard", h.HandleDashboard)
	r.Post("/admin/refresh", h.HandleRefresh)
	r.Get("/admin/export", h.HandleExport)
}

// HandleDashboard handles GET /admin/dashboard?page=
func (h *AdminHandler) HandleDashboard(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	view, err := h.coordinator.AdminDashboard(c.UserContext(), sessionID(c), page)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{"admin": view})
}

// HandleRefresh handles POST /admin/refresh
func (h *AdminHandler) HandleRefresh(c *fiber.Ctx) error {
	view, err := h.coordinator.AdminRefresh(c.UserContext(), sessionID(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{"admin": view})
}

// HandleExport handles GET /admin/export
func (h *AdminHandler) HandleExport(c *fiber.Ctx) error {
	submissions, err := h.coordinator.AdminSubmissions(c.UserContext(), sessionID(c))
	if err != nil {
		return toFiberError(err)
	}

	var buf bytes.Buffer
	if err := services.ExportSubmissionsCSV(&buf, submissions); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "submissions.csv"))
	return c.Send(buf.Bytes())
}
