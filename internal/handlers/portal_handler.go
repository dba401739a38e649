package handlers

import (
	"context"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/services"
)

type PortalHandler struct {
	coordinator services.SessionCoordinator
	monitor     *services.HealthMonitor
	now         func() time.Time
}

func NewPortalHandler(coordinator services.SessionCoordinator, monitor *services.HealthMonitor) *PortalHandler {
	return &PortalHandler{
		coordinator: coordinator,
		monitor:     monitor,
		now:         time.Now,
	}
}

type viewResponse struct {
	View  *models.ViewModel `json:"view"`
	Error string            `json:"error,omitempty"`
	Code  int               `json:"code,omitempty"`
}

type navigateRequest struct {
	Page string `json:"page"`
}

type valueRequest struct {
	Value string `json:"value"`
}

type tabRequest struct {
	Tab string `json:"tab"`
}

// Register mounts the portal routes on r.
func (h *PortalHandler) Register(r fiber.Router) {
	r.Get("/view", h.withSession(h.coordinator.View))
	r.Post("/navigate", h.HandleNavigate)
	r.Post("/get-started", h.withSession(h.coordinator.GetStarted))
	r.Post("/notice/dismiss", h.withSession(h.coordinator.DismissNotice))

	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/signup", h.HandleSignup)
	r.Post("/auth/logout", h.withSession(h.coordinator.Logout))

	r.Get("/profile/options", h.HandleProfileOptions)
	r.Get("/profile/history", h.HandleProfileHistory)
	r.Patch("/profile/personal", h.HandleUpdatePersonalInfo)
	r.Patch("/profile/education", h.HandleUpdateEducation)
	r.Patch("/profile/preferences", h.HandleUpdatePreferences)
	r.Post("/profile/skills", h.withValue(h.coordinator.AddSkill))
	r.Delete("/profile/skills/:skill", h.HandleRemoveSkill)
	r.Post("/profile/interests/toggle", h.withValue(h.coordinator.ToggleInterest))
	r.Post("/profile/preferences/locations/toggle", h.withValue(h.coordinator.TogglePreferredLocation))
	r.Post("/profile/preferences/sectors/toggle", h.withValue(h.coordinator.TogglePreferredSector))
	r.Post("/profile/submit", h.withSession(h.coordinator.SubmitProfile))

	r.Post("/results/back", h.withSession(h.coordinator.BackToProfile))
	r.Post("/results/:id/save", h.withInternship(h.coordinator.ToggleSave))
	r.Post("/results/:id/apply", h.withInternship(h.coordinator.Apply))
	r.Post("/results/:id/share", h.withInternship(h.coordinator.Share))

	r.Post("/dashboard/tab", h.HandleDashboardTab)
}

// HandleNavigate handles POST /navigate
func (h *PortalHandler) HandleNavigate(c *fiber.Ctx) error {
	var req navigateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.Navigate(c.UserContext(), sessionID(c), req.Page)
	return respond(c, view, err)
}

// HandleLogin handles POST /auth/login
func (h *PortalHandler) HandleLogin(c *fiber.Ctx) error {
	var req services.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.Login(c.UserContext(), sessionID(c), req)
	return respond(c, view, err)
}

// HandleSignup handles POST /auth/signup
func (h *PortalHandler) HandleSignup(c *fiber.Ctx) error {
	var req services.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.Signup(c.UserContext(), sessionID(c), req)
	return respond(c, view, err)
}

// HandleProfileOptions handles GET /profile/options
func (h *PortalHandler) HandleProfileOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"options": services.ProfileFormOptions(h.now().Year()),
	})
}

// HandleProfileHistory handles GET /profile/history
func (h *PortalHandler) HandleProfileHistory(c *fiber.Ctx) error {
	profiles, err := h.coordinator.ProfileHistory(c.UserContext(), sessionID(c))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(fiber.Map{"profiles": profiles})
}

// HandleUpdatePersonalInfo handles PATCH /profile/personal
func (h *PortalHandler) HandleUpdatePersonalInfo(c *fiber.Ctx) error {
	var req services.PersonalInfoUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.UpdatePersonalInfo(c.UserContext(), sessionID(c), req)
	return respond(c, view, err)
}

// HandleUpdateEducation handles PATCH /profile/education
func (h *PortalHandler) HandleUpdateEducation(c *fiber.Ctx) error {
	var req services.EducationUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.UpdateEducation(c.UserContext(), sessionID(c), req)
	return respond(c, view, err)
}

// HandleUpdatePreferences handles PATCH /profile/preferences
func (h *PortalHandler) HandleUpdatePreferences(c *fiber.Ctx) error {
	var req services.PreferencesUpdate
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.UpdatePreferences(c.UserContext(), sessionID(c), req)
	return respond(c, view, err)
}

// HandleRemoveSkill handles DELETE /profile/skills/:skill
func (h *PortalHandler) HandleRemoveSkill(c *fiber.Ctx) error {
	skill, err := url.PathUnescape(c.Params("skill"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid skill")
	}
	view, err := h.coordinator.RemoveSkill(c.UserContext(), sessionID(c), skill)
	return respond(c, view, err)
}

// HandleDashboardTab handles POST /dashboard/tab
func (h *PortalHandler) HandleDashboardTab(c *fiber.Ctx) error {
	var req tabRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
	}
	view, err := h.coordinator.SetDashboardTab(c.UserContext(), sessionID(c), req.Tab)
	return respond(c, view, err)
}

// HandleHealth handles GET /health. It needs no session, so it is mounted
// ahead of the session middleware.
func (h *PortalHandler) HandleHealth(c *fiber.Ctx) error {
	body := fiber.Map{
		"status": "healthy",
		"time":   h.now(),
	}
	if h.monitor != nil {
		body["backend"] = h.monitor.Last()
	}
	return c.JSON(body)
}

func (h *PortalHandler) withSession(op func(ctx context.Context, sessionID string) (*models.ViewModel, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := op(c.UserContext(), sessionID(c))
		return respond(c, view, err)
	}
}

func (h *PortalHandler) withValue(op func(ctx context.Context, sessionID, value string) (*models.ViewModel, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req valueRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request payload")
		}
		view, err := op(c.UserContext(), sessionID(c), req.Value)
		return respond(c, view, err)
	}
}

func (h *PortalHandler) withInternship(op func(ctx context.Context, sessionID, internshipID string) (*models.ViewModel, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := op(c.UserContext(), sessionID(c), c.Params("id"))
		return respond(c, view, err)
	}
}

// respond writes {view} on success. Errors that come with a view, such as
// validation failures, are written as {view, error, code}.
func respond(c *fiber.Ctx, view *models.ViewModel, err error) error {
	if err == nil {
		return c.JSON(viewResponse{View: view})
	}
	if view == nil {
		return toFiberError(err)
	}
	code := statusFor(err)
	return c.Status(code).JSON(viewResponse{View: view, Error: err.Error(), Code: code})
}
