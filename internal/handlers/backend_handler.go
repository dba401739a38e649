package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/repositories"
	"pminternship/internship-ai/internal/services"
)

const defaultSubmissionsLimit = 20

// BackendHandler serves the recommendation API consumed by the portal.
// Every response is wrapped in the {success, data, error, message} envelope.
type BackendHandler struct {
	recommender services.Recommender
	profiles    repositories.ProfileRepository
	analytics   services.AnalyticsService
	recorder    services.SubmissionRecorder
	validate    *validator.Validate
	now         func() time.Time
}

func NewBackendHandler(
	recommender services.Recommender,
	profiles repositories.ProfileRepository,
	analytics services.AnalyticsService,
	recorder services.SubmissionRecorder,
) *BackendHandler {
	return &BackendHandler{
		recommender: recommender,
		profiles:    profiles,
		analytics:   analytics,
		recorder:    recorder,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		now:         time.Now,
	}
}

func (h *BackendHandler) Register(r fiber.Router) {
	r.Get("/health", h.HandleHealth)
	r.Post("/recommendations", h.HandleRecommendations)
	r.Get("/users/:userId/history", h.HandleUserHistory)
	r.Post("/users/profile", h.HandleSaveProfile)
	r.Get("/admin/dashboard", h.HandleAdminDashboard)
	r.Get("/admin/submissions", h.HandleSubmissions)
}

// HandleHealth handles GET /health
func (h *BackendHandler) HandleHealth(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, models.HealthStatus{Status: "healthy"})
}

// HandleRecommendations handles POST /recommendations
func (h *BackendHandler) HandleRecommendations(c *fiber.Ctx) error {
	var req models.RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.validate.Struct(req); err != nil {
		return failure(c, fiber.StatusBadRequest, validationMessage(err))
	}

	resp, err := h.recommender.Recommend(c.UserContext(), req)
	if err != nil {
		log.Printf("❌ Recommendation failed for user %s: %v\n", req.UserID, err)
		return failure(c, fiber.StatusInternalServerError, "Failed to generate recommendations")
	}

	if h.recorder != nil {
		h.recorder.Enqueue(services.SubmissionFor(req, resp, h.now()))
	}
	return success(c, fiber.StatusOK, *resp)
}

// HandleUserHistory handles GET /users/:userId/history
func (h *BackendHandler) HandleUserHistory(c *fiber.Ctx) error {
	profiles, err := h.profiles.FindByUserID(c.Params("userId"))
	if err != nil {
		log.Printf("❌ Failed to load history: %v\n", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to load user history")
	}
	if profiles == nil {
		profiles = []models.UserProfile{}
	}
	return success(c, fiber.StatusOK, profiles)
}

// HandleSaveProfile handles POST /users/profile
func (h *BackendHandler) HandleSaveProfile(c *fiber.Ctx) error {
	var profile models.UserProfile
	if err := c.BodyParser(&profile); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.validate.Struct(profile); err != nil {
		return failure(c, fiber.StatusBadRequest, validationMessage(err))
	}

	now := h.now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := h.profiles.Create(&profile); err != nil {
		log.Printf("❌ Failed to save profile: %v\n", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to save profile")
	}
	return success(c, fiber.StatusCreated, profile)
}

// HandleAdminDashboard handles GET /admin/dashboard
func (h *BackendHandler) HandleAdminDashboard(c *fiber.Ctx) error {
	data, err := h.analytics.Dashboard()
	if err != nil {
		log.Printf("❌ Failed to build dashboard: %v\n", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to load dashboard")
	}
	return success(c, fiber.StatusOK, *data)
}

// HandleSubmissions handles GET /admin/submissions?page=&limit=
func (h *BackendHandler) HandleSubmissions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", defaultSubmissionsLimit)
	if page < 1 || limit < 1 {
		return failure(c, fiber.StatusBadRequest, "page and limit must be positive")
	}

	data, err := h.analytics.Submissions(page, limit)
	if err != nil {
		log.Printf("❌ Failed to list submissions: %v\n", err)
		return failure(c, fiber.StatusInternalServerError, "Failed to load submissions")
	}
	return success(c, fiber.StatusOK, *data)
}

func success[T any](c *fiber.Ctx, status int, data T) error {
	return c.Status(status).JSON(models.APIResponse[T]{Success: true, Data: &data})
}

func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.APIResponse[struct{}]{
		Success: false,
		Error:   message,
		Message: message,
	})
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	return fe.Field() + " failed on the '" + fe.Tag() + "' rule"
}
