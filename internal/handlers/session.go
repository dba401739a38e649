package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pminternship/internship-ai/internal/services"
)

const (
	SessionCookie = "internship_session"
	sessionKey    = "sessionID"
)

// SessionMiddleware makes sure every request carries a live session id,
// issuing a new cookie when the old one is missing or expired.
func SessionMiddleware(coordinator services.SessionCoordinator, ttl time.Duration, secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := c.Cookies(SessionCookie)
		id, err := coordinator.Open(c.UserContext(), current)
		if err != nil {
			return toFiberError(err)
		}

		if id != current {
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(ttl),
			})
		}

		c.Locals(sessionKey, id)
		return c.Next()
	}
}

func sessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(sessionKey).(string)
	return id
}
