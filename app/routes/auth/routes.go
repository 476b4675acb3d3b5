package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up the auth routes.
func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	api.Post("/login", LoginAPI)
	api.Post("/logout", LogoutAPI)
	api.Get("/me", AuthMiddleware, MeAPI)
}

// Actor is the authenticated caller as seen by the handlers. Non-staff
// actors are physiotherapists; PhysiotherapistID is nil for staff and for
// accounts with no linked physiotherapist.
type Actor struct {
	UserID            string
	Email             string
	IsStaff           bool
	PhysiotherapistID *string
}

// CurrentActor returns the actor set by AuthMiddleware.
func CurrentActor(c *fiber.Ctx) Actor {
	actor, _ := c.Locals("actor").(Actor)
	return actor
}

// AuthMiddleware validates the JWT and sets the actor on the request
// context.
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	c.Locals("actor", Actor{
		UserID:            claims.UserID,
		Email:             claims.Email,
		IsStaff:           claims.IsStaff,
		PhysiotherapistID: claims.PhysioID,
	})

	return c.Next()
}

// StaffMiddleware rejects non-staff actors. It must run after
// AuthMiddleware.
func StaffMiddleware(c *fiber.Ctx) error {
	if !CurrentActor(c).IsStaff {
		return c.Status(403).JSON(fiber.Map{"error": "Staff access required"})
	}
	return c.Next()
}
