package schedules

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// A physiotherapist account with no linked profile must not see the full
// schedule grid.
func TestGetSchedulesForbidsActorWithoutProfile(t *testing.T) {
	app := fiber.New()
	app.Get("/api/schedules", func(c *fiber.Ctx) error {
		c.Locals("actor", auth.Actor{IsStaff: false})
		return GetSchedulesAPI(c, nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/schedules", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
