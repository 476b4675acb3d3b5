package students

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// rosterApp wires the student handlers behind a stubbed actor so the
// scoping branches can be exercised without a database.
func rosterApp(actor auth.Actor) *fiber.App {
	app := fiber.New()
	withActor := func(handler func(*fiber.Ctx) error) fiber.Handler {
		return func(c *fiber.Ctx) error {
			c.Locals("actor", actor)
			return handler(c)
		}
	}
	app.Get("/api/students", withActor(func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, nil)
	}))
	app.Post("/api/students", withActor(func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, nil)
	}))
	app.Post("/api/students/import", withActor(func(c *fiber.Ctx) error {
		return ImportStudentsAPI(c, nil)
	}))
	return app
}

// A physiotherapist account with no linked profile must be rejected before
// any query runs, never handed the unscoped roster.
func TestGetStudentsForbidsActorWithoutProfile(t *testing.T) {
	app := rosterApp(auth.Actor{IsStaff: false})

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateStudentForbidsActorWithoutProfile(t *testing.T) {
	app := rosterApp(auth.Actor{IsStaff: false})

	req := httptest.NewRequest(http.MethodPost, "/api/students", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestImportStudentsForbidsActorWithoutProfile(t *testing.T) {
	app := rosterApp(auth.Actor{IsStaff: false})

	req := httptest.NewRequest(http.MethodPost, "/api/students/import", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
