package payments

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// summaryApp wires the summary handler behind a stubbed actor so the
// request validation paths can be exercised without a database.
func summaryApp(actor auth.Actor) *fiber.App {
	app := fiber.New()
	app.Get("/api/payments/summary", func(c *fiber.Ctx) error {
		c.Locals("actor", actor)
		return MonthlySummaryAPI(c, nil)
	})
	return app
}

func TestMonthlySummaryRequiresMonthYear(t *testing.T) {
	app := summaryApp(auth.Actor{IsStaff: true})

	req := httptest.NewRequest(http.MethodGet, "/api/payments/summary", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMonthlySummaryRejectsMalformedMonthYear(t *testing.T) {
	app := summaryApp(auth.Actor{IsStaff: true})

	for _, monthYear := range []string{"2025", "2025-13", "06-2025", "2025-6", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/payments/summary?month_year="+monthYear, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "month_year=%s", monthYear)
	}
}

func TestMonthlySummaryForbidsActorWithoutProfile(t *testing.T) {
	app := summaryApp(auth.Actor{IsStaff: false})

	req := httptest.NewRequest(http.MethodGet, "/api/payments/summary?month_year=2025-06", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
