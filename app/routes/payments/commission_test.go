package payments

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carlosmourajunior/FisioPilatesApp/app/database"
	"github.com/carlosmourajunior/FisioPilatesApp/app/routes/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// approveApp wires the approve handler behind a stubbed actor and a stubbed
// approve transition.
func approveApp(t *testing.T, transition func(*sql.DB, string) error) *fiber.App {
	t.Helper()
	orig := approvePayout
	t.Cleanup(func() { approvePayout = orig })
	approvePayout = transition

	app := fiber.New()
	app.Post("/api/payments/commission/:id/approve", func(c *fiber.Ctx) error {
		c.Locals("actor", auth.Actor{IsStaff: true})
		return ApproveCommissionPaymentAPI(c, nil)
	})
	return app
}

func postApprove(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/commission/7f7f7f7f-0000-0000-0000-000000000001/approve", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestApproveCommissionPaymentSucceedsOnce(t *testing.T) {
	calls := 0
	app := approveApp(t, func(db *sql.DB, id string) error {
		calls++
		if calls == 1 {
			return nil
		}
		return database.ErrAlreadyApproved
	})

	resp := postApprove(t, app)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The second submission loses the compare-and-set and must surface a
	// conflict, not a silent success.
	resp = postApprove(t, app)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, 2, calls)
}

func TestApproveCommissionPaymentAlreadyApprovedConflicts(t *testing.T) {
	app := approveApp(t, func(db *sql.DB, id string) error {
		return database.ErrAlreadyApproved
	})

	resp := postApprove(t, app)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestApproveCommissionPaymentUnknownPayoutNotFound(t *testing.T) {
	app := approveApp(t, func(db *sql.DB, id string) error {
		return database.ErrNotFound
	})

	resp := postApprove(t, app)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
