package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/linkedup/internal/config"
	"github.com/iliyamo/linkedup/internal/repository"
)

// testConfig uses the minimum bcrypt cost so hashing does not dominate test
// runtime.
func testConfig() config.Config {
	return config.Config{Env: "test", Port: "0", BcryptCost: bcrypt.MinCost}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	cleanup := func() { _ = db.Close() }
	return db, mock, cleanup
}

func newTestRouter(db *sql.DB) *echo.Echo {
	e := echo.New()
	users := repository.NewUserRepo(db)
	activities := repository.NewActivityRepo(db)
	cfg := testConfig()

	u := NewUserHandler(cfg, users)
	a := NewActivityHandler(activities)
	m := NewMembershipHandler(activities)
	p := NewProfileHandler(cfg, users)

	e.POST("/api/users", u.CreateUser)
	e.GET("/api/users", u.ListUsers)
	e.POST("/api/login", u.Login)
	e.POST("/api/activity", a.CreateActivity)
	e.GET("/api/activity", a.ListActivities)
	e.POST("/api/join-activity", m.JoinActivity)
	e.POST("/api/leave-activity", m.LeaveActivity)
	e.POST("/api/delete-activity", m.DeleteActivity)
	e.GET("/api/profile", p.GetProfile)
	e.PATCH("/api/profile", p.PatchProfile)
	return e
}

// doJSON performs a request with a JSON body (or none) against the router.
func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	e.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	return out
}

func mustStatus(t *testing.T, actual, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func mustError(t *testing.T, resp *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	mustStatus(t, resp.Code, status)
	out := decodeBody(t, resp)
	if got, _ := out["error"].(string); got != message {
		t.Fatalf("expected error %q, got %q", message, got)
	}
}

func expectHTTP200(t *testing.T, status int) {
	t.Helper()
	mustStatus(t, status, http.StatusOK)
}

// userRows matches the column order of UserRepo.GetByEmail.
func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "username", "created_at", "updated_at"})
}

// activityRows matches the column order of the activity SELECTs.
func activityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "location", "time", "max_attendees", "creator_username", "creator_avatar"})
}

func participantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"username", "avatar"})
}
