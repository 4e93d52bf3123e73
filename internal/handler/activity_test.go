package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreateActivitySuccess(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO activities (title, location, time, max_attendees, creator_username, creator_avatar) VALUES (?,?,?,?,?,?)`)).
		WithArgs("T", "L", "7:00AM, 01/01/2030", 5, "a@b.com", "/lemon_drink.jpeg").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO participants (activity_id, username, avatar) VALUES (?,?,?)`)).
		WithArgs(uint64(7), "a@b.com", "/lemon_drink.jpeg").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	e := newTestRouter(db)
	resp := doJSON(t, e, http.MethodPost, "/api/activity", map[string]any{
		"title":            "T",
		"location":         "L",
		"timeAndDate":      "7:00AM, 01/01/2030",
		"maxAttendees":     5,
		"currentUserEmail": "a@b.com",
	})
	mustStatus(t, resp.Code, http.StatusCreated)

	out := decodeBody(t, resp)
	if out["id"] != "7" || out["title"] != "T" || out["time"] != "7:00AM, 01/01/2030" {
		t.Fatalf("unexpected body: %v", out)
	}
	creator, _ := out["creator"].(map[string]any)
	if creator["username"] != "a@b.com" {
		t.Fatalf("unexpected creator: %v", creator)
	}
	parts, _ := out["participants"].([]any)
	if len(parts) != 1 {
		t.Fatalf("creator should auto-join, got participants %v", parts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestCreateActivityAnonymousCreator(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO activities (title, location, time, max_attendees, creator_username, creator_avatar) VALUES (?,?,?,?,?,?)`)).
		WithArgs("T", "L", "9:00AM, 02/02/2030", 2, "anonymous", "/lemon_drink.jpeg").
		WillReturnResult(sqlmock.NewResult(8, 1))
	mock.
		ExpectExec(regexp.QuoteMeta(`INSERT INTO participants (activity_id, username, avatar) VALUES (?,?,?)`)).
		WithArgs(uint64(8), "anonymous", "/lemon_drink.jpeg").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	e := newTestRouter(db)
	resp := doJSON(t, e, http.MethodPost, "/api/activity", map[string]any{
		"title":        "T",
		"location":     "L",
		"timeAndDate":  "9:00AM, 02/02/2030",
		"maxAttendees": 2,
	})
	mustStatus(t, resp.Code, http.StatusCreated)
}

func TestCreateActivityMissingFields(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	e := newTestRouter(db)
	// maxAttendees absent entirely -> missing field, not invalid value
	resp := doJSON(t, e, http.MethodPost, "/api/activity", map[string]any{
		"title":       "T",
		"location":    "L",
		"timeAndDate": "7:00AM, 01/01/2030",
	})
	mustError(t, resp, http.StatusBadRequest, "Missing fields")

	resp = doJSON(t, e, http.MethodPost, "/api/activity", map[string]any{
		"title":        "",
		"location":     "L",
		"timeAndDate":  "7:00AM, 01/01/2030",
		"maxAttendees": 3,
	})
	mustError(t, resp, http.StatusBadRequest, "Missing fields")
}

func TestCreateActivityInvalidCapacity(t *testing.T) {
	db, _, cleanup := setupMockDB(t)
	defer cleanup()

	e := newTestRouter(db)
	for _, n := range []int{0, -2} {
		resp := doJSON(t, e, http.MethodPost, "/api/activity", map[string]any{
			"title":        "T",
			"location":     "L",
			"timeAndDate":  "7:00AM, 01/01/2030",
			"maxAttendees": n,
		})
		mustError(t, resp, http.StatusBadRequest, "Maximum attendees must be greater than 0")
	}
}

func TestListActivities(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT id,title,location,time,max_attendees,creator_username,creator_avatar FROM activities ORDER BY id`)).
		WillReturnRows(activityRows().
			AddRow(1, "Run", "Park", "7:00AM, 11/07/2025", 3, "a@b.com", "/lemon_drink.jpeg").
			AddRow(2, "Chess", "Cafe", "6:00PM, 12/07/2025", 2, "c@d.com", "/lemon_drink.jpeg"))
	mock.
		ExpectQuery(regexp.QuoteMeta(`SELECT activity_id,username,avatar FROM participants ORDER BY activity_id,id`)).
		WillReturnRows(sqlmock.NewRows([]string{"activity_id", "username", "avatar"}).
			AddRow(1, "a@b.com", "/lemon_drink.jpeg").
			AddRow(1, "x@y.com", "/lemon_drink.jpeg"))

	e := newTestRouter(db)
	resp := doJSON(t, e, http.MethodGet, "/api/activity", nil)
	expectHTTP200(t, resp.Code)

	var out []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(out))
	}
	first, _ := out[0]["participants"].([]any)
	if len(first) != 2 {
		t.Fatalf("expected 2 participants on first activity, got %v", first)
	}
	// No participant rows for the second activity: empty array, not null
	second, ok := out[1]["participants"].([]any)
	if !ok || second == nil || len(second) != 0 {
		t.Fatalf("expected empty participants array, got %v", out[1]["participants"])
	}
	// Capacity invariant holds on everything the feed returns
	for _, a := range out {
		max := int(a["maxAttendees"].(float64))
		parts, _ := a["participants"].([]any)
		if len(parts) > max {
			t.Fatalf("participants %d exceed maxAttendees %d", len(parts), max)
		}
	}
}
