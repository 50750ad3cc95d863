package route_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolsched_backend/internals/apperr"
	database "schoolsched_backend/internals/databases"
	"schoolsched_backend/internals/features/schedule/route"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler})
	route.RegisterScheduleRoutes(app.Group("/api"), db)
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []any {
	t.Helper()
	var out []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestTeacherLifecycle(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, fiber.MethodPost, "/api/teacher", fiber.Map{"name": "  Ada  "})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	require.Equal(t, "Ada", body["name"])
	require.EqualValues(t, 1, body["id"])
	require.Equal(t, []any{}, body["subjects"])

	resp = do(t, app, fiber.MethodGet, "/api/teacher/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = do(t, app, fiber.MethodPut, "/api/teacher/1", fiber.Map{"name": "Ada Lovelace"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	require.Equal(t, "Ada Lovelace", body["name"])

	resp = do(t, app, fiber.MethodDelete, "/api/teacher/1", nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, raw)

	resp = do(t, app, fiber.MethodGet, "/api/teacher/1", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body = decode(t, resp)
	require.Contains(t, body["message"], "was not found")

	resp = do(t, app, fiber.MethodDelete, "/api/teacher/1", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, fiber.MethodPost, "/api/teacher", fiber.Map{"name": ""})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/api/schedule_slot", fiber.Map{
		"weekday": "FUNDAY", "time": "08:00",
		"class_id": 1, "teacher_id": 1, "subject_id": 1,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/api/schedule_slot", fiber.Map{
		"weekday": "MONDAY", "time": "8 o'clock",
		"class_id": 1, "teacher_id": 1, "subject_id": 1,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDuplicateSubjectAnswersBadRequest(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, fiber.MethodPost, "/api/subject", fiber.Map{"name": "Math"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = do(t, app, fiber.MethodPost, "/api/subject", fiber.Map{"name": "Math"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	require.NotEmpty(t, body["message"])
}

func TestInvalidIDAnswersBadRequest(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, fiber.MethodGet, "/api/teacher/abc", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTimetableFlow(t *testing.T) {
	app := newTestApp(t)

	resp := do(t, app, fiber.MethodPost, "/api/subject", fiber.Map{"name": "Math"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	subject := decode(t, resp)

	resp = do(t, app, fiber.MethodPost, "/api/teacher", fiber.Map{"name": "Ada"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	teacher := decode(t, resp)

	resp = do(t, app, fiber.MethodPut, fmt.Sprintf("/api/teacher/%v", teacher["id"]), fiber.Map{
		"subjects": []fiber.Map{{"id": subject["id"]}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.Len(t, body["subjects"], 1)

	resp = do(t, app, fiber.MethodPost, "/api/class", fiber.Map{"name": "1A"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	class := decode(t, resp)

	resp = do(t, app, fiber.MethodPut, fmt.Sprintf("/api/class/%v", class["id"]), fiber.Map{
		"schedule_slots": []fiber.Map{{
			"weekday": "MONDAY", "time": "08:00",
			"teacher": fiber.Map{"id": teacher["id"]},
			"subject": fiber.Map{"id": subject["id"]},
		}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	slots := body["schedule_slots"].([]any)
	require.Len(t, slots, 1)
	slot := slots[0].(map[string]any)
	require.Equal(t, "MONDAY", slot["weekday"])
	require.Equal(t, "Math", slot["subject"].(map[string]any)["name"])
	require.Equal(t, "Ada", slot["teacher"].(map[string]any)["name"])

	// the teacher view shows the slot under its subject, class included
	resp = do(t, app, fiber.MethodGet, fmt.Sprintf("/api/teacher/%v", teacher["id"]), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	subjects := body["subjects"].([]any)
	require.Len(t, subjects, 1)
	teacherSlots := subjects[0].(map[string]any)["schedule_slots"].([]any)
	require.Len(t, teacherSlots, 1)
	require.Equal(t, "1A", teacherSlots[0].(map[string]any)["class"].(map[string]any)["name"])
}

func TestTimetableUpdateWithUnassignedSubjectFails(t *testing.T) {
	app := newTestApp(t)

	do(t, app, fiber.MethodPost, "/api/subject", fiber.Map{"name": "Math"})
	do(t, app, fiber.MethodPost, "/api/teacher", fiber.Map{"name": "Ada"})
	do(t, app, fiber.MethodPost, "/api/class", fiber.Map{"name": "1A"})

	// subject 1 exists but was never assigned to teacher 1
	resp := do(t, app, fiber.MethodPut, "/api/class/1", fiber.Map{
		"schedule_slots": []fiber.Map{{
			"weekday": "MONDAY", "time": "08:00",
			"teacher": fiber.Map{"id": 1},
			"subject": fiber.Map{"id": 1},
		}},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	require.Contains(t, body["message"], "is not assigned to teacher")
}

func TestListPaginationAndCount(t *testing.T) {
	app := newTestApp(t)

	for _, name := range []string{"1A", "1B", "2A"} {
		resp := do(t, app, fiber.MethodPost, "/api/class", fiber.Map{"name": name})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := do(t, app, fiber.MethodGet, "/api/class?page_number=2&page_size=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	require.Len(t, body["items"], 1)
	require.EqualValues(t, 2, body["page_number"])
	require.EqualValues(t, 2, body["page_size"])
	require.EqualValues(t, 3, body["total_items"])

	resp = do(t, app, fiber.MethodGet, "/api/class/count", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	require.EqualValues(t, 3, body["total_count"])

	resp = do(t, app, fiber.MethodGet, "/api/class/all", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, decodeList(t, resp), 3)

	resp = do(t, app, fiber.MethodGet, "/api/class?filter=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	require.EqualValues(t, 2, body["total_items"])
}
