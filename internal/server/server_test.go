package server

import (
	"Campus/cmd"
	"Campus/database"
	"Campus/internal/config"
	"Campus/internal/handlers"
	"Campus/internal/models"
	"Campus/internal/repository"
	"Campus/internal/services"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, cfg *config.Configuration) *fiber.App {
	t.Helper()
	log, _ := test.NewNullLogger()
	store, cleanup, err := database.ProvideStore(cfg, log)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	courseRepo, err := repository.ProvideCourseRepository(store)
	require.NoError(t, err)
	studentRepo, err := repository.ProvideStudentRepository(store)
	require.NoError(t, err)

	logService := services.NewLogServiceWithLogger(log)
	courseService := services.NewCourseService(courseRepo, logService)
	studentService := services.NewStudentService(studentRepo, logService)

	srv := cmd.NewServer(
		cfg,
		courseService,
		handlers.NewCourseHandler(courseService, studentService),
		studentService,
		handlers.NewStudentHandler(studentService),
		logService,
		services.NewJanitorService(courseRepo, studentRepo, logService, cfg),
	)
	return NewApp(srv)
}

func testConfig(backend, path string) *config.Configuration {
	return &config.Configuration{
		Server: config.ServerConfig{
			Concurrency:   1,
			RequestConfig: config.RequestConfig{SizeLimit: 1},
		},
		Database: config.DatabaseConfig{Backend: backend, Path: path},
	}
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestApp_CourseLifecycle(t *testing.T) {
	backends := map[string]*config.Configuration{
		"memory": testConfig(config.BackendMemory, ""),
		"sqlite": testConfig(config.BackendSQLite, filepath.Join(t.TempDir(), "campus.db")),
		"bolt":   testConfig(config.BackendBolt, filepath.Join(t.TempDir(), "campus.bolt")),
	}
	for name, cfg := range backends {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t, cfg)

			resp, body := do(t, app, http.MethodGet, "/courses", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, "[]", string(body))

			resp, body = do(t, app, http.MethodPost, "/courses", map[string]any{"code": "CS101", "name": "Intro", "credits": 5})
			require.Equal(t, http.StatusCreated, resp.StatusCode)
			var created models.Course
			require.NoError(t, json.Unmarshal(body, &created))
			require.NotZero(t, created.ID)
			target := fmt.Sprintf("/courses/%d", created.ID)

			resp, _ = do(t, app, http.MethodGet, target, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, body = do(t, app, http.MethodPut, target, map[string]any{"code": "CS101", "name": "Introduction", "credits": 6})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var updated models.Course
			require.NoError(t, json.Unmarshal(body, &updated))
			assert.Equal(t, "Introduction", updated.Name)
			assert.Equal(t, 6, updated.Credits)

			resp, body = do(t, app, http.MethodPost, "/students", map[string]any{
				"first_name": "Ada",
				"last_name":  "Lovelace",
				"email":      "ada@example.com",
				"course_id":  created.ID,
			})
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			resp, body = do(t, app, http.MethodGet, target+"/students", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var enrolled []models.Student
			require.NoError(t, json.Unmarshal(body, &enrolled))
			assert.Len(t, enrolled, 1)

			resp, _ = do(t, app, http.MethodGet, "/courses/code/CS101", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			resp, _ = do(t, app, http.MethodDelete, target, nil)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = do(t, app, http.MethodGet, target, nil)
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)

			resp, _ = do(t, app, http.MethodPut, target, map[string]any{"name": "Ghost"})
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestApp_JanitorRoutes(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendMemory, ""))

	resp, _ := do(t, app, http.MethodPost, "/janitor/clean", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/janitor/status", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Pending int64 `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(body, &status))
	assert.Zero(t, status.Pending)
}

func TestApp_ClientCannotSetDeletedAt(t *testing.T) {
	app := newTestApp(t, testConfig(config.BackendSQLite, filepath.Join(t.TempDir(), "campus.db")))

	resp, body := do(t, app, http.MethodPost, "/courses", map[string]any{
		"code":       "CS101",
		"name":       "Intro",
		"deleted_at": "2001-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Course
	require.NoError(t, json.Unmarshal(body, &created))

	resp, _ = do(t, app, http.MethodGet, fmt.Sprintf("/courses/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/courses", map[string]any{"code": "CS101", "name": "Copy"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
