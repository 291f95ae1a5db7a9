package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/basaltlabs/basalt/internal/config"
	"github.com/basaltlabs/basalt/internal/db"
	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/models"
	"github.com/basaltlabs/basalt/internal/queue"
	"github.com/basaltlabs/basalt/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// syncQueue runs recompute jobs inline and records them, so tests observe
// state transitions deterministically.
type syncQueue struct {
	handler queue.Handler
	jobs    []queue.Job
}

func (q *syncQueue) SetHandler(handler queue.Handler) {
	q.handler = handler
}

func (q *syncQueue) Enqueue(ctx context.Context, job queue.Job) error {
	q.jobs = append(q.jobs, job)
	if q.handler != nil {
		q.handler(ctx, job)
	}
	return nil
}

func (q *syncQueue) Close() {}

func (q *syncQueue) kinds() []string {
	kinds := make([]string, 0, len(q.jobs))
	for _, job := range q.jobs {
		kinds = append(kinds, job.Kind)
	}
	return kinds
}

type apiFixture struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	jobs     *syncQueue
}

func newAPITestApp(t *testing.T) *apiFixture {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "basalt-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	cfg := &config.Config{
		SecretKey:       []byte("test-secret-key"),
		CookieSecure:    false,
		Location:        time.UTC,
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Engine:          engine.DefaultConfig(),
	}

	jobs := &syncQueue{}
	handler := NewHandler(database, cfg, jobs)
	recompute := services.NewRecomputeService(db.NewRepositories(database), cfg.Engine, cfg.Location)
	jobs.SetHandler(recompute.Handle)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return &apiFixture{app: app, handler: handler, database: database, jobs: jobs}
}

func createAPITestUser(t *testing.T, fixture *apiFixture, username string, password string, isAdmin bool) models.User {
	t.Helper()

	user, err := fixture.handler.authService.CreateUser(services.NewUserParams{
		Username: username,
		Password: password,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func jsonRequest(t *testing.T, method string, target string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}
	return request
}

func authedJSONRequest(t *testing.T, method string, target string, token string, payload any) *http.Request {
	t.Helper()

	request := jsonRequest(t, method, target, payload)
	request.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return request
}

func performRequest(t *testing.T, app *fiber.App, request *http.Request) *http.Response {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", request.Method, request.URL.Path, err)
	}
	return response
}

func loginForTokens(t *testing.T, app *fiber.App, username string, password string) (string, *http.Cookie) {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	response := performRequest(t, app, request)
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}

	payload := decodeJSONMap(t, response.Body)
	accessToken, _ := payload["access_token"].(string)
	if accessToken == "" {
		t.Fatal("expected access token in login response")
	}
	return accessToken, responseCookie(response.Cookies(), refreshCookieName)
}

func decodeJSONMap(t *testing.T, body io.Reader) map[string]any {
	t.Helper()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func decodeJSONList(t *testing.T, body io.Reader) []map[string]any {
	t.Helper()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	payload := []map[string]any{}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := map[string]string{}
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
