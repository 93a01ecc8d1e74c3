package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/db"
	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testAdminID       = "COACH1"
	testAdminEmail    = "coach@dreambody.local"
	testAdminPassword = "AdminPass1"
)

type stubPlanner struct {
	mu           sync.Mutex
	starterCalls int
}

func (planner *stubPlanner) GenerateStarterPlans(ctx context.Context, user models.User) (string, string) {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	planner.starterCalls++
	return "Workout for " + user.Name, "Diet for " + user.Name
}

func (planner *stubPlanner) RegenerateDietPlan(ctx context.Context, user models.User) string {
	return "Fresh diet for " + user.Name
}

func (planner *stubPlanner) GenerateFitnessAdvice(ctx context.Context, query string, userContext string) string {
	return "Coach says: " + query
}

func (planner *stubPlanner) starterCallCount() int {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	return planner.starterCalls
}

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	planner  *stubPlanner
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithCookieSecure(t, false)
}

func newTestAppWithCookieSecure(t *testing.T, cookieSecure bool) *testApp {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "dreambody-api-test.db")
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

	adminHash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	if err := db.SeedStore(database, db.AdminSeed{
		ID:           testAdminID,
		Email:        testAdminEmail,
		PasswordHash: string(adminHash),
	}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	planner := &stubPlanner{}
	handler, err := NewHandler(database, "test-secret-key", time.UTC, cookieSecure, Options{
		Planner: planner,
		ContextBuilder: func(user models.User, _ time.Time) string {
			return "Name: " + user.Name
		},
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, handler: handler, database: database, planner: planner}
}

func (fixture *testApp) request(t *testing.T, method string, path string, body any, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}

	response, err := fixture.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func expectStatus(t *testing.T, response *http.Response, want int) {
	t.Helper()
	if response.StatusCode != want {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", want, response.StatusCode, body)
	}
}

func decodeResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()
	payload := map[string]string{}
	decodeResponse(t, response, &payload)
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

func authCookieHeader(t *testing.T, response *http.Response) string {
	t.Helper()
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in response")
	}
	return cookie.Name + "=" + cookie.Value
}

func loginAdmin(t *testing.T, fixture *testApp) string {
	t.Helper()
	response := fixture.request(t, http.MethodPost, "/api/auth/login", loginInput{Identifier: testAdminID, Password: testAdminPassword}, "")
	expectStatus(t, response, http.StatusOK)
	return authCookieHeader(t, response)
}

type registeredClient struct {
	ID     string
	Cookie string
}

func registerClient(t *testing.T, fixture *testApp, name string, email string) registeredClient {
	t.Helper()
	response := fixture.request(t, http.MethodPost, "/api/auth/register", registerInput{
		Name:            name,
		Email:           email,
		Phone:           "010" + email,
		Password:        "ClientPass1",
		ConfirmPassword: "ClientPass1",
		DOB:             "1998-06-01",
		Height:          175,
		Weight:          80,
		FitnessGoal:     "Build Muscle",
	}, "")
	expectStatus(t, response, http.StatusCreated)

	var payload struct {
		Role string   `json:"role"`
		User userView `json:"user"`
	}
	cookie := authCookieHeader(t, response)
	decodeResponse(t, response, &payload)
	if payload.Role != models.RoleClient || len(payload.User.ID) != 6 {
		t.Fatalf("unexpected register payload %#v", payload)
	}
	return registeredClient{ID: payload.User.ID, Cookie: cookie}
}
