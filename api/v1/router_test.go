package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/backend/database"
	"github.com/taskboard/backend/lib/storage"
	"github.com/taskboard/backend/realtime"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRouter wires a full router against an in-memory database.
func newTestRouter(t *testing.T) (*gin.Engine, *realtime.Hub) {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		sqlDB.Close()
	})

	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	hub := realtime.NewHub(nil)
	RegisterRoutes(router.Group("/api"), hub, store, nil)
	return router, hub
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func registerAndLogin(t *testing.T, router *gin.Engine, username, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret-password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "secret-password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", rec.Code, rec.Body.String())
	}
	var token string
	if err := json.Unmarshal(decodeBody(t, rec)["token"], &token); err != nil || token == "" {
		t.Fatalf("no token in login response: %s", rec.Body.String())
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health returned %d", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing token: status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/projects", "garbage-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestProjectAndTaskFlow(t *testing.T) {
	router, hub := newTestRouter(t)

	ownerToken := registerAndLogin(t, router, "ownerusr", "owner@example.com")
	strangerToken := registerAndLogin(t, router, "stranger1", "stranger@example.com")

	// Malformed create body maps to 400.
	rec := doJSON(t, router, http.MethodPost, "/api/projects", ownerToken, gin.H{"name": "X"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("short name: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/projects", ownerToken, gin.H{
		"name": "Launch Board",
		"key":  "LNCH",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project returned %d: %s", rec.Code, rec.Body.String())
	}
	var project struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(decodeBody(t, rec)["project"], &project); err != nil || project.ID == "" {
		t.Fatalf("no project in response: %s", rec.Body.String())
	}

	// A stranger gets 403 on an existing project, 404 on a missing one.
	rec = doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID, strangerToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger read: status = %d, want 403", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/projects/00000000-0000-0000-0000-000000000000", ownerToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing project: status = %d, want 404", rec.Code)
	}

	// Task creation broadcasts to hub subscribers.
	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/projects/%s/tasks", project.ID), ownerToken, gin.H{
		"title": "Prepare release notes",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task returned %d: %s", rec.Code, rec.Body.String())
	}
	var task struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(decodeBody(t, rec)["task"], &task); err != nil || task.ID == "" {
		t.Fatalf("no task in response: %s", rec.Body.String())
	}

	select {
	case payload := <-events:
		var event realtime.TaskEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		if event.EventType != realtime.EventTaskCreated {
			t.Errorf("event type = %q, want %q", event.EventType, realtime.EventTaskCreated)
		}
	default:
		t.Error("expected a TASK_CREATED broadcast")
	}

	// Status update through the API.
	rec = doJSON(t, router, http.MethodPut, "/api/tasks/"+task.ID, ownerToken, gin.H{
		"status": "InProgress",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update task returned %d: %s", rec.Code, rec.Body.String())
	}

	// An unknown status maps to 400.
	rec = doJSON(t, router, http.MethodPut, "/api/tasks/"+task.ID, ownerToken, gin.H{
		"status": "Archived",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: status = %d, want 400", rec.Code)
	}
}
