package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"professor-registry/internal/api/handlers"
	"professor-registry/internal/api/middleware"
	"professor-registry/internal/domain/professor"
	"professor-registry/internal/infrastructure/repository"
	"professor-registry/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func newTestRouter(t *testing.T, checks map[string]handlers.HealthCheckFunc) http.Handler {
	t.Helper()

	store := repository.NewMockProfessorRepository()
	if err := store.SeedSampleData(context.Background()); err != nil {
		t.Fatalf("Failed to seed data: %v", err)
	}

	log, _ := test.NewNullLogger()
	svc := service.NewProfessorService(store, repository.NewMockProfessorEventRepository(store), log)

	return NewRouter(svc, handlers.NewHealthHandler("test", checks), log)
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestProfessorRoutes_StatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"list", http.MethodGet, "/api/v1/professors", "", http.StatusOK},
		{"get", http.MethodGet, "/api/v1/professors/1", "", http.StatusOK},
		{"get missing", http.MethodGet, "/api/v1/professors/99", "", http.StatusNotFound},
		{"get invalid id", http.MethodGet, "/api/v1/professors/abc", "", http.StatusBadRequest},
		{"get zero id", http.MethodGet, "/api/v1/professors/0", "", http.StatusBadRequest},
		{"get id beyond int32", http.MethodGet, "/api/v1/professors/3000000000", "", http.StatusNotFound},
		{"get id beyond int64", http.MethodGet, "/api/v1/professors/9223372036854775808", "", http.StatusBadRequest},
		{"update id beyond int32", http.MethodPut, "/api/v1/professors/3000000000", `{"last_name":"Kay"}`, http.StatusNotFound},
		{"delete id beyond int32", http.MethodDelete, "/api/v1/professors/3000000000", "", http.StatusNotFound},
		{"create", http.MethodPost, "/api/v1/professors", `{"first_name":"Barbara","last_name":"Liskov"}`, http.StatusCreated},
		{"create missing name", http.MethodPost, "/api/v1/professors", `{"first_name":"Barbara"}`, http.StatusBadRequest},
		{"create malformed", http.MethodPost, "/api/v1/professors", `{"first_name":`, http.StatusBadRequest},
		{"update", http.MethodPut, "/api/v1/professors/2", `{"last_name":"Kay"}`, http.StatusOK},
		{"update empty", http.MethodPut, "/api/v1/professors/2", `{}`, http.StatusOK},
		{"update blank name", http.MethodPut, "/api/v1/professors/2", `{"last_name":""}`, http.StatusBadRequest},
		{"update missing", http.MethodPut, "/api/v1/professors/99", `{"last_name":"Kay"}`, http.StatusNotFound},
		{"delete missing", http.MethodDelete, "/api/v1/professors/99", "", http.StatusNotFound},
		{"events", http.MethodGet, "/api/v1/professors/1/events", "", http.StatusOK},
		{"events missing", http.MethodGet, "/api/v1/professors/99/events", "", http.StatusNotFound},
		{"create event", http.MethodPost, "/api/v1/professors/1/events", `{"title":"Seminar"}`, http.StatusCreated},
		{"create event no title", http.MethodPost, "/api/v1/professors/1/events", `{}`, http.StatusBadRequest},
		{"create event unknown professor", http.MethodPost, "/api/v1/professors/99/events", `{"title":"Seminar"}`, http.StatusConflict},
		{"delete event wrong professor", http.MethodDelete, "/api/v1/professors/2/events/1", "", http.StatusNotFound},
		{"delete event invalid id", http.MethodDelete, "/api/v1/professors/1/events/x", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, nil)

			w, resp := doRequest(t, h, tt.method, tt.path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}

			wantSuccess := tt.status < http.StatusBadRequest
			if resp.Success != wantSuccess {
				t.Errorf("Expected success=%v, got %v", wantSuccess, resp.Success)
			}
		})
	}
}

func TestProfessorRoutes_CreateThenDelete(t *testing.T) {
	h := newTestRouter(t, nil)

	w, resp := doRequest(t, h, http.MethodPost, "/api/v1/professors", `{"first_name":"Ada","last_name":"Lovelace"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", w.Code)
	}

	var created struct {
		ID        uint   `json:"id"`
		FirstName string `json:"first_name"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("Failed to decode professor: %v", err)
	}

	if created.ID != 4 || created.FirstName != "Ada" {
		t.Errorf("Expected professor 4 named Ada, got %+v", created)
	}

	w, _ = doRequest(t, h, http.MethodDelete, "/api/v1/professors/4", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	w, resp = doRequest(t, h, http.MethodGet, "/api/v1/professors/4", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	if resp.Message != "professor 4 not found" {
		t.Errorf("Unexpected message: %s", resp.Message)
	}
}

func TestProfessorRoutes_ValidationErrorsUseJSONNames(t *testing.T) {
	h := newTestRouter(t, nil)

	_, resp := doRequest(t, h, http.MethodPost, "/api/v1/professors", `{"last_name":"Liskov"}`)
	if !strings.Contains(string(resp.Errors), "first_name") {
		t.Errorf("Expected validation errors to mention first_name, got %s", resp.Errors)
	}
}

func TestRequestIDHeader(t *testing.T) {
	h := newTestRouter(t, nil)

	w, _ := doRequest(t, h, http.MethodGet, "/live", "")
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a generated request ID")
	}

	id := "9f1c1b7e-2f43-4c1e-9a57-6a3f0b6f8f10"
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get(middleware.RequestIDHeader); got != id {
		t.Errorf("Expected request ID %s to be echoed, got %s", id, got)
	}
}

func TestHealthRoutes(t *testing.T) {
	healthy := newTestRouter(t, map[string]handlers.HealthCheckFunc{
		"database": func(ctx context.Context) error { return nil },
	})

	if w, _ := doRequest(t, healthy, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}

	unhealthy := newTestRouter(t, map[string]handlers.HealthCheckFunc{
		"database": func(ctx context.Context) error { return nil },
		"cache":    func(ctx context.Context) error { return errors.New("connection refused") },
	})

	w, _ := doRequest(t, unhealthy, http.MethodGet, "/health", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", w.Code)
	}

	var body handlers.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}

	if body.Status != "unhealthy" || body.Services["cache"] != "unhealthy: connection refused" {
		t.Errorf("Unexpected health response %+v", body)
	}

	if w, _ := doRequest(t, unhealthy, http.MethodGet, "/ready", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 from /ready, got %d", w.Code)
	}

	if w, _ := doRequest(t, unhealthy, http.MethodGet, "/live", ""); w.Code != http.StatusOK {
		t.Errorf("Expected 200 from /live, got %d", w.Code)
	}
}

// failingService returns store failures; methods it does not override are never routed to in these tests
type failingService struct {
	professor.Service
}

func (failingService) ListProfessors(ctx context.Context) ([]*professor.Professor, error) {
	return nil, professor.RetrievalError(professor.EntityProfessors, 0, errors.New(`dial tcp 10.0.0.5:5432: password authentication failed for user "registry"`))
}

func TestErrorResponsesHideStoreDetail(t *testing.T) {
	log, hook := test.NewNullLogger()
	h := NewRouter(failingService{}, handlers.NewHealthHandler("test", nil), log)

	w, resp := doRequest(t, h, http.MethodGet, "/api/v1/professors", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}

	if resp.Message != "Internal server error" {
		t.Errorf("Expected generic message, got %q", resp.Message)
	}

	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("Expected driver detail to stay out of the body, got %s", w.Body.String())
	}

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("Expected an error level request log, got %v", entry)
	}

	if logged, _ := entry.Data["error"].(string); !strings.Contains(logged, "10.0.0.5") {
		t.Errorf("Expected driver detail in the request log, got %q", logged)
	}
}

func TestConflictResponseHidesConstraintDetail(t *testing.T) {
	h := newTestRouter(t, nil)

	w, resp := doRequest(t, h, http.MethodPost, "/api/v1/professors/99/events", `{"title":"Seminar"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", w.Code)
	}

	if resp.Message != "Referenced professor does not exist" {
		t.Errorf("Unexpected message %q", resp.Message)
	}

	if strings.Contains(w.Body.String(), "fkey") || strings.Contains(w.Body.String(), "Key (professor_id)") {
		t.Errorf("Expected constraint detail to stay out of the body, got %s", w.Body.String())
	}
}

func TestUniqueViolationIsConflict(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := NewRouter(conflictingService{}, handlers.NewHealthHandler("test", nil), log)

	w, resp := doRequest(t, h, http.MethodPost, "/api/v1/professors", `{"first_name":"Ada","last_name":"Lovelace"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("Expected 409, got %d", w.Code)
	}

	if resp.Message != "Request conflicts with existing data" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

type conflictingService struct {
	professor.Service
}

func (conflictingService) CreateProfessor(ctx context.Context, req *professor.CreateProfessorRequest) (*professor.Professor, error) {
	return nil, professor.CreationError(professor.EntityProfessor, &pgconn.PgError{Code: "23505", Detail: "Key (id)=(1) already exists."})
}
