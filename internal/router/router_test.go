package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/task-tracker/internal/handlers"
	"github.com/GregMSThompson/task-tracker/internal/middleware"
	"github.com/GregMSThompson/task-tracker/internal/response"
	"github.com/GregMSThompson/task-tracker/pkg/logger"
)

type rejectAll struct{}

func (rejectAll) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return nil, errors.New("invalid token")
}

func newTestRouter() http.Handler {
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	rh := response.New(log)
	deps := &handlers.Deps{Log: log, ResponseHandler: rh}
	return NewRouter(deps, middleware.NewMiddleware(rejectAll{}, rh))
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "task_live_sessions") {
		t.Fatalf("metrics endpoint did not expose task metrics")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter()
	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodDelete, "/tasks/t1"},
		{http.MethodGet, "/profile"},
		{http.MethodDelete, "/profile"},
		{http.MethodPost, "/auth/logout"},
	} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer nope")
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", tc.method, tc.path, rr.Code)
		}
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("not-json"))
	newTestRouter().ServeHTTP(rr, req)

	// reaches the handler, which rejects the body
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("login = %d, want 400", rr.Code)
	}
}
