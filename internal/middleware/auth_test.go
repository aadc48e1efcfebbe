package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/task-tracker/internal/session"
)

type stubVerifier struct {
	token  string
	result *auth.Token
	err    error
}

func (s *stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	s.token = idToken
	return s.result, s.err
}

type stubResponseHandler struct {
	status int
	code   string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, _ any) {
	w.WriteHeader(status)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, _ string) {
	s.status = status
	s.code = code
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, _ error) {
	w.WriteHeader(http.StatusInternalServerError)
}

func identityHandler(got *session.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = Identity(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestFirebaseAuthBearer(t *testing.T) {
	verifier := &stubVerifier{result: &auth.Token{UID: "uid-1", Claims: map[string]any{"email": "jane@example.com"}}}
	m := NewMiddleware(verifier, &stubResponseHandler{})

	var got session.Identity
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rr := httptest.NewRecorder()
	m.FirebaseAuth(identityHandler(&got)).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if verifier.token != "tok-1" {
		t.Fatalf("verified token = %q", verifier.token)
	}
	if got.UID != "uid-1" || got.Email != "jane@example.com" {
		t.Fatalf("identity = %+v", got)
	}
}

func TestFirebaseAuthRejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{"missing header", "", nil},
		{"wrong scheme", "Basic abc", nil},
		{"bad token", "Bearer nope", errors.New("expired")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &stubResponseHandler{}
			m := NewMiddleware(&stubVerifier{err: tt.err, result: &auth.Token{UID: "uid-1"}}, resp)

			var got session.Identity
			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			m.FirebaseAuth(identityHandler(&got)).ServeHTTP(rr, req)

			if resp.status != http.StatusUnauthorized || resp.code != "unauthorized" {
				t.Fatalf("expected 401 unauthorized, got %d %q", resp.status, resp.code)
			}
			if got.SignedIn() {
				t.Fatalf("next handler should not run")
			}
		})
	}
}

func TestFirebaseAuthQueryTokenOnlyForUpgrade(t *testing.T) {
	verifier := &stubVerifier{result: &auth.Token{UID: "uid-1"}}

	var got session.Identity
	req := httptest.NewRequest(http.MethodGet, "/tasks/live?token=tok-ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	rr := httptest.NewRecorder()
	NewMiddleware(verifier, &stubResponseHandler{}).FirebaseAuth(identityHandler(&got)).ServeHTTP(rr, req)

	if verifier.token != "tok-ws" || got.UID != "uid-1" {
		t.Fatalf("upgrade request should authenticate from query token")
	}

	resp := &stubResponseHandler{}
	verifier = &stubVerifier{result: &auth.Token{UID: "uid-1"}}
	req = httptest.NewRequest(http.MethodGet, "/tasks?token=tok-ws", nil)
	NewMiddleware(verifier, resp).FirebaseAuth(identityHandler(&got)).ServeHTTP(httptest.NewRecorder(), req)

	if resp.status != http.StatusUnauthorized || verifier.token != "" {
		t.Fatalf("plain request must not accept a query token")
	}
}

func TestIdentityOutsideMiddlewareIsAnonymous(t *testing.T) {
	if Identity(context.Background()) != session.Anonymous {
		t.Fatalf("expected anonymous identity")
	}
}
