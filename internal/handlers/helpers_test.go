package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/task-tracker/internal/middleware"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	writeErrorCalled bool
	writeErrorStatus int
	writeErrorCode   string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, _ string) {
	s.writeErrorCalled = true
	s.writeErrorStatus = status
	s.writeErrorCode = code
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// withIdentity injects a verified caller into the request context.
func withIdentity(r *http.Request, uid, email string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	ctx = context.WithValue(ctx, middleware.EmailKey, email)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}
