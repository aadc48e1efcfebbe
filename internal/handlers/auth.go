package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/task-tracker/internal/dto"
	"github.com/GregMSThompson/task-tracker/internal/middleware"
	"github.com/GregMSThompson/task-tracker/internal/response"
	"github.com/GregMSThompson/task-tracker/internal/session"
)

type authService interface {
	Register(ctx context.Context, email, password, first, last string) (string, error)
	Login(ctx context.Context, email, password string) (session.Session, error)
	Logout(ctx context.Context, id session.Identity) error
}

type authHandlers struct {
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{
		ResponseHandler: deps.ResponseHandler,
		AuthSvc:         deps.AuthSvc,
	}
}

// AuthRoutes mounts register and login publicly; logout needs a verified
// token, so requireAuth guards it.
func (h *authHandlers) AuthRoutes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.With(requireAuth).Post("/logout", h.Logout)
	return r
}

func (h *authHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid, err := h.AuthSvc.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, dto.RegisterResponse{UID: uid})
}

func (h *authHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	sess, err := h.AuthSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.LoginResponse{
		UID:          sess.UID,
		Email:        sess.Email,
		IDToken:      sess.IDToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
	})
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthSvc.Logout(r.Context(), middleware.Identity(r.Context())); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
