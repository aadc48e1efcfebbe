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

type profileService interface {
	Load(ctx context.Context, uid string) (*dto.Profile, error)
	Save(ctx context.Context, uid, first, last string) (dto.ProfileName, error)
	DeleteAccount(ctx context.Context, id session.Identity, password string) error
}

type profileHandlers struct {
	ResponseHandler response.ResponseHandler
	ProfileSvc      profileService
}

func NewProfileHandlers(deps *Deps) *profileHandlers {
	return &profileHandlers{
		ResponseHandler: deps.ResponseHandler,
		ProfileSvc:      deps.ProfileSvc,
	}
}

func (h *profileHandlers) ProfileRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetProfile)
	r.Patch("/", h.UpdateProfile)
	r.Delete("/", h.DeleteAccount)
	return r
}

func (h *profileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	profile, err := h.ProfileSvc.Load(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, profile)
}

// UpdateProfile returns only the saved name fields; the client merges them
// into the profile it already holds.
func (h *profileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	saved, err := h.ProfileSvc.Save(r.Context(), uid, req.FirstName, req.LastName)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, saved)
}

func (h *profileHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if err := h.ProfileSvc.DeleteAccount(r.Context(), middleware.Identity(r.Context()), req.Password); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
