package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

// Handler handles HTTP requests for profiles
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new profiles handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// Create handles POST /profiles requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create profile", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("profile created", "id", profile.ID)
	writeJSON(w, http.StatusCreated, profile)
}

// Get handles GET /profiles/{profileID} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")

	profile, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.Error("failed to get profile", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /profiles/{profileID} requests
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")

	var req UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.Error("failed to update profile", "error", err, "id", id)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /profiles/{profileID} requests
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "profileID")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		h.logger.Error("failed to delete profile", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListResponse is the response for listing profiles
type ListResponse struct {
	Profiles []*Profile `json:"profiles"`
	Count    int        `json:"count"`
}

// List handles GET /profiles requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list profiles", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Profiles: profiles,
		Count:    len(profiles),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
