package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/healthpilot/healthpilot-api/internal/profiles"
	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

// ProfileResolver looks up a stored profile by id for the health-tips mode.
type ProfileResolver interface {
	GetByID(ctx context.Context, id string) (*profiles.Profile, error)
}

// Handler handles HTTP requests for the assistant endpoints
type Handler struct {
	orch     *Orchestrator
	resolver ProfileResolver
	modelID  string
	logger   *logging.Logger
}

// NewHandler creates a new assistant handler. resolver may be nil; modelID
// is the primary model identifier reported by the health endpoint.
func NewHandler(orch *Orchestrator, resolver ProfileResolver, modelID string, logger *logging.Logger) *Handler {
	return &Handler{
		orch:     orch,
		resolver: resolver,
		modelID:  modelID,
		logger:   logger,
	}
}

// AskRequest is the body for POST /ask.
type AskRequest struct {
	Question string `json:"question"`
	UseAgent bool   `json:"useAgent"`
}

// Ask handles POST /ask requests: primary first, agent fallback.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	env, err := h.orch.Answer(r.Context(), Query{
		Question: req.Question,
		Mode:     ModeGeneral,
		UseAgent: req.UseAgent,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, env)
}

// GenerateRequest is the body for POST /generate.
type GenerateRequest struct {
	Question    string         `json:"question"`
	Mode        string         `json:"mode"`
	Context     string         `json:"context"`
	UserProfile map[string]any `json:"userProfile"`
	ProfileID   string         `json:"profileId"`
}

// Generate handles POST /generate requests: primary provider only, no
// fallback.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode, err := ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile := formatProfile(req.UserProfile)
	if mode == ModeHealthTips && profile == "" && req.ProfileID != "" && h.resolver != nil {
		stored, err := h.resolver.GetByID(r.Context(), req.ProfileID)
		if err != nil {
			if errors.Is(err, profiles.ErrProfileNotFound) {
				writeError(w, http.StatusBadRequest, "profile not found")
				return
			}
			h.logger.Error("failed to resolve profile", "error", err, "profile_id", req.ProfileID)
			writeError(w, http.StatusInternalServerError, "failed to resolve profile")
			return
		}
		profile = stored.Describe()
	}

	env, err := h.orch.AnswerPrimary(r.Context(), Query{
		Question: req.Question,
		Mode:     mode,
		Context:  req.Context,
		Profile:  profile,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, env)
}

// HealthResponse is the body for GET /generate/health.
type HealthResponse struct {
	Configured bool              `json:"configured"`
	Model      string            `json:"model"`
	Endpoints  map[string]string `json:"endpoints"`
}

// Health handles GET /generate/health requests. No side effects.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Configured: h.orch.PrimaryConfigured(),
		Model:      h.modelID,
		Endpoints: map[string]string{
			"ask":      "/ask",
			"generate": "/generate",
			"health":   "/generate/health",
		},
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnconfigured):
		writeError(w, http.StatusInternalServerError, "no AI provider configured")
	case errors.Is(err, ErrAllProvidersFailed):
		h.logger.Error("all providers failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "AI service unavailable")
	default:
		h.logger.Error("assistant request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// formatProfile renders a free-form profile object as sorted key/value
// lines for prompt building.
func formatProfile(profile map[string]any) string {
	if len(profile) == 0 {
		return ""
	}

	keys := make([]string, 0, len(profile))
	for k := range profile {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		v := profile[k]
		if v == nil {
			continue
		}
		var rendered string
		switch val := v.(type) {
		case string:
			rendered = strings.TrimSpace(val)
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			rendered = strings.Join(parts, ", ")
		default:
			rendered = fmt.Sprint(val)
		}
		if rendered == "" {
			continue
		}
		lines = append(lines, k+": "+rendered)
	}
	return strings.Join(lines, "\n")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
