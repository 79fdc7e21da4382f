package predict

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/healthpilot/healthpilot-api/internal/observability/metrics"
	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

// Handler exposes the risk-prediction passthrough over HTTP.
type Handler struct {
	client  *Client
	metrics *metrics.PredictMetrics
	logger  *logging.Logger
}

// NewHandler creates a new predict handler. client may be nil when the
// backend is unconfigured.
func NewHandler(client *Client, m *metrics.PredictMetrics, logger *logging.Logger) *Handler {
	return &Handler{
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Predict handles POST /predict/{model} requests.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	model, err := ParseModelType(chi.URLParam(r, "model"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil || len(payload) == 0 {
		writeError(w, http.StatusBadRequest, "payload required")
		return
	}

	if h.client == nil {
		writeError(w, http.StatusServiceUnavailable, "prediction backend not configured")
		return
	}

	result, err := h.client.Predict(r.Context(), model, payload)
	if err != nil {
		h.metrics.Observe(string(model), "error")
		h.logger.Error("prediction request failed", "model", model, "error", err)
		writeError(w, http.StatusServiceUnavailable, "prediction backend unavailable")
		return
	}

	h.metrics.Observe(string(model), "success")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(result.StatusCode)
	_, _ = w.Write(result.Body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
