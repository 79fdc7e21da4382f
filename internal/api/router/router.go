package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/healthpilot/healthpilot-api/internal/assistant"
	httpmiddleware "github.com/healthpilot/healthpilot-api/internal/http/middleware"
	"github.com/healthpilot/healthpilot-api/internal/predict"
	"github.com/healthpilot/healthpilot-api/internal/profiles"
	"github.com/healthpilot/healthpilot-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	AssistantHandler   *assistant.Handler
	PredictHandler     *predict.Handler
	ProfilesHandler    *profiles.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.AssistantHandler != nil {
		r.Post("/ask", cfg.AssistantHandler.Ask)
		r.Post("/generate", cfg.AssistantHandler.Generate)
		r.Get("/generate/health", cfg.AssistantHandler.Health)
	}

	if cfg.PredictHandler != nil {
		r.Post("/predict/{model}", cfg.PredictHandler.Predict)
	}

	if cfg.ProfilesHandler != nil {
		r.Route("/profiles", func(pr chi.Router) {
			pr.Post("/", cfg.ProfilesHandler.Create)
			pr.Get("/", cfg.ProfilesHandler.List)
			pr.Route("/{profileID}", func(p chi.Router) {
				p.Get("/", cfg.ProfilesHandler.Get)
				p.Put("/", cfg.ProfilesHandler.Update)
				p.Delete("/", cfg.ProfilesHandler.Delete)
			})
		})
	}

	return r
}
