// Command studymeshd serves the orchestrator over HTTP.
//
//	POST /orchestrate  {"user_id": "...", "prompt": "...", ...}  -> studymesh.Response
//	POST /memory/clear {"user_id": "..."}
//	GET  /healthz
//
// Configuration comes from the environment (a .env file is loaded when
// present): STUDYMESH_ADDR (default ":8080"), STUDYMESH_PROVIDER ("openai"
// or "anthropic", default "openai"), STUDYMESH_CATALOG (optional YAML agent
// catalog overriding the built-in personas), plus the provider SDK's own
// variables (OPENAI_API_KEY / ANTHROPIC_API_KEY).
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/studymesh/studymesh"
	"github.com/studymesh/studymesh/core"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/model"
	"github.com/studymesh/studymesh/model/anthropic"
	"github.com/studymesh/studymesh/model/openai"
	"github.com/studymesh/studymesh/registry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "studymeshd:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)

	llm, err := buildModel()
	if err != nil {
		return err
	}

	reg := registry.NewDefault()
	if path := os.Getenv("STUDYMESH_CATALOG"); path != "" {
		reg, err = registry.LoadCatalog(path)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
	}

	orc := studymesh.New(llm, func(o *studymesh.Options) {
		o.Registry = reg
		o.Logger = logger
	})
	srv := &server{orc: orc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", srv.handleHealth)
	r.Post("/orchestrate", srv.handleOrchestrate)
	r.Post("/memory/clear", srv.handleClearMemory)

	addr := envOr("STUDYMESH_ADDR", ":8080")
	logger.Info("listening", "addr", addr, "provider", envOr("STUDYMESH_PROVIDER", "openai"))
	return http.ListenAndServe(addr, r)
}

func buildModel() (model.Model, error) {
	switch provider := envOr("STUDYMESH_PROVIDER", "openai"); provider {
	case "openai":
		return openai.NewModel(), nil
	case "anthropic":
		return anthropic.NewModel(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
}

type server struct {
	orc    *studymesh.Orchestrator
	logger logging.Logger
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleOrchestrate(w http.ResponseWriter, r *http.Request) {
	var req core.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	resp, err := s.orc.Orchestrate(r.Context(), &req)
	if err != nil {
		s.logger.Error("orchestration failed", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleClearMemory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("user_id is required"))
		return
	}
	if err := s.orc.ClearMemory(req.UserID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
