package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/phrazzld/addok/internal/api/middleware"
	"github.com/phrazzld/addok/internal/api/shared"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/redact"
	"github.com/spf13/cast"
)

const healthTimeout = 2 * time.Second

// NewRouter builds the HTTP handler. CORS headers come from the
// CORS_ALLOW_ORIGIN and CORS_ALLOW_HEADERS settings.
func NewRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	h := &handler{cfg: cfg, logger: logger.With("component", "api")}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.NewTraceMiddleware(h.logger))
	r.Use(apimiddleware.CORS(
		cast.ToString(cfg.Get("CORS_ALLOW_ORIGIN")),
		cast.ToString(cfg.Get("CORS_ALLOW_HEADERS")),
	))

	r.Get("/health", h.health)
	r.Get("/config", h.settings)
	r.Get("/config/{name}", h.setting)
	return r
}

type handler struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.cfg.DB == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "storage not connected")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()
	if err := h.cfg.DB.Ping(ctx); err != nil {
		h.logger.Error("storage ping failed", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "storage unreachable")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) settings(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]any)
	for _, key := range h.cfg.Keys() {
		v, _ := h.cfg.Describe(key)
		out[key] = redact.Setting(key, v)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

func (h *handler) setting(w http.ResponseWriter, r *http.Request) {
	name := strings.ToUpper(chi.URLParam(r, "name"))
	v, ok := h.cfg.Describe(name)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "setting not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{name: redact.Setting(name, v)})
}
