package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dice-stats/internal/clock"
	"github.com/dice-stats/internal/config"
	"github.com/dice-stats/internal/domain"
	"github.com/dice-stats/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Statistics is what the HTTP layer needs from the statistics service
//
//go:generate mockgen -package=mocks -destination=mocks/mock_statistics.go github.com/dice-stats/internal/handler Statistics
type Statistics interface {
	Table(ctx context.Context, name string, scope domain.Scope, params service.TableParams) (any, error)
	ResolvePenalty(ctx context.Context, eventTypeID uuid.UUID, at time.Time) (domain.EventTypeRevision, error)
}

// Handler provides HTTP handlers for the statistics API
type Handler struct {
	stats  Statistics
	cfg    *config.StatsConfig
	clock  clock.Clock
	logger *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(stats Statistics, cfg *config.StatsConfig, clk clock.Clock, logger *slog.Logger) *Handler {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	return &Handler{
		stats:  stats,
		cfg:    cfg,
		clock:  clk,
		logger: logger,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", h.ListTables)
		r.Get("/stats/{table}", h.GetTable)
		r.Get("/event-types/{eventTypeID}/penalty", h.GetPenalty)
	})

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeSuccess(w http.ResponseWriter, data any) {
	h.writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, APIResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// writeServiceError maps service errors onto status codes
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsNotFoundError(err):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidScope), errors.Is(err, domain.ErrInvalidRequest):
		h.writeError(w, http.StatusBadRequest, err)
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.writeError(w, http.StatusInternalServerError, domain.ErrInternalError)
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, map[string]string{"status": "healthy"})
}

// ListTables returns the names of all tables
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, service.TableNames())
}

// GetTable computes one statistics table for the requested scope
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	active, err := parseBool(query.Get("active"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}
	scope, err := domain.ParseScope(query.Get("from"), query.Get("to"), active, h.clock.Now(), h.cfg.DefaultRangeDays)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	var params service.TableParams
	if raw := query.Get("event_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
			return
		}
		params.EventTypeID = id
	}
	if params.ActiveEventTypes, err = parseBool(query.Get("active_event_types")); err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	table, err := h.stats.Table(r.Context(), chi.URLParam(r, "table"), scope, params)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	h.writeSuccess(w, table)
}

// GetPenalty returns the revision of an event type in force at the given
// date, now when omitted
func (h *Handler) GetPenalty(w http.ResponseWriter, r *http.Request) {
	eventTypeID, err := uuid.Parse(chi.URLParam(r, "eventTypeID"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
		return
	}

	at := h.clock.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		if at, err = time.Parse(time.RFC3339, raw); err != nil {
			h.writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest)
			return
		}
	}

	rev, err := h.stats.ResolvePenalty(r.Context(), eventTypeID, at)
	if err != nil {
		if errors.Is(err, domain.ErrNoValidHistory) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeServiceError(w, r, err)
		return
	}

	h.writeSuccess(w, rev)
}

func parseBool(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
