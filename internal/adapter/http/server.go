package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/ac-cost-service/internal/catalog"
	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/report"
)

// EstimateService is the application core the HTTP layer fronts.
type EstimateService interface {
	Estimate(ctx context.Context, inputs domain.EstimateInputs) (domain.Calculation, error)
	Recent(ctx context.Context, limit int) ([]domain.Calculation, error)
	Get(ctx context.Context, id string) (domain.Calculation, error)
	CheckReadiness(ctx context.Context) error
}

const defaultRecentLimit = 10

// Server exposes the estimate API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	service    EstimateService
	logger     *slog.Logger
}

// NewServer wires the API routes onto a configured http.Server.
func NewServer(addr string, service EstimateService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("POST /v1/estimates", s.handleCreateEstimate)
	mux.HandleFunc("GET /v1/estimates", s.handleListEstimates)
	mux.HandleFunc("GET /v1/estimates/{id}", s.handleGetEstimate)
	mux.HandleFunc("GET /v1/estimates/{id}/report", s.handleEstimateReport)
	mux.HandleFunc("GET /v1/units", s.handleListUnits)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(service))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleCreateEstimate(w http.ResponseWriter, r *http.Request) {
	var inputs domain.EstimateInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	calc, err := s.service.Estimate(r.Context(), inputs)
	if err != nil {
		s.writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, calc)
}

func (s *Server) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorBody("limit must be a positive integer"))
			return
		}
		limit = n
	}

	calcs, err := s.service.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("list estimates failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("could not load estimates"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"estimates": calcs})
}

func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	calc, err := s.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("estimate not found"))
			return
		}
		s.logger.Error("get estimate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("could not load estimate"))
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleEstimateReport(w http.ResponseWriter, r *http.Request) {
	calc, err := s.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("estimate not found"))
			return
		}
		s.logger.Error("report lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("could not load estimate"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", attachment(report.FileName(calc, "csv")))
		err = report.WriteCSV(w, calc)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", attachment(report.FileName(calc, "pdf")))
		err = report.WritePDF(w, calc)
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("format must be csv or pdf"))
		return
	}
	if err != nil {
		// Headers are already out; all we can do is log.
		s.logger.Error("report rendering failed", "format", format, "error", err)
	}
}

func (s *Server) handleListUnits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"units": catalog.All()})
}

func (s *Server) writeEstimateError(w http.ResponseWriter, err error) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": verrs,
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("postal code not found"))
	case errors.Is(err, domain.ErrUnavailable):
		writeJSON(w, http.StatusBadGateway, errorBody("upstream provider unavailable"))
	default:
		s.logger.Error("estimate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker EstimateService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
