// Package http exposes the weather API alongside health, readiness, and
// metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/brandenburg-weather-sim/internal/domain"
	"github.com/couchcryptid/brandenburg-weather-sim/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the weather API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	sim        *domain.Simulator
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server serving the v1 weather API.
func NewServer(addr string, sim *domain.Simulator, ready ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		sim:     sim,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/cities", s.handleCities)
	mux.HandleFunc("GET /api/v1/weather", s.handleWeatherQuery)
	mux.HandleFunc("GET /api/v1/weather/{city}", s.handleCityWeather)
	mux.HandleFunc("GET /api/v1/weather/{city}/forecast", s.handleForecast)
	mux.HandleFunc("GET /api/v1/weather/{city}/air", s.handleAirQuality)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
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

func (s *Server) handleCities(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, "cities", http.StatusOK, map[string]any{"cities": s.sim.Cities()})
}

// handleWeatherQuery serves /api/v1/weather. With lat/lon query parameters it
// resolves the nearest city; without them it returns a snapshot per city.
func (s *Server) handleWeatherQuery(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	if latStr == "" && lonStr == "" {
		snaps, err := s.sim.AllCities(time.Time{})
		if err != nil {
			s.respondError(w, "weather", err)
			return
		}
		s.respond(w, "weather", http.StatusOK, map[string]any{"snapshots": snaps})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		s.respond(w, "weather", http.StatusBadRequest, map[string]string{"error": "invalid lat"})
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		s.respond(w, "weather", http.StatusBadRequest, map[string]string{"error": "invalid lon"})
		return
	}

	snap, err := s.sim.WeatherForCoordinates(lat, lon)
	if err != nil {
		s.respondError(w, "weather", err)
		return
	}
	s.respond(w, "weather", http.StatusOK, snap)
}

func (s *Server) handleCityWeather(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sim.CurrentWeather(r.PathValue("city"), time.Time{})
	if err != nil {
		s.respondError(w, "city_weather", err)
		return
	}
	s.respond(w, "city_weather", http.StatusOK, snap)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	days := 1
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respond(w, "forecast", http.StatusBadRequest, map[string]string{"error": "invalid days"})
			return
		}
		days = n
	}

	step := 0
	if v := r.URL.Query().Get("step"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respond(w, "forecast", http.StatusBadRequest, map[string]string{"error": "invalid step"})
			return
		}
		step = n
	}

	series, err := s.sim.Forecast(r.PathValue("city"), days, step)
	if err != nil {
		s.respondError(w, "forecast", err)
		return
	}
	s.respond(w, "forecast", http.StatusOK, series)
}

func (s *Server) handleAirQuality(w http.ResponseWriter, r *http.Request) {
	sample, err := s.sim.AirQuality(r.PathValue("city"), time.Time{})
	if err != nil {
		s.respondError(w, "air_quality", err)
		return
	}
	s.respond(w, "air_quality", http.StatusOK, sample)
}

// respondError maps domain errors to HTTP status codes.
func (s *Server) respondError(w http.ResponseWriter, endpoint string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownCity):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedHorizon), errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoCitiesConfigured):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "endpoint", endpoint, "error", err)
	}
	s.respond(w, endpoint, status, map[string]string{"error": err.Error()})
}

func (s *Server) respond(w http.ResponseWriter, endpoint string, status int, v any) {
	s.metrics.APIRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
