// Package handler provides HTTP handlers for all API endpoints. Handlers are
// thin: they parse parameters, invoke the aggregation or prediction core, and
// forward its results verbatim.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/matchodds/internal/api/respond"
	"github.com/albapepper/matchodds/internal/cache"
	"github.com/albapepper/matchodds/internal/config"
	"github.com/albapepper/matchodds/internal/fixture"
	"github.com/albapepper/matchodds/internal/predict"
	"github.com/albapepper/matchodds/internal/predlog"
)

const dateLayout = "2006-01-02"

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	agg    *fixture.Aggregator
	engine *predict.Engine
	plog   *predlog.Store // nil when no DATABASE_URL is configured
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(agg *fixture.Aggregator, engine *predict.Engine, plog *predlog.Store, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		agg:    agg,
		engine: engine,
		plog:   plog,
		cfg:    cfg,
		logger: logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "Matchodds API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics per record kind.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys) per record kind.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]cache.Stats)
	for kind, s := range h.agg.CacheStats() {
		stats[kind] = s
	}
	for kind, s := range h.engine.CacheStats() {
		stats[kind] = s
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     stats,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies prediction log connectivity.
// @Summary Prediction log health check
// @Description Verifies Postgres connectivity for the prediction audit log, or reports it disabled.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.plog == nil {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"database":  "disabled",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.plog.HealthCheck(r.Context()); err != nil {
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetLeagues lists the leagues with fixtures on a day.
// @Summary Leagues for a day
// @Description Returns the leagues that have fixtures on the given date, sorted by country then name.
// @Tags fixtures
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/leagues [get]
func (h *Handler) GetLeagues(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDate(w, r)
	if !ok {
		return
	}

	leagues := h.agg.LeaguesForDay(r.Context(), day)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":    day.Format(dateLayout),
		"count":   len(leagues),
		"leagues": leagues,
	})
}

// GetMatches lists a day's fixtures, optionally filtered to one league.
// @Summary Matches for a day
// @Description Returns the fixtures on the given date as lightweight match entries. Lineups are unconfirmed until details are requested per fixture.
// @Tags fixtures
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param league query int false "League id filter"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDate(w, r)
	if !ok {
		return
	}

	leagueID := 0
	if v := r.URL.Query().Get("league"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LEAGUE", "league must be an integer id")
			return
		}
		leagueID = n
	}

	matches := h.agg.DayView(r.Context(), day, leagueID)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":    day.Format(dateLayout),
		"matches": matches,
		"meta": map[string]interface{}{
			"count":  len(matches),
			"league": leagueID,
		},
	})
}

// GetFixtureDetails returns injury and lineup enrichment for one fixture.
// @Summary Fixture details
// @Description Returns the fixture's injury list and whether lineups are confirmed. Upstream failures degrade each field to its empty default.
// @Tags fixtures
// @Produce json
// @Param fixtureID path int true "Fixture id"
// @Success 200 {object} fixture.Details
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/fixtures/{fixtureID}/details [get]
func (h *Handler) GetFixtureDetails(w http.ResponseWriter, r *http.Request) {
	fixtureID, ok := parseFixtureID(w, r)
	if !ok {
		return
	}

	details := h.agg.Details(r.Context(), fixtureID)
	if details.Degraded {
		h.logger.Warn("serving degraded fixture details", "fixture_id", fixtureID)
	}
	respond.WriteJSON(w, http.StatusOK, details)
}

// Predict computes outcome probabilities for one fixture.
// @Summary Predict match outcome
// @Description Runs the Poisson outcome model for the fixture using cached team statistics and injury counts.
// @Tags predictions
// @Produce json
// @Param fixtureID path int true "Fixture id"
// @Success 200 {object} predict.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/predict/{fixtureID} [get]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	fixtureID, ok := parseFixtureID(w, r)
	if !ok {
		return
	}

	result, err := h.engine.Predict(r.Context(), fixtureID)
	if err != nil {
		if errors.Is(err, predict.ErrFixtureNotFound) {
			respond.WriteError(w, http.StatusNotFound, "FIXTURE_NOT_FOUND", "No fixture with that id")
			return
		}
		h.logger.Error("prediction failed", "fixture_id", fixtureID, "error", err)
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not resolve fixture from provider", err.Error())
		return
	}

	h.recordPrediction(result)
	respond.WriteJSON(w, http.StatusOK, result)
}

// recordPrediction appends the result to the audit log, best-effort. The
// serving path never depends on the log.
func (h *Handler) recordPrediction(result *predict.Result) {
	if h.plog == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.plog.Record(ctx, result); err != nil {
			h.logger.Warn("prediction log write failed", "fixture_id", result.FixtureID, "error", err)
		}
	}()
}

// parseDate reads the optional date query parameter, defaulting to today
// (UTC). Writes a 400 and returns ok=false on a malformed value.
func parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	v := r.URL.Query().Get("date")
	if v == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	day, err := time.Parse(dateLayout, v)
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}

// parseFixtureID reads the fixtureID path parameter. Writes a 400 and
// returns ok=false on a malformed value.
func parseFixtureID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "fixtureID")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_FIXTURE_ID", "fixture id must be a positive integer")
		return 0, false
	}
	return id, true
}
