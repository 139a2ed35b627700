package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchodds/internal/config"
	"github.com/albapepper/matchodds/internal/fixture"
	"github.com/albapepper/matchodds/internal/predict"
	"github.com/albapepper/matchodds/internal/provider"
)

// stubSource serves one fixed fixture for every date and id lookup.
type stubSource struct{}

func (stubSource) Fixtures(_ context.Context, filter provider.FixtureFilter) ([]provider.Fixture, error) {
	fx := provider.Fixture{
		ID:           1001,
		LeagueID:     39,
		LeagueName:   "Premier League",
		Country:      "England",
		Season:       2023,
		HomeTeamID:   10,
		HomeTeamName: "Home FC",
		AwayTeamID:   20,
		AwayTeamName: "Away FC",
		Kickoff:      time.Date(2024, 5, 1, 19, 0, 0, 0, time.UTC),
	}
	if filter.ID != 0 && filter.ID != fx.ID {
		return []provider.Fixture{}, nil
	}
	return []provider.Fixture{fx}, nil
}

func (stubSource) TeamStatistics(_ context.Context, _, _, _ int) (*provider.TeamStats, error) {
	return nil, nil
}

func (stubSource) Injuries(_ context.Context, _ int) ([]provider.Injury, error) {
	return []provider.Injury{{TeamID: 10, PlayerID: 1, PlayerName: "A. Player", Reason: "Knock"}}, nil
}

func (stubSource) Lineups(_ context.Context, _ int) ([]provider.Lineup, error) {
	return []provider.Lineup{{TeamID: 10, Formation: "4-3-3"}}, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Environment:      "test",
		CORSAllowOrigins: []string{"*"},
		RateLimitEnabled: false,
	}
	src := stubSource{}
	agg := fixture.NewAggregator(src, nil)
	engine := predict.NewEngine(src, nil)
	return NewRouter(agg, engine, nil, cfg, nil)
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	rec = get(t, router, "/health/cache")
	assert.Equal(t, http.StatusOK, rec.Code)
	cacheStats := decode(t, rec)["cache"].(map[string]interface{})
	for _, kind := range []string{"day_fixtures", "leagues", "injuries", "lineups", "team_stats"} {
		assert.Contains(t, cacheStats, kind)
	}

	rec = get(t, router, "/health/db")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "disabled", decode(t, rec)["database"])
}

func TestGetLeagues(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/api/v1/leagues?date=2024-05-01")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "2024-05-01", body["date"])
	assert.Equal(t, float64(1), body["count"])
}

func TestGetLeaguesInvalidDate(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/api/v1/leagues?date=nonsense")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_DATE", errBody["code"])
}

func TestGetMatches(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/api/v1/matches?date=2024-05-01")
	require.Equal(t, http.StatusOK, rec.Code)
	matches := decode(t, rec)["matches"].([]interface{})
	require.Len(t, matches, 1)

	rec = get(t, router, "/api/v1/matches?date=2024-05-01&league=140")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["matches"])

	rec = get(t, router, "/api/v1/matches?league=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFixtureDetails(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/api/v1/fixtures/1001/details")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["lineupsConfirmed"])
	assert.Len(t, body["injuries"], 1)

	rec = get(t, router, "/api/v1/fixtures/abc/details")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(t, router, "/api/v1/fixtures/-5/details")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredictEndpoint(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/api/v1/predict/1001")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1001), body["fixtureId"])
	assert.Contains(t, []interface{}{"HOME", "DRAW", "AWAY"}, body["pick"])

	probs := body["probabilities"].(map[string]interface{})
	sum := probs["home"].(float64) + probs["draw"].(float64) + probs["away"].(float64)
	assert.InDelta(t, 100, sum, 0.3)
}

func TestPredictUnknownFixture(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/api/v1/predict/9999")
	require.Equal(t, http.StatusNotFound, rec.Code)
	errBody := decode(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "FIXTURE_NOT_FOUND", errBody["code"])
}

func TestTimingHeader(t *testing.T) {
	router := testRouter(t)

	rec := get(t, router, "/health")
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))
}
