package apifootball

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchodds/internal/provider"
)

// testClient points a Client at a local test server.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", 6000, nil)
	c.baseURL = srv.URL
	return c
}

func TestFixturesByDate(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "2024-05-01", r.URL.Query().Get("date"))
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		w.Write([]byte(`{
			"errors": [],
			"results": 1,
			"response": [{
				"fixture": {"id": 1001, "date": "2024-05-01T19:00:00+00:00"},
				"league": {"id": 39, "name": "Premier League", "country": "England", "season": 2023},
				"teams": {
					"home": {"id": 10, "name": "Home FC"},
					"away": {"id": 20, "name": "Away FC"}
				}
			}]
		}`))
	})

	fixtures, err := c.Fixtures(context.Background(), provider.FixtureFilter{
		Date: mustDate(t, "2024-05-01"),
	})
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	fx := fixtures[0]
	assert.Equal(t, 1001, fx.ID)
	assert.Equal(t, 39, fx.LeagueID)
	assert.Equal(t, "England", fx.Country)
	assert.Equal(t, 2023, fx.Season)
	assert.Equal(t, "Home FC", fx.HomeTeamName)
	assert.Equal(t, 20, fx.AwayTeamID)
	assert.Equal(t, 19, fx.Kickoff.UTC().Hour())
}

func TestFixturesByRange(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-04-30", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-05-02", r.URL.Query().Get("to"))
		assert.Empty(t, r.URL.Query().Get("date"))
		w.Write([]byte(`{"errors": [], "results": 0, "response": []}`))
	})

	fixtures, err := c.Fixtures(context.Background(), provider.FixtureFilter{
		From: mustDate(t, "2024-04-30"),
		To:   mustDate(t, "2024-05-02"),
	})
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestFixturesByID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1001", r.URL.Query().Get("id"))
		w.Write([]byte(`{"errors": [], "results": 0, "response": []}`))
	})

	fixtures, err := c.Fixtures(context.Background(), provider.FixtureFilter{ID: 1001})
	require.NoError(t, err)
	assert.NotNil(t, fixtures)
	assert.Empty(t, fixtures, "unknown id is empty, not an error")
}

func TestFixturesEmptyFilter(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.Fixtures(context.Background(), provider.FixtureFilter{})
	assert.Error(t, err)
}

func TestFixturesEnvelopeError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": {"token": "Error/Missing application key."}, "results": 0, "response": []}`))
	})

	_, err := c.Fixtures(context.Background(), provider.FixtureFilter{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application key")
}

func TestFixturesHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.Fixtures(context.Background(), provider.FixtureFilter{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestTeamStatistics(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/statistics", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("team"))
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "2023", r.URL.Query().Get("season"))
		w.Write([]byte(`{
			"errors": [],
			"results": 1,
			"response": {
				"goals": {
					"for": {"average": {"home": "2.1", "away": "1.4"}},
					"against": {"average": {"home": "0.8", "away": ""}}
				}
			}
		}`))
	})

	stats, err := c.TeamStatistics(context.Background(), 10, 39, 2023)
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, 10, stats.TeamID)
	require.NotNil(t, stats.GoalsForHome)
	assert.Equal(t, 2.1, *stats.GoalsForHome)
	require.NotNil(t, stats.GoalsForAway)
	assert.Equal(t, 1.4, *stats.GoalsForAway)
	require.NotNil(t, stats.GoalsAgainstHome)
	assert.Equal(t, 0.8, *stats.GoalsAgainstHome)
	assert.Nil(t, stats.GoalsAgainstAway, "empty average string means absent")
}

func TestTeamStatisticsNoData(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors": [], "results": 0, "response": []}`))
	})

	stats, err := c.TeamStatistics(context.Background(), 10, 39, 2023)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestInjuries(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/injuries", r.URL.Path)
		assert.Equal(t, "1001", r.URL.Query().Get("fixture"))
		w.Write([]byte(`{
			"errors": [],
			"results": 1,
			"response": [{
				"player": {"id": 5, "name": "A. Player", "reason": "Hamstring Injury"},
				"team": {"id": 10}
			}]
		}`))
	})

	injuries, err := c.Injuries(context.Background(), 1001)
	require.NoError(t, err)
	require.Len(t, injuries, 1)
	assert.Equal(t, provider.Injury{TeamID: 10, PlayerID: 5, PlayerName: "A. Player", Reason: "Hamstring Injury"}, injuries[0])
}

func TestLineups(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures/lineups", r.URL.Path)
		w.Write([]byte(`{
			"errors": [],
			"results": 2,
			"response": [
				{"team": {"id": 10, "name": "Home FC"}, "formation": "4-3-3"},
				{"team": {"id": 20, "name": "Away FC"}, "formation": "4-4-2"}
			]
		}`))
	})

	lineups, err := c.Lineups(context.Background(), 1001)
	require.NoError(t, err)
	require.Len(t, lineups, 2)
	assert.Equal(t, "4-3-3", lineups[0].Formation)
	assert.Equal(t, "Away FC", lineups[1].TeamName)
}

func TestParseAverage(t *testing.T) {
	v := parseAverage("1.5")
	require.NotNil(t, v)
	assert.Equal(t, 1.5, *v)

	assert.Nil(t, parseAverage(""))
	assert.Nil(t, parseAverage("not-a-number"))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := time.Parse(dateLayout, s)
	require.NoError(t, err)
	return day
}
