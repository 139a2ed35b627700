package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/albapepper/matchodds/internal/provider"
)

const dateLayout = "2006-01-02"

var _ provider.Source = (*Client)(nil)

// --------------------------------------------------------------------------
// Fixtures
// --------------------------------------------------------------------------

type rawFixture struct {
	Fixture struct {
		ID   int       `json:"id"`
		Date time.Time `json:"date"`
	} `json:"fixture"`
	League struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Country string `json:"country"`
		Season  int    `json:"season"`
	} `json:"league"`
	Teams struct {
		Home struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
}

// Fixtures lists fixtures for a date, an inclusive date range, or a single id.
func (c *Client) Fixtures(ctx context.Context, filter provider.FixtureFilter) ([]provider.Fixture, error) {
	params := url.Values{}
	switch {
	case filter.ID != 0:
		params.Set("id", strconv.Itoa(filter.ID))
	case !filter.From.IsZero() || !filter.To.IsZero():
		params.Set("from", filter.From.Format(dateLayout))
		params.Set("to", filter.To.Format(dateLayout))
	case !filter.Date.IsZero():
		params.Set("date", filter.Date.Format(dateLayout))
	default:
		return nil, fmt.Errorf("fixture filter must set a date, a range, or an id")
	}

	resp, err := c.get(ctx, "/fixtures", params)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures: %w", err)
	}

	var raw []rawFixture
	if err := json.Unmarshal(resp.Response, &raw); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	fixtures := make([]provider.Fixture, 0, len(raw))
	for _, r := range raw {
		fixtures = append(fixtures, provider.Fixture{
			ID:           r.Fixture.ID,
			LeagueID:     r.League.ID,
			LeagueName:   r.League.Name,
			Country:      r.League.Country,
			Season:       r.League.Season,
			HomeTeamID:   r.Teams.Home.ID,
			HomeTeamName: r.Teams.Home.Name,
			AwayTeamID:   r.Teams.Away.ID,
			AwayTeamName: r.Teams.Away.Name,
			Kickoff:      r.Fixture.Date,
		})
	}
	return fixtures, nil
}

// --------------------------------------------------------------------------
// Team statistics
// --------------------------------------------------------------------------

// API-Football reports per-venue goal averages as strings ("1.5").
type rawTeamStats struct {
	Goals struct {
		For struct {
			Average struct {
				Home string `json:"home"`
				Away string `json:"away"`
			} `json:"average"`
		} `json:"for"`
		Against struct {
			Average struct {
				Home string `json:"home"`
				Away string `json:"away"`
			} `json:"average"`
		} `json:"against"`
	} `json:"goals"`
}

// TeamStatistics fetches one team's season statistics for a league. Returns
// nil when the provider has no data for the triple.
func (c *Client) TeamStatistics(ctx context.Context, teamID, leagueID, season int) (*provider.TeamStats, error) {
	resp, err := c.get(ctx, "/teams/statistics", url.Values{
		"team":   {strconv.Itoa(teamID)},
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch team statistics: %w", err)
	}

	// Unlike list endpoints, /teams/statistics returns a single object.
	if resp.Results == 0 || len(resp.Response) == 0 || string(resp.Response) == "null" || string(resp.Response) == "[]" {
		return nil, nil
	}

	var raw rawTeamStats
	if err := json.Unmarshal(resp.Response, &raw); err != nil {
		return nil, fmt.Errorf("decode team statistics: %w", err)
	}

	return &provider.TeamStats{
		TeamID:           teamID,
		LeagueID:         leagueID,
		Season:           season,
		GoalsForHome:     parseAverage(raw.Goals.For.Average.Home),
		GoalsForAway:     parseAverage(raw.Goals.For.Average.Away),
		GoalsAgainstHome: parseAverage(raw.Goals.Against.Average.Home),
		GoalsAgainstAway: parseAverage(raw.Goals.Against.Average.Away),
	}, nil
}

// parseAverage converts a string average to a float pointer, nil when the
// field is absent or malformed.
func parseAverage(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// --------------------------------------------------------------------------
// Injuries
// --------------------------------------------------------------------------

type rawInjury struct {
	Player struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Reason string `json:"reason"`
	} `json:"player"`
	Team struct {
		ID int `json:"id"`
	} `json:"team"`
}

// Injuries lists injury records for a fixture.
func (c *Client) Injuries(ctx context.Context, fixtureID int) ([]provider.Injury, error) {
	resp, err := c.get(ctx, "/injuries", url.Values{"fixture": {strconv.Itoa(fixtureID)}})
	if err != nil {
		return nil, fmt.Errorf("fetch injuries: %w", err)
	}

	var raw []rawInjury
	if err := json.Unmarshal(resp.Response, &raw); err != nil {
		return nil, fmt.Errorf("decode injuries: %w", err)
	}

	injuries := make([]provider.Injury, 0, len(raw))
	for _, r := range raw {
		injuries = append(injuries, provider.Injury{
			TeamID:     r.Team.ID,
			PlayerID:   r.Player.ID,
			PlayerName: r.Player.Name,
			Reason:     r.Player.Reason,
		})
	}
	return injuries, nil
}

// --------------------------------------------------------------------------
// Lineups
// --------------------------------------------------------------------------

type rawLineup struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Formation string `json:"formation"`
}

// Lineups lists confirmed lineups for a fixture. An empty list means lineups
// have not been announced yet.
func (c *Client) Lineups(ctx context.Context, fixtureID int) ([]provider.Lineup, error) {
	resp, err := c.get(ctx, "/fixtures/lineups", url.Values{"fixture": {strconv.Itoa(fixtureID)}})
	if err != nil {
		return nil, fmt.Errorf("fetch lineups: %w", err)
	}

	var raw []rawLineup
	if err := json.Unmarshal(resp.Response, &raw); err != nil {
		return nil, fmt.Errorf("decode lineups: %w", err)
	}

	lineups := make([]provider.Lineup, 0, len(raw))
	for _, r := range raw {
		lineups = append(lineups, provider.Lineup{
			TeamID:    r.Team.ID,
			TeamName:  r.Team.Name,
			Formation: r.Formation,
		})
	}
	return lineups, nil
}
