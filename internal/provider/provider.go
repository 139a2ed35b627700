// Package provider defines the canonical upstream data types and the Source
// interface the aggregation and prediction layers depend on. Concrete
// implementations live in subpackages (apifootball).
package provider

import (
	"context"
	"time"
)

// FixtureFilter selects fixtures by exactly one of: a single calendar date,
// an inclusive date range, or a fixture id.
type FixtureFilter struct {
	Date time.Time
	From time.Time
	To   time.Time
	ID   int
}

// Fixture is a normalized fixture record. Immutable once built from upstream
// data; its lifetime is bounded by the cache entry that holds it.
type Fixture struct {
	ID           int       `json:"id"`
	LeagueID     int       `json:"leagueId"`
	LeagueName   string    `json:"leagueName"`
	Country      string    `json:"country"`
	Season       int       `json:"season"`
	HomeTeamID   int       `json:"homeTeamId"`
	HomeTeamName string    `json:"homeTeamName"`
	AwayTeamID   int       `json:"awayTeamId"`
	AwayTeamName string    `json:"awayTeamName"`
	Kickoff      time.Time `json:"kickoff"`
}

// TeamStats holds a team's average goals for/against split by venue, for one
// (team, league, season) triple. Averages the provider did not report are nil;
// the prediction engine substitutes league-average fallbacks.
type TeamStats struct {
	TeamID           int      `json:"teamId"`
	LeagueID         int      `json:"leagueId"`
	Season           int      `json:"season"`
	GoalsForHome     *float64 `json:"goalsForHome"`
	GoalsForAway     *float64 `json:"goalsForAway"`
	GoalsAgainstHome *float64 `json:"goalsAgainstHome"`
	GoalsAgainstAway *float64 `json:"goalsAgainstAway"`
}

// Injury is one unavailable player for a fixture, tagged with the team it
// affects.
type Injury struct {
	TeamID     int    `json:"teamId"`
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
	Reason     string `json:"reason"`
}

// Lineup is a confirmed lineup for one side of a fixture. Only presence
// matters to the core; formation is carried for display.
type Lineup struct {
	TeamID    int    `json:"teamId"`
	TeamName  string `json:"teamName"`
	Formation string `json:"formation"`
}

// Source is the upstream provider contract. Every call either succeeds,
// fails with an error, or returns an empty result — callers decide whether a
// failure degrades to a default or surfaces.
type Source interface {
	// Fixtures lists fixtures matching the filter. A lookup by id that
	// matches nothing returns an empty slice, not an error.
	Fixtures(ctx context.Context, filter FixtureFilter) ([]Fixture, error)

	// TeamStatistics returns one statistics snapshot, or nil when the
	// provider has no data for the triple.
	TeamStatistics(ctx context.Context, teamID, leagueID, season int) (*TeamStats, error)

	// Injuries lists injury records for a fixture.
	Injuries(ctx context.Context, fixtureID int) ([]Injury, error)

	// Lineups lists confirmed lineups for a fixture.
	Lineups(ctx context.Context, fixtureID int) ([]Lineup, error)
}
