// Package fixture builds per-day fixture views and per-fixture detail
// enrichment on top of the upstream provider, with TTL caching of every
// derived record kind.
package fixture

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/albapepper/matchodds/internal/cache"
	"github.com/albapepper/matchodds/internal/provider"
)

const dayKeyLayout = "2006-01-02"

// LeagueSummary is one league present in a day's fixture set, deduplicated by
// (id, season).
type LeagueSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  int    `json:"season"`
}

// Match is one entry of a day view. Listings are cheap: lineups are always
// unconfirmed and the injury list empty until Details is called for the
// fixture.
type Match struct {
	FixtureID        int               `json:"fixtureId"`
	LeagueID         int               `json:"leagueId"`
	LeagueName       string            `json:"leagueName"`
	Country          string            `json:"country"`
	Season           int               `json:"season"`
	Kickoff          time.Time         `json:"kickoff"`
	HomeTeamID       int               `json:"homeTeamId"`
	HomeTeamName     string            `json:"homeTeamName"`
	AwayTeamID       int               `json:"awayTeamId"`
	AwayTeamName     string            `json:"awayTeamName"`
	Injuries         []provider.Injury `json:"injuries"`
	LineupsConfirmed bool              `json:"lineupsConfirmed"`
}

// Aggregator builds day fixture lists, league summaries, and fixture details.
// Each Aggregator owns its caches, so tests get a fresh set per instance.
type Aggregator struct {
	src    provider.Source
	logger *slog.Logger

	days     *cache.Store[[]provider.Fixture]
	leagues  *cache.Store[[]LeagueSummary]
	injuries *cache.Store[[]provider.Injury]
	lineups  *cache.Store[bool]
}

// NewAggregator creates an Aggregator with fresh caches.
func NewAggregator(src provider.Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		src:      src,
		logger:   logger,
		days:     cache.NewStore[[]provider.Fixture](cache.TTLDayFixtures),
		leagues:  cache.NewStore[[]LeagueSummary](cache.TTLLeagues),
		injuries: cache.NewStore[[]provider.Injury](cache.TTLInjuries),
		lineups:  cache.NewStore[bool](cache.TTLLineups),
	}
}

// FixturesForDay returns the day's fixtures, cached for ten minutes.
//
// Providers disagree with us about where a day starts, so an exact-date query
// that comes back empty is retried with an inclusive ±1-day window. Upstream
// failures are absorbed: a failed call counts as zero results, and a failure
// on the fallback too yields an empty list rather than an error.
func (a *Aggregator) FixturesForDay(ctx context.Context, day time.Time) []provider.Fixture {
	key := day.Format(dayKeyLayout)
	if fixtures, ok := a.days.Get(key); ok {
		return fixtures
	}

	fixtures, err := a.src.Fixtures(ctx, provider.FixtureFilter{Date: day})
	if err != nil {
		a.logger.Warn("exact-date fixture fetch failed, trying window", "date", key, "error", err)
		fixtures = nil
	}

	if len(fixtures) == 0 {
		from := day.AddDate(0, 0, -1)
		to := day.AddDate(0, 0, 1)
		fixtures, err = a.src.Fixtures(ctx, provider.FixtureFilter{From: from, To: to})
		if err != nil {
			a.logger.Warn("date-window fixture fetch failed, serving empty day",
				"from", from.Format(dayKeyLayout), "to", to.Format(dayKeyLayout), "error", err)
			fixtures = nil
		}
	}

	if fixtures == nil {
		fixtures = []provider.Fixture{}
	}
	a.days.Set(key, fixtures)
	return fixtures
}

// LeaguesForDay returns the day's leagues, deduplicated by (id, season) with
// first-seen name and country, sorted by country then league name. Missing
// countries sort first as the empty string.
func (a *Aggregator) LeaguesForDay(ctx context.Context, day time.Time) []LeagueSummary {
	key := day.Format(dayKeyLayout)
	if leagues, ok := a.leagues.Get(key); ok {
		return leagues
	}

	type leagueKey struct {
		id     int
		season int
	}
	seen := make(map[leagueKey]struct{})
	leagues := []LeagueSummary{}
	for _, fx := range a.FixturesForDay(ctx, day) {
		k := leagueKey{id: fx.LeagueID, season: fx.Season}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		leagues = append(leagues, LeagueSummary{
			ID:      fx.LeagueID,
			Name:    fx.LeagueName,
			Country: fx.Country,
			Season:  fx.Season,
		})
	}

	sort.SliceStable(leagues, func(i, j int) bool {
		if leagues[i].Country != leagues[j].Country {
			return leagues[i].Country < leagues[j].Country
		}
		return leagues[i].Name < leagues[j].Name
	})

	a.leagues.Set(key, leagues)
	return leagues
}

// DayView maps the day's fixtures to match entries, optionally filtered to
// one league id (0 means all leagues).
func (a *Aggregator) DayView(ctx context.Context, day time.Time, leagueID int) []Match {
	fixtures := a.FixturesForDay(ctx, day)
	matches := make([]Match, 0, len(fixtures))
	for _, fx := range fixtures {
		if leagueID != 0 && fx.LeagueID != leagueID {
			continue
		}
		matches = append(matches, Match{
			FixtureID:        fx.ID,
			LeagueID:         fx.LeagueID,
			LeagueName:       fx.LeagueName,
			Country:          fx.Country,
			Season:           fx.Season,
			Kickoff:          fx.Kickoff,
			HomeTeamID:       fx.HomeTeamID,
			HomeTeamName:     fx.HomeTeamName,
			AwayTeamID:       fx.AwayTeamID,
			AwayTeamName:     fx.AwayTeamName,
			Injuries:         []provider.Injury{},
			LineupsConfirmed: false,
		})
	}
	return matches
}

// CacheStats reports per-kind cache statistics for the health endpoint.
func (a *Aggregator) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"day_fixtures": a.days.Stats(),
		"leagues":      a.leagues.Stats(),
		"injuries":     a.injuries.Stats(),
		"lineups":      a.lineups.Stats(),
	}
}
