// Package predict derives match outcome probabilities from cached team
// scoring statistics and injury counts using an independent bivariate
// Poisson scoreline enumeration.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/albapepper/matchodds/internal/cache"
	"github.com/albapepper/matchodds/internal/provider"
)

// ErrFixtureNotFound reports that the requested fixture id does not exist
// upstream. It is the only leaf condition Predict surfaces instead of
// absorbing with a default.
var ErrFixtureNotFound = errors.New("fixture not found")

// League-average fallbacks for statistic fields the provider did not report,
// in the order the lambda formulas consume them.
const (
	fallbackGoalsForHome     = 1.2
	fallbackGoalsAgainstAway = 1.0
	fallbackGoalsForAway     = 1.1
	fallbackGoalsAgainstHome = 1.1
)

// impactPerInjury is the expected-goals dampening per injured player.
// Deliberately uncapped: the lambda floor below keeps the result sane even
// when a long injury list pushes the impact past 1.
const impactPerInjury = 0.08

// lambdaFloor is the minimum expected-goals parameter after injury
// adjustment.
const lambdaFloor = 0.1

// Outcome is the predicted match result.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeDraw Outcome = "DRAW"
	OutcomeAway Outcome = "AWAY"
)

// Probabilities are outcome percentages rounded to one decimal, summing to
// ~100.
type Probabilities struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// InjuryImpact is the per-side dampening scalar derived from injury counts.
type InjuryImpact struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Result is a fresh prediction for one fixture. Results are computed per
// request and never cached; only their statistic and injury inputs are.
type Result struct {
	FixtureID        int           `json:"fixtureId"`
	LeagueID         int           `json:"leagueId"`
	Season           int           `json:"season"`
	Probabilities    Probabilities `json:"probabilities"`
	LambdaHome       float64       `json:"lambdaHome"`
	LambdaAway       float64       `json:"lambdaAway"`
	InjuryImpact     InjuryImpact  `json:"injuryImpact"`
	Pick             Outcome       `json:"pick"`
	DegradedInjuries bool          `json:"-"`
}

// Engine computes match outcome predictions. It owns the team statistics
// cache (24 h TTL, keyed by team/league/season) and deduplicates concurrent
// statistics fetches for the same key.
type Engine struct {
	src    provider.Source
	logger *slog.Logger
	stats  *cache.Store[*provider.TeamStats]
	group  singleflight.Group
}

// NewEngine creates an Engine with a fresh statistics cache.
func NewEngine(src provider.Source, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		src:    src,
		logger: logger,
		stats:  cache.NewStore[*provider.TeamStats](cache.TTLTeamStats),
	}
}

// Predict resolves the fixture by id and derives outcome probabilities from
// both teams' scoring statistics, dampened by injury counts.
//
// Failure semantics: statistics and injury fetch failures are absorbed with
// defaults; only an unknown fixture id or a failure of the fixture lookup
// itself surfaces as an error.
func (e *Engine) Predict(ctx context.Context, fixtureID int) (*Result, error) {
	// Single-fixture lookups bypass the day cache.
	fixtures, err := e.src.Fixtures(ctx, provider.FixtureFilter{ID: fixtureID})
	if err != nil {
		return nil, fmt.Errorf("lookup fixture %d: %w", fixtureID, err)
	}
	if len(fixtures) == 0 {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, ErrFixtureNotFound)
	}
	fx := fixtures[0]

	homeStats := e.teamStats(ctx, fx.HomeTeamID, fx.LeagueID, fx.Season)
	awayStats := e.teamStats(ctx, fx.AwayTeamID, fx.LeagueID, fx.Season)

	homeGF, homeGA := fallbackGoalsForHome, fallbackGoalsAgainstHome
	if homeStats != nil {
		homeGF = orDefault(homeStats.GoalsForHome, fallbackGoalsForHome)
		homeGA = orDefault(homeStats.GoalsAgainstHome, fallbackGoalsAgainstHome)
	}
	awayGF, awayGA := fallbackGoalsForAway, fallbackGoalsAgainstAway
	if awayStats != nil {
		awayGF = orDefault(awayStats.GoalsForAway, fallbackGoalsForAway)
		awayGA = orDefault(awayStats.GoalsAgainstAway, fallbackGoalsAgainstAway)
	}

	lambdaHome := (homeGF + awayGA) / 2
	lambdaAway := (awayGF + homeGA) / 2

	impact, degraded := e.injuryImpact(ctx, fx)
	lambdaHome = adjustLambda(lambdaHome, impact.Home)
	lambdaAway = adjustLambda(lambdaAway, impact.Away)

	home, draw, away := outcomeProbabilities(lambdaHome, lambdaAway)
	probs := Probabilities{
		Home: roundPercent(home),
		Draw: roundPercent(draw),
		Away: roundPercent(away),
	}

	return &Result{
		FixtureID:        fx.ID,
		LeagueID:         fx.LeagueID,
		Season:           fx.Season,
		Probabilities:    probs,
		LambdaHome:       lambdaHome,
		LambdaAway:       lambdaAway,
		InjuryImpact:     impact,
		Pick:             pickOutcome(probs),
		DegradedInjuries: degraded,
	}, nil
}

// teamStats returns the cached statistics snapshot for a team, fetching on a
// miss. Concurrent fetches for the same key are collapsed. A fetch failure is
// absorbed as an absent snapshot and left uncached so the next request
// retries; a successful "no data" answer is cached as nil for the full TTL.
func (e *Engine) teamStats(ctx context.Context, teamID, leagueID, season int) *provider.TeamStats {
	key := fmt.Sprintf("%d:%d:%d", teamID, leagueID, season)
	if stats, ok := e.stats.Get(key); ok {
		return stats
	}

	v, err, _ := e.group.Do(key, func() (any, error) {
		if stats, ok := e.stats.Get(key); ok {
			return stats, nil
		}
		stats, err := e.src.TeamStatistics(ctx, teamID, leagueID, season)
		if err != nil {
			return nil, err
		}
		e.stats.Set(key, stats)
		return stats, nil
	})
	if err != nil {
		e.logger.Warn("team statistics fetch failed, using league averages",
			"team_id", teamID, "league_id", leagueID, "season", season, "error", err)
		return nil
	}
	return v.(*provider.TeamStats)
}

// injuryImpact fetches the fixture's injuries best-effort and converts the
// per-side record counts into dampening scalars. A fetch failure yields zero
// impact for both sides and sets the degraded flag.
func (e *Engine) injuryImpact(ctx context.Context, fx provider.Fixture) (InjuryImpact, bool) {
	injuries, err := e.src.Injuries(ctx, fx.ID)
	if err != nil {
		e.logger.Warn("injury fetch failed, predicting with unadjusted lambdas",
			"fixture_id", fx.ID, "error", err)
		return InjuryImpact{}, true
	}

	var home, away int
	for _, inj := range injuries {
		switch inj.TeamID {
		case fx.HomeTeamID:
			home++
		case fx.AwayTeamID:
			away++
		}
	}
	return InjuryImpact{
		Home: float64(home) * impactPerInjury,
		Away: float64(away) * impactPerInjury,
	}, false
}

// adjustLambda applies the injury impact multiplicatively, floored so the
// Poisson parameter never reaches zero or below.
func adjustLambda(lambda, impact float64) float64 {
	adjusted := lambda * (1 - impact)
	if adjusted < lambdaFloor {
		return lambdaFloor
	}
	return adjusted
}

// pickOutcome selects the most probable outcome. The overwrite order is
// deliberate: draw is the default, home overwrites on reaching the maximum,
// away overwrites last — so a home/away tie resolves to AWAY.
func pickOutcome(p Probabilities) Outcome {
	max := p.Home
	if p.Draw > max {
		max = p.Draw
	}
	if p.Away > max {
		max = p.Away
	}

	pick := OutcomeDraw
	if p.Home == max {
		pick = OutcomeHome
	}
	if p.Away == max {
		pick = OutcomeAway
	}
	return pick
}

// orDefault substitutes the league-average fallback for a statistic field
// the provider did not report.
func orDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// CacheStats reports the statistics cache state for the health endpoint.
func (e *Engine) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{"team_stats": e.stats.Stats()}
}
