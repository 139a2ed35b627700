package fixture

import (
	"context"
	"strconv"

	"github.com/albapepper/matchodds/internal/provider"
)

// Details is the injury and lineup enrichment for one fixture. Degraded is
// internal observability only: it reports that at least one upstream fetch
// failed and its field fell back to the empty default.
type Details struct {
	Injuries         []provider.Injury `json:"injuries"`
	LineupsConfirmed bool              `json:"lineupsConfirmed"`
	Degraded         bool              `json:"-"`
}

// Details returns cached injuries and lineup confirmation for a fixture,
// fetching whichever is missing. The two fetches are independent: a failure
// on one degrades only that field to its empty default ([] / false) and is
// cached separately from the other's success.
func (a *Aggregator) Details(ctx context.Context, fixtureID int) Details {
	key := strconv.Itoa(fixtureID)

	injuries, injOK := a.injuries.Get(key)
	confirmed, luOK := a.lineups.Get(key)
	if injOK && luOK {
		return Details{Injuries: injuries, LineupsConfirmed: confirmed}
	}

	var degraded bool

	if !injOK {
		fetched, err := a.src.Injuries(ctx, fixtureID)
		if err != nil {
			a.logger.Warn("injury fetch failed, serving empty list", "fixture_id", fixtureID, "error", err)
			fetched = nil
			degraded = true
		}
		if fetched == nil {
			fetched = []provider.Injury{}
		}
		injuries = fetched
		a.injuries.Set(key, injuries)
	}

	if !luOK {
		lineups, err := a.src.Lineups(ctx, fixtureID)
		if err != nil {
			a.logger.Warn("lineup fetch failed, treating as unconfirmed", "fixture_id", fixtureID, "error", err)
			lineups = nil
			degraded = true
		}
		confirmed = len(lineups) > 0
		a.lineups.Set(key, confirmed)
	}

	return Details{Injuries: injuries, LineupsConfirmed: confirmed, Degraded: degraded}
}
