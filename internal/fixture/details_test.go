package fixture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/matchodds/internal/provider"
)

func TestDetailsFetchesAndCaches(t *testing.T) {
	src := &fakeSource{
		injuriesFn: func(int) ([]provider.Injury, error) {
			return []provider.Injury{{TeamID: 10, PlayerID: 1, PlayerName: "A. Player", Reason: "Hamstring"}}, nil
		},
		lineupsFn: func(int) ([]provider.Lineup, error) {
			return []provider.Lineup{
				{TeamID: 10, TeamName: "Home FC", Formation: "4-3-3"},
				{TeamID: 20, TeamName: "Away FC", Formation: "4-4-2"},
			}, nil
		},
	}
	agg := NewAggregator(src, nil)

	d := agg.Details(context.Background(), 101)
	require.Len(t, d.Injuries, 1)
	assert.True(t, d.LineupsConfirmed)
	assert.False(t, d.Degraded)

	agg.Details(context.Background(), 101)
	assert.Equal(t, 1, src.injuryCalls)
	assert.Equal(t, 1, src.lineupCalls)
}

func TestDetailsNoLineupsMeansUnconfirmed(t *testing.T) {
	src := &fakeSource{
		lineupsFn: func(int) ([]provider.Lineup, error) { return []provider.Lineup{}, nil },
	}
	agg := NewAggregator(src, nil)

	d := agg.Details(context.Background(), 101)
	assert.False(t, d.LineupsConfirmed)
	assert.False(t, d.Degraded)
}

func TestDetailsDegradesInjuriesIndependently(t *testing.T) {
	src := &fakeSource{
		injuriesFn: func(int) ([]provider.Injury, error) { return nil, errors.New("timeout") },
		lineupsFn: func(int) ([]provider.Lineup, error) {
			return []provider.Lineup{{TeamID: 10}}, nil
		},
	}
	agg := NewAggregator(src, nil)

	d := agg.Details(context.Background(), 101)
	assert.NotNil(t, d.Injuries)
	assert.Empty(t, d.Injuries)
	assert.True(t, d.LineupsConfirmed, "lineup success must survive injury failure")
	assert.True(t, d.Degraded)

	// The degraded default is cached; no retry within the TTL.
	d = agg.Details(context.Background(), 101)
	assert.Equal(t, 1, src.injuryCalls)
	assert.False(t, d.Degraded, "a cache hit is not degraded")
}

func TestDetailsDegradesLineupsIndependently(t *testing.T) {
	src := &fakeSource{
		injuriesFn: func(int) ([]provider.Injury, error) {
			return []provider.Injury{{TeamID: 20, PlayerID: 2}}, nil
		},
		lineupsFn: func(int) ([]provider.Lineup, error) { return nil, errors.New("timeout") },
	}
	agg := NewAggregator(src, nil)

	d := agg.Details(context.Background(), 101)
	assert.Len(t, d.Injuries, 1)
	assert.False(t, d.LineupsConfirmed)
	assert.True(t, d.Degraded)
}

func TestDetailsPerFixtureKeys(t *testing.T) {
	src := &fakeSource{
		injuriesFn: func(fixtureID int) ([]provider.Injury, error) {
			if fixtureID == 101 {
				return []provider.Injury{{TeamID: 10, PlayerID: 1}}, nil
			}
			return []provider.Injury{}, nil
		},
	}
	agg := NewAggregator(src, nil)

	assert.Len(t, agg.Details(context.Background(), 101).Injuries, 1)
	assert.Empty(t, agg.Details(context.Background(), 102).Injuries)
	assert.Equal(t, 2, src.injuryCalls)
}
