package predict

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactorialTable(t *testing.T) {
	assert.Equal(t, 1.0, factorials[0])
	assert.Equal(t, 120.0, factorials[5])
	assert.Equal(t, 3628800.0, factorials[10])
}

func TestPmfSumsToNearOne(t *testing.T) {
	for _, lambda := range []float64{0.1, 1.0, 2.5} {
		sum := 0.0
		for k := 0; k <= maxGoals; k++ {
			sum += pmf(k, lambda)
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "lambda=%v", lambda)
	}
}

func TestOutcomeProbabilitiesNormalized(t *testing.T) {
	home, draw, away := outcomeProbabilities(1.5, 1.0)
	assert.InDelta(t, 1.0, home+draw+away, 1e-9)
	assert.Greater(t, home, away, "stronger home lambda should favor home win")
}

func TestOutcomeProbabilitiesSymmetric(t *testing.T) {
	home, draw, away := outcomeProbabilities(1.1, 1.1)
	assert.InDelta(t, home, away, 1e-9)
	assert.Greater(t, draw, 0.0)
}

func TestOutcomeProbabilitiesZeroSumGuard(t *testing.T) {
	// Lambdas this large push every enumerated cell to zero mass.
	home, draw, away := outcomeProbabilities(800, 800)
	assert.Equal(t, 1.0/3, home)
	assert.Equal(t, 1.0/3, draw)
	assert.Equal(t, 1.0/3, away)
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 33.3, roundPercent(1.0/3))
	assert.Equal(t, 50.0, roundPercent(0.5))
	assert.Equal(t, 12.4, roundPercent(0.12345))
	assert.Equal(t, 0.0, roundPercent(0))
}

func TestRoundedPercentagesSumNearHundred(t *testing.T) {
	home, draw, away := outcomeProbabilities(1.8, 0.9)
	sum := roundPercent(home) + roundPercent(draw) + roundPercent(away)
	assert.True(t, math.Abs(sum-100) <= 0.3, "sum=%v", sum)
}
