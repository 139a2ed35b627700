package predict

import "math"

// maxGoals bounds the scoreline enumeration: goal counts 0..maxGoals per
// side, 121 combinations in total. Probability mass beyond ten goals a side
// is negligible for any realistic lambda.
const maxGoals = 10

// factorials[k] = k!, built once so the pmf never recomputes them.
var factorials = func() [maxGoals + 1]float64 {
	var f [maxGoals + 1]float64
	f[0] = 1
	for k := 1; k <= maxGoals; k++ {
		f[k] = f[k-1] * float64(k)
	}
	return f
}()

// pmf is the Poisson probability mass function P(k; lambda).
func pmf(k int, lambda float64) float64 {
	return math.Exp(-lambda) * math.Pow(lambda, float64(k)) / factorials[k]
}

// outcomeProbabilities enumerates independent Poisson scorelines for both
// sides and accumulates the joint probabilities into home-win, draw, and
// away-win buckets, normalized to sum to 1. A zero sum cannot occur with
// positive lambdas but is guarded; the guard returns an even split.
func outcomeProbabilities(lambdaHome, lambdaAway float64) (home, draw, away float64) {
	for h := 0; h <= maxGoals; h++ {
		ph := pmf(h, lambdaHome)
		for a := 0; a <= maxGoals; a++ {
			p := ph * pmf(a, lambdaAway)
			switch {
			case h > a:
				home += p
			case h == a:
				draw += p
			default:
				away += p
			}
		}
	}

	sum := home + draw + away
	if sum <= 0 {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	return home / sum, draw / sum, away / sum
}

// roundPercent converts a probability to a percentage rounded to one decimal.
func roundPercent(p float64) float64 {
	return math.Round(p*1000) / 10
}
