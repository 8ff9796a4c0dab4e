package poseidon

import (
	"fmt"
	"math"
)

// CalcRoundNumbers selects the minimal-cost round counts for the given
// instance shape by brute force, iterating over all reasonable values for the
// full and partial round counts and keeping the pair that satisfies the
// security inequalities while minimizing the number of S-boxes,
// cost = t·full + partial. Ties are broken toward the smaller full count.
//
// primeBitLen is the unrounded log2 of the modulus; the fractional part
// matters to the bounds before they are ceiled. With securityMargin set, a
// passing pair is widened by two full rounds and 7.5% more partial rounds
// before its cost is taken.
//
// It returns the full, partial and half-full round counts. Alpha must be
// positive or -1, anything else fails with ErrInvalidParameter.
func CalcRoundNumbers(primeBitLen float64, securityLevel, t, alpha int, securityMargin bool) (fullRounds, partialRounds, halfFullRounds int, err error) {
	if alpha <= 0 && alpha != -1 {
		return 0, 0, 0, fmt.Errorf("%w: alpha %d (want alpha > 0 or alpha = -1)", ErrInvalidParameter, alpha)
	}

	minCost := math.Inf(1)
	minCostFull := 0

	for rpCand := 1; rpCand < 500; rpCand++ {
		rp := rpCand
		for rf := 4; rf < 100; rf += 2 {
			if !securityCheck(primeBitLen, t, rf, rp, alpha, securityLevel) {
				continue
			}
			rfOK := rf
			if securityMargin {
				rfOK += 2
				rp = int(math.Ceil(float64(rp) * 1.075))
			}
			cost := float64(t*rfOK + rp)
			if cost < minCost || (cost == minCost && rfOK < minCostFull) {
				fullRounds = rfOK
				partialRounds = rp
				minCost = cost
				minCostFull = rfOK
			}
		}
	}

	return fullRounds, partialRounds, fullRounds / 2, nil
}

// securityCheck evaluates the closed-form bounds against statistical,
// interpolation and Gröbner-basis attacks (Eq. 2-6 of the Poseidon paper) for
// one candidate pair.
func securityCheck(primeBitLen float64, t, fullRounds, partialRounds, alpha, securityLevel int) bool {
	c := 2.0
	if alpha > 0 {
		c = math.Log2(float64(alpha) - 1)
	}
	// Minimum full rounds to prevent statistical attacks.
	fullStat := 10.0
	if float64(securityLevel) <= (math.Floor(primeBitLen)-c)*float64(t+1) {
		fullStat = 6.0
	}

	m := float64(securityLevel)
	rp := float64(partialRounds)

	if alpha > 0 {
		logAlpha2 := math.Log(2) / math.Log(float64(alpha))

		// Interpolation attack, with full = R - partial + 1.
		fullInter := math.Ceil(logAlpha2*math.Min(m, math.Ceil(primeBitLen))) +
			math.Ceil(math.Log(float64(t))/math.Log(float64(alpha))) - rp + 1

		// First Gröbner limitation on the number of total rounds.
		fullGB1 := logAlpha2*math.Min(m/3, primeBitLen/2) - rp + 1

		// Second Gröbner limitation on the number of total rounds.
		fullGB2 := math.Min(logAlpha2*m/float64(t+1), logAlpha2*primeBitLen/2) - rp + float64(t) - 1

		required := math.Max(math.Max(math.Ceil(fullStat), math.Ceil(fullInter)),
			math.Max(math.Ceil(fullGB1), math.Ceil(fullGB2)))
		return float64(fullRounds) >= required
	}

	// alpha == -1: the interpolation and Gröbner bounds constrain the partial
	// rounds instead, with partial = R - full + 1.
	log2T := math.Log2(float64(t))
	rf := float64(fullRounds)

	partialInter := math.Ceil(0.5*math.Min(m, math.Ceil(primeBitLen))) +
		math.Ceil(log2T) - math.Floor(rf*log2T) + 1

	partialGB2 := math.Ceil(0.5*math.Min(math.Ceil(m/float64(t+1)), math.Ceil(0.5*primeBitLen))) +
		math.Ceil(log2T) + float64(t) - 1 - math.Floor(rf*log2T)

	requiredPartial := math.Max(math.Ceil(partialInter), math.Ceil(partialGB2))
	return rf >= math.Ceil(fullStat) && float64(partialRounds) >= requiredPartial
}
