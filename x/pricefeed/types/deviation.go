package types

import (
	"cosmossdk.io/math"
)

var bpsDenominator = math.NewInt(BpsDenominator)

// DeviationBps returns the relative change between two consecutive accepted
// values in truncating integer basis points, comparing absolute magnitudes.
//
// The second return value reports whether the two values are comparable at
// all. A sign change between old and new, or a nonzero value replacing a
// stored zero, has no meaningful relative deviation and must be treated as
// exceeding any configured bound.
func DeviationBps(oldValue, newValue math.Int) (math.Int, bool) {
	if oldValue.IsZero() {
		if newValue.IsZero() {
			return math.ZeroInt(), true
		}
		return math.ZeroInt(), false
	}

	if !newValue.IsZero() && oldValue.IsNegative() != newValue.IsNegative() {
		return math.ZeroInt(), false
	}

	oldAbs := oldValue.Abs()
	diff := newValue.Abs().Sub(oldAbs).Abs()
	return diff.Mul(bpsDenominator).Quo(oldAbs), true
}

// ExceedsDeviation checks a candidate value against the stored value under
// the configured bound. Returns the computed deviation for error reporting.
func ExceedsDeviation(oldValue, newValue math.Int, maxDeviationBps uint64) (math.Int, bool) {
	deviation, ok := DeviationBps(oldValue, newValue)
	if !ok {
		return deviation, true
	}
	return deviation, deviation.GT(math.NewIntFromUint64(maxDeviationBps))
}
