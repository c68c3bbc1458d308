package skymodel

import (
	"math"

	"github.com/Faultbox/skyground/pkg/half"
)

// snapEpsilon is the distance within which a parameter snaps to a grid value.
const snapEpsilon = 1e-6

// MapParameter maps value onto a fractional index into the ascending axis.
// Values below the axis map to 0 and values above it to len(axis)-1.
func MapParameter(value float64, axis []float64) float64 {
	last := len(axis) - 1
	switch {
	case last < 0:
		return 0
	case value < axis[0]:
		return 0
	case value > axis[last]:
		return float64(last)
	}

	for v, val := range axis {
		if math.Abs(val-value) < snapEpsilon {
			return float64(v)
		}
		if value < val {
			return float64(v) - (val-value)/(val-axis[v-1])
		}
	}
	// NaN compares false everywhere.
	return 0
}

// FindSegment returns the index of the piecewise-linear segment of breaks
// containing x: the first i with breaks[i+1] >= x. Values past the last
// breakpoint use the last segment, len(breaks)-2, so evaluation extrapolates
// it linearly.
func FindSegment(x float64, breaks []float64) int {
	last := len(breaks) - 2
	for i := 0; i < last; i++ {
		if breaks[i+1] >= x {
			return i
		}
	}
	return max(last, 0)
}

// evalSegment evaluates segment seg of a piecewise-linear function stored as
// (slope, value) pairs.
func evalSegment(x float64, seg int, breaks, coefs []float64) float64 {
	return coefs[2*seg]*(x-breaks[seg]) + coefs[2*seg+1]
}

// synthesizeSegments converts half-precision samples taken at each breakpoint
// into (slope, value) pairs, one per segment, appending them to dst.
// Samples are divided by scale.
func synthesizeSegments(dst []float64, breaks []float64, samples []uint16, scale float64) []float64 {
	for i := 0; i < len(breaks)-1; i++ {
		v0 := half.ToFloat64(samples[i]) / scale
		v1 := half.ToFloat64(samples[i+1]) / scale
		dst = append(dst, (v1-v0)/(breaks[i+1]-breaks[i]), v0)
	}
	return dst
}

func lerp(from, to, factor float64) float64 {
	return (1.0-factor)*from + factor*to
}

// findInAxis locates value in an ascending axis for a linear blend. It
// returns the lower index, whether the next index takes part (inc is 0 or 1)
// and the blend weight. Below the axis the weight is 1 with no neighbour,
// above it the last index is used with weight 0.
func findInAxis(axis []float64, value float64) (index, inc int, w float64) {
	last := len(axis) - 1
	if value <= axis[0] {
		return 0, 0, 1
	}
	if value >= axis[last] {
		return last, 0, 0
	}
	for i := 1; i <= last; i++ {
		if value < axis[i] {
			return i - 1, 1, (value - axis[i-1]) / (axis[i] - axis[i-1])
		}
	}
	return last, 0, 0
}
