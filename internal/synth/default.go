package synth

import "math"

// Default channel layout: two 40 nm channels starting at 320 nm.
const (
	DefaultChannelStart = 320.0
	DefaultChannelWidth = 40.0
)

// Default transmittance weights of the two visibility buckets. The squared
// blend of the two is the transmittance at any geometry.
const (
	DefaultClearWeight = 0.9
	DefaultHazyWeight  = 0.7
)

// Base is the sun sample at gamma = 0 of a default configuration. Every grid
// dimension contributes a distinct power of two.
func Base(idx ConfigIndex) float64 {
	return float64(1 + 2*idx.Elevation + 4*idx.Visibility + 8*idx.Albedo + 16*idx.Channel + 32*idx.Altitude)
}

// DefaultRadiance is the radiance of a default configuration at sun angle
// gamma: Base rising by 1 per quarter turn, with flat zenith and emphasis
// terms.
func DefaultRadiance(idx ConfigIndex, gamma float64) float64 {
	return Base(idx) + gamma/(math.Pi/2)
}

// Default returns a two-point-per-axis dataset whose radiance is
// DefaultRadiance and whose transmittance does not depend on geometry.
func Default() *Dataset {
	d := &Dataset{
		Visibilities: []float64{20, 100},
		Albedos:      []float64{0, 1},
		Altitudes:    []float64{0, 1000},
		Elevations:   []float64{0, 45},

		Channels:     2,
		ChannelStart: DefaultChannelStart,
		ChannelWidth: DefaultChannelWidth,

		TensorComponents: 1,
		SunBreaks:        []float64{0, math.Pi / 2, math.Pi},
		ZenithBreaks:     []float64{0, math.Pi / 2, math.Pi},
		EmphBreaks:       []float64{0, math.Pi},

		TransND:           2,
		TransNA:           2,
		TransRank:         2,
		TransAltitudes:    []float32{0},
		TransVisibilities: []float32{20, 100},
	}

	d.Config = func(idx ConfigIndex) Config {
		b := float32(Base(idx))
		return Config{
			Components: []Component{{
				Sun:         []float32{b, b + 1, b + 2},
				ZenithScale: 1,
				Zenith:      []float32{1, 1, 1},
			}},
			Emph: []float32{1, 1},
		}
	}

	cells := len(d.TransAltitudes) * d.TransND * d.TransNA
	for i := 0; i < cells; i++ {
		d.U = append(d.U, 1, 0)
	}
	for _, w := range []float32{DefaultClearWeight, DefaultHazyWeight} {
		for i := 0; i < len(d.TransAltitudes)*TransBuckets; i++ {
			d.V = append(d.V, w, 0)
		}
	}
	return d
}
