package skymodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// transBuckets is the number of wavelength buckets of the V factor.
const transBuckets = 11

// maxTransDistance is the longest ground distance to the atmosphere edge
// covered by the normalized d coordinate.
const maxTransDistance = 1571524.413613

// transmittanceData is the rank-reduced transmittance model: a geometry
// basis U[altitude][d][a][rank] and weights V[visibility][altitude][bucket][rank].
type transmittanceData struct {
	nD, nA, rank int

	altitudes    []float64
	visibilities []float64

	u []float64
	v []float64
}

// uRow returns the rank-length basis row at grid cell (d, a).
func (t *transmittanceData) uRow(altitude, d, a int) []float64 {
	start := altitude*t.nA*t.nD*t.rank + (d*t.nA+a)*t.rank
	return t.u[start : start+t.rank]
}

// vRow returns the rank-length weight row of one wavelength bucket.
func (t *transmittanceData) vRow(visibility, altitude, bucket int) []float64 {
	start := visibility*t.rank*transBuckets*len(t.altitudes) + (altitude*transBuckets+bucket)*t.rank
	return t.v[start : start+t.rank]
}

// blend selects a grid index, whether its successor takes part and the
// weight of the successor.
type blend struct {
	low    int
	inc    int
	factor float64
}

// weights interpolates the V rows of two wavelength buckets into dst.
func (t *transmittanceData) weights(dst []float64, visibility, altitude int, wl blend) {
	lo := t.vRow(visibility, altitude, wl.low)
	hi := t.vRow(visibility, altitude, wl.low+wl.inc)
	floats.ScaleTo(dst, 1-wl.factor, lo)
	floats.AddScaled(dst, wl.factor, hi)
}

// cell is the position of an (a, d) coordinate pair on the U grid.
type cell struct {
	a, d       int
	aInc, dInc int
	wa, wd     float64
}

// locate finds the U grid cell of (a, d). Blend weights are remapped
// nonlinearly to undo the cube and quartic roots applied to a and d.
func (t *transmittanceData) locate(a, d float64) cell {
	c := cell{
		a: int(math.Floor(a * float64(t.nA))),
		d: int(math.Floor(d * float64(t.nD))),
	}

	if c.a < t.nA-1 {
		c.aInc = 1
		c.wa = nonlinlerp(float64(c.a)/float64(t.nA), float64(c.a+1)/float64(t.nA), a, 3)
	} else {
		c.a = t.nA - 1
	}

	if c.d < t.nD-1 {
		c.dInc = 1
		c.wd = nonlinlerp(float64(c.d)/float64(t.nD), float64(c.d+1)/float64(t.nD), d, 4)
	} else {
		c.d = t.nD - 1
	}

	c.wa = clamp01(c.wa)
	c.wd = clamp01(c.wd)
	return c
}

// atAltitude evaluates the factorized model at one visibility and altitude
// index: up to four U·V corner values blended bilinearly over the cell.
func (t *transmittanceData) atAltitude(c cell, visibility, altitude int, wl blend) float64 {
	coefs := make([]float64, t.rank)
	t.weights(coefs, visibility, altitude, wl)

	var corners [4]float64
	i := 0
	for al := c.a; al <= c.a+c.aInc; al++ {
		for dl := c.d; dl <= c.d+c.dInc; dl++ {
			corners[i] = floats.Dot(t.uRow(altitude, dl, al), coefs)
			i++
		}
	}

	if c.dInc == 1 {
		corners[0] = lerp(corners[0], corners[1], c.wd)
		corners[1] = lerp(corners[2], corners[3], c.wd)
	}
	if c.aInc == 1 {
		corners[0] = lerp(corners[0], corners[1], c.wa)
	}
	return corners[0]
}

// at evaluates the model at one visibility index, blending across altitude.
func (t *transmittanceData) at(a, d float64, visibility int, wl, alt blend) float64 {
	c := t.locate(a, d)
	res := t.atAltitude(c, visibility, alt.low, wl)
	if alt.inc == 1 {
		high := t.atAltitude(c, visibility, alt.low+1, wl)
		res = lerp(res, high, alt.factor)
	}
	return res
}

// nonlinlerp returns the weight of x between lo and hi after raising all
// three to the power p.
func nonlinlerp(lo, hi, x, p float64) float64 {
	c1 := math.Pow(lo, p)
	c2 := math.Pow(hi, p)
	return (math.Pow(x, p) - c1) / (c2 - c1)
}

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}

// circleDistance intersects a ray from (0, yc) along (xv, yv) with a circle
// of the given radius centred at the origin. It returns the distance to the
// nearest intersection in front of the ray origin. The roots are rounded to
// float32, matching the precision the dataset was fitted with.
func circleDistance(xv, yv, yc, radius float64) (float64, bool) {
	qa := xv*xv + yv*yv
	qb := 2.0 * yc * yv
	qc := yc*yc - radius*radius
	n := qb*qb - 4.0*qa*qc
	if n <= 0 {
		return 0, false
	}
	n = math.Sqrt(n)
	d1 := float64(float32((-qb + n) / (2.0 * qa)))
	d2 := float64(float32((-qb - n) / (2.0 * qa)))

	var d float64
	if d1 > 0 && d2 > 0 {
		d = math.Min(d1, d2)
	} else {
		d = math.Max(d1, d2)
	}
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// scaleAD converts a point in the planet's plane of the ray to normalized
// (a, d): a is the cube root of the relative height in the atmosphere, d the
// fourth root of the relative ground distance.
func scaleAD(x, y float64) (a, d float64) {
	n := math.Hypot(x, y)
	a = math.Max(n-PlanetRadius, 0)
	a = math.Cbrt(a / AtmosphereWidth)
	d = math.Acos(y/n) * PlanetRadius / maxTransDistance
	d = math.Min(math.Pow(d, 0.25), 1)
	return a, d
}

// toAD maps a ray leaving a viewpoint at the given altitude under zenith
// angle theta, cut at distance, to normalized (a, d) coordinates. The ray
// ends at the planet surface, the atmosphere edge or distance, whichever
// comes first.
func toAD(theta, distance, altitude float64) (a, d float64) {
	xv := math.Sin(theta)
	yv := math.Cos(theta)
	yc := PlanetRadius + altitude
	atmoEdge := PlanetRadius + AtmosphereWidth

	var n float64
	if altitude < 0.001 {
		// Near the ground, downward rays end immediately; testing the planet
		// would find its far side.
		if theta <= 0.5*math.Pi {
			var ok bool
			if n, ok = circleDistance(xv, yv, yc, atmoEdge); !ok {
				return 0, 0
			}
		}
	} else {
		if hit, ok := circleDistance(xv, yv, yc, PlanetRadius); ok && hit <= distance {
			return scaleAD(xv*hit, yv*hit+yc)
		}
		var ok bool
		if n, ok = circleDistance(xv, yv, yc, atmoEdge); !ok {
			return 0, 0
		}
	}

	n = math.Min(n, distance)
	return scaleAD(xv*n, yv*n+yc)
}

// Transmittance returns the fraction of light at wavelength surviving a ray
// segment of the given length leaving the viewpoint at zenith angle theta.
// Use InfiniteDistance for rays leaving the atmosphere. Wavelengths outside
// the dataset channels yield 0; the result always lies in [0, 1].
func (m *Model) Transmittance(theta, wavelength, distance float64) float64 {
	return m.transmittanceAt(theta, wavelength, distance, 0)
}

func (m *Model) transmittanceAt(theta, wavelength, distance, altitude float64) float64 {
	if m.released() {
		return 0
	}
	t := m.trans

	channel, ok := m.rad.channelIndex(wavelength)
	if !ok {
		return 0
	}

	// Buckets follow the channel index; the model is constant within one.
	wl := blend{low: min(int(channel), transBuckets-1)}
	if wl.low < transBuckets-1 {
		wl.inc = 1
	}

	var alt blend
	alt.low, alt.inc, alt.factor = findInAxis(t.altitudes, altitude)

	var vis blend
	vis.low, vis.inc, vis.factor = findInAxis(t.visibilities, m.params.Visibility)

	a, d := toAD(theta, distance, altitude)

	low := t.at(a, d, vis.low, wl, alt)
	high := t.at(a, d, vis.low+vis.inc, wl, alt)

	trans := clamp01(lerp(low, high, vis.factor))
	return trans * trans
}
