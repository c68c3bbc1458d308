package skymodel

import (
	"math"
	"testing"

	"github.com/Faultbox/skyground/internal/synth"
)

func TestTransmittance_Visibility(t *testing.T) {
	m := decode(t, synth.Default(), defaultParams)

	clear := float64(float32(synth.DefaultClearWeight))
	hazy := float64(float32(synth.DefaultHazyWeight))

	tests := []struct {
		visibility float64
		want       float64
	}{
		{10, clear * clear},
		{20, clear * clear},
		{60, math.Pow((clear+hazy)/2, 2)},
		{100, hazy * hazy},
		{131.8, hazy * hazy},
	}

	for _, tt := range tests {
		view := m.WithParams(Params{Visibility: tt.visibility})
		for _, theta := range []float64{0, 0.5, 1.5, 2.5} {
			got := view.Transmittance(theta, 330, InfiniteDistance)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("visibility %v theta %v: expected %v, got %v", tt.visibility, theta, tt.want, got)
			}
		}
	}
}

func TestTransmittance_WavelengthOutOfRange(t *testing.T) {
	m := decode(t, synth.Default(), defaultParams)

	for _, wl := range []float64{300, 400, 500, math.NaN()} {
		if got := m.Transmittance(0, wl, InfiniteDistance); got != 0 {
			t.Errorf("wavelength %v: expected 0, got %v", wl, got)
		}
	}
}

func TestTransmittance_Bounded(t *testing.T) {
	d := synth.Default()
	for i := range d.V {
		if i%2 == 0 {
			d.V[i] = 1.5
			if i >= len(d.V)/2 {
				d.V[i] = -0.5
			}
		}
	}
	m := decode(t, d, defaultParams)

	if got := m.WithParams(Params{Visibility: 20}).Transmittance(0.2, 330, InfiniteDistance); got != 1 {
		t.Errorf("expected clamp to 1, got %v", got)
	}
	if got := m.WithParams(Params{Visibility: 100}).Transmittance(0.2, 330, InfiniteDistance); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
	for theta := 0.0; theta <= math.Pi; theta += 0.1 {
		for _, dist := range []float64{0, 10, 1e4, 1e6, InfiniteDistance} {
			got := m.WithParams(Params{Visibility: 45}).Transmittance(theta, 370, dist)
			if got < 0 || got > 1 || math.IsNaN(got) {
				t.Errorf("theta %v distance %v: %v outside [0, 1]", theta, dist, got)
			}
		}
	}
}

// gridModel builds transmittance data with rank 1 and a U grid holding
// u[d][a] for every altitude, with every V weight set to 1.
func gridModel(nD, nA int, u []float64) *transmittanceData {
	t := &transmittanceData{
		nD:           nD,
		nA:           nA,
		rank:         1,
		altitudes:    []float64{0},
		visibilities: []float64{20},
		u:            u,
	}
	for i := 0; i < transBuckets; i++ {
		t.v = append(t.v, 1)
	}
	return t
}

func TestTransmittance_CornerBlend(t *testing.T) {
	td := gridModel(2, 2, []float64{
		1, 2, // d0: a0, a1
		3, 4, // d1: a0, a1
	})
	var wl blend

	tests := []struct {
		name string
		c    cell
		want float64
	}{
		{"d0 a0", cell{aInc: 1, dInc: 1}, 1},
		{"d0 a1", cell{aInc: 1, dInc: 1, wa: 1}, 2},
		{"d1 a0", cell{aInc: 1, dInc: 1, wd: 1}, 3},
		{"centre", cell{aInc: 1, dInc: 1, wa: 0.5, wd: 0.5}, 2.5},
		{"top a edge", cell{a: 1, dInc: 1, wd: 0.5}, 3},
		{"top corner", cell{a: 1, d: 1}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := td.atAltitude(tt.c, 0, 0, wl); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTransmittance_Locate(t *testing.T) {
	td := gridModel(4, 4, make([]float64, 16))

	c := td.locate(0.3, 1)
	if c.a != 1 || c.aInc != 1 {
		t.Errorf("expected a cell 1 with successor, got %d/%d", c.a, c.aInc)
	}
	wantWA := (math.Pow(0.3, 3) - math.Pow(0.25, 3)) / (math.Pow(0.5, 3) - math.Pow(0.25, 3))
	if math.Abs(c.wa-wantWA) > 1e-12 {
		t.Errorf("expected wa %v, got %v", wantWA, c.wa)
	}
	if c.d != 3 || c.dInc != 0 || c.wd != 0 {
		t.Errorf("expected top d cell without successor, got %+v", c)
	}

	c = td.locate(0, 0.6)
	wantWD := (math.Pow(0.6, 4) - math.Pow(0.5, 4)) / (math.Pow(0.75, 4) - math.Pow(0.5, 4))
	if c.d != 2 || math.Abs(c.wd-wantWD) > 1e-12 {
		t.Errorf("expected d cell 2 with wd %v, got %+v", wantWD, c)
	}
}

func TestTransmittance_WeightsBlend(t *testing.T) {
	td := gridModel(1, 1, []float64{1})
	for i := range td.v {
		td.v[i] = float64(i)
	}

	dst := make([]float64, 1)
	td.weights(dst, 0, 0, blend{low: 3, inc: 1, factor: 0.25})
	if dst[0] != 3.25 {
		t.Errorf("expected 3.25, got %v", dst[0])
	}
}

func TestTransmittance_AltitudeBlend(t *testing.T) {
	td := gridModel(1, 1, []float64{0.2, 0.6})
	td.altitudes = []float64{0, 1000}
	td.v = append(td.v, td.v...)

	var wl blend
	alt := blend{low: 0, inc: 1, factor: 0.25}
	if got := td.at(0, 0, 0, wl, alt); math.Abs(got-0.3) > 1e-12 {
		t.Errorf("expected 0.3, got %v", got)
	}
}

func TestNonlinlerp(t *testing.T) {
	if got := nonlinlerp(0, 0.5, 0.25, 3); math.Abs(got-0.125) > 1e-12 {
		t.Errorf("expected 0.125, got %v", got)
	}
	if got := nonlinlerp(0.25, 0.5, 0.5, 4); math.Abs(got-1) > 1e-12 {
		t.Errorf("expected 1 at upper bound, got %v", got)
	}
}

func TestCircleDistance(t *testing.T) {
	edge := PlanetRadius + AtmosphereWidth

	d, ok := circleDistance(0, 1, PlanetRadius, edge)
	if !ok || math.Abs(d-AtmosphereWidth) > 1e-6 {
		t.Errorf("zenith ray: expected %v, got %v (%v)", AtmosphereWidth, d, ok)
	}

	// Horizontal ray from the ground reaches the edge along the tangent,
	// rounded to float32.
	want := float64(float32(math.Sqrt(edge*edge - PlanetRadius*PlanetRadius)))
	d, ok = circleDistance(1, 0, PlanetRadius, edge)
	if !ok || math.Abs(d-want) > 0.125 {
		t.Errorf("horizontal ray: expected %v, got %v (%v)", want, d, ok)
	}

	// Looking down from 1 km hits the ground 1 km away.
	d, ok = circleDistance(0, -1, PlanetRadius+1000, PlanetRadius)
	if !ok || math.Abs(d-1000) > 1e-6 {
		t.Errorf("nadir ray: expected 1000, got %v (%v)", d, ok)
	}

	// Horizontal ray above the planet misses it.
	if _, ok := circleDistance(1, 0, edge+1000, PlanetRadius); ok {
		t.Error("expected miss")
	}

	// Circle entirely behind the ray origin.
	if _, ok := circleDistance(0, 1, edge+1000, PlanetRadius); ok {
		t.Error("expected miss behind origin")
	}

	// Distances carry float32 precision.
	const r = 1000000.3
	d, ok = circleDistance(0, 1, 0, r)
	if want := float64(float32(r)); !ok || d != want {
		t.Errorf("expected %v, got %v (%v)", want, d, ok)
	}
}

func TestScaleAD(t *testing.T) {
	a, d := scaleAD(0, PlanetRadius)
	if a != 0 || d != 0 {
		t.Errorf("ground point: expected (0, 0), got (%v, %v)", a, d)
	}

	a, d = scaleAD(0, PlanetRadius+AtmosphereWidth)
	if math.Abs(a-1) > 1e-12 || d != 0 {
		t.Errorf("edge above viewpoint: expected (1, 0), got (%v, %v)", a, d)
	}

	// Inside the planet clamps a to 0; far points clamp d to 1.
	a, d = scaleAD(PlanetRadius, 0)
	if a != 0 || d != 1 {
		t.Errorf("quarter turn away: expected (0, 1), got (%v, %v)", a, d)
	}
}

func TestToAD(t *testing.T) {
	tests := []struct {
		name     string
		theta    float64
		distance float64
		altitude float64
		wantA    float64
		wantD    float64
	}{
		{"zenith to space", 0, InfiniteDistance, 0, 1, 0},
		{"zenith 12.5 km", 0, 12500, 0, 0.5, 0},
		{"below horizon at ground", 2, InfiniteDistance, 0, 0, 0},
		{"nadir from 1 km", math.Pi, InfiniteDistance, 1000, 0, 0},
		{"nadir short of ground", math.Pi, 500, 1000, math.Cbrt(500 / AtmosphereWidth), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, d := toAD(tt.theta, tt.distance, tt.altitude)
			if math.Abs(a-tt.wantA) > 1e-6 || math.Abs(d-tt.wantD) > 1e-6 {
				t.Errorf("expected (%v, %v), got (%v, %v)", tt.wantA, tt.wantD, a, d)
			}
		})
	}
}

func TestToAD_HorizonDistance(t *testing.T) {
	a, d := toAD(math.Pi/2, InfiniteDistance, 0)
	if math.Abs(a-1) > 1e-6 {
		t.Errorf("expected ray to end at the atmosphere edge, got a = %v", a)
	}
	edge := PlanetRadius + AtmosphereWidth
	want := math.Pow(math.Acos(PlanetRadius/edge)*PlanetRadius/maxTransDistance, 0.25)
	if math.Abs(d-want) > 1e-6 {
		t.Errorf("expected d %v, got %v", want, d)
	}
}

// transDataset returns the default dataset with a rank-1 transmittance grid:
// U[altitude][d][a] from u and V[visibility][altitude][bucket] from v.
func transDataset(nD, nA int, altitudes []float32, u func(alt, d, a int) float32, v func(vis, alt int) float32) *synth.Dataset {
	ds := synth.Default()
	ds.TransND, ds.TransNA, ds.TransRank = nD, nA, 1
	ds.TransAltitudes = altitudes
	ds.U, ds.V = nil, nil

	for alt := range altitudes {
		for d := 0; d < nD; d++ {
			for a := 0; a < nA; a++ {
				ds.U = append(ds.U, u(alt, d, a))
			}
		}
	}
	for vis := range ds.TransVisibilities {
		for alt := range altitudes {
			for b := 0; b < synth.TransBuckets; b++ {
				ds.V = append(ds.V, v(vis, alt))
			}
		}
	}
	return ds
}

func unitWeight(_, _ int) float32 { return 1 }

func TestTransmittance_Geometry(t *testing.T) {
	// Transmittance rises with a along each row.
	byA := transDataset(4, 4, []float32{0}, func(_, d, a int) float32 {
		return 0.2*float32(a+1) - 0.05*float32(d)
	}, unitWeight)
	m := decode(t, byA, defaultParams)
	u := func(d, a int) float64 { return float64(0.2*float32(a+1) - 0.05*float32(d)) }

	// a = cbrt(height / AtmosphereWidth); the a cells start at 0, 1/4, 1/2, 3/4.
	midA := (math.Pow(0.5, 3) + math.Pow(0.75, 3)) / 2 * AtmosphereWidth

	tests := []struct {
		name     string
		theta    float64
		distance float64
		want     float64
	}{
		{"below horizon", 2, InfiniteDistance, u(0, 0)},
		{"zenith 1.5625 km", 0, 1562.5, u(0, 1)},
		{"zenith 12.5 km", 0, 12500, u(0, 2)},
		{"zenith between cells", 0, midA, (u(0, 2) + u(0, 3)) / 2},
		{"zenith to space", 0, InfiniteDistance, u(0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Transmittance(tt.theta, 330, tt.distance)
			if want := tt.want * tt.want; math.Abs(got-want) > 1e-9 {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}

	// Along the horizon the blend runs over d, linear in arc length.
	byD := transDataset(4, 4, []float32{0}, func(_, d, _ int) float32 {
		return 0.9 - 0.2*float32(d)
	}, unitWeight)
	m = decode(t, byD, defaultParams)

	// d^4 halfway between the d cells starting at 1/4 and 2/4.
	arc := (math.Pow(0.25, 4) + math.Pow(0.5, 4)) / 2 * maxTransDistance
	dist := PlanetRadius * math.Tan(arc/PlanetRadius)
	mid := (float64(float32(0.9)-0.2) + float64(float32(0.9)-0.4)) / 2

	got := m.Transmittance(math.Pi/2, 330, dist)
	if want := mid * mid; math.Abs(got-want) > 1e-6 {
		t.Errorf("horizon: expected %v, got %v", want, got)
	}
}

func TestTransmittance_GroundAltitudeBlend(t *testing.T) {
	// Slices at -1 km and +1 km: the ground lies halfway between them.
	d := transDataset(2, 2, []float32{-1000, 1000}, func(_, _, _ int) float32 { return 1 },
		func(_, alt int) float32 {
			if alt == 0 {
				return 0.5
			}
			return 0.9
		})
	m := decode(t, d, defaultParams)

	mid := (0.5 + float64(float32(0.9))) / 2
	if got, want := m.Transmittance(0.3, 330, InfiniteDistance), mid*mid; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}
}
