package skymodel

import "math"

// radianceData is the tensor-decomposed sky radiance part of the dataset.
type radianceData struct {
	visibilities []float64
	albedos      []float64
	altitudes    []float64
	elevations   []float64 // Degrees

	channels     int
	channelStart float64
	channelWidth float64

	tensorComponents int
	sunBreaks        []float64
	zenithBreaks     []float64
	emphBreaks       []float64

	// size[d] is the grid size of dimension d, indexed like gridPoint.
	size   [numDims]int
	layout layout
	coefs  []float64
}

// segments holds the active segment of each angular parameter.
type segments struct {
	gamma, alpha, theta int
}

// reconstruct evaluates the model at one configuration block:
// emph(theta) * sum over components of sun(gamma) * zenith(alpha).
// Negative reconstructions are floored at zero.
func (r *radianceData) reconstruct(gamma, alpha, theta float64, seg segments, block []float64) float64 {
	l := &r.layout
	res := 0.0
	for t := 0; t < r.tensorComponents; t++ {
		sun := evalSegment(gamma, seg.gamma, r.sunBreaks, l.sunCoefs(block, t))
		zenith := evalSegment(alpha, seg.alpha, r.zenithBreaks, l.zenithCoefs(block, t))
		res += sun * zenith
	}
	res *= evalSegment(theta, seg.theta, r.emphBreaks, l.emphCoefs(block))
	return math.Max(res, 0)
}

// cascadeOrder lists the interpolated dimensions, outermost first. The
// channel dimension is never interpolated.
var cascadeOrder = [...]int{dimAlbedo, dimVisibility, dimAltitude, dimElevation}

// interpolate blends eval over the grid cell around the fractional indices
// in control, one dimension per level of cascadeOrder. A level uses the
// lower grid value alone when its fraction is negligible or it sits on the
// last grid value.
func (r *radianceData) interpolate(control [numDims]float64, p gridPoint, level int, eval func(gridPoint) float64) float64 {
	if level == len(cascadeOrder) {
		return eval(p)
	}

	dim := cascadeOrder[level]
	low := int(control[dim])
	factor := control[dim] - float64(low)

	p[dim] = low
	resLow := r.interpolate(control, p, level+1, eval)
	if factor < snapEpsilon || low >= r.size[dim]-1 {
		return resLow
	}

	p[dim] = low + 1
	resHigh := r.interpolate(control, p, level+1, eval)
	return lerp(resLow, resHigh, factor)
}

// channelIndex returns the fractional channel of wavelength and whether it
// lies inside the dataset.
func (r *radianceData) channelIndex(wavelength float64) (float64, bool) {
	c := (wavelength - r.channelStart) / r.channelWidth
	if c >= float64(r.channels) || c < 0 || math.IsNaN(c) {
		return 0, false
	}
	return c, true
}

// SkyRadiance returns the sky radiance arriving at the viewpoint.
//
// theta is the angle between the view direction and the zenith, gamma the
// angle to the sun and shadow the angle to the shadow-plane normal (only
// used while the sun is below the horizon). Wavelengths outside the dataset
// channels yield 0. The result is constant within a channel.
func (m *Model) SkyRadiance(theta, gamma, shadow, wavelength float64) float64 {
	if m.released() {
		return 0
	}
	r := m.rad

	channel, ok := r.channelIndex(wavelength)
	if !ok {
		return 0
	}

	var control [numDims]float64
	control[dimVisibility] = MapParameter(m.params.Visibility, r.visibilities)
	control[dimAlbedo] = MapParameter(m.params.Albedo, r.albedos)
	control[dimAltitude] = MapParameter(0, r.altitudes)
	control[dimElevation] = MapParameter(m.params.Elevation*180/math.Pi, r.elevations)

	alpha := theta
	if m.params.Elevation < 0 {
		alpha = shadow
	}

	seg := segments{
		gamma: FindSegment(gamma, r.sunBreaks),
		alpha: FindSegment(alpha, r.zenithBreaks),
		theta: FindSegment(theta, r.emphBreaks),
	}

	var p gridPoint
	p[dimChannel] = int(channel)

	return r.interpolate(control, p, 0, func(p gridPoint) float64 {
		return r.reconstruct(gamma, alpha, theta, seg, r.layout.block(r.coefs, p))
	})
}
