// Package skymodel evaluates sky radiance, solar radiance and atmospheric
// transmittance at a ground viewpoint from a precomputed coefficient dataset.
//
// A Model is decoded once from the binary dataset and is read-only afterwards:
// any number of goroutines may query one Model concurrently. Queries never
// fail; inputs outside the dataset yield zero or are clamped to the grid.
//
// Angles are in radians, wavelengths in nanometres, distances in metres and
// visibility in kilometres.
package skymodel

import (
	"fmt"
	"math"
)

// Planet and atmosphere geometry used by the transmittance model.
const (
	PlanetRadius    = 6378000.0
	AtmosphereWidth = 100000.0

	// SunRadius is the angular radius of the solar disc.
	SunRadius = 0.2667 * math.Pi / 180

	// InfiniteDistance is the ray length used for rays leaving the atmosphere.
	InfiniteDistance = 5.78960446186580977117855e76
)

// Supported parameter ranges of the fitted dataset.
const (
	MinElevation  = -4.2 * math.Pi / 180
	MaxElevation  = math.Pi / 2
	MinVisibility = 20.0
	MaxVisibility = 131.8
	MinAlbedo     = 0.0
	MaxAlbedo     = 1.0
	MinWavelength = 320.0
	MaxWavelength = 760.0
)

// Params fixes which slice of the dataset a Model answers queries for.
type Params struct {
	Elevation  float64 `json:"elevation"`  // Solar elevation in radians
	Visibility float64 `json:"visibility"` // Meteorological range in km
	Albedo     float64 `json:"albedo"`     // Ground albedo, 0-1
}

// Check reports parameters outside the supported ranges.
func (p Params) Check() error {
	switch {
	case p.Elevation < MinElevation || p.Elevation > MaxElevation:
		return fmt.Errorf("%w: elevation %.4f rad not in [%.4f, %.4f]", ErrUnsupportedParams, p.Elevation, MinElevation, MaxElevation)
	case p.Visibility < MinVisibility || p.Visibility > MaxVisibility:
		return fmt.Errorf("%w: visibility %.1f km not in [%.1f, %.1f]", ErrUnsupportedParams, p.Visibility, MinVisibility, MaxVisibility)
	case p.Albedo < MinAlbedo || p.Albedo > MaxAlbedo:
		return fmt.Errorf("%w: albedo %.3f not in [%.0f, %.0f]", ErrUnsupportedParams, p.Albedo, MinAlbedo, MaxAlbedo)
	}
	return nil
}

// VisibilityFromTurbidity converts a Linke turbidity value to the
// meteorological range used as the visibility parameter.
func VisibilityFromTurbidity(turbidity float64) float64 {
	return 7487.0*math.Exp(-3.41*turbidity) + 117.1*math.Exp(-0.4768*turbidity)
}

// Model is a decoded dataset bound to one set of sky parameters.
type Model struct {
	rad    *radianceData
	trans  *transmittanceData
	params Params
}

// Params returns the sky parameters the model answers for.
func (m *Model) Params() Params {
	return m.params
}

// WithParams returns a model sharing m's dataset but configured for p.
// The dataset is not copied.
func (m *Model) WithParams(p Params) *Model {
	return &Model{rad: m.rad, trans: m.trans, params: p}
}

// Release drops the dataset. Every model sharing it, including those made by
// WithParams, answers zero afterwards. It must not race with queries.
func (m *Model) Release() {
	if m.rad != nil {
		*m.rad = radianceData{}
	}
	if m.trans != nil {
		*m.trans = transmittanceData{}
	}
}

func (m *Model) released() bool {
	return m.rad == nil || m.rad.coefs == nil
}

// Info summarizes the dataset dimensions.
type Info struct {
	Visibilities []float64 `json:"visibilities"`
	Albedos      []float64 `json:"albedos"`
	Altitudes    []float64 `json:"altitudes"`
	Elevations   []float64 `json:"elevations"` // Degrees

	Channels     int     `json:"channels"`
	ChannelStart float64 `json:"channel_start"`
	ChannelWidth float64 `json:"channel_width"`

	TensorComponents int `json:"tensor_components"`
	SunBreaks        int `json:"sun_breaks"`
	ZenithBreaks     int `json:"zenith_breaks"`
	EmphBreaks       int `json:"emph_breaks"`

	CoefsPerConfig int `json:"coefs_per_config"`
	TotalConfigs   int `json:"total_configs"`
	TotalCoefs     int `json:"total_coefs"`

	TransND           int       `json:"trans_n_d"`
	TransNA           int       `json:"trans_n_a"`
	TransRank         int       `json:"trans_rank"`
	TransAltitudes    []float64 `json:"trans_altitudes"`
	TransVisibilities []float64 `json:"trans_visibilities"`
}

// Info returns the dataset dimensions. Slices are copies.
func (m *Model) Info() Info {
	if m.released() {
		return Info{}
	}
	r, t := m.rad, m.trans
	return Info{
		Visibilities:      clone(r.visibilities),
		Albedos:           clone(r.albedos),
		Altitudes:         clone(r.altitudes),
		Elevations:        clone(r.elevations),
		Channels:          r.channels,
		ChannelStart:      r.channelStart,
		ChannelWidth:      r.channelWidth,
		TensorComponents:  r.tensorComponents,
		SunBreaks:         len(r.sunBreaks),
		ZenithBreaks:      len(r.zenithBreaks),
		EmphBreaks:        len(r.emphBreaks),
		CoefsPerConfig:    r.layout.singleConfig,
		TotalConfigs:      r.layout.totalConfigs,
		TotalCoefs:        r.layout.allConfigs,
		TransND:           t.nD,
		TransNA:           t.nA,
		TransRank:         t.rank,
		TransAltitudes:    clone(t.altitudes),
		TransVisibilities: clone(t.visibilities),
	}
}

// WavelengthRange returns the half-open wavelength interval covered by the
// dataset channels.
func (m *Model) WavelengthRange() (lo, hi float64) {
	if m.released() {
		return 0, 0
	}
	r := m.rad
	return r.channelStart, r.channelStart + float64(r.channels)*r.channelWidth
}

func clone(s []float64) []float64 {
	return append([]float64(nil), s...)
}
