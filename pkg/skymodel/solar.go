package skymodel

import "math"

const (
	solarStart = 310.0
	solarStep  = 1.0
)

// solarBase interpolates the extraterrestrial spectrum at wavelength.
// Wavelengths outside the table yield 0.
func solarBase(wavelength float64) float64 {
	idx := (wavelength - solarStart) / solarStep
	last := len(solarSpectrum) - 1
	if !(idx >= 0) || idx > float64(last) {
		return 0
	}
	low := int(math.Floor(idx))
	if low == last {
		return solarSpectrum[last]
	}
	f := idx - float64(low)
	return lerp(solarSpectrum[low], solarSpectrum[low+1], f)
}

// SolarRadiance returns the radiance of the solar disc seen from the
// viewpoint when looking along zenith angle theta: the extraterrestrial
// spectrum attenuated by the full atmospheric path.
func (m *Model) SolarRadiance(theta, wavelength float64) float64 {
	base := solarBase(wavelength)
	if base == 0 {
		return 0
	}
	return base * m.Transmittance(theta, wavelength, InfiniteDistance)
}
