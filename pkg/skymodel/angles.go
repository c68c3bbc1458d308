package skymodel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Angles are the query angles of one view direction, in radians.
type Angles struct {
	Theta  float64 `json:"theta"`  // View to zenith
	Gamma  float64 `json:"gamma"`  // View to sun
	Shadow float64 `json:"shadow"` // View to shadow-plane normal
}

// ComputeAngles derives the query angles from the sun position and a view
// direction. Azimuth is measured from +x towards +y, with up along +z in the
// sun frame. view and up must be unit vectors.
func ComputeAngles(sunElevation, sunAzimuth float64, view, up r3.Vec) Angles {
	sinEl, cosEl := math.Sincos(sunElevation)
	sinAz, cosAz := math.Sincos(sunAzimuth)

	sun := r3.Vec{X: cosAz * cosEl, Y: sinAz * cosEl, Z: sinEl}

	shadowAngle := sunElevation + math.Pi/2
	sinSh, cosSh := math.Sincos(shadowAngle)
	shadow := r3.Vec{X: cosSh * cosAz, Y: cosSh * sinAz, Z: sinSh}

	return Angles{
		Theta:  safeAcos(r3.Dot(view, up)),
		Gamma:  safeAcos(r3.Dot(view, sun)),
		Shadow: safeAcos(r3.Dot(view, shadow)),
	}
}

// safeAcos clamps rounding noise from dot products of unit vectors.
func safeAcos(x float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, x)))
}
