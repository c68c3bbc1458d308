// Package solarpos computes the sun position for a time and place in the
// angular convention used by skymodel.ComputeAngles.
package solarpos

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"
)

// Position is the sun position in the sky model frame, in radians.
//
// Azimuth is measured counter-clockwise from east (+x) towards north (+y).
type Position struct {
	Elevation float64
	Azimuth   float64
}

// At returns the sun position at time t seen from the given latitude and
// longitude in degrees, north and east positive.
func At(t time.Time, latitude, longitude float64) Position {
	p := suncalc.GetPosition(t, latitude, longitude)
	// suncalc measures azimuth from south towards west.
	return Position{
		Elevation: p.Altitude,
		Azimuth:   FromSouthWest(p.Azimuth),
	}
}

// FromSouthWest converts an azimuth measured from south towards west into
// the model convention, normalized to [0, 2*pi).
func FromSouthWest(azimuth float64) float64 {
	a := math.Mod(-math.Pi/2-azimuth, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Compass returns the azimuth in degrees clockwise from north.
func (p Position) Compass() float64 {
	deg := 90 - p.Azimuth*180/math.Pi
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
