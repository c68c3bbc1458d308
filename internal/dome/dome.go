// Package dome samples sky radiance over the upper hemisphere with a pool of
// workers sharing one read-only model.
package dome

import (
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/skyground/pkg/skymodel"
)

// ErrNoSamples is returned when the grid or wavelength list is empty.
var ErrNoSamples = errors.New("dome: no samples requested")

// Sky is the radiance query a dome is sampled from. *skymodel.Model
// implements it.
type Sky interface {
	SkyRadiance(theta, gamma, shadow, wavelength float64) float64
}

// Options controls the sampling grid.
type Options struct {
	ThetaSteps int // Rings from zenith to horizon
	PhiSteps   int // Directions per ring

	Wavelengths []float64 // Nanometres

	SunElevation float64 // Radians
	SunAzimuth   float64 // Radians, counter-clockwise from +x

	// Workers defaults to runtime.NumCPU().
	Workers int

	// Progress, if set, is called with the number of finished rings. It is
	// called from the worker goroutines.
	Progress func(done, total int)
}

// Sample is the radiance of one direction at one wavelength.
type Sample struct {
	Theta      float64
	Phi        float64
	Gamma      float64
	Shadow     float64
	Wavelength float64
	Radiance   float64
}

// Direction returns the unit view vector of a dome direction, z up.
func Direction(theta, phi float64) r3.Vec {
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	return r3.Vec{X: sinT * cosP, Y: sinT * sinP, Z: cosT}
}

// ringTheta returns the zenith angle at the centre of ring i.
func ringTheta(i, rings int) float64 {
	return (float64(i) + 0.5) * (math.Pi / 2) / float64(rings)
}

// Render samples sky over the grid. Samples are ordered by ring, then
// direction, then wavelength. Render stops early when ctx is cancelled and
// returns ctx.Err().
func Render(ctx context.Context, sky Sky, opts Options) ([]Sample, error) {
	if opts.ThetaSteps <= 0 || opts.PhiSteps <= 0 || len(opts.Wavelengths) == 0 {
		return nil, ErrNoSamples
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, opts.ThetaSteps)

	perRing := opts.PhiSteps * len(opts.Wavelengths)
	samples := make([]Sample, opts.ThetaSteps*perRing)
	up := r3.Vec{Z: 1}

	rings := make(chan int)
	var done atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range rings {
				theta := ringTheta(i, opts.ThetaSteps)
				out := samples[i*perRing : (i+1)*perRing]
				k := 0
				for j := 0; j < opts.PhiSteps; j++ {
					phi := float64(j) * 2 * math.Pi / float64(opts.PhiSteps)
					a := skymodel.ComputeAngles(opts.SunElevation, opts.SunAzimuth, Direction(theta, phi), up)
					for _, wl := range opts.Wavelengths {
						out[k] = Sample{
							Theta:      theta,
							Phi:        phi,
							Gamma:      a.Gamma,
							Shadow:     a.Shadow,
							Wavelength: wl,
							Radiance:   sky.SkyRadiance(a.Theta, a.Gamma, a.Shadow, wl),
						}
						k++
					}
				}
				n := done.Add(1)
				if opts.Progress != nil {
					opts.Progress(int(n), opts.ThetaSteps)
				}
			}
		}()
	}

	var err error
feed:
	for i := 0; i < opts.ThetaSteps; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case rings <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(rings)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return samples, nil
}
