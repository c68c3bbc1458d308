// Package synth writes small sky model datasets in the binary layout read by
// skymodel.Decode. The values follow simple closed forms so tests can predict
// every query result.
package synth

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/skyground/pkg/half"
)

// TransBuckets is the fixed number of wavelength buckets of the V matrix.
const TransBuckets = 11

// ConfigIndex addresses one discrete radiance configuration.
type ConfigIndex struct {
	Channel    int
	Elevation  int
	Altitude   int
	Albedo     int
	Visibility int
}

// Component is one tensor term of a configuration. Samples are taken at the
// breakpoints. Zenith samples are stored as given and divided by ZenithScale
// when decoded.
type Component struct {
	Sun         []float32
	ZenithScale float64
	Zenith      []float32
}

// Config is the content of one configuration block.
type Config struct {
	Components []Component
	Emph       []float32
}

// Dataset describes a complete dataset file.
type Dataset struct {
	Visibilities []float64
	Albedos      []float64
	Altitudes    []float64
	Elevations   []float64 // Degrees

	Channels     int
	ChannelStart float64
	ChannelWidth float64

	TensorComponents int
	SunBreaks        []float64
	ZenithBreaks     []float64
	EmphBreaks       []float64

	// Config returns the block of each configuration.
	Config func(ConfigIndex) Config

	TransND           int
	TransNA           int
	TransRank         int
	TransAltitudes    []float32
	TransVisibilities []float32
	U                 []float32 // [altitude][d][a][rank]
	V                 []float32 // [visibility][altitude][bucket][rank]
}

// Bytes encodes the dataset in native byte order.
func (d *Dataset) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the encoded dataset to path.
func (d *Dataset) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteTo encodes the dataset to w. Configurations are written channel
// fastest, visibility slowest.
func (d *Dataset) WriteTo(w io.Writer) (int64, error) {
	e := &encoder{}

	e.axis(d.Visibilities)
	e.axis(d.Albedos)
	e.axis(d.Altitudes)
	e.axis(d.Elevations)
	e.int32(d.Channels)
	e.put(d.ChannelStart)
	e.put(d.ChannelWidth)
	e.int32(d.TensorComponents)
	e.axis(d.SunBreaks)
	e.axis(d.ZenithBreaks)
	e.axis(d.EmphBreaks)

	for vis := range d.Visibilities {
		for alb := range d.Albedos {
			for alt := range d.Altitudes {
				for el := range d.Elevations {
					for ch := 0; ch < d.Channels; ch++ {
						idx := ConfigIndex{Channel: ch, Elevation: el, Altitude: alt, Albedo: alb, Visibility: vis}
						if err := d.writeConfig(e, idx); err != nil {
							return 0, err
						}
					}
				}
			}
		}
	}

	e.int32(d.TransND)
	e.int32(d.TransNA)
	e.int32(len(d.TransVisibilities))
	e.int32(len(d.TransAltitudes))
	e.int32(d.TransRank)
	e.put(d.TransAltitudes)
	e.put(d.TransVisibilities)
	e.put(d.U)
	e.put(d.V)

	n, err := w.Write(e.buf.Bytes())
	return int64(n), err
}

func (d *Dataset) writeConfig(e *encoder, idx ConfigIndex) error {
	cfg := d.Config(idx)
	if len(cfg.Components) != d.TensorComponents {
		return fmt.Errorf("synth: config %+v has %d components, want %d", idx, len(cfg.Components), d.TensorComponents)
	}
	for _, c := range cfg.Components {
		if len(c.Sun) != len(d.SunBreaks) || len(c.Zenith) != len(d.ZenithBreaks) {
			return fmt.Errorf("synth: config %+v: sample count does not match breakpoints", idx)
		}
		e.halves(c.Sun)
		e.put(c.ZenithScale)
		e.halves(c.Zenith)
	}
	if len(cfg.Emph) != len(d.EmphBreaks) {
		return fmt.Errorf("synth: config %+v: emphasis sample count does not match breakpoints", idx)
	}
	e.halves(cfg.Emph)
	return nil
}

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) put(v any) {
	// Writes to a bytes.Buffer only fail on unsupported types.
	if err := binary.Write(&e.buf, binary.NativeEndian, v); err != nil {
		panic(err)
	}
}

func (e *encoder) int32(v int) {
	e.put(int32(v))
}

func (e *encoder) axis(vals []float64) {
	e.int32(len(vals))
	e.put(vals)
}

func (e *encoder) halves(vals []float32) {
	raw := make([]uint16, len(vals))
	for i, v := range vals {
		raw[i] = half.FromFloat32(v)
	}
	e.put(raw)
}
