package skymodel

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Load reads the dataset at path and returns a model configured for p.
func Load(path string, p Params) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	m, err := Decode(bufio.NewReaderSize(f, 1<<16), p)
	if err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			ioErr.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Decode reads a dataset from r in native byte order. On error no model is
// returned and no buffers are retained.
func Decode(r io.Reader, p Params) (*Model, error) {
	rr := newRecordReader(r)

	rad, err := decodeRadiance(rr)
	if err != nil {
		return nil, err
	}

	trans, err := decodeTransmittance(rr)
	if err != nil {
		return nil, err
	}

	return &Model{rad: rad, trans: trans, params: p}, nil
}

// axis reads a count followed by that many doubles.
func (rr *recordReader) axis(countField, valuesField string, minimum int) ([]float64, error) {
	n, err := rr.count(countField, minimum)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, n)
	if err := rr.float64s(valuesField, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

// breaks reads a breakpoint array, which must be strictly increasing.
func (rr *recordReader) breaks(countField, valuesField string) ([]float64, error) {
	vals, err := rr.axis(countField, valuesField, 2)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(vals); i++ {
		if !(vals[i] > vals[i-1]) {
			return nil, invalidField(valuesField, "breakpoint %d (%g) not above %g", i, vals[i], vals[i-1])
		}
	}
	return vals, nil
}

func decodeRadiance(rr *recordReader) (*radianceData, error) {
	r := &radianceData{}
	var err error

	if r.visibilities, err = rr.axis("visibilities", "visibility_vals", 1); err != nil {
		return nil, err
	}
	if r.albedos, err = rr.axis("albedos", "albedo_vals", 1); err != nil {
		return nil, err
	}
	if r.altitudes, err = rr.axis("altitudes", "altitude_vals", 1); err != nil {
		return nil, err
	}
	if r.elevations, err = rr.axis("elevations", "elevation_vals", 1); err != nil {
		return nil, err
	}

	if r.channels, err = rr.count("channels", 1); err != nil {
		return nil, err
	}
	if r.channelStart, err = rr.double("channel_start"); err != nil {
		return nil, err
	}
	if !(r.channelStart >= 0) {
		return nil, invalidField("channel_start", "%g is negative", r.channelStart)
	}
	if r.channelWidth, err = rr.double("channel_width"); err != nil {
		return nil, err
	}
	if !(r.channelWidth > 0) {
		return nil, invalidField("channel_width", "%g is not positive", r.channelWidth)
	}

	if r.tensorComponents, err = rr.count("tensor_components", 1); err != nil {
		return nil, err
	}
	if r.sunBreaks, err = rr.breaks("sun_nbreaks", "sun_breaks"); err != nil {
		return nil, err
	}
	if r.zenithBreaks, err = rr.breaks("zenith_nbreaks", "zenith_breaks"); err != nil {
		return nil, err
	}
	if r.emphBreaks, err = rr.breaks("emph_nbreaks", "emph_breaks"); err != nil {
		return nil, err
	}

	r.size[dimChannel] = r.channels
	r.size[dimElevation] = len(r.elevations)
	r.size[dimAltitude] = len(r.altitudes)
	r.size[dimAlbedo] = len(r.albedos)
	r.size[dimVisibility] = len(r.visibilities)

	if r.layout, err = newLayout(r.size, r.tensorComponents, len(r.sunBreaks), len(r.zenithBreaks), len(r.emphBreaks)); err != nil {
		return nil, err
	}

	if r.coefs, err = decodeConfigs(rr, r); err != nil {
		return nil, err
	}
	return r, nil
}

// decodeConfigs reads every configuration block, channel fastest, and
// synthesizes its piecewise-linear coefficients.
func decodeConfigs(rr *recordReader, r *radianceData) ([]float64, error) {
	// Grows with the data read; a truncated file fails before the full
	// buffer is committed.
	coefs := make([]float64, 0, min(r.layout.allConfigs, chunkRecords))

	sun := make([]uint16, len(r.sunBreaks))
	zenith := make([]uint16, len(r.zenithBreaks))
	emph := make([]uint16, len(r.emphBreaks))

	for c := 0; c < r.layout.totalConfigs; c++ {
		for t := 0; t < r.tensorComponents; t++ {
			if err := rr.uint16s("sun_coefs", sun); err != nil {
				return nil, err
			}
			coefs = synthesizeSegments(coefs, r.sunBreaks, sun, 1)

			scale, err := rr.double("zenith_scale")
			if err != nil {
				return nil, err
			}
			if err := rr.uint16s("zenith_coefs", zenith); err != nil {
				return nil, err
			}
			coefs = synthesizeSegments(coefs, r.zenithBreaks, zenith, scale)
		}

		if err := rr.uint16s("emph_coefs", emph); err != nil {
			return nil, err
		}
		coefs = synthesizeSegments(coefs, r.emphBreaks, emph, 1)
	}

	if len(coefs) != r.layout.allConfigs {
		return nil, &FormatError{
			Field:    "total_coefs_all_configs",
			Expected: r.layout.allConfigs,
			Actual:   len(coefs),
			Detail:   "coefficient count does not match header",
			Err:      ErrOutOfRange,
		}
	}
	return coefs, nil
}

func decodeTransmittance(rr *recordReader) (*transmittanceData, error) {
	t := &transmittanceData{}

	var nVis, nAlt int
	var err error
	if t.nD, err = rr.count("trans_n_d", 1); err != nil {
		return nil, err
	}
	if t.nA, err = rr.count("trans_n_a", 1); err != nil {
		return nil, err
	}
	if nVis, err = rr.count("trans_visibilities", 1); err != nil {
		return nil, err
	}
	if nAlt, err = rr.count("trans_altitudes", 1); err != nil {
		return nil, err
	}
	if t.rank, err = rr.count("trans_rank", 1); err != nil {
		return nil, err
	}

	t.altitudes = make([]float64, nAlt)
	if err := rr.float32s("transmission_altitudes", t.altitudes); err != nil {
		return nil, err
	}
	t.visibilities = make([]float64, nVis)
	if err := rr.float32s("transmission_visibilities", t.visibilities); err != nil {
		return nil, err
	}

	uLen, ok := product(nAlt, t.nD, t.nA, t.rank)
	if !ok {
		return nil, invalidField("U", "%d x %d x %d x %d floats exceed limit %d", nAlt, t.nD, t.nA, t.rank, maxBufferLen)
	}
	vLen, ok := product(nVis, t.rank, transBuckets, nAlt)
	if !ok {
		return nil, invalidField("V", "%d x %d x %d x %d floats exceed limit %d", nVis, t.rank, transBuckets, nAlt, maxBufferLen)
	}

	if t.u, err = rr.appendFloat32s("U", make([]float64, 0, min(uLen, chunkRecords)), uLen); err != nil {
		return nil, err
	}
	if t.v, err = rr.appendFloat32s("V", make([]float64, 0, min(vLen, chunkRecords)), vLen); err != nil {
		return nil, err
	}
	return t, nil
}

// product multiplies counts, failing on overflow or past maxBufferLen.
func product(counts ...int) (int, bool) {
	n := 1
	for _, c := range counts {
		var ok bool
		if n, ok = mulInt(n, c); !ok || n > maxBufferLen {
			return 0, false
		}
	}
	return n, true
}
