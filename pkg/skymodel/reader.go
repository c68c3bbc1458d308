package skymodel

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// chunkRecords bounds the records read per call, so header counts never
// commit memory ahead of the data that backs them.
const chunkRecords = 1 << 16

// recordReader reads fixed-size records in native byte order and turns short
// reads into FormatErrors naming the field being decoded.
type recordReader struct {
	r   io.Reader
	buf []byte
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: r}
}

// records reads n records of size bytes each in chunks of at most
// chunkRecords, handing every chunk to decode with the index of its first
// record.
func (rr *recordReader) records(field string, n, size int, decode func(b []byte, first int)) error {
	for first := 0; first < n; {
		k := min(n-first, chunkRecords)
		need := k * size
		if cap(rr.buf) < need {
			rr.buf = make([]byte, need)
		}
		b := rr.buf[:need]

		got, err := io.ReadFull(rr.r, b)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return truncated(field, n, first+got/size)
			}
			return &IOError{Op: "read " + field, Err: err}
		}
		decode(b, first)
		first += k
	}
	return nil
}

// count reads one int32 count and checks it against a minimum.
func (rr *recordReader) count(field string, minimum int) (int, error) {
	var v int
	err := rr.records(field, 1, 4, func(b []byte, _ int) {
		v = int(int32(binary.NativeEndian.Uint32(b)))
	})
	if err != nil {
		return 0, err
	}
	if v < minimum {
		return 0, belowMinimum(field, minimum, v)
	}
	if v > maxCount {
		return 0, invalidField(field, "count %d exceeds limit %d", v, maxCount)
	}
	return v, nil
}

func (rr *recordReader) float64s(field string, dst []float64) error {
	return rr.records(field, len(dst), 8, func(b []byte, first int) {
		for i := 0; i < len(b)/8; i++ {
			dst[first+i] = math.Float64frombits(binary.NativeEndian.Uint64(b[i*8:]))
		}
	})
}

func (rr *recordReader) double(field string) (float64, error) {
	var v [1]float64
	if err := rr.float64s(field, v[:]); err != nil {
		return 0, err
	}
	return v[0], nil
}

// float32s reads float32 records widened to float64.
func (rr *recordReader) float32s(field string, dst []float64) error {
	return rr.records(field, len(dst), 4, func(b []byte, first int) {
		for i := 0; i < len(b)/4; i++ {
			dst[first+i] = float64(math.Float32frombits(binary.NativeEndian.Uint32(b[i*4:])))
		}
	})
}

// appendFloat32s reads n float32 records widened to float64 and appends
// them to dst. dst grows only as records arrive.
func (rr *recordReader) appendFloat32s(field string, dst []float64, n int) ([]float64, error) {
	err := rr.records(field, n, 4, func(b []byte, _ int) {
		for i := 0; i < len(b)/4; i++ {
			dst = append(dst, float64(math.Float32frombits(binary.NativeEndian.Uint32(b[i*4:]))))
		}
	})
	return dst, err
}

func (rr *recordReader) uint16s(field string, dst []uint16) error {
	return rr.records(field, len(dst), 2, func(b []byte, first int) {
		for i := 0; i < len(b)/2; i++ {
			dst[first+i] = binary.NativeEndian.Uint16(b[i*2:])
		}
	})
}
