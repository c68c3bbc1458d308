package synth

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestDefault_Size(t *testing.T) {
	d := Default()
	data, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	// Header: four axes, channel fields, breakpoints.
	header := 4*(4+2*8) + 4 + 8 + 8 + 4 + (4 + 3*8) + (4 + 3*8) + (4 + 2*8)
	// Per config: 3 sun halves, zenith scale, 3 zenith halves, 2 emph halves.
	config := 3*2 + 8 + 3*2 + 2*2
	configs := 2 * 2 * 2 * 2 * 2
	trans := 5*4 + 1*4 + 2*4 + len(d.U)*4 + len(d.V)*4

	want := header + configs*config + trans
	if len(data) != want {
		t.Errorf("expected %d bytes, got %d", want, len(data))
	}
}

func TestDefault_Header(t *testing.T) {
	data, err := Default().Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	r := bytes.NewReader(data)
	var n int32
	if err := binary.Read(r, binary.NativeEndian, &n); err != nil {
		t.Fatalf("read visibilities: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 visibilities, got %d", n)
	}
	vals := make([]float64, n)
	if err := binary.Read(r, binary.NativeEndian, vals); err != nil {
		t.Fatalf("read visibility values: %v", err)
	}
	if vals[0] != 20 || vals[1] != 100 {
		t.Errorf("expected visibilities [20 100], got %v", vals)
	}
}

func TestDefault_TransmittanceSizes(t *testing.T) {
	d := Default()
	if want := len(d.TransAltitudes) * d.TransND * d.TransNA * d.TransRank; len(d.U) != want {
		t.Errorf("expected %d U values, got %d", want, len(d.U))
	}
	if want := len(d.TransVisibilities) * d.TransRank * TransBuckets * len(d.TransAltitudes); len(d.V) != want {
		t.Errorf("expected %d V values, got %d", want, len(d.V))
	}
}

func TestBase_Distinct(t *testing.T) {
	seen := make(map[float64]ConfigIndex)
	for vis := 0; vis < 2; vis++ {
		for alb := 0; alb < 2; alb++ {
			for alt := 0; alt < 2; alt++ {
				for el := 0; el < 2; el++ {
					for ch := 0; ch < 2; ch++ {
						idx := ConfigIndex{Channel: ch, Elevation: el, Altitude: alt, Albedo: alb, Visibility: vis}
						b := Base(idx)
						if prev, ok := seen[b]; ok {
							t.Fatalf("base %v shared by %+v and %+v", b, prev, idx)
						}
						seen[b] = idx
					}
				}
			}
		}
	}
}

func TestWriteTo_ComponentMismatch(t *testing.T) {
	d := Default()
	d.TensorComponents = 2

	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err == nil {
		t.Error("expected error for component count mismatch")
	}
}

func TestWriteFile(t *testing.T) {
	path := t.TempDir() + "/sky.dat"
	if err := Default().WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}
