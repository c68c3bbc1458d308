package skymodel

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/skyground/pkg/half"
)

func TestMapParameter(t *testing.T) {
	axis := []float64{20, 50, 100}

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"below", 10, 0},
		{"first", 20, 0},
		{"between first", 35, 0.5},
		{"exact", 50, 1},
		{"snap above", 50 + 1e-7, 1},
		{"snap below", 50 - 1e-7, 1},
		{"between last", 75, 1.5},
		{"last", 100, 2},
		{"above", 150, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapParameter(tt.value, axis); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MapParameter(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestMapParameter_Degenerate(t *testing.T) {
	if got := MapParameter(0, []float64{0}); got != 0 {
		t.Errorf("single value axis: expected 0, got %v", got)
	}
	if got := MapParameter(500, []float64{0}); got != 0 {
		t.Errorf("single value axis above: expected 0, got %v", got)
	}
	if got := MapParameter(1, nil); got != 0 {
		t.Errorf("empty axis: expected 0, got %v", got)
	}
	if got := MapParameter(math.NaN(), []float64{0, 1}); got != 0 {
		t.Errorf("NaN: expected 0, got %v", got)
	}
}

func TestFindSegment(t *testing.T) {
	breaks := []float64{0, 1, 2, 3}

	tests := []struct {
		x    float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0},
		{1, 0},
		{1.5, 1},
		{2.5, 2},
		{3, 2},
		{10, 2},
	}

	for _, tt := range tests {
		if got := FindSegment(tt.x, breaks); got != tt.want {
			t.Errorf("FindSegment(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestFindSegment_PastLastBreak(t *testing.T) {
	// Past the last breakpoint the last segment is extrapolated instead of
	// indexing past the coefficient block.
	breaks := []float64{0, math.Pi / 2, math.Pi}
	seg := FindSegment(4, breaks)
	if seg != len(breaks)-2 {
		t.Fatalf("expected last segment %d, got %d", len(breaks)-2, seg)
	}

	coefs := []float64{1, 0, 2, 10}
	want := 2*(4-math.Pi/2) + 10
	if got := evalSegment(4, seg, breaks, coefs); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got := FindSegment(5, []float64{0, 1}); got != 0 {
		t.Errorf("two breakpoints: expected 0, got %d", got)
	}
}

func TestSynthesizeSegments(t *testing.T) {
	breaks := []float64{0, 2, 3}
	samples := []uint16{half.FromFloat32(1), half.FromFloat32(5), half.FromFloat32(2)}

	got := synthesizeSegments(nil, breaks, samples, 2)
	want := []float64{1, 0.5, -1.5, 2.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d coefs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("coef %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	// The piecewise function passes through every scaled sample.
	for i, b := range breaks {
		seg := FindSegment(b, breaks)
		v := evalSegment(b, seg, breaks, got)
		if s := half.ToFloat64(samples[i]) / 2; math.Abs(v-s) > 1e-12 {
			t.Errorf("break %d: expected %v, got %v", i, s, v)
		}
	}
}

func TestSynthesizeSegments_Appends(t *testing.T) {
	dst := []float64{42}
	dst = synthesizeSegments(dst, []float64{0, 1}, []uint16{0, half.FromFloat32(1)}, 1)
	if len(dst) != 3 || dst[0] != 42 || dst[1] != 1 || dst[2] != 0 {
		t.Errorf("unexpected result %v", dst)
	}
}

func TestFindInAxis(t *testing.T) {
	axis := []float64{20, 100}

	tests := []struct {
		value     float64
		wantIndex int
		wantInc   int
		wantW     float64
	}{
		{10, 0, 0, 1},
		{20, 0, 0, 1},
		{60, 0, 1, 0.5},
		{80, 0, 1, 0.75},
		{100, 1, 0, 0},
		{200, 1, 0, 0},
	}

	for _, tt := range tests {
		index, inc, w := findInAxis(axis, tt.value)
		if index != tt.wantIndex || inc != tt.wantInc || math.Abs(w-tt.wantW) > 1e-12 {
			t.Errorf("findInAxis(%v) = (%d, %d, %v), want (%d, %d, %v)",
				tt.value, index, inc, w, tt.wantIndex, tt.wantInc, tt.wantW)
		}
	}
}

func TestNewLayout(t *testing.T) {
	dims := [numDims]int{2, 3, 1, 2, 4}
	l, err := newLayout(dims, 2, 3, 4, 2)
	if err != nil {
		t.Fatalf("newLayout failed: %v", err)
	}

	// Per component: 2 sun segments and 3 zenith segments.
	if l.sunStride != 10 {
		t.Errorf("expected component stride 10, got %d", l.sunStride)
	}
	if l.emphOffset != 20 || l.singleConfig != 22 {
		t.Errorf("expected emph at 20 and block of 22, got %d and %d", l.emphOffset, l.singleConfig)
	}
	if l.totalConfigs != 48 || l.allConfigs != 48*22 {
		t.Errorf("expected 48 configs of 22 coefs, got %d and %d", l.totalConfigs, l.allConfigs)
	}

	// Channel varies fastest, visibility slowest.
	p := gridPoint{1, 2, 0, 1, 3}
	want := 1 + 2*2 + 0 + 1*6 + 3*12
	if got := l.configIndex(p); got != want {
		t.Errorf("expected config index %d, got %d", want, got)
	}
	if got := l.configIndex(gridPoint{1, 2, 0, 1, 3}); got != l.totalConfigs-1 {
		t.Errorf("expected last config %d, got %d", l.totalConfigs-1, got)
	}

	block := make([]float64, l.singleConfig)
	if n := len(l.sunCoefs(block, 1)); n != 4 {
		t.Errorf("expected 4 sun coefs, got %d", n)
	}
	if n := len(l.zenithCoefs(block, 1)); n != 6 {
		t.Errorf("expected 6 zenith coefs, got %d", n)
	}
	if n := len(l.emphCoefs(block)); n != 2 {
		t.Errorf("expected 2 emphasis coefs, got %d", n)
	}
}

func TestNewLayout_Overflow(t *testing.T) {
	tests := []struct {
		name  string
		dims  [numDims]int
		field string
	}{
		{"config count", [numDims]int{maxCount, maxCount, maxCount, maxCount, maxCount}, "total_configs"},
		{"buffer size", [numDims]int{maxCount, 1 << 12, 1, 1, 1}, "total_coefs_all_configs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLayout(tt.dims, 1, 3, 3, 2)
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FormatError, got %v", err)
			}
			if fe.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, fe.Field)
			}
		})
	}
}
