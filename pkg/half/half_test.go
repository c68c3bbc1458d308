package half

import (
	"math"
	"testing"

	exrhalf "github.com/mrjoshuak/go-openexr/half"
)

func TestToFloat64_KnownPatterns(t *testing.T) {
	tests := []struct {
		name string
		bits uint16
		want float64
	}{
		{"zero", 0x0000, 0.0},
		{"one", 0x3C00, 1.0},
		{"minus two", 0xC000, -2.0},
		{"half", 0x3800, 0.5},
		{"max normal", 0x7BFF, 65504.0},
		{"min normal", 0x0400, math.Ldexp(1, -14)},
		{"min subnormal", 0x0001, math.Ldexp(1, -24)},
		{"max subnormal", 0x03FF, math.Ldexp(1023, -24)},
		{"one third", 0x3555, 0.333251953125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToFloat64(tt.bits)
			if got != tt.want {
				t.Errorf("ToFloat64(0x%04X) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}
}

func TestToFloat64_NegativeZero(t *testing.T) {
	got := ToFloat64(0x8000)
	if got != 0 || !math.Signbit(got) {
		t.Errorf("ToFloat64(0x8000) = %v (signbit %v), want -0", got, math.Signbit(got))
	}
}

func TestToFloat64_Infinity(t *testing.T) {
	if got := ToFloat64(0x7C00); !math.IsInf(got, 1) {
		t.Errorf("ToFloat64(0x7C00) = %v, want +Inf", got)
	}
	if got := ToFloat64(0xFC00); !math.IsInf(got, -1) {
		t.Errorf("ToFloat64(0xFC00) = %v, want -Inf", got)
	}
}

// Every finite pattern must agree with an independent decoder.
func TestToFloat64_MatchesOracle(t *testing.T) {
	for i := 0; i <= 0xFFFF; i++ {
		bits := uint16(i)
		if bits&0x7C00 == 0x7C00 {
			continue
		}
		want := float64(exrhalf.Half(bits).Float32())
		got := ToFloat64(bits)
		if got != want || math.Signbit(got) != math.Signbit(want) {
			t.Fatalf("ToFloat64(0x%04X) = %v, oracle %v", bits, got, want)
		}
	}
}

func TestFromFloat32_RoundTrip(t *testing.T) {
	for i := 0; i <= 0xFFFF; i++ {
		bits := uint16(i)
		if bits&0x7C00 == 0x7C00 {
			continue
		}
		f := float32(ToFloat64(bits))
		if got := FromFloat32(f); got != bits {
			t.Fatalf("FromFloat32(%v) = 0x%04X, want 0x%04X", f, got, bits)
		}
	}
}

func TestFromFloat32_Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want uint16
	}{
		{"overflow", 1e6, 0x7C00},
		{"negative overflow", -1e6, 0xFC00},
		{"underflow", 1e-10, 0x0000},
		{"tie to even down", 1 + 1.0/2048, 0x3C00},
		{"tie to even up", 1 + 3.0/2048, 0x3C02},
		{"above tie", 1 + 1.0/2048 + 1.0/65536, 0x3C01},
		{"subnormal tie", float32(math.Ldexp(1, -25)), 0x0000},
		{"subnormal above tie", float32(math.Ldexp(1.5, -25)), 0x0001},
		{"nan", float32(math.NaN()), 0x7E00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromFloat32(tt.in); got != tt.want {
				t.Errorf("FromFloat32(%v) = 0x%04X, want 0x%04X", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	src := []uint16{0x3C00, 0x4000, 0x4200}
	dst := make([]float64, 2)

	n := Decode(dst, src)
	if n != 2 {
		t.Fatalf("Decode returned %d, want 2", n)
	}
	if dst[0] != 1 || dst[1] != 2 {
		t.Errorf("Decode = %v, want [1 2]", dst)
	}
}
