package sim

import (
	"math"
	"testing"
)

func TestVecRotate(t *testing.T) {
	tests := []struct {
		v    Vec2
		deg  float64
		want Vec2
	}{
		{V(1, 0), 0, V(1, 0)},
		{V(1, 0), 90, V(0, 1)},
		{V(1, 0), 180, V(-1, 0)},
		{V(0, 2), -90, V(2, 0)},
		{V(3, 4), 360, V(3, 4)},
	}
	for _, tt := range tests {
		got := tt.v.Rotate(tt.deg)
		if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
			t.Errorf("%v.Rotate(%v) = %v, expected %v", tt.v, tt.deg, got, tt.want)
		}
	}
}

func TestVecAngles(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"angle of +y", V(0, 5).Angle(), 90},
		{"angle of -x", V(-1, 0).Angle(), 180},
		{"angle to +y", V(1, 0).AngleTo(V(0, 1)), 90},
		{"angle to -y", V(1, 0).AngleTo(V(0, -1)), -90},
		{"unit length", Unit(37).Len(), 1},
	}
	for _, tt := range tests {
		if !near(tt.got, tt.want) {
			t.Errorf("%s = %v, expected %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestVecNormalize(t *testing.T) {
	if got := (Vec2{}).Normalize(); got != (Vec2{}) {
		t.Errorf("zero.Normalize() = %v, expected zero", got)
	}
	if got := V(3, 4).Normalize(); !near(got.X, 0.6) || !near(got.Y, 0.8) {
		t.Errorf("(3,4).Normalize() = %v, expected (0.6, 0.8)", got)
	}
	if V(math.Inf(1), 0).Finite() || V(0, math.NaN()).Finite() {
		t.Error("Finite() = true for a non-finite vector")
	}
}

func TestRNGRange(t *testing.T) {
	rng := NewRNG(3)
	seen := map[int]bool{}
	for range 1000 {
		v := rng.Range(2, 5)
		if v < 2 || v > 5 {
			t.Fatalf("Range(2, 5) = %d, expected within [2, 5]", v)
		}
		seen[v] = true
	}
	if len(seen) != 4 {
		t.Errorf("Range(2, 5) produced %d distinct values, expected 4", len(seen))
	}
	if v := rng.Range(7, 7); v != 7 {
		t.Errorf("Range(7, 7) = %d, expected 7", v)
	}
	if v := rng.Range(5, 2); v < 2 || v > 5 {
		t.Errorf("Range(5, 2) = %d, expected within [2, 5]", v)
	}
	if v := rng.Intn(0); v != 0 {
		t.Errorf("Intn(0) = %d, expected 0", v)
	}
	for range 100 {
		if f := rng.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, expected within [0, 1)", f)
		}
	}
}

func TestRNGSeeds(t *testing.T) {
	a, b := NewRNG(9), NewRNG(9)
	for range 50 {
		if a.Next() != b.Next() {
			t.Fatal("same seed diverged")
		}
	}
	if NewRNG(0).Next() == 0 {
		t.Error("zero seed produced a zero value")
	}
}
