package math3d

import (
	"math"
	"testing"
)

const eps = 1e-12

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestVec3Cross(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z cross x", V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"parallel", V3(2, 2, 2), V3(1, 1, 1), V3(0, 0, 0)},
		{"anti-commutes", V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cross(tt.b)
			if !vecNear(got, tt.want, eps) {
				t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if !vecNear(v, V3(0.6, 0.8, 0), eps) {
		t.Errorf("Normalize(3,4,0) = %v, want (0.6, 0.8, 0)", v)
	}
	if got := v.Len(); math.Abs(got-1) > eps {
		t.Errorf("normalized length = %v, want 1", got)
	}
	// Zero vector stays zero rather than producing NaN.
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
}

func TestVec3DotOrthogonal(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-5, 1, 7)
	c := a.Cross(b)
	if d := a.Dot(c); math.Abs(d) > eps {
		t.Errorf("a · (a × b) = %v, want 0", d)
	}
	if d := b.Dot(c); math.Abs(d) > eps {
		t.Errorf("b · (a × b) = %v, want 0", d)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Error("V3(1,2,3).IsFinite() = false, want true")
	}
	if V3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if V3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
