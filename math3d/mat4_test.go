package math3d

import (
	"math"
	"testing"
)

func TestMat4IdentityMul(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.7))
	if got := m.Mul(Identity()); got != m {
		t.Errorf("m * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * m = %v, want %v", got, m)
	}
}

func TestMat4TranslatePoint(t *testing.T) {
	m := Translate(V3(1, -2, 3))
	got := m.MulVec3(V3(10, 10, 10))
	if !vecNear(got, V3(11, 8, 13), eps) {
		t.Errorf("translate point = %v, want (11, 8, 13)", got)
	}
	// Directions are unaffected by translation.
	if dir := m.MulVec3Dir(V3(1, 0, 0)); !vecNear(dir, V3(1, 0, 0), eps) {
		t.Errorf("translate dir = %v, want (1, 0, 0)", dir)
	}
}

func TestMat4RotateZQuarterTurn(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	got := m.MulVec3(V3(1, 0, 0))
	if !vecNear(got, V3(0, 1, 0), 1e-15) {
		t.Errorf("RotateZ(90°) * x = %v, want y", got)
	}
}

func TestMat4EulerZYXOrder(t *testing.T) {
	// EulerZYX must equal Rz·Ry·Rx applied to a point in that order.
	rx, ry, rz := 30.0, -45.0, 60.0
	want := RotateZ(Radians(rz)).Mul(RotateY(Radians(ry))).Mul(RotateX(Radians(rx)))
	got := EulerZYX(rx, ry, rz)
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("EulerZYX[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	// Rotation matrices preserve length.
	p := V3(1, 2, 3)
	if got, want := got.MulVec3(p).Len(), p.Len(); math.Abs(got-want) > 1e-12 {
		t.Errorf("rotated length = %v, want %v", got, want)
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))
	inv := m.Inverse()
	p := V3(4, -5, 6)
	got := inv.MulVec3(m.MulVec3(p))
	if !vecNear(got, p, 1e-9) {
		t.Errorf("inv(m) * m * p = %v, want %v", got, p)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := V3(0, 0, 10)
	view := LookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	// The eye maps to the origin of view space.
	if got := view.MulVec3(eye); !vecNear(got, Zero3(), 1e-12) {
		t.Errorf("view * eye = %v, want origin", got)
	}
	// A point in front of the camera lands on the -Z axis.
	if got := view.MulVec3(V3(0, 0, 0)); !vecNear(got, V3(0, 0, -10), 1e-12) {
		t.Errorf("view * target = %v, want (0, 0, -10)", got)
	}
}

func TestMat4Perspective(t *testing.T) {
	proj := Perspective(60, 4.0/3.0, 0.1, 100)
	// A point on the near plane straight ahead maps to NDC z = -1.
	clip := proj.MulVec4(V4(0, 0, -0.1, 1))
	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.Z+1) > 1e-9 {
		t.Errorf("near plane NDC z = %v, want -1", ndc.Z)
	}
	// And the far plane to NDC z = +1.
	clip = proj.MulVec4(V4(0, 0, -100, 1))
	ndc = clip.PerspectiveDivide()
	if math.Abs(ndc.Z-1) > 1e-9 {
		t.Errorf("far plane NDC z = %v, want 1", ndc.Z)
	}
}

func TestMat4Transpose(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateX(0.3))
	if got := m.Transpose().Transpose(); got != m {
		t.Errorf("double transpose = %v, want %v", got, m)
	}
}
