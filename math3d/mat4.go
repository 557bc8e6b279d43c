package math3d

import "math"

// Mat4 is a 4x4 homogeneous transform matrix in column-major order:
// element (row i, col j) lives at m[i + j*4].
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

// Scale returns a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// RotateX returns a rotation matrix around the X axis (radians).
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[5] = c
	m[6] = s
	m[9] = -s
	m[10] = c
	return m
}

// RotateY returns a rotation matrix around the Y axis (radians).
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0] = c
	m[2] = -s
	m[8] = s
	m[10] = c
	return m
}

// RotateZ returns a rotation matrix around the Z axis (radians).
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0] = c
	m[1] = s
	m[4] = -s
	m[5] = c
	return m
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// EulerZYX builds a rotation from Euler angles in degrees, applied
// intrinsically X-then-Y-then-Z, i.e. Rz·Ry·Rx.
func EulerZYX(rxDeg, ryDeg, rzDeg float64) Mat4 {
	return RotateZ(Radians(rzDeg)).Mul(RotateY(Radians(ryDeg))).Mul(RotateX(Radians(rxDeg)))
}

// Mul returns the matrix product a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += a[row+k*4] * b[k+col*4]
			}
			r[row+col*4] = sum
		}
	}
	return r
}

// MulVec4 returns the matrix-vector product m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulVec3 transforms a point (w=1), including translation.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// MulVec3Dir transforms a direction (w=0), ignoring translation.
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[col+row*4] = m[row+col*4]
		}
	}
	return r
}

// Inverse returns the inverse of an affine transform (rotation, scale,
// translation). The bottom row is assumed to be (0, 0, 0, 1).
func (m Mat4) Inverse() Mat4 {
	// Invert the upper-left 3x3 via the adjugate.
	a00, a01, a02 := m[0], m[4], m[8]
	a10, a11, a12 := m[1], m[5], m[9]
	a20, a21, a22 := m[2], m[6], m[10]

	det := a00*(a11*a22-a12*a21) - a01*(a10*a22-a12*a20) + a02*(a10*a21-a11*a20)
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	var r Mat4
	r[0] = (a11*a22 - a12*a21) * inv
	r[4] = (a02*a21 - a01*a22) * inv
	r[8] = (a01*a12 - a02*a11) * inv
	r[1] = (a12*a20 - a10*a22) * inv
	r[5] = (a00*a22 - a02*a20) * inv
	r[9] = (a02*a10 - a00*a12) * inv
	r[2] = (a10*a21 - a11*a20) * inv
	r[6] = (a01*a20 - a00*a21) * inv
	r[10] = (a00*a11 - a01*a10) * inv

	// Inverse translation: -R⁻¹ · t
	tx, ty, tz := m[12], m[13], m[14]
	r[12] = -(r[0]*tx + r[4]*ty + r[8]*tz)
	r[13] = -(r[1]*tx + r[5]*ty + r[9]*tz)
	r[14] = -(r[2]*tx + r[6]*ty + r[10]*tz)
	r[15] = 1
	return r
}

// Mat4FromSlice builds a Mat4 from a 16-element column-major slice.
func Mat4FromSlice(s []float64) Mat4 {
	var m Mat4
	copy(m[:], s)
	return m
}

// QuatToMat4 converts a unit quaternion (x, y, z, w) to a rotation matrix.
func QuatToMat4(x, y, z, w float64) Mat4 {
	m := Identity()
	m[0] = 1 - 2*(y*y+z*z)
	m[1] = 2 * (x*y + z*w)
	m[2] = 2 * (x*z - y*w)
	m[4] = 2 * (x*y - z*w)
	m[5] = 1 - 2*(x*x+z*z)
	m[6] = 2 * (y*z + x*w)
	m[8] = 2 * (x*z + y*w)
	m[9] = 2 * (y*z - x*w)
	m[10] = 1 - 2*(x*x+y*y)
	return m
}

// LookAt builds a right-handed view matrix with the camera at eye,
// looking at target, with up as the approximate up direction.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	var m Mat4
	m[0] = s.X
	m[4] = s.Y
	m[8] = s.Z
	m[1] = u.X
	m[5] = u.Y
	m[9] = u.Z
	m[2] = -f.X
	m[6] = -f.Y
	m[10] = -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	m[15] = 1
	return m
}

// Perspective builds a perspective projection matrix.
// fovYDeg is the vertical field of view in degrees.
func Perspective(fovYDeg, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(Radians(fovYDeg)/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}
