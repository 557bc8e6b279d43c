package scene

import (
	"fmt"

	"github.com/ansipixels/camlab/math3d"
)

// Surface holds three same-shape grids of world X, Y and Z coordinates for a
// parametric surface draw. Grids are indexed [row][col].
type Surface struct {
	X, Y, Z [][]float64
}

// Rows returns the number of grid rows.
func (s *Surface) Rows() int {
	return len(s.X)
}

// Cols returns the number of grid columns.
func (s *Surface) Cols() int {
	if len(s.X) == 0 {
		return 0
	}
	return len(s.X[0])
}

// Point returns the world-space point at grid cell (row, col).
func (s *Surface) Point(row, col int) math3d.Vec3 {
	return math3d.V3(s.X[row][col], s.Y[row][col], s.Z[row][col])
}

// Plane is a square surface grid positioned by a center point and Euler
// rotation angles. The surface always reflects the current center, rotation,
// scale and resolution; setters recompute it.
type Plane struct {
	center     math3d.Vec3
	rotation   math3d.Vec3 // Euler angles in degrees, applied X then Y then Z
	scale      float64     // half-extent of the local grid
	resolution int         // grid points per axis
	surface    *Surface
}

// NewPlane creates a plane centered at center, rotated by the given Euler
// angles (degrees, intrinsic X-then-Y-then-Z order), spanning
// [-scale, scale]² locally with resolution grid points per axis.
func NewPlane(center, rotationDeg math3d.Vec3, scale float64, resolution int) (*Plane, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: plane scale %v must be > 0", ErrInvalidArgument, scale)
	}
	if resolution < 2 {
		return nil, fmt.Errorf("%w: plane resolution %d must be >= 2", ErrInvalidArgument, resolution)
	}
	p := &Plane{
		center:     center,
		rotation:   rotationDeg,
		scale:      scale,
		resolution: resolution,
	}
	p.recompute()
	return p, nil
}

// Center returns the plane center.
func (p *Plane) Center() math3d.Vec3 {
	return p.center
}

// Rotation returns the Euler angles in degrees.
func (p *Plane) Rotation() math3d.Vec3 {
	return p.rotation
}

// Scale returns the local half-extent.
func (p *Plane) Scale() float64 {
	return p.scale
}

// Resolution returns the grid point count per axis.
func (p *Plane) Resolution() int {
	return p.resolution
}

// Surface returns the current world-space coordinate grids.
func (p *Plane) Surface() *Surface {
	return p.surface
}

// SetCenter moves the plane and recomputes the surface.
func (p *Plane) SetCenter(c math3d.Vec3) {
	p.center = c
	p.recompute()
}

// SetRotation replaces the Euler angles (degrees) and recomputes the surface.
func (p *Plane) SetRotation(rotationDeg math3d.Vec3) {
	p.rotation = rotationDeg
	p.recompute()
}

// recompute rebuilds the surface grids: a regular local grid in the XY plane
// at Z=0, lifted to homogeneous coordinates and transformed by
// Translate(center) · Rz·Ry·Rx.
func (p *Plane) recompute() {
	n := p.resolution
	transform := math3d.Translate(p.center).
		Mul(math3d.EulerZYX(p.rotation.X, p.rotation.Y, p.rotation.Z))

	s := &Surface{
		X: make([][]float64, n),
		Y: make([][]float64, n),
		Z: make([][]float64, n),
	}
	step := 2 * p.scale / float64(n-1)
	for row := 0; row < n; row++ {
		s.X[row] = make([]float64, n)
		s.Y[row] = make([]float64, n)
		s.Z[row] = make([]float64, n)
		ly := -p.scale + float64(row)*step
		for col := 0; col < n; col++ {
			lx := -p.scale + float64(col)*step
			w := transform.MulVec3(math3d.V3(lx, ly, 0))
			s.X[row][col] = w.X
			s.Y[row][col] = w.Y
			s.Z[row][col] = w.Z
		}
	}
	p.surface = s
}

// GridLines returns the surface as row and column polylines for wireframe
// display.
func (p *Plane) GridLines() [][]math3d.Vec3 {
	n := p.resolution
	lines := make([][]math3d.Vec3, 0, 2*n)
	for row := 0; row < n; row++ {
		line := make([]math3d.Vec3, n)
		for col := 0; col < n; col++ {
			line[col] = p.surface.Point(row, col)
		}
		lines = append(lines, line)
	}
	for col := 0; col < n; col++ {
		line := make([]math3d.Vec3, n)
		for row := 0; row < n; row++ {
			line[row] = p.surface.Point(row, col)
		}
		lines = append(lines, line)
	}
	return lines
}
