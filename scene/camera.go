package scene

import (
	"fmt"

	"github.com/ansipixels/camlab/math3d"
)

// parallelEpsilon bounds the squared length of direction × upHint below
// which the two are treated as parallel.
const parallelEpsilon = 1e-18

// Basis is the camera's orthonormal coordinate frame derived from a look-at
// target. With this construction Up × Right = Direction exactly: the camera
// looks along the -Z axis of the ordered (Right, Up, Direction) frame,
// OpenGL-style.
type Basis struct {
	Right     math3d.Vec3
	Up        math3d.Vec3
	Direction math3d.Vec3
}

// FrustumVertexCount is the number of display vertices of the camera
// frustum: one apex plus four base corners.
const FrustumVertexCount = 5

// Camera models a pinhole camera's extrinsics for display and projection.
// Position, up hint and frustum size are inputs; the orthonormal basis and
// the frustum vertices are derived once a look-at target is set, and
// recomputed on every input change. The up hint is kept separate from the
// derived orthonormal up: each recompute re-reads the original hint, so
// repeated LookAt calls do not drift.
type Camera struct {
	position math3d.Vec3
	upHint   math3d.Vec3
	size     float64

	oriented bool // false until the first successful LookAt
	target   math3d.Vec3
	basis    Basis
	vertices [FrustumVertexCount]math3d.Vec3
}

// NewCamera creates a camera at position with the given approximate up
// vector and frustum half-extent. The basis and frustum vertices remain
// undefined until LookAt succeeds.
func NewCamera(position, upHint math3d.Vec3, size float64) (*Camera, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: frustum size %v must be > 0", ErrInvalidArgument, size)
	}
	if upHint.LenSq() == 0 {
		return nil, fmt.Errorf("%w: up hint must be nonzero", ErrInvalidArgument)
	}
	return &Camera{
		position: position,
		upHint:   upHint,
		size:     size,
	}, nil
}

// Position returns the camera position.
func (c *Camera) Position() math3d.Vec3 {
	return c.position
}

// UpHint returns the user-supplied approximate up vector. It is not
// guaranteed orthogonal to the viewing direction; see Basis for the
// orthonormalized up.
func (c *Camera) UpHint() math3d.Vec3 {
	return c.upHint
}

// Size returns the frustum half-extent.
func (c *Camera) Size() float64 {
	return c.size
}

// Oriented reports whether a look-at target has been set, i.e. whether the
// basis and frustum vertices are defined.
func (c *Camera) Oriented() bool {
	return c.oriented
}

// Basis returns the derived orthonormal basis. ok is false before the first
// successful LookAt.
func (c *Camera) Basis() (b Basis, ok bool) {
	return c.basis, c.oriented
}

// Target returns the current look-at target. ok is false before the first
// successful LookAt.
func (c *Camera) Target() (t math3d.Vec3, ok bool) {
	return c.target, c.oriented
}

// FrustumVertices returns the 5 display vertices: the apex (camera position)
// followed by the base corners in (-right,-up), (+right,-up), (+right,+up),
// (-right,+up) order. ok is false before the first successful LookAt.
func (c *Camera) FrustumVertices() (v [FrustumVertexCount]math3d.Vec3, ok bool) {
	return c.vertices, c.oriented
}

// FrustumEdgeIndices returns the index-pair edge list over the frustum
// vertices: four apex-to-corner spokes plus the closed base loop.
func FrustumEdgeIndices() [8][2]int {
	return [8][2]int{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {2, 3}, {3, 4}, {4, 1},
	}
}

// SetPosition moves the camera. If a target is set, the basis and vertices
// are recomputed; on failure (e.g. the new position coincides with the
// target) the camera keeps its previous state.
func (c *Camera) SetPosition(p math3d.Vec3) error {
	if !c.oriented {
		c.position = p
		return nil
	}
	basis, verts, err := derive(p, c.target, c.upHint, c.size)
	if err != nil {
		return err
	}
	c.position = p
	c.basis = basis
	c.vertices = verts
	return nil
}

// SetSize changes the frustum half-extent and recomputes the vertices if a
// target is set.
func (c *Camera) SetSize(s float64) error {
	if s <= 0 {
		return fmt.Errorf("%w: frustum size %v must be > 0", ErrInvalidArgument, s)
	}
	c.size = s
	if c.oriented {
		c.vertices = frustumVertices(c.position, c.basis, s)
	}
	return nil
}

// SetUpHint replaces the approximate up vector and recomputes the basis if a
// target is set. The hint feeds every subsequent recompute.
func (c *Camera) SetUpHint(up math3d.Vec3) error {
	if up.LenSq() == 0 {
		return fmt.Errorf("%w: up hint must be nonzero", ErrInvalidArgument)
	}
	if !c.oriented {
		c.upHint = up
		return nil
	}
	basis, verts, err := derive(c.position, c.target, up, c.size)
	if err != nil {
		return err
	}
	c.upHint = up
	c.basis = basis
	c.vertices = verts
	return nil
}

// LookAt orients the camera toward target, deriving the orthonormal basis
// and the frustum vertices. Returns ErrDegenerateDirection when target
// equals the camera position and ErrDegenerateBasis when the direction is
// parallel to the up hint; in both cases the camera state is unchanged.
func (c *Camera) LookAt(target math3d.Vec3) error {
	basis, verts, err := derive(c.position, target, c.upHint, c.size)
	if err != nil {
		return err
	}
	c.target = target
	c.basis = basis
	c.vertices = verts
	c.oriented = true
	return nil
}

// derive computes the full snapshot of derived camera state. It has no side
// effects so callers can commit atomically on success.
func derive(position, target, upHint math3d.Vec3, size float64) (Basis, [FrustumVertexCount]math3d.Vec3, error) {
	var verts [FrustumVertexCount]math3d.Vec3

	dir := target.Sub(position)
	if dir.LenSq() == 0 {
		return Basis{}, verts, fmt.Errorf("%w: target %v", ErrDegenerateDirection, target)
	}
	dir = dir.Normalize()

	right := dir.Cross(upHint)
	if right.LenSq() < parallelEpsilon {
		return Basis{}, verts, fmt.Errorf("%w: direction %v, up hint %v", ErrDegenerateBasis, dir, upHint)
	}
	right = right.Normalize()
	up := right.Cross(dir).Normalize()

	basis := Basis{Right: right, Up: up, Direction: dir}
	return basis, frustumVertices(position, basis, size), nil
}

// frustumVertices builds the apex plus the four base corners
// position + size·(±right + direction ± up) in the fixed winding order.
func frustumVertices(position math3d.Vec3, b Basis, size float64) [FrustumVertexCount]math3d.Vec3 {
	corner := func(sr, su float64) math3d.Vec3 {
		return position.Add(b.Right.Scale(sr).Add(b.Direction).Add(b.Up.Scale(su)).Scale(size))
	}
	return [FrustumVertexCount]math3d.Vec3{
		position,
		corner(-1, -1),
		corner(1, -1),
		corner(1, 1),
		corner(-1, 1),
	}
}
