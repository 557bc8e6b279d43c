// Package projection maps world-space points to 2D pixel coordinates
// through a pinhole camera model.
package projection

import (
	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/scene"
)

// Image bounds of the fixed virtual sensor.
const (
	ImageWidth  = 640
	ImageHeight = 480
)

// NearClamp is the depth floor applied before the perspective divide.
// Points behind or very near the camera plane are clamped to this depth
// instead of being rejected; this is an approximate near-plane handling,
// not a physically correct clip.
const NearClamp = 0.1

// Intrinsics is the pinhole camera matrix
// [[fx, 0, cx], [0, fy, cy], [0, 0, 1]]:
// focal lengths in pixels plus the principal point.
type Intrinsics struct {
	Fx, Fy float64
	Cx, Cy float64
}

// Default returns the fixed intrinsics used by the viewer: 800px focal
// lengths with the principal point at the center of a 640x480 image.
func Default() Intrinsics {
	return Intrinsics{Fx: 800, Fy: 800, Cx: 320, Cy: 240}
}

// Extrinsics is the camera pose used for projection: the derived orthonormal
// basis plus the world-space position.
type Extrinsics struct {
	Basis    scene.Basis
	Position math3d.Vec3
}

// rotation is the 3x3 world-to-camera matrix stored row-major.
type rotation [9]float64

// mulVec3 returns r * v.
func (r rotation) mulVec3(v math3d.Vec3) math3d.Vec3 {
	return math3d.Vec3{
		X: r[0]*v.X + r[1]*v.Y + r[2]*v.Z,
		Y: r[3]*v.X + r[4]*v.Y + r[5]*v.Z,
		Z: r[6]*v.X + r[7]*v.Y + r[8]*v.Z,
	}
}

// poseRotation builds R by stacking [right, up×right, up] as columns.
// The middle column equals the viewing direction for an orthonormal basis.
// A conventional world-to-camera matrix would stack these as rows; the
// column stacking is deliberate and pinned by the fixtures in the tests.
// See DESIGN.md.
func poseRotation(b scene.Basis) rotation {
	mid := b.Up.Cross(b.Right)
	return rotation{
		b.Right.X, mid.X, b.Up.X,
		b.Right.Y, mid.Y, b.Up.Y,
		b.Right.Z, mid.Z, b.Up.Z,
	}
}

// Project maps world points to pixel coordinates: p -> R·p + t with
// t = -R·position, depth clamp at NearClamp, perspective divide, then the
// intrinsics matrix. The result keeps the input's indexing, so index-pair
// edge lists remain valid against it. Projection is stateless and fully
// recomputed on every call.
func Project(ext Extrinsics, k Intrinsics, points []math3d.Vec3) []math3d.Vec2 {
	r := poseRotation(ext.Basis)
	t := r.mulVec3(ext.Position).Negate()

	out := make([]math3d.Vec2, len(points))
	for i, p := range points {
		cam := r.mulVec3(p).Add(t)
		z := cam.Z
		if z < NearClamp {
			z = NearClamp
		}
		x := cam.X / z
		y := cam.Y / z
		out[i] = math3d.V2(k.Fx*x+k.Cx, k.Fy*y+k.Cy)
	}
	return out
}

// ProjectPoint projects a single world point.
func ProjectPoint(ext Extrinsics, k Intrinsics, p math3d.Vec3) math3d.Vec2 {
	return Project(ext, k, []math3d.Vec3{p})[0]
}

// ProjectEdges projects points and resolves an index-pair edge list against
// the projected pixels, returning one endpoint pair per edge. Edges with an
// index outside the point list are skipped.
func ProjectEdges(ext Extrinsics, k Intrinsics, points []math3d.Vec3, edges [][2]int) [][2]math3d.Vec2 {
	pixels := Project(ext, k, points)
	out := make([][2]math3d.Vec2, 0, len(edges))
	for _, e := range edges {
		if e[0] < 0 || e[0] >= len(pixels) || e[1] < 0 || e[1] >= len(pixels) {
			continue
		}
		out = append(out, [2]math3d.Vec2{pixels[e[0]], pixels[e[1]]})
	}
	return out
}

// Depths returns the camera-space depth of each point before clamping,
// useful for diagnostics (a depth below NearClamp means the pixel came from
// a clamped divide).
func Depths(ext Extrinsics, points []math3d.Vec3) []float64 {
	r := poseRotation(ext.Basis)
	t := r.mulVec3(ext.Position).Negate()
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = r.mulVec3(p).Add(t).Z
	}
	return out
}

// InImage reports whether a pixel lies within the fixed image bounds.
func InImage(p math3d.Vec2) bool {
	return p.X >= 0 && p.X <= ImageWidth && p.Y >= 0 && p.Y <= ImageHeight
}
