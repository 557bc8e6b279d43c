package projection

import (
	"math"
	"testing"

	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/scene"
)

func pose(t *testing.T, pos, target math3d.Vec3) Extrinsics {
	t.Helper()
	cam, err := scene.NewCamera(pos, math3d.V3(0, 0, 1), 0.3)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	if err := cam.LookAt(target); err != nil {
		t.Fatalf("LookAt: %v", err)
	}
	b, _ := cam.Basis()
	return Extrinsics{Basis: b, Position: cam.Position()}
}

func unitCube(t *testing.T) *scene.Cube {
	t.Helper()
	cube, err := scene.NewCube(math3d.Zero3(), 1)
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}
	return cube
}

func TestProjectSelfPosition(t *testing.T) {
	// The camera's own position transforms to the origin; after the near
	// clamp and divide it must land exactly on the principal point.
	ext := pose(t, math3d.V3(2, -4, 2), math3d.V3(0.5, 0.5, 0.5))
	k := Default()
	got := ProjectPoint(ext, k, ext.Position)
	if !got.IsFinite() {
		t.Fatalf("self projection = %v, want finite", got)
	}
	if math.Abs(got.X-k.Cx) > 1e-9 || math.Abs(got.Y-k.Cy) > 1e-9 {
		t.Errorf("self projection = %v, want (%v, %v)", got, k.Cx, k.Cy)
	}
}

func TestProjectDefaultPose(t *testing.T) {
	// Camera (2,-4,2) looking at the unit cube center. For this pose every
	// cube vertex ends up behind the camera plane, so all depths hit the
	// near clamp and the pixels land far outside the image. The exact
	// values pin the whole pipeline, clamp included.
	ext := pose(t, math3d.V3(2, -4, 2), math3d.V3(0.5, 0.5, 0.5))
	cube := unitCube(t)
	verts := cube.Vertices()

	depths := Depths(ext, verts[:])
	for i, z := range depths {
		if z >= NearClamp {
			t.Errorf("depth[%d] = %v, expected below near clamp for this pose", i, z)
		}
	}

	want := []math3d.Vec2{
		{X: -22981.755653, Y: 19548.824395},
		{X: -15392.289268, Y: 22078.646523},
		{X: -25393.846409, Y: 26785.096665},
		{X: -17804.380025, Y: 29314.918793},
		{X: -23744.525724, Y: 21837.134609},
		{X: -16155.059339, Y: 24366.956737},
		{X: -26156.616481, Y: 29073.406879},
		{X: -18567.150096, Y: 31603.229007},
	}
	got := Project(ext, Default(), verts[:])
	if len(got) != len(want) {
		t.Fatalf("projected %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].IsFinite() {
			t.Fatalf("pixel[%d] = %v, want finite", i, got[i])
		}
		if math.Abs(got[i].X-want[i].X) > 1e-5 || math.Abs(got[i].Y-want[i].Y) > 1e-5 {
			t.Errorf("pixel[%d] = (%.6f, %.6f), want (%.6f, %.6f)",
				i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
	}
}

func TestProjectInFramePose(t *testing.T) {
	// From (1.5,-4,-4) the cube sits fully in frame: positive depths, no
	// clamping, every pixel inside the 640x480 image.
	ext := pose(t, math3d.V3(1.5, -4, -4), math3d.V3(0.5, 0.5, 0.5))
	cube := unitCube(t)
	verts := cube.Vertices()

	for i, z := range Depths(ext, verts[:]) {
		if z <= NearClamp {
			t.Errorf("depth[%d] = %v, want above near clamp", i, z)
		}
	}

	want := []math3d.Vec2{
		{X: 110.813220, Y: 203.389158},
		{X: 248.876940, Y: 234.069985},
		{X: 114.265678, Y: 295.348918},
		{X: 237.153518, Y: 322.657327},
		{X: 153.329699, Y: 121.888583},
		{X: 275.888914, Y: 149.123964},
		{X: 152.232336, Y: 212.593406},
		{X: 262.683312, Y: 237.138067},
	}
	got := Project(ext, Default(), verts[:])
	for i := range want {
		if !InImage(got[i]) {
			t.Errorf("pixel[%d] = %v, want inside %dx%d", i, got[i], ImageWidth, ImageHeight)
		}
		if math.Abs(got[i].X-want[i].X) > 1e-6 || math.Abs(got[i].Y-want[i].Y) > 1e-6 {
			t.Errorf("pixel[%d] = (%.6f, %.6f), want (%.6f, %.6f)",
				i, got[i].X, got[i].Y, want[i].X, want[i].Y)
		}
	}
}

func TestProjectKeepsIndexing(t *testing.T) {
	// Edge index pairs stay valid against the projected slice: projecting a
	// permuted vertex list permutes the output identically.
	ext := pose(t, math3d.V3(1.5, -4, -4), math3d.V3(0.5, 0.5, 0.5))
	cube := unitCube(t)
	verts := cube.Vertices()
	k := Default()

	base := Project(ext, k, verts[:])
	perm := []int{7, 2, 5, 0, 3, 6, 1, 4}
	shuffled := make([]math3d.Vec3, len(perm))
	for i, j := range perm {
		shuffled[i] = verts[j]
	}
	got := Project(ext, k, shuffled)
	for i, j := range perm {
		if got[i] != base[j] {
			t.Errorf("projected[%d] = %v, want %v (vertex %d)", i, got[i], base[j], j)
		}
	}

	// Every cube edge resolves to two valid projected endpoints.
	for _, e := range cube.EdgeIndices() {
		p0, p1 := base[e[0]], base[e[1]]
		if !p0.IsFinite() || !p1.IsFinite() {
			t.Errorf("edge %v projects to non-finite endpoints %v %v", e, p0, p1)
		}
	}
}

func TestProjectEdges(t *testing.T) {
	ext := pose(t, math3d.V3(1.5, -4, -4), math3d.V3(0.5, 0.5, 0.5))
	cube := unitCube(t)
	verts := cube.Vertices()
	k := Default()

	pixels := Project(ext, k, verts[:])
	idx := cube.EdgeIndices()
	edges := ProjectEdges(ext, k, verts[:], idx[:])
	if len(edges) != len(idx) {
		t.Fatalf("got %d edges, want %d", len(edges), len(idx))
	}
	for i, e := range idx {
		if edges[i][0] != pixels[e[0]] || edges[i][1] != pixels[e[1]] {
			t.Errorf("edge[%d] = %v, want endpoints of %v", i, edges[i], e)
		}
	}

	// Out-of-range indices are dropped rather than panicking.
	bad := ProjectEdges(ext, k, verts[:], [][2]int{{0, 99}, {-1, 2}, {1, 3}})
	if len(bad) != 1 {
		t.Errorf("got %d edges from mixed list, want 1", len(bad))
	}
}

func TestNearClampNoBlowup(t *testing.T) {
	// A point exactly at zero depth divides by the clamp, not by zero.
	ext := pose(t, math3d.V3(0, -5, 0), math3d.V3(0, 0, 0))
	got := Project(ext, Default(), []math3d.Vec3{ext.Position})
	if !got[0].IsFinite() {
		t.Errorf("clamped projection = %v, want finite", got[0])
	}
}

func TestDefaultIntrinsics(t *testing.T) {
	k := Default()
	if k.Fx != 800 || k.Fy != 800 || k.Cx != 320 || k.Cy != 240 {
		t.Errorf("Default() = %+v, want fx=fy=800 cx=320 cy=240", k)
	}
}
