package models

import (
	"math"
	"testing"

	"github.com/ansipixels/camlab/math3d"
)

func TestMeshBounds(t *testing.T) {
	m := NewMesh("test")
	m.Vertices = []math3d.Vec3{
		math3d.V3(-1, 0, 2),
		math3d.V3(3, -2, 0),
		math3d.V3(1, 1, -5),
	}
	m.CalculateBounds()
	if m.BoundsMin != math3d.V3(-1, -2, -5) {
		t.Errorf("BoundsMin = %v", m.BoundsMin)
	}
	if m.BoundsMax != math3d.V3(3, 1, 2) {
		t.Errorf("BoundsMax = %v", m.BoundsMax)
	}
	center := m.Center()
	if center != math3d.V3(1, -0.5, -1.5) {
		t.Errorf("Center = %v", center)
	}
	size := m.Size()
	if size != math3d.V3(4, 3, 7) {
		t.Errorf("Size = %v", size)
	}
}

func TestMeshEmptyBounds(t *testing.T) {
	m := NewMesh("empty")
	m.CalculateBounds()
	if m.BoundsMin != math3d.Zero3() || m.BoundsMax != math3d.Zero3() {
		t.Errorf("empty mesh bounds = %v, %v", m.BoundsMin, m.BoundsMax)
	}
}

func TestEdgeIndices(t *testing.T) {
	m := NewMesh("quad")
	m.Vertices = []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(1, 1, 0),
		math3d.V3(0, 1, 0),
	}
	// Two triangles sharing the diagonal 0-2.
	m.Faces = [][3]int{{0, 1, 2}, {0, 2, 3}}

	edges := m.EdgeIndices()
	want := [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {2, 3}}
	if len(edges) != len(want) {
		t.Fatalf("got %d edges %v, want %d", len(edges), edges, len(want))
	}
	for i, e := range edges {
		if e != want[i] {
			t.Errorf("edge[%d] = %v, want %v", i, e, want[i])
		}
	}
}

func TestEdgeIndicesCacheInvalidation(t *testing.T) {
	m := NewMesh("tri")
	m.Vertices = []math3d.Vec3{
		math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1),
	}
	m.Faces = [][3]int{{0, 1, 2}}
	if n := len(m.EdgeIndices()); n != 3 {
		t.Fatalf("got %d edges, want 3", n)
	}
	m.Faces = append(m.Faces, [3]int{0, 1, 3})
	if n := len(m.EdgeIndices()); n != 3 {
		t.Fatalf("cache should still hold: got %d edges", n)
	}
	m.InvalidateEdges()
	if n := len(m.EdgeIndices()); n != 5 {
		t.Fatalf("after invalidation got %d edges, want 5", n)
	}
}

func TestFitTo(t *testing.T) {
	m := NewMesh("box")
	m.Vertices = []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(4, 2, 1),
	}
	m.FitTo(math3d.V3(10, 10, 10), 2)

	m.CalculateBounds()
	if got := m.Center(); got.Distance(math3d.V3(10, 10, 10)) > 1e-12 {
		t.Errorf("center = %v, want (10,10,10)", got)
	}
	size := m.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	if math.Abs(maxDim-2) > 1e-12 {
		t.Errorf("max dimension = %v, want 2", maxDim)
	}
	// Uniform scaling keeps proportions.
	if math.Abs(size.Y-1) > 1e-12 || math.Abs(size.Z-0.5) > 1e-12 {
		t.Errorf("size = %v, want (2, 1, 0.5)", size)
	}
}

func TestFitToDegenerate(t *testing.T) {
	m := NewMesh("point")
	m.Vertices = []math3d.Vec3{math3d.V3(5, 5, 5)}
	m.FitTo(math3d.V3(1, 2, 3), 2)
	if got := m.Vertices[0]; got.Distance(math3d.V3(1, 2, 3)) > 1e-12 {
		t.Errorf("degenerate mesh vertex = %v, want (1,2,3)", got)
	}
}
