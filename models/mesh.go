// Package models provides 3D model loading for camlab. Loaded meshes are
// extra projection subjects alongside the built-in scene primitives, so the
// representation is lean: vertex positions, triangle faces and the unique
// edge list derived from them.
package models

import (
	"sort"

	"github.com/ansipixels/camlab/math3d"
)

// Mesh represents a loaded 3D model.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    [][3]int // indices into Vertices

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3

	edges [][2]int // lazily derived from Faces
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangle faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}
	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// EdgeIndices returns the unique undirected edges of the face set as vertex
// index pairs, each with the smaller index first, in deterministic order.
// The result is cached until Faces changes via InvalidateEdges.
func (m *Mesh) EdgeIndices() [][2]int {
	if m.edges != nil {
		return m.edges
	}
	seen := make(map[[2]int]bool, len(m.Faces)*3)
	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			a, b := f[i], f[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			if a != b {
				seen[[2]int{a, b}] = true
			}
		}
	}
	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i][0] != edges[j][0] {
			return edges[i][0] < edges[j][0]
		}
		return edges[i][1] < edges[j][1]
	})
	m.edges = edges
	return edges
}

// InvalidateEdges drops the cached edge list after a Faces mutation.
func (m *Mesh) InvalidateEdges() {
	m.edges = nil
}

// Transform applies a homogeneous transform to every vertex and refreshes
// the bounds.
func (m *Mesh) Transform(t math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = t.MulVec3(v)
	}
	m.CalculateBounds()
}

// FitTo centers the mesh at the given point and uniformly scales its largest
// dimension to extent. A degenerate (zero-size) mesh is only translated.
func (m *Mesh) FitTo(center math3d.Vec3, extent float64) {
	m.CalculateBounds()
	size := m.Size()
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if size.Z > maxDim {
		maxDim = size.Z
	}
	t := math3d.Translate(center)
	if maxDim > 0 {
		s := extent / maxDim
		t = t.Mul(math3d.Scale(math3d.V3(s, s, s)))
	}
	t = t.Mul(math3d.Translate(m.Center().Negate()))
	m.Transform(t)
}
