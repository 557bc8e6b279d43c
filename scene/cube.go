package scene

import (
	"fmt"

	"github.com/ansipixels/camlab/math3d"
)

// cubeEdges lists the 12 edges of a cube as index pairs into the vertex
// order produced by cubeVertices. Indices are threaded through the whole
// pipeline so projected edges never need coordinate matching.
var cubeEdges = [12][2]int{
	{0, 1}, {0, 2}, {0, 4}, {1, 3}, {1, 5}, {2, 3},
	{2, 6}, {4, 5}, {4, 6}, {7, 3}, {7, 5}, {7, 6},
}

// Cube is an axis-aligned cube given by one corner and an edge length.
// Vertices and edges are derived at construction and stay consistent with
// origin and size; a setter would recompute them the same way the camera
// does.
type Cube struct {
	origin   math3d.Vec3
	size     float64
	vertices [8]math3d.Vec3
}

// NewCube creates a cube with the given corner and edge length.
func NewCube(origin math3d.Vec3, size float64) (*Cube, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: cube size %v must be > 0", ErrInvalidArgument, size)
	}
	return &Cube{
		origin:   origin,
		size:     size,
		vertices: cubeVertices(origin, size),
	}, nil
}

// cubeVertices enumerates the corners at origin + {0,size}³, x varying
// fastest, then y, then z.
func cubeVertices(o math3d.Vec3, s float64) [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		o,
		o.Add(math3d.V3(s, 0, 0)),
		o.Add(math3d.V3(0, s, 0)),
		o.Add(math3d.V3(s, s, 0)),
		o.Add(math3d.V3(0, 0, s)),
		o.Add(math3d.V3(s, 0, s)),
		o.Add(math3d.V3(0, s, s)),
		o.Add(math3d.V3(s, s, s)),
	}
}

// Origin returns the corner the cube was built from.
func (c *Cube) Origin() math3d.Vec3 {
	return c.origin
}

// Size returns the edge length.
func (c *Cube) Size() float64 {
	return c.size
}

// Center returns origin + size/2 along each axis.
func (c *Cube) Center() math3d.Vec3 {
	h := c.size / 2
	return c.origin.Add(math3d.V3(h, h, h))
}

// Vertices returns the 8 corners.
func (c *Cube) Vertices() [8]math3d.Vec3 {
	return c.vertices
}

// EdgeIndices returns the 12 edges as vertex index pairs.
func (c *Cube) EdgeIndices() [12][2]int {
	return cubeEdges
}

// Edges returns the 12 edges as world-space endpoint pairs, for consumers
// that draw directly without index lookup.
func (c *Cube) Edges() [12][2]math3d.Vec3 {
	var e [12][2]math3d.Vec3
	for i, idx := range cubeEdges {
		e[i][0] = c.vertices[idx[0]]
		e[i][1] = c.vertices[idx[1]]
	}
	return e
}
