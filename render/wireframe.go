package render

import (
	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/models"
	"github.com/ansipixels/camlab/scene"
)

// Wireframe renders 3D line geometry into a framebuffer through the orbit
// camera.
type Wireframe struct {
	camera *Camera
	fb     *Framebuffer
}

// NewWireframe creates a wireframe renderer.
func NewWireframe(camera *Camera, fb *Framebuffer) *Wireframe {
	return &Wireframe{
		camera: camera,
		fb:     fb,
	}
}

// DrawLine3D draws a line in 3D space.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	x1, y1, _, vis1 := w.camera.WorldToScreen(p1, w.fb.Width, w.fb.Height)
	x2, y2, _, vis2 := w.camera.WorldToScreen(p2, w.fb.Width, w.fb.Height)

	// Simple clipping: only draw if at least one point is visible
	// (proper line clipping would be more complex)
	if !vis1 && !vis2 {
		return
	}
	w.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), color)
}

// DrawPolyline3D draws consecutive segments through the given points.
func (w *Wireframe) DrawPolyline3D(points []math3d.Vec3, color Color) {
	for i := 0; i+1 < len(points); i++ {
		w.DrawLine3D(points[i], points[i+1], color)
	}
}

// DrawEdges draws an index-pair edge list over a vertex slice.
func (w *Wireframe) DrawEdges(vertices []math3d.Vec3, edges [][2]int, color Color) {
	for _, e := range edges {
		if e[0] < 0 || e[0] >= len(vertices) || e[1] < 0 || e[1] >= len(vertices) {
			continue
		}
		w.DrawLine3D(vertices[e[0]], vertices[e[1]], color)
	}
}

// DrawCube draws a scene cube as a wireframe.
func (w *Wireframe) DrawCube(cube *scene.Cube, color Color) {
	verts := cube.Vertices()
	idx := cube.EdgeIndices()
	w.DrawEdges(verts[:], idx[:], color)
}

// DrawFrustum draws the scene camera's frustum: the four apex-to-corner
// spokes followed by the closed base loop. An unoriented camera draws
// nothing.
func (w *Wireframe) DrawFrustum(cam *scene.Camera, color Color) {
	verts, ok := cam.FrustumVertices()
	if !ok {
		return
	}
	idx := scene.FrustumEdgeIndices()
	w.DrawEdges(verts[:], idx[:], color)
}

// DrawSurface draws a plane's grid lines.
func (w *Wireframe) DrawSurface(p *scene.Plane, color Color) {
	for _, line := range p.GridLines() {
		w.DrawPolyline3D(line, color)
	}
}

// DrawMeshEdges draws a loaded mesh's unique edges.
func (w *Wireframe) DrawMeshEdges(m *models.Mesh, color Color) {
	w.DrawEdges(m.Vertices, m.EdgeIndices(), color)
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)   // X axis
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen) // Y axis
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)  // Z axis
}

// DrawGrid draws a grid on the XY plane at z=0.
func (w *Wireframe) DrawGrid(size, step float64, color Color) {
	half := size / 2
	for x := -half; x <= half; x += step {
		w.DrawLine3D(math3d.V3(x, -half, 0), math3d.V3(x, half, 0), color)
	}
	for y := -half; y <= half; y += step {
		w.DrawLine3D(math3d.V3(-half, y, 0), math3d.V3(half, y, 0), color)
	}
}

// DrawPoint draws a point as a small cross.
func (w *Wireframe) DrawPoint(pos math3d.Vec3, size float64, color Color) {
	halfSize := size / 2
	w.DrawLine3D(
		math3d.V3(pos.X-halfSize, pos.Y, pos.Z),
		math3d.V3(pos.X+halfSize, pos.Y, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y-halfSize, pos.Z),
		math3d.V3(pos.X, pos.Y+halfSize, pos.Z),
		color,
	)
	w.DrawLine3D(
		math3d.V3(pos.X, pos.Y, pos.Z-halfSize),
		math3d.V3(pos.X, pos.Y, pos.Z+halfSize),
		color,
	)
}
