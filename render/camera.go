package render

import (
	"math"

	"github.com/ansipixels/camlab/math3d"
)

// Camera is the display camera for the 3D panel: an orbit camera around a
// target point, parameterized by distance, elevation and azimuth in degrees.
// It is separate from the scene camera being explored; this one only decides
// how the scene is shown on screen.
type Camera struct {
	Target    math3d.Vec3
	Distance  float64
	Elevation float64 // degrees above the XY plane, clamped to [-90, 90]
	Azimuth   float64 // degrees around +Z, normalized to [0, 360)

	FovY float64
	Near float64
	Far  float64
}

// NewCamera creates an orbit camera with sensible defaults for the scene.
func NewCamera() *Camera {
	return &Camera{
		Target:    math3d.Zero3(),
		Distance:  10,
		Elevation: 25,
		Azimuth:   225,
		FovY:      45,
		Near:      0.1,
		Far:       100,
	}
}

// Orbit adjusts elevation and azimuth by deltas in degrees, clamping the
// elevation and wrapping the azimuth.
func (c *Camera) Orbit(dElevation, dAzimuth float64) {
	c.Elevation = clamp(c.Elevation+dElevation, -90, 90)
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 360)
	if c.Azimuth < 0 {
		c.Azimuth += 360
	}
}

// Zoom scales the orbit distance, keeping it positive.
func (c *Camera) Zoom(factor float64) {
	d := c.Distance * factor
	if d < 0.5 {
		d = 0.5
	}
	c.Distance = d
}

// Eye returns the camera position in world space. The world is Z-up, so the
// azimuth rotates around +Z and the elevation lifts out of the XY plane.
func (c *Camera) Eye() math3d.Vec3 {
	// Keep a hair away from the poles so the view matrix stays well defined.
	elev := math3d.Radians(clamp(c.Elevation, -89.9, 89.9))
	azim := math3d.Radians(c.Azimuth)
	ce := math.Cos(elev)
	return c.Target.Add(math3d.V3(
		c.Distance*ce*math.Cos(azim),
		c.Distance*ce*math.Sin(azim),
		c.Distance*math.Sin(elev),
	))
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Eye(), c.Target, math3d.V3(0, 0, 1))
}

// ProjectionMatrix returns the perspective projection for the given viewport
// aspect ratio.
func (c *Camera) ProjectionMatrix(aspect float64) math3d.Mat4 {
	return math3d.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// ViewProjectionMatrix returns projection * view for the given viewport.
func (c *Camera) ViewProjectionMatrix(width, height int) math3d.Mat4 {
	aspect := float64(width) / float64(height)
	return c.ProjectionMatrix(aspect).Mul(c.ViewMatrix())
}

// WorldToScreen projects a world point into pixel coordinates of a
// width x height viewport. The returned depth is the NDC depth; visible is
// false for points behind the camera or far outside the view volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, width, height int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix(width, height).MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) / 2 * float64(width)
	y = (1 - ndc.Y) / 2 * float64(height)
	// A loose bound keeps lines that cross the viewport edge drawable; the
	// framebuffer clips per pixel anyway.
	visible = ndc.X >= -2 && ndc.X <= 2 && ndc.Y >= -2 && ndc.Y <= 2 && ndc.Z <= 1
	return x, y, ndc.Z, visible
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
