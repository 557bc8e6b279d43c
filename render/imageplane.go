package render

import (
	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/projection"
)

// ImagePlane renders the 2D pinhole projection panel: the fixed 640x480
// image space scaled into a framebuffer viewport, with the projected points
// and edges drawn in image coordinates.
type ImagePlane struct {
	fb *Framebuffer

	// Viewport inside the framebuffer, in pixels.
	x, y, w, h int
}

// NewImagePlane creates an image-plane view covering the whole framebuffer.
func NewImagePlane(fb *Framebuffer) *ImagePlane {
	v := &ImagePlane{fb: fb}
	v.SetViewport(0, 0, fb.Width, fb.Height)
	return v
}

// SetViewport places the image-plane view inside the framebuffer. The
// 640x480 image space is fitted into the viewport preserving aspect ratio.
func (v *ImagePlane) SetViewport(x, y, w, h int) {
	// Preserve the 4:3 image aspect, centered in the viewport.
	if w*projection.ImageHeight > h*projection.ImageWidth {
		fitted := h * projection.ImageWidth / projection.ImageHeight
		x += (w - fitted) / 2
		w = fitted
	} else {
		fitted := w * projection.ImageHeight / projection.ImageWidth
		y += (h - fitted) / 2
		h = fitted
	}
	v.x, v.y, v.w, v.h = x, y, w, h
}

// toViewport maps image-space coordinates to framebuffer pixels.
func (v *ImagePlane) toViewport(p math3d.Vec2) (int, int) {
	px := v.x + int(p.X/projection.ImageWidth*float64(v.w))
	py := v.y + int(p.Y/projection.ImageHeight*float64(v.h))
	return px, py
}

// DrawBorder draws the image boundary rectangle.
func (v *ImagePlane) DrawBorder(color Color) {
	v.fb.DrawRect(v.x, v.y, v.x+v.w-1, v.y+v.h-1, color)
}

// DrawPrincipalPoint draws a small cross at the principal point (cx, cy).
func (v *ImagePlane) DrawPrincipalPoint(k projection.Intrinsics, color Color) {
	cx, cy := v.toViewport(math3d.V2(k.Cx, k.Cy))
	const arm = 4
	v.fb.DrawLine(cx-arm, cy, cx+arm, cy, color)
	v.fb.DrawLine(cx, cy-arm, cx, cy+arm, color)
}

// DrawPoints draws projected pixels as single points, skipping those outside
// the image bounds.
func (v *ImagePlane) DrawPoints(pixels []math3d.Vec2, color Color) {
	for _, p := range pixels {
		if !projection.InImage(p) || !p.IsFinite() {
			continue
		}
		px, py := v.toViewport(p)
		v.fb.SetPixel(px, py, color)
	}
}

// DrawMarkers draws projected pixels as small crosses.
func (v *ImagePlane) DrawMarkers(pixels []math3d.Vec2, color Color) {
	for _, p := range pixels {
		if !projection.InImage(p) || !p.IsFinite() {
			continue
		}
		px, py := v.toViewport(p)
		v.fb.DrawLine(px-1, py, px+1, py, color)
		v.fb.DrawLine(px, py-1, px, py+1, color)
	}
}

// DrawEdges draws an index-pair edge list over projected pixels. An edge is
// drawn when at least one endpoint lies inside the image; the framebuffer
// clips the rest.
func (v *ImagePlane) DrawEdges(pixels []math3d.Vec2, edges [][2]int, color Color) {
	for _, e := range edges {
		if e[0] < 0 || e[0] >= len(pixels) || e[1] < 0 || e[1] >= len(pixels) {
			continue
		}
		p0, p1 := pixels[e[0]], pixels[e[1]]
		if !p0.IsFinite() || !p1.IsFinite() {
			continue
		}
		if !projection.InImage(p0) && !projection.InImage(p1) {
			continue
		}
		x0, y0 := v.toViewport(p0)
		x1, y1 := v.toViewport(p1)
		v.fb.DrawLine(x0, y0, x1, y1, color)
	}
}
