// Package render provides the software drawing surface for camlab: a pixel
// framebuffer, an orbit display camera, a 3D wireframe renderer and the 2D
// image-plane view.
package render

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGB creates a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorBlue    = RGB(0, 100, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorOrange  = RGB(255, 165, 0)
	ColorGray    = RGB(128, 128, 128)
	ColorDimGray = RGB(64, 64, 64)
)

// Scale returns the color with each channel scaled by f, clamped to [0, 1].
func (c Color) Scale(f float64) Color {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
	}
}
