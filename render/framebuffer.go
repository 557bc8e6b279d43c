package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is a resizable RGB pixel buffer.
type Framebuffer struct {
	Width  int
	Height int
	BG     Color
	pixels []Color
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]Color, width*height),
	}
}

// Resize changes the framebuffer dimensions, discarding the contents.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width = width
	fb.Height = height
	fb.pixels = make([]Color, width*height)
	fb.Clear()
}

// Clear fills the framebuffer with the background color.
func (fb *Framebuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = fb.BG
	}
}

// SetPixel sets a pixel, ignoring out-of-bounds coordinates.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.pixels[y*fb.Width+x] = c
}

// GetPixel returns the pixel at (x, y), or the background for out-of-bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return fb.BG
	}
	return fb.pixels[y*fb.Width+x]
}

// DrawLine draws a line using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x1, y1, x2, y2 int, c Color) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	for {
		fb.SetPixel(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x1 += sx
		}
		if e2 <= dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawRect draws an axis-aligned rectangle outline.
func (fb *Framebuffer) DrawRect(x1, y1, x2, y2 int, c Color) {
	fb.DrawLine(x1, y1, x2, y1, c)
	fb.DrawLine(x2, y1, x2, y2, c)
	fb.DrawLine(x2, y2, x1, y2, c)
	fb.DrawLine(x1, y2, x1, y1, c)
}

// Blit copies another framebuffer into this one at (dx, dy), clipping at the
// destination edges.
func (fb *Framebuffer) Blit(src *Framebuffer, dx, dy int) {
	for y := 0; y < src.Height; y++ {
		ty := dy + y
		if ty < 0 || ty >= fb.Height {
			continue
		}
		for x := 0; x < src.Width; x++ {
			tx := dx + x
			if tx < 0 || tx >= fb.Width {
				continue
			}
			fb.pixels[ty*fb.Width+tx] = src.pixels[y*src.Width+x]
		}
	}
}

// ToImage converts the framebuffer to an image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.pixels[y*fb.Width+x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// SavePNG writes the framebuffer to a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create PNG file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
