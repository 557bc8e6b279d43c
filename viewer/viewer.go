// Package viewer implements the interactive camlab terminal app: a 3D scene
// panel (cube, plane, camera frustum) next to the live 2D pinhole projection,
// with keyboard-driven camera placement.
//
// Controls:
//
//	x/X y/Y z/Z - Move the scene camera along each axis (lower = -, upper = +)
//	W/S         - Display elevation up/down
//	A/D         - Display azimuth left/right (arrow keys work too)
//	Mouse drag  - Orbit the display view
//	Scroll      - Zoom the display view
//	P           - Toggle the reference plane
//	G           - Toggle the ground grid
//	R           - Reset camera position and display view
//	?           - Toggle HUD overlay
//	Q/Esc       - Quit
package viewer

import (
	"fmt"
	"math"

	"fortio.org/log"
	"fortio.org/terminal/ansipixels"
	"fortio.org/terminal/ansipixels/tcolor"
	"github.com/charmbracelet/harmonica"

	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/models"
	"github.com/ansipixels/camlab/projection"
	"github.com/ansipixels/camlab/render"
	"github.com/ansipixels/camlab/scene"
)

// PlaneSpec configures the optional reference plane.
type PlaneSpec struct {
	Center      math3d.Vec3
	RotationDeg math3d.Vec3
	Scale       float64
	Resolution  int
}

// Options configures the viewer.
type Options struct {
	FPS         float64
	CameraPos   math3d.Vec3
	UpHint      math3d.Vec3
	FrustumSize float64
	CubeOrigin  math3d.Vec3
	CubeSize    float64
	ShowPlane   bool
	Plane       PlaneSpec
	ModelPath   string
	Intrinsics  projection.Intrinsics
}

// DefaultOptions returns the standard exploration scene: unit cube at the
// origin, camera at (2, -4, 2), plane available but hidden.
func DefaultOptions() Options {
	return Options{
		FPS:         30,
		CameraPos:   math3d.V3(2, -4, 2),
		UpHint:      math3d.V3(0, 0, 1),
		FrustumSize: 0.4,
		CubeOrigin:  math3d.Zero3(),
		CubeSize:    1,
		Plane: PlaneSpec{
			Center:     math3d.V3(0.5, 0.5, 0),
			Scale:      2,
			Resolution: 8,
		},
		Intrinsics: projection.Default(),
	}
}

// Camera position channels are slider-bound to this range.
const (
	posMin = -5
	posMax = 5
)

// channel animates one camera coordinate toward its target with a spring.
type channel struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newChannel(fps int, initial float64) channel {
	return channel{
		// Critically damped so positions settle without overshoot.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		pos:    initial,
		target: initial,
	}
}

// Nudge moves the target by delta, clamped to the slider range.
func (c *channel) Nudge(delta float64) {
	t := c.target + delta
	if t < posMin {
		t = posMin
	}
	if t > posMax {
		t = posMax
	}
	c.target = t
}

// Set jumps both target and position (used by reset).
func (c *channel) Set(v float64) {
	c.pos = v
	c.vel = 0
	c.target = v
}

// Update advances the spring one frame. Reports whether the channel moved.
func (c *channel) Update() bool {
	prev := c.pos
	c.pos, c.vel = c.spring.Update(c.pos, c.vel, c.target)
	return math.Abs(c.pos-prev) > 1e-9
}

// app holds the viewer's mutable state.
type app struct {
	opts Options

	cam   *scene.Camera
	cube  *scene.Cube
	plane *scene.Plane
	mesh  *models.Mesh

	x, y, z channel

	display *render.Camera

	showPlane bool
	showGrid  bool
	showHUD   bool
	status    string
}

func newApp(opts Options) (*app, error) {
	cam, err := scene.NewCamera(opts.CameraPos, opts.UpHint, opts.FrustumSize)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	cube, err := scene.NewCube(opts.CubeOrigin, opts.CubeSize)
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	plane, err := scene.NewPlane(opts.Plane.Center, opts.Plane.RotationDeg,
		opts.Plane.Scale, opts.Plane.Resolution)
	if err != nil {
		return nil, fmt.Errorf("plane: %w", err)
	}
	if err = cam.LookAt(cube.Center()); err != nil {
		return nil, fmt.Errorf("initial look-at: %w", err)
	}

	var mesh *models.Mesh
	if opts.ModelPath != "" {
		mesh, err = models.Load(opts.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		// Drop the model into the cube's spot so it is framed by default.
		mesh.FitTo(cube.Center(), opts.CubeSize)
		log.Infof("Loaded %s: %d vertices, %d edges",
			mesh.Name, mesh.VertexCount(), len(mesh.EdgeIndices()))
	}

	fps := int(math.Round(opts.FPS))
	if fps < 1 {
		fps = 1
	}
	display := render.NewCamera()
	display.Target = cube.Center()

	return &app{
		opts:      opts,
		cam:       cam,
		cube:      cube,
		plane:     plane,
		mesh:      mesh,
		x:         newChannel(fps, opts.CameraPos.X),
		y:         newChannel(fps, opts.CameraPos.Y),
		z:         newChannel(fps, opts.CameraPos.Z),
		display:   display,
		showPlane: opts.ShowPlane,
		showGrid:  true,
		showHUD:   true,
	}, nil
}

// handleInput processes a frame's worth of input bytes, translating arrow
// key escape sequences to orbit keys. Returns false to quit.
func (a *app) handleInput(data []byte) bool {
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == 27 && i+2 < len(data) && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				b = 'w'
			case 'B':
				b = 's'
			case 'C':
				b = 'd'
			case 'D':
				b = 'a'
			default:
				i += 2
				continue
			}
			i += 2
		}
		if !a.handleKey(b) {
			return false
		}
	}
	return true
}

// handleKey processes one input byte. Returns false to quit.
func (a *app) handleKey(b byte) bool {
	const step = 0.25
	const orbitStep = 5.0
	switch b {
	case 'x':
		a.x.Nudge(-step)
	case 'X':
		a.x.Nudge(step)
	case 'y':
		a.y.Nudge(-step)
	case 'Y':
		a.y.Nudge(step)
	case 'z':
		a.z.Nudge(-step)
	case 'Z':
		a.z.Nudge(step)
	case 'w', 'W':
		a.display.Orbit(orbitStep, 0)
	case 's', 'S':
		a.display.Orbit(-orbitStep, 0)
	case 'a', 'A':
		a.display.Orbit(0, -orbitStep)
	case 'd', 'D':
		a.display.Orbit(0, orbitStep)
	case 'p', 'P':
		a.showPlane = !a.showPlane
	case 'g', 'G':
		a.showGrid = !a.showGrid
	case '?':
		a.showHUD = !a.showHUD
	case 'r', 'R':
		a.reset()
	case 'q', 'Q', 27: // Escape
		return false
	case 3, 4: // Ctrl-C, Ctrl-D
		return false
	}
	return true
}

func (a *app) reset() {
	a.x.Set(a.opts.CameraPos.X)
	a.y.Set(a.opts.CameraPos.Y)
	a.z.Set(a.opts.CameraPos.Z)
	a.display = render.NewCamera()
	a.display.Target = a.cube.Center()
	a.status = ""
	a.update()
}

// update advances the springs and re-aims the scene camera at the cube.
// A rejected position (camera inside the target) is surfaced on the HUD and
// the camera keeps its last valid pose.
func (a *app) update() {
	moved := a.x.Update()
	moved = a.y.Update() || moved
	moved = a.z.Update() || moved
	if !moved && a.cam.Oriented() {
		return
	}
	pos := math3d.V3(a.x.pos, a.y.pos, a.z.pos)
	if err := a.cam.SetPosition(pos); err != nil {
		a.status = err.Error()
		return
	}
	if err := a.cam.LookAt(a.cube.Center()); err != nil {
		a.status = err.Error()
		return
	}
	a.status = ""
}

// subject returns the vertices and edges being projected: the loaded mesh if
// any, the cube otherwise.
func (a *app) subject() ([]math3d.Vec3, [][2]int) {
	if a.mesh != nil {
		return a.mesh.Vertices, a.mesh.EdgeIndices()
	}
	verts := a.cube.Vertices()
	idx := a.cube.EdgeIndices()
	return verts[:], idx[:]
}

// drawScene renders the 3D panel.
func (a *app) drawScene(fb *render.Framebuffer) {
	w := render.NewWireframe(a.display, fb)
	if a.showGrid {
		w.DrawGrid(8, 1, render.ColorDimGray)
	}
	w.DrawAxes(1.5)
	if a.showPlane {
		w.DrawSurface(a.plane, render.ColorGray)
	}
	if a.mesh != nil {
		w.DrawMeshEdges(a.mesh, render.ColorCyan)
	} else {
		w.DrawCube(a.cube, render.ColorCyan)
	}
	w.DrawFrustum(a.cam, render.ColorYellow)
	w.DrawPoint(a.cam.Position(), 0.2, render.ColorOrange)
}

// drawProjection renders the 2D image-plane panel.
func (a *app) drawProjection(fb *render.Framebuffer) {
	basis, ok := a.cam.Basis()
	if !ok {
		return
	}
	ext := projection.Extrinsics{Basis: basis, Position: a.cam.Position()}
	view := render.NewImagePlane(fb)
	view.DrawBorder(render.ColorGray)
	view.DrawPrincipalPoint(a.opts.Intrinsics, render.ColorDimGray)

	verts, edges := a.subject()
	pixels := projection.Project(ext, a.opts.Intrinsics, verts)
	view.DrawEdges(pixels, edges, render.ColorCyan)
	view.DrawMarkers(pixels, render.ColorWhite)

	if a.showPlane {
		surf := a.plane.Surface()
		pts := make([]math3d.Vec3, 0, surf.Rows()*surf.Cols())
		for r := 0; r < surf.Rows(); r++ {
			for c := 0; c < surf.Cols(); c++ {
				pts = append(pts, surf.Point(r, c))
			}
		}
		view.DrawPoints(projection.Project(ext, a.opts.Intrinsics, pts), render.ColorGray)
	}
}

// drawHUD writes the text overlay.
func (a *app) drawHUD(ap *ansipixels.AnsiPixels) {
	if a.status != "" {
		ap.WriteCentered(ap.H-1, "%s%s%s", tcolor.Red.Foreground(), a.status, tcolor.Reset)
	}
	if !a.showHUD {
		return
	}
	pos := a.cam.Position()
	ap.WriteAt(0, 0, tcolor.Green.Foreground()+"cam (%.2f, %.2f, %.2f)"+tcolor.Reset,
		pos.X, pos.Y, pos.Z)
	ap.WriteRight(0, tcolor.Cyan.Foreground()+"elev %.0f az %.0f"+tcolor.Reset,
		a.display.Elevation, a.display.Azimuth)
	if a.status == "" {
		ap.WriteAt(0, ap.H-1, "x/X y/Y z/Z move  w/s a/d orbit  p plane  g grid  r reset  q quit")
	}
}

// Run opens the terminal and drives the viewer loop until quit.
func Run(opts Options) error {
	a, err := newApp(opts)
	if err != nil {
		return err
	}

	ap := ansipixels.NewAnsiPixels(opts.FPS)
	if err = ap.Open(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() {
		ap.ShowCursor()
		ap.MouseTrackingOff()
		ap.Out.Flush()
		ap.Restore()
	}()
	ap.SyncBackgroundColor()
	ap.MouseTrackingOn()
	ap.HideCursor()

	// Half-block rendering doubles the vertical pixel resolution.
	fb := render.NewFramebuffer(ap.W, ap.H*2)
	fb.BG = render.RGB(ap.Background.R, ap.Background.G, ap.Background.B)
	left := render.NewFramebuffer(fb.Width/2, fb.Height)
	right := render.NewFramebuffer(fb.Width-fb.Width/2, fb.Height)
	left.BG = fb.BG
	right.BG = fb.BG

	lastMouseX, lastMouseY := 0, 0
	ap.OnMouse = func() {
		switch {
		case ap.MouseWheelUp():
			a.display.Zoom(0.9)
		case ap.MouseWheelDown():
			a.display.Zoom(1.1)
		case ap.LeftDrag():
			dx := ap.Mx - lastMouseX
			dy := ap.My - lastMouseY
			a.display.Orbit(float64(dy), float64(-dx))
		}
		lastMouseX, lastMouseY = ap.Mx, ap.My
	}
	ap.OnResize = func() error {
		fb.Resize(ap.W, ap.H*2)
		left.Resize(fb.Width/2, fb.Height)
		right.Resize(fb.Width-fb.Width/2, fb.Height)
		return nil
	}

	err = ap.FPSTicks(func() bool {
		if !a.handleInput(ap.Data) {
			return false
		}
		a.update()

		left.Clear()
		right.Clear()
		a.drawScene(left)
		a.drawProjection(right)
		fb.Clear()
		fb.Blit(left, 0, 0)
		fb.Blit(right, left.Width, 0)

		ap.ClearScreen()
		if err := ap.ShowScaledImage(fb.ToImage()); err != nil {
			log.Errf("show image: %v", err)
			return false
		}
		a.drawHUD(ap)
		return true
	})
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}
