package viewer

import (
	"math"
	"testing"

	"github.com/ansipixels/camlab/math3d"
)

func testApp(t *testing.T) *app {
	t.Helper()
	a, err := newApp(DefaultOptions())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a
}

func TestChannelNudgeClamps(t *testing.T) {
	c := newChannel(30, 0)
	for i := 0; i < 100; i++ {
		c.Nudge(1)
	}
	if c.target != posMax {
		t.Errorf("target = %v, want clamped to %v", c.target, posMax)
	}
	for i := 0; i < 100; i++ {
		c.Nudge(-1)
	}
	if c.target != posMin {
		t.Errorf("target = %v, want clamped to %v", c.target, posMin)
	}
}

func TestChannelConvergesToTarget(t *testing.T) {
	c := newChannel(30, 0)
	c.Nudge(2)
	for i := 0; i < 300; i++ {
		c.Update()
	}
	if math.Abs(c.pos-2) > 1e-3 {
		t.Errorf("pos = %v after settling, want ~2", c.pos)
	}
}

func TestHandleKeyToggles(t *testing.T) {
	a := testApp(t)
	if a.showPlane {
		t.Fatal("plane visible by default")
	}
	a.handleKey('p')
	if !a.showPlane {
		t.Error("p did not toggle plane on")
	}
	a.handleKey('g')
	if a.showGrid {
		t.Error("g did not toggle grid off")
	}
	a.handleKey('?')
	if a.showHUD {
		t.Error("? did not toggle HUD off")
	}
	if !a.handleKey('x') {
		t.Error("x reported quit")
	}
	if a.handleKey('q') {
		t.Error("q did not quit")
	}
	if a.handleKey(27) {
		t.Error("Esc did not quit")
	}
}

func TestHandleInputArrowKeys(t *testing.T) {
	a := testApp(t)
	elev := a.display.Elevation
	azim := a.display.Azimuth
	if !a.handleInput([]byte{27, '[', 'A', 27, '[', 'C'}) {
		t.Fatal("arrow keys reported quit")
	}
	if a.display.Elevation <= elev {
		t.Error("up arrow did not raise elevation")
	}
	if a.display.Azimuth == azim {
		t.Error("right arrow did not change azimuth")
	}
	// A bare Escape still quits.
	if a.handleInput([]byte{27}) {
		t.Error("bare Escape did not quit")
	}
}

func TestUpdateMovesCamera(t *testing.T) {
	a := testApp(t)
	a.x.Nudge(1)
	for i := 0; i < 300; i++ {
		a.update()
	}
	pos := a.cam.Position()
	want := DefaultOptions().CameraPos.X + 1
	if math.Abs(pos.X-want) > 1e-3 {
		t.Errorf("camera X = %v, want ~%v", pos.X, want)
	}
	if !a.cam.Oriented() {
		t.Error("camera lost orientation after move")
	}
	if a.status != "" {
		t.Errorf("status = %q, want empty", a.status)
	}
}

func TestUpdateRejectsDegeneratePosition(t *testing.T) {
	a := testApp(t)
	center := a.cube.Center()
	// Park the camera directly above the cube center: the viewing direction
	// becomes parallel to the up hint and the update must be rejected.
	a.x.Set(center.X)
	a.y.Set(center.Y)
	a.z.Set(center.Z + 3)
	before := a.cam.Position()
	a.z.target += 0.001 // force a spring step so update recomputes
	a.update()
	if a.status == "" {
		t.Error("degenerate position did not surface a status message")
	}
	if a.cam.Position() != before {
		t.Errorf("camera position changed to %v on rejected update", a.cam.Position())
	}
	if !a.cam.Oriented() {
		t.Error("camera lost last-valid orientation")
	}
}

func TestReset(t *testing.T) {
	a := testApp(t)
	a.x.Nudge(3)
	a.display.Orbit(20, 40)
	a.handleKey('r')
	if a.x.target != DefaultOptions().CameraPos.X {
		t.Errorf("x target = %v after reset", a.x.target)
	}
	if a.display.Elevation != 25 {
		t.Errorf("elevation = %v after reset, want default", a.display.Elevation)
	}
}

func TestSubjectDefaultsToCube(t *testing.T) {
	a := testApp(t)
	verts, edges := a.subject()
	if len(verts) != 8 || len(edges) != 12 {
		t.Errorf("subject = %d vertices, %d edges, want cube's 8 and 12", len(verts), len(edges))
	}
}

func TestDefaultOptionsAreValid(t *testing.T) {
	opts := DefaultOptions()
	if opts.CameraPos != math3d.V3(2, -4, 2) {
		t.Errorf("CameraPos = %v", opts.CameraPos)
	}
	if opts.Intrinsics.Fx != 800 || opts.Intrinsics.Cy != 240 {
		t.Errorf("Intrinsics = %+v", opts.Intrinsics)
	}
}
