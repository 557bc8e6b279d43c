// camlab - Terminal camera extrinsics explorer
// Move a pinhole camera around a small 3D scene and watch its projection
// onto the image plane update live.
//
// Controls:
//
//	x/X y/Y z/Z - Move the camera along each axis (lower = -, upper = +)
//	W/S         - Display elevation up/down
//	A/D         - Display azimuth left/right (arrow keys work too)
//	Mouse drag  - Orbit the display view
//	Scroll      - Zoom the display view
//	P           - Toggle the reference plane
//	G           - Toggle the ground grid
//	R           - Reset camera position and display view
//	?           - Toggle HUD overlay
//	Q/Esc       - Quit
package main

import (
	"flag"
	"fmt"
	"os"

	"fortio.org/cli"
	"fortio.org/log"

	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/viewer"
)

var (
	targetFPS   float64
	cameraSpec  string
	frustumSize float64
	showPlane   bool
)

func main() {
	flag.Float64Var(&targetFPS, "fps", 30, "Target FPS")
	flag.StringVar(&cameraSpec, "camera", "2,-4,2", "Initial camera position (x,y,z)")
	flag.Float64Var(&frustumSize, "size", 0.4, "Frustum display size")
	flag.BoolVar(&showPlane, "plane", false, "Show the reference plane")
	cli.ArgsHelp = "[model.stl|model.obj|model.glb]"
	cli.MinArgs = 0
	cli.MaxArgs = 1
	cli.Main()
	os.Exit(run())
}

func parseVec3(s string) (math3d.Vec3, error) {
	var v math3d.Vec3
	if _, err := fmt.Sscanf(s, "%f,%f,%f", &v.X, &v.Y, &v.Z); err != nil {
		return v, fmt.Errorf("parse %q as x,y,z: %w", s, err)
	}
	return v, nil
}

func run() int {
	opts := viewer.DefaultOptions()
	opts.FPS = targetFPS
	opts.FrustumSize = frustumSize
	opts.ShowPlane = showPlane
	pos, err := parseVec3(cameraSpec)
	if err != nil {
		return log.FErrf("invalid -camera: %v", err)
	}
	opts.CameraPos = pos
	if flag.NArg() > 0 {
		opts.ModelPath = flag.Arg(0)
	}
	if err := viewer.Run(opts); err != nil {
		return log.FErrf("viewer: %v", err)
	}
	return 0
}
