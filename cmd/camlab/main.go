// camlab - Terminal camera extrinsics explorer
// Explore how camera placement shapes a pinhole projection: a 3D scene panel
// next to the live 2D image-plane view.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/ansipixels/camlab/math3d"
	"github.com/ansipixels/camlab/models"
	"github.com/ansipixels/camlab/projection"
	"github.com/ansipixels/camlab/scene"
	"github.com/ansipixels/camlab/viewer"
)

var (
	targetFPS   float64
	cameraSpec  string
	frustumSize float64
	showPlane   bool
)

func main() {
	root := &cobra.Command{
		Use:   "camlab",
		Short: "Terminal camera extrinsics explorer",
		Long: `camlab - Terminal camera extrinsics explorer

Move a pinhole camera around a small 3D scene (unit cube, optional plane or
loaded mesh) and watch its projection onto the 640x480 image plane update
live.

Controls:
  x/X y/Y z/Z - Move the camera along each axis
  W/S A/D     - Orbit the display view (arrow keys work too)
  Mouse drag  - Orbit, scroll to zoom
  P           - Toggle the reference plane
  G           - Toggle the ground grid
  R           - Reset
  ?           - Toggle HUD overlay
  Esc         - Quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(args)
		},
	}

	viewCmd := &cobra.Command{
		Use:   "view [model.stl|model.obj|model.glb]",
		Short: "Interactive viewer (the default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runView(args)
		},
	}

	projectCmd := &cobra.Command{
		Use:   "project [model.stl|model.obj|model.glb]",
		Short: "Print the basis, frustum and projected pixels for a camera pose",
		Long: "Compute the look-at basis, frustum vertices and projected pixel\n" +
			"coordinates for the given camera position, without opening a terminal UI.\n" +
			"The projection subject is the unit cube, or a model when given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runProject(args)
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info <model.stl|model.obj|model.glb>",
		Short: "Display model information",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
	}

	for _, cmd := range []*cobra.Command{root, viewCmd, projectCmd} {
		cmd.Flags().Float64Var(&targetFPS, "fps", 30, "Target FPS")
		cmd.Flags().StringVar(&cameraSpec, "camera", "2,-4,2", "Camera position (x,y,z)")
		cmd.Flags().Float64Var(&frustumSize, "size", 0.4, "Frustum display size")
		cmd.Flags().BoolVar(&showPlane, "plane", false, "Show the reference plane")
	}
	root.AddCommand(viewCmd, projectCmd, infoCmd)

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

func parseVec3(s string) (math3d.Vec3, error) {
	var v math3d.Vec3
	if _, err := fmt.Sscanf(s, "%f,%f,%f", &v.X, &v.Y, &v.Z); err != nil {
		return v, fmt.Errorf("parse %q as x,y,z: %w", s, err)
	}
	return v, nil
}

func runView(args []string) error {
	opts := viewer.DefaultOptions()
	opts.FPS = targetFPS
	opts.FrustumSize = frustumSize
	opts.ShowPlane = showPlane
	pos, err := parseVec3(cameraSpec)
	if err != nil {
		return fmt.Errorf("invalid --camera: %w", err)
	}
	opts.CameraPos = pos
	if len(args) > 0 {
		opts.ModelPath = args[0]
	}
	return viewer.Run(opts)
}

func runProject(args []string) error {
	pos, err := parseVec3(cameraSpec)
	if err != nil {
		return fmt.Errorf("invalid --camera: %w", err)
	}
	cube, err := scene.NewCube(math3d.Zero3(), 1)
	if err != nil {
		return err
	}

	var verts []math3d.Vec3
	var edges [][2]int
	subject := "unit cube"
	if len(args) > 0 {
		mesh, err := models.Load(args[0])
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		mesh.FitTo(cube.Center(), 1)
		verts = mesh.Vertices
		edges = mesh.EdgeIndices()
		subject = filepath.Base(args[0])
	} else {
		cv := cube.Vertices()
		ce := cube.EdgeIndices()
		verts = cv[:]
		edges = ce[:]
	}

	cam, err := scene.NewCamera(pos, math3d.V3(0, 0, 1), frustumSize)
	if err != nil {
		return err
	}
	if err := cam.LookAt(cube.Center()); err != nil {
		return err
	}
	basis, _ := cam.Basis()
	frustum, _ := cam.FrustumVertices()

	fmt.Printf("Camera:     (%.3f, %.3f, %.3f) looking at (%.3f, %.3f, %.3f)\n",
		pos.X, pos.Y, pos.Z, cube.Center().X, cube.Center().Y, cube.Center().Z)
	fmt.Printf("Right:      (%.6f, %.6f, %.6f)\n", basis.Right.X, basis.Right.Y, basis.Right.Z)
	fmt.Printf("Up:         (%.6f, %.6f, %.6f)\n", basis.Up.X, basis.Up.Y, basis.Up.Z)
	fmt.Printf("Direction:  (%.6f, %.6f, %.6f)\n", basis.Direction.X, basis.Direction.Y, basis.Direction.Z)
	fmt.Println()
	fmt.Println("Frustum vertices (apex first):")
	for i, v := range frustum {
		fmt.Printf("  [%d] (%.6f, %.6f, %.6f)\n", i, v.X, v.Y, v.Z)
	}

	k := projection.Default()
	ext := projection.Extrinsics{Basis: basis, Position: cam.Position()}
	pixels := projection.Project(ext, k, verts)
	depths := projection.Depths(ext, verts)

	fmt.Println()
	fmt.Printf("Projection of %s (%d vertices, %d edges):\n", subject, len(verts), len(edges))
	inside := 0
	for i, p := range pixels {
		clamped := ""
		if depths[i] < projection.NearClamp {
			clamped = "  (depth clamped)"
		}
		if projection.InImage(p) {
			inside++
		}
		fmt.Printf("  [%d] (%.3f, %.3f)  depth %.4f%s\n", i, p.X, p.Y, depths[i], clamped)
	}
	fmt.Printf("%d/%d pixels inside the %dx%d image\n",
		inside, len(pixels), projection.ImageWidth, projection.ImageHeight)
	return nil
}

func runInfo(modelPath string) error {
	stat, err := os.Stat(modelPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	mesh, err := models.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	size := mesh.Size()
	center := mesh.Center()
	ext := strings.ToUpper(strings.TrimPrefix(strings.ToLower(filepath.Ext(modelPath)), "."))

	fmt.Printf("File:       %s\n", filepath.Base(modelPath))
	fmt.Printf("Format:     %s\n", ext)
	fmt.Printf("Size:       %.2f KB\n", float64(stat.Size())/1024)
	fmt.Println()
	fmt.Printf("Vertices:   %d\n", mesh.VertexCount())
	fmt.Printf("Triangles:  %d\n", mesh.TriangleCount())
	fmt.Printf("Edges:      %d\n", len(mesh.EdgeIndices()))
	fmt.Println()
	fmt.Printf("Bounds Min: (%.3f, %.3f, %.3f)\n", mesh.BoundsMin.X, mesh.BoundsMin.Y, mesh.BoundsMin.Z)
	fmt.Printf("Bounds Max: (%.3f, %.3f, %.3f)\n", mesh.BoundsMax.X, mesh.BoundsMax.Y, mesh.BoundsMax.Z)
	fmt.Printf("Dimensions: %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
	fmt.Printf("Center:     (%.3f, %.3f, %.3f)\n", center.X, center.Y, center.Z)
	return nil
}
