package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ansipixels/camlab/math3d"
)

// LoadOBJ loads a Wavefront OBJ file from disk. Only the geometry is kept:
// v lines become vertices and f lines are fan-triangulated into faces
// (texture/normal references after the first slash are ignored).
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, path)
}

// ParseOBJ parses OBJ data from a reader.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNum)
			}
			var c [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: parse %q: %w", lineNum, fields[i+1], err)
				}
				c[i] = v
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(c[0], c[1], c[2]))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, spec := range fields[1:] {
				i, err := parseOBJIndex(spec, len(mesh.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				idx = append(idx, i)
			}
			// Fan triangulation for polygons.
			for i := 1; i+1 < len(idx); i++ {
				mesh.Faces = append(mesh.Faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan OBJ: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// parseOBJIndex resolves a face vertex spec ("7", "7/2", "7//3", "-1") to a
// zero-based vertex index. OBJ indices are 1-based; negative values count
// back from the current end of the vertex list.
func parseOBJIndex(spec string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(spec, '/'); slash >= 0 {
		spec = spec[:slash]
	}
	i, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("parse face index %q: %w", spec, err)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += vertexCount
	default:
		return 0, fmt.Errorf("face index 0 is invalid")
	}
	if i < 0 || i >= vertexCount {
		return 0, fmt.Errorf("face index %q out of range (have %d vertices)", spec, vertexCount)
	}
	return i, nil
}
