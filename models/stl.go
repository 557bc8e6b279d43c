package models

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ansipixels/camlab/math3d"
)

// STLLoader loads STL (stereolithography) files in ASCII and binary formats.
type STLLoader struct {
	MergeTolerance float64 // tolerance for vertex merging (0 = exact match)
}

// NewSTLLoader creates an STL loader with default settings.
func NewSTLLoader() *STLLoader {
	return &STLLoader{}
}

// LoadSTL loads an STL file from disk with default settings.
func LoadSTL(path string) (*Mesh, error) {
	return NewSTLLoader().LoadFile(path)
}

// quantizedKey makes a position hashable by quantizing to a grid, sidestepping
// float precision issues when merging vertices shared across facets.
type quantizedKey struct {
	x, y, z int64
}

func quantizePosition(pos math3d.Vec3, tolerance float64) quantizedKey {
	if tolerance <= 0 {
		tolerance = 1e-12
	}
	scale := 1.0 / tolerance
	return quantizedKey{
		x: int64(math.Round(pos.X * scale)),
		y: int64(math.Round(pos.Y * scale)),
		z: int64(math.Round(pos.Z * scale)),
	}
}

// LoadFile loads an STL file from disk.
func (l *STLLoader) LoadFile(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read STL file: %w", err)
	}
	return l.LoadBytes(data, path)
}

// Load parses STL from a reader. The full content is read into memory to
// detect the format.
func (l *STLLoader) Load(r io.Reader, name string) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read STL data: %w", err)
	}
	return l.LoadBytes(data, name)
}

// LoadBytes parses STL from a byte slice, detecting ASCII vs binary.
func (l *STLLoader) LoadBytes(data []byte, name string) (*Mesh, error) {
	if isBinarySTL(data) {
		return l.loadBinary(data, name)
	}
	return l.loadASCII(data, name)
}

// isBinarySTL detects the binary format: an 80-byte header followed by a
// 4-byte triangle count that must match the file size. ASCII files start
// with "solid", but so can a binary header, hence the size check.
func isBinarySTL(data []byte) bool {
	if len(data) < 84 {
		return false
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) {
		triCount := binary.LittleEndian.Uint32(data[80:84])
		return uint32(len(data)) == 84+triCount*50
	}
	return true
}

func (l *STLLoader) loadBinary(data []byte, name string) (*Mesh, error) {
	if len(data) < 84 {
		return nil, fmt.Errorf("binary STL too short: %d bytes", len(data))
	}
	triCount := binary.LittleEndian.Uint32(data[80:84])
	if uint32(len(data)) < 84+triCount*50 {
		return nil, fmt.Errorf("binary STL truncated: %d triangles declared", triCount)
	}

	mesh := NewMesh(name)
	b := &builder{mesh: mesh, merge: make(map[quantizedKey]int), tolerance: l.MergeTolerance}

	off := 84
	for t := uint32(0); t < triCount; t++ {
		// 12 bytes normal (ignored), 3 vertices, 2 attribute bytes.
		off += 12
		var tri [3]math3d.Vec3
		for i := 0; i < 3; i++ {
			x := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			y := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
			z := math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))
			tri[i] = math3d.V3(float64(x), float64(y), float64(z))
			off += 12
		}
		off += 2
		b.addTriangle(tri)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func (l *STLLoader) loadASCII(data []byte, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	b := &builder{mesh: mesh, merge: make(map[quantizedKey]int), tolerance: l.MergeTolerance}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var tri []math3d.Vec3
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "solid":
			if len(fields) > 1 && mesh.Name == name {
				mesh.Name = fields[1]
			}
		case "vertex":
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
			tri = append(tri, math3d.V3(c[0], c[1], c[2]))
		case "endfacet":
			if len(tri) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices, want 3", lineNum, len(tri))
			}
			b.addTriangle([3]math3d.Vec3{tri[0], tri[1], tri[2]})
			tri = tri[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan STL: %w", err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// builder accumulates triangles while merging shared vertices.
type builder struct {
	mesh      *Mesh
	merge     map[quantizedKey]int
	tolerance float64
}

func (b *builder) addTriangle(tri [3]math3d.Vec3) {
	var face [3]int
	for i, p := range tri {
		key := quantizePosition(p, b.tolerance)
		idx, ok := b.merge[key]
		if !ok {
			idx = len(b.mesh.Vertices)
			b.mesh.Vertices = append(b.mesh.Vertices, p)
			b.merge[key] = idx
		}
		face[i] = idx
	}
	// Degenerate facets (merged corners) carry no area or edges.
	if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
		return
	}
	b.mesh.Faces = append(b.mesh.Faces, face)
}
