package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load loads a model file, picking the loader from the file extension.
// Supported formats: .stl, .obj, .glb, .gltf.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return LoadSTL(path)
	case ".obj":
		return LoadOBJ(path)
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
	}
}
