package models

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/ansipixels/camlab/math3d"
)

// LoadGLB loads a binary GLTF (.glb or .gltf with embedded buffers) file.
// Only the triangle geometry is extracted; materials and textures are
// ignored since camlab projects points and edges, not shaded surfaces.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))

	if len(doc.Scenes) > 0 {
		sceneIdx := 0
		if doc.Scene != nil {
			sceneIdx = int(*doc.Scene)
		}
		for _, nodeIdx := range doc.Scenes[sceneIdx].Nodes {
			if err := processNode(doc, int(nodeIdx), math3d.Identity(), mesh); err != nil {
				return nil, err
			}
		}
	} else {
		for i := range doc.Nodes {
			if err := processNode(doc, i, math3d.Identity(), mesh); err != nil {
				return nil, err
			}
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processNode extracts a node's mesh with its accumulated transform, then
// recurses into children.
func processNode(doc *gltf.Document, nodeIdx int, parent math3d.Mat4, mesh *Mesh) error {
	node := doc.Nodes[nodeIdx]

	local := math3d.Identity()
	if node.Matrix != [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1} {
		local = math3d.Mat4FromSlice(node.Matrix[:])
	} else {
		if node.Translation != [3]float64{} {
			local = local.Mul(math3d.Translate(math3d.V3(
				node.Translation[0], node.Translation[1], node.Translation[2])))
		}
		if node.Rotation != [4]float64{0, 0, 0, 1} {
			local = local.Mul(math3d.QuatToMat4(
				node.Rotation[0], node.Rotation[1], node.Rotation[2], node.Rotation[3]))
		}
		if node.Scale != [3]float64{1, 1, 1} && node.Scale != [3]float64{} {
			local = local.Mul(math3d.Scale(math3d.V3(
				node.Scale[0], node.Scale[1], node.Scale[2])))
		}
	}
	world := parent.Mul(local)

	if node.Mesh != nil {
		if err := processMesh(doc, doc.Meshes[int(*node.Mesh)], world, mesh); err != nil {
			return err
		}
	}
	for _, childIdx := range node.Children {
		if err := processNode(doc, int(childIdx), world, mesh); err != nil {
			return err
		}
	}
	return nil
}

func processMesh(doc *gltf.Document, m *gltf.Mesh, transform math3d.Mat4, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, int(posIdx))
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		baseVertex := len(mesh.Vertices)
		for _, p := range positions {
			mesh.Vertices = append(mesh.Vertices, transform.MulVec3(p))
		}

		if prim.Indices != nil {
			indices, err := readIndices(doc, int(*prim.Indices))
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{
					baseVertex + indices[i],
					baseVertex + indices[i+1],
					baseVertex + indices[i+2],
				})
			}
		} else {
			for i := 0; i+2 < len(positions); i += 3 {
				mesh.Faces = append(mesh.Faces, [3]int{
					baseVertex + i, baseVertex + i + 1, baseVertex + i + 2,
				})
			}
		}
	}
	return nil
}

// readVec3Accessor reads float VEC3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		off := i * stride
		x := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))
		result[i] = math3d.V3(float64(x), float64(y), float64(z))
	}
	return result, nil
}

// readIndices reads scalar index data (ubyte/ushort/uint) from an accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}
	var compSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		compSize = 1
	case gltf.ComponentUshort:
		compSize = 2
	case gltf.ComponentUint:
		compSize = 4
	default:
		return nil, fmt.Errorf("unexpected index component type %v", accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, compSize)
	if err != nil {
		return nil, err
	}
	result := make([]int, accessor.Count)
	for i := range result {
		off := i * stride
		switch compSize {
		case 1:
			result[i] = int(data[off])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[off:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[off:]))
		}
	}
	return result, nil
}

// accessorBytes returns the accessor's backing bytes and element stride.
// Only embedded (GLB) buffers are supported.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.URI != "" {
		return nil, 0, fmt.Errorf("external buffers not supported")
	}
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}
	stride := elemSize
	if view.ByteStride != 0 {
		stride = int(view.ByteStride)
	}
	start := int(view.ByteOffset) + int(accessor.ByteOffset)
	need := start + stride*(int(accessor.Count)-1) + elemSize
	if accessor.Count == 0 {
		need = start
	}
	if need > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor range [%d, %d) exceeds buffer size %d", start, need, len(buffer.Data))
	}
	return buffer.Data[start:], stride, nil
}
