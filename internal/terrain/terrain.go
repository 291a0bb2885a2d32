// Package terrain summarizes the CAD models that accompany the
// monitoring exports: STL pit-surface meshes and DXF bench plans. Only
// summary figures are produced here; rendering belongs to the
// dashboard.
package terrain

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Model kinds, keyed off the source file format.
const (
	KindMesh = "mesh" // STL surface triangulation
	KindPlan = "plan" // DXF bench plan
)

// Model is one loaded CAD reference model. Exactly one of Mesh or Plan
// is set, matching Kind.
type Model struct {
	Name string       `json:"name"`
	Kind string       `json:"kind"`
	Mesh *MeshSummary `json:"mesh,omitempty"`
	Plan *DXFSummary  `json:"plan,omitempty"`
}

// Load summarizes one CAD file, dispatching on the extension.
func Load(path string) (*Model, error) {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		mesh, err := LoadSTL(path)
		if err != nil {
			return nil, err
		}
		return &Model{Name: name, Kind: KindMesh, Mesh: mesh}, nil
	case ".dxf":
		plan, err := LoadDXF(path)
		if err != nil {
			return nil, err
		}
		return &Model{Name: name, Kind: KindPlan, Plan: plan}, nil
	default:
		return nil, eris.Errorf("terrain: unsupported model format %q", filepath.Ext(path))
	}
}

// Bounds3 is the axis-aligned bounding box of a mesh in mine grid
// coordinates.
type Bounds3 struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
	MaxZ float64 `json:"max_z"`
}

// Size is the extent of a mesh along each axis: easting width, northing
// depth, elevation height.
type Size struct {
	Width  float64 `json:"width"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
}

func (b Bounds3) size() Size {
	return Size{
		Width:  b.MaxX - b.MinX,
		Depth:  b.MaxY - b.MinY,
		Height: b.MaxZ - b.MinZ,
	}
}

type boundsTracker struct {
	b   Bounds3
	any bool
}

func (t *boundsTracker) extend(x, y, z float64) {
	if !t.any {
		t.b = Bounds3{MinX: x, MinY: y, MinZ: z, MaxX: x, MaxY: y, MaxZ: z}
		t.any = true
		return
	}
	if x < t.b.MinX {
		t.b.MinX = x
	}
	if x > t.b.MaxX {
		t.b.MaxX = x
	}
	if y < t.b.MinY {
		t.b.MinY = y
	}
	if y > t.b.MaxY {
		t.b.MaxY = y
	}
	if z < t.b.MinZ {
		t.b.MinZ = z
	}
	if z > t.b.MaxZ {
		t.b.MaxZ = z
	}
}
