package terrain

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Mesh formats.
const (
	FormatBinary = "binary"
	FormatASCII  = "ascii"
)

// MeshSummary describes one STL surface mesh.
type MeshSummary struct {
	Format         string  `json:"format"`
	Triangles      int     `json:"triangles"`
	UniqueVertices int     `json:"unique_vertices"`
	Bounds         Bounds3 `json:"bounds"`
	Size           Size    `json:"size"`
	SurfaceArea    float64 `json:"surface_area"`
}

const (
	stlHeaderLen   = 80
	stlTriangleLen = 50 // 12B normal + 3*12B vertices + 2B attribute
)

// LoadSTL reads a binary or ASCII STL file and summarizes the mesh.
// Binary detection goes by the declared triangle count matching the
// file size, which also catches binary files whose header starts with
// "solid".
func LoadSTL(path string) (*MeshSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "terrain: read stl %s", path)
	}

	if len(data) >= stlHeaderLen+4 {
		count := binary.LittleEndian.Uint32(data[stlHeaderLen:])
		if len(data) == stlHeaderLen+4+int(count)*stlTriangleLen {
			return summarizeBinarySTL(data, int(count))
		}
	}

	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return summarizeASCIISTL(data)
	}

	return nil, eris.Errorf("terrain: %s is not a recognizable STL file", path)
}

func summarizeBinarySTL(data []byte, count int) (*MeshSummary, error) {
	vertices := make([][3]float64, 0, count*3)
	for i := 0; i < count; i++ {
		tri := data[stlHeaderLen+4+i*stlTriangleLen:]
		// Skip the 12-byte normal; the vertices define the geometry.
		for v := 0; v < 3; v++ {
			off := 12 + v*12
			vertices = append(vertices, [3]float64{
				float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[off:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[off+4:]))),
				float64(math.Float32frombits(binary.LittleEndian.Uint32(tri[off+8:]))),
			})
		}
	}
	return summarizeMesh(FormatBinary, vertices)
}

func summarizeASCIISTL(data []byte) (*MeshSummary, error) {
	var vertices [][3]float64

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] != "vertex" {
			continue
		}
		if len(fields) != 4 {
			return nil, eris.Errorf("terrain: malformed stl vertex line %q", sc.Text())
		}
		var v [3]float64
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, eris.Wrapf(err, "terrain: parse stl vertex %q", fields[i+1])
			}
			v[i] = f
		}
		vertices = append(vertices, v)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "terrain: scan ascii stl")
	}
	if len(vertices)%3 != 0 {
		return nil, eris.Errorf("terrain: ascii stl has %d vertices, not a multiple of 3", len(vertices))
	}

	return summarizeMesh(FormatASCII, vertices)
}

func summarizeMesh(format string, vertices [][3]float64) (*MeshSummary, error) {
	s := &MeshSummary{Format: format, Triangles: len(vertices) / 3}

	unique := make(map[[3]float64]struct{}, len(vertices))
	var tracker boundsTracker
	for _, v := range vertices {
		unique[v] = struct{}{}
		tracker.extend(v[0], v[1], v[2])
	}
	s.UniqueVertices = len(unique)
	if tracker.any {
		s.Bounds = tracker.b
		s.Size = tracker.b.size()
	}

	for i := 0; i+2 < len(vertices); i += 3 {
		s.SurfaceArea += triangleArea(vertices[i], vertices[i+1], vertices[i+2])
	}

	return s, nil
}

// triangleArea is half the cross product magnitude of two edges.
func triangleArea(a, b, c [3]float64) float64 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	cx := uy*vz - uz*vy
	cy := uz*vx - ux*vz
	cz := ux*vy - uy*vx
	return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
}
