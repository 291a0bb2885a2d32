package terrain

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// DXFSummary describes one DXF bench plan: entity counts overall, per
// layer, and the plan-view bounding box of the supported geometry.
type DXFSummary struct {
	Layers    []LayerCount `json:"layers"`
	Entities  int          `json:"entities"`
	Lines     int          `json:"lines"`
	Polylines int          `json:"polylines"`
	Points    int          `json:"points"`
	Other     int          `json:"other"`
	Bounds    *PlanBounds  `json:"bounds,omitempty"`
}

// LayerCount is the entity count for one drawing layer.
type LayerCount struct {
	Name     string `json:"name"`
	Entities int    `json:"entities"`
}

// PlanBounds is the 2D bounding box of the drawing in plan view.
type PlanBounds struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	MaxX   float64 `json:"max_x"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LoadDXF scans the ENTITIES section of an ASCII DXF file. LINE,
// LWPOLYLINE, POLYLINE and POINT entities contribute geometry; other
// entity types are counted but not measured.
func LoadDXF(path string) (*DXFSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "terrain: open dxf %s", path)
	}
	defer f.Close()

	s, err := summarizeDXF(f)
	if err != nil {
		return nil, eris.Wrapf(err, "terrain: parse dxf %s", path)
	}
	return s, nil
}

// dxfEntity accumulates one entity between its (0, kind) pair and the
// next entity boundary. VERTEX and SEQEND are structural children of an
// open POLYLINE, never counted on their own.
type dxfEntity struct {
	kind     string
	layer    string
	countMe  bool
	measured bool
}

func measuredKind(kind string) bool {
	switch kind {
	case "LINE", "LWPOLYLINE", "POLYLINE", "POINT":
		return true
	default:
		return false
	}
}

func summarizeDXF(r io.Reader) (*DXFSummary, error) {
	s := &DXFSummary{}
	layers := make(map[string]int)

	var bounds struct {
		minX, minY, maxX, maxY float64
		any                    bool
	}
	extend := func(x, y float64) {
		if !bounds.any {
			bounds.minX, bounds.maxX = x, x
			bounds.minY, bounds.maxY = y, y
			bounds.any = true
			return
		}
		if x < bounds.minX {
			bounds.minX = x
		}
		if x > bounds.maxX {
			bounds.maxX = x
		}
		if y < bounds.minY {
			bounds.minY = y
		}
		if y > bounds.maxY {
			bounds.maxY = y
		}
	}

	var cur *dxfEntity
	commit := func() {
		if cur == nil || !cur.countMe {
			cur = nil
			return
		}
		switch cur.kind {
		case "LINE":
			s.Lines++
		case "LWPOLYLINE", "POLYLINE":
			s.Polylines++
		case "POINT":
			s.Points++
		default:
			s.Other++
		}
		s.Entities++
		layer := cur.layer
		if layer == "" {
			layer = "0" // DXF default layer
		}
		layers[layer]++
		cur = nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	section := ""
	expectSectionName := false
	inPolyline := false
	var pendingX float64
	haveX := false

	for {
		code, value, ok, err := readGroupPair(sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if code == 0 {
			haveX = false
			switch value {
			case "SECTION":
				commit()
				expectSectionName = true
				section = ""
			case "ENDSEC":
				commit()
				section = ""
				inPolyline = false
			case "EOF":
				commit()
			default:
				if section != "ENTITIES" {
					continue
				}
				switch value {
				case "VERTEX":
					// Child of the open POLYLINE: its coordinates count,
					// the entity itself does not. Committing here counts
					// the POLYLINE header once, before its vertex run.
					commit()
					cur = &dxfEntity{kind: "VERTEX", measured: inPolyline}
				case "SEQEND":
					commit()
					inPolyline = false
					cur = &dxfEntity{kind: "SEQEND"}
				default:
					commit()
					inPolyline = value == "POLYLINE"
					cur = &dxfEntity{kind: value, countMe: true, measured: measuredKind(value)}
				}
			}
			continue
		}

		if expectSectionName && code == 2 {
			section = value
			expectSectionName = false
			continue
		}
		if section != "ENTITIES" || cur == nil {
			continue
		}

		switch code {
		case 8:
			if cur.countMe {
				cur.layer = value
			}
		case 10, 11:
			x, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "dxf coordinate %q", value)
			}
			pendingX, haveX = x, true
		case 20, 21:
			y, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, eris.Wrapf(err, "dxf coordinate %q", value)
			}
			if haveX && cur.measured {
				extend(pendingX, y)
			}
			haveX = false
		}
	}
	commit()

	for name, count := range layers {
		s.Layers = append(s.Layers, LayerCount{Name: name, Entities: count})
	}
	sort.Slice(s.Layers, func(i, j int) bool { return s.Layers[i].Name < s.Layers[j].Name })

	if bounds.any {
		s.Bounds = &PlanBounds{
			MinX:   bounds.minX,
			MinY:   bounds.minY,
			MaxX:   bounds.maxX,
			MaxY:   bounds.maxY,
			Width:  bounds.maxX - bounds.minX,
			Height: bounds.maxY - bounds.minY,
		}
	}

	return s, nil
}

// readGroupPair reads one DXF group: a numeric code line followed by a
// value line.
func readGroupPair(sc *bufio.Scanner) (int, string, bool, error) {
	if !sc.Scan() {
		return 0, "", false, sc.Err()
	}
	codeLine := strings.TrimSpace(sc.Text())
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, "", false, err
		}
		return 0, "", false, eris.Errorf("dxf group code %q has no value line", codeLine)
	}
	code, err := strconv.Atoi(codeLine)
	if err != nil {
		return 0, "", false, eris.Wrapf(err, "malformed dxf group code %q", codeLine)
	}
	return code, strings.TrimSpace(sc.Text()), true, nil
}
