package render

import (
	"math"

	"spire-run/internal/mapgen"
)

// Viewport maps the map's pixel coordinates onto terminal cells. The START
// level is drawn at the bottom and the boss at the top.
type Viewport struct {
	Width, Height int // drawable area in terminal cells
	MarginX       int

	minX, maxX float64
	minY, maxY float64
}

// NewViewport fits the bounding box of m's nodes into width x height cells.
func NewViewport(m *mapgen.GameMap, width, height int) *Viewport {
	v := &Viewport{
		Width:   width,
		Height:  height,
		MarginX: 2,
		minX:    math.Inf(1),
		maxX:    math.Inf(-1),
		minY:    math.Inf(1),
		maxY:    math.Inf(-1),
	}
	for _, n := range m.Nodes {
		v.minX = math.Min(v.minX, n.X)
		v.maxX = math.Max(v.maxX, n.X)
		v.minY = math.Min(v.minY, n.Y)
		v.maxY = math.Max(v.maxY, n.Y)
	}
	return v
}

// ToScreen converts pixel (x, y) to the cell where a node's glyph starts.
// visible is false when the cell falls outside the drawable area.
func (v *Viewport) ToScreen(x, y float64) (sx, sy int, visible bool) {
	// Each glyph is two columns wide; keep one spare so it never clips.
	cols := v.Width - 2*v.MarginX - 2
	rows := v.Height - 1

	sx = v.Width / 2
	if v.maxX > v.minX && cols > 0 {
		sx = v.MarginX + int(math.Round((x-v.minX)/(v.maxX-v.minX)*float64(cols)))
	}
	sy = rows / 2
	if v.maxY > v.minY && rows > 0 {
		sy = rows - int(math.Round((y-v.minY)/(v.maxY-v.minY)*float64(rows)))
	}
	visible = sx >= 0 && sx+1 < v.Width && sy >= 0 && sy < v.Height
	return
}
