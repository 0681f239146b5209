package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"spire-run/internal/mapgen"
)

// HUDHeight is the number of rows reserved below the map.
const HUDHeight = 5

// Renderer draws the run map onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Viewport returns the projection for m at the current screen size.
func (r *Renderer) Viewport(m *mapgen.GameMap) *Viewport {
	w, h := r.screen.Size()
	return NewViewport(m, w, max(h-HUDHeight, 1))
}

// DrawMap clears the screen and draws edges then nodes. cursor is the id of
// the highlighted node, or empty.
func (r *Renderer) DrawMap(m *mapgen.GameMap, cursor string) {
	r.screen.Clear()
	vp := r.Viewport(m)

	// Unavailable edges first so brighter ones win where lines cross.
	for _, status := range []mapgen.Status{mapgen.StatusUnavailable, mapgen.StatusCompleted, mapgen.StatusAvailable} {
		for _, p := range m.Paths {
			if p.Status != status {
				continue
			}
			src, dst := m.Node(p.SourceID), m.Node(p.TargetID)
			if src == nil || dst == nil {
				continue
			}
			r.drawEdge(vp, src, dst, pathColors[status])
		}
	}

	for _, n := range m.Nodes {
		sx, sy, onScreen := vp.ToScreen(n.X, n.Y)
		if !onScreen {
			continue
		}
		glyph := NodeGlyphs[n.Type]
		if n.ID == m.PlayerPosition {
			glyph = PlayerGlyph
		}
		style := tcell.StyleDefault.Background(nodeBackgrounds[n.Status])
		r.putGlyph(sx, sy, glyph, style)

		if n.ID == cursor {
			mark := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
			r.screen.SetContent(sx-1, sy, '[', nil, mark)
			r.screen.SetContent(sx+2, sy, ']', nil, mark)
		}
	}
}

// drawEdge plots a dotted line between two nodes, leaving the glyph cells
// themselves untouched.
func (r *Renderer) drawEdge(vp *Viewport, src, dst *mapgen.MapNode, color tcell.Color) {
	x1, y1, _ := vp.ToScreen(src.X, src.Y)
	x2, y2, _ := vp.ToScreen(dst.X, dst.Y)
	// Aim at the middle of the two-column glyphs.
	x1, x2 = x1+1, x2+1

	dx, dy := x2-x1, y2-y1
	steps := max(abs(dx), abs(dy))
	if steps < 2 {
		return
	}
	ch := '·'
	switch {
	case dx == 0:
		ch = '│'
	case dx*dy < 0:
		ch = '╱'
	case abs(dy) > 0:
		ch = '╲'
	}
	style := tcell.StyleDefault.Foreground(color)
	for i := 1; i < steps; i++ {
		x := x1 + dx*i/steps
		y := y1 + dy*i/steps
		if y == y1 || y == y2 {
			continue
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
