package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUD is the status shown under the map.
type HUD struct {
	RunID    string
	Floor    int
	Gold     int
	Help     string
	Messages []string
}

// DrawHUD renders the status bar and message log at the bottom of the screen
// and shows the frame.
func (r *Renderer) DrawHUD(h HUD) {
	w, screenH := r.screen.Size()
	hudY := screenH - HUDHeight

	r.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("Floor %d/9  Gold %d  Run %s", h.Floor, h.Gold, shortID(h.RunID))
	r.drawText(0, hudY+1, runewidth.Truncate(status, w, "…"), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Last two messages.
	start := max(len(h.Messages)-2, 0)
	for i, msg := range h.Messages[start:] {
		r.drawText(0, hudY+2+i, runewidth.Truncate(msg, w, "…"), tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	if h.Help != "" {
		r.drawText(0, hudY+4, runewidth.Truncate(h.Help, w, "…"), tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	r.screen.Show()
}

// shortID keeps the first segment of a uuid-style id.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text advancing by each rune's display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
