package render

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"spire-run/internal/mapgen"
)

func newSimScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	ss.SetSize(w, h)
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	return ss
}

func testMap(t *testing.T, seed int64) *mapgen.GameMap {
	t.Helper()
	g, err := mapgen.NewGenerator(mapgen.DefaultConfig(rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g.Generate()
}

func TestViewportStartBottomBossTop(t *testing.T) {
	m := testMap(t, 1)
	vp := NewViewport(m, 80, 19)

	start := m.NodesAt(mapgen.LevelStart)[0]
	boss := m.Boss()
	_, sy, ok := vp.ToScreen(start.X, start.Y)
	if !ok || sy != 18 {
		t.Errorf("start row %d (visible %v), want 18", sy, ok)
	}
	_, by, ok := vp.ToScreen(boss.X, boss.Y)
	if !ok || by != 0 {
		t.Errorf("boss row %d (visible %v), want 0", by, ok)
	}
}

func TestViewportKeepsEveryNodeVisible(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		m := testMap(t, seed)
		vp := NewViewport(m, 60, 15)
		for _, n := range m.Nodes {
			if _, _, ok := vp.ToScreen(n.X, n.Y); !ok {
				t.Errorf("seed=%d: %s off screen", seed, n.ID)
			}
		}
	}
}

func TestDrawMapPlacesGlyphs(t *testing.T) {
	ss := newSimScreen(t, 80, 24)
	m := testMap(t, 2)
	r := NewRenderer(ss)
	start := m.NodesAt(mapgen.LevelStart)[0]
	r.DrawMap(m, start.ID)

	vp := r.Viewport(m)
	bx, by, _ := vp.ToScreen(m.Boss().X, m.Boss().Y)
	if got, _, _, _ := ss.GetContent(bx, by); got != []rune(NodeGlyphs[mapgen.NodeBoss])[0] {
		t.Errorf("boss cell holds %q", got)
	}

	sx, sy, _ := vp.ToScreen(start.X, start.Y)
	if got, _, _, _ := ss.GetContent(sx-1, sy); got != '[' {
		t.Errorf("cursor bracket missing, got %q", got)
	}
	if got, _, _, _ := ss.GetContent(sx+2, sy); got != ']' {
		t.Errorf("closing cursor bracket missing, got %q", got)
	}
}

func TestDrawMapMarksPlayer(t *testing.T) {
	ss := newSimScreen(t, 80, 24)
	m := testMap(t, 3)
	start := m.NodesAt(mapgen.LevelStart)[0]
	mapgen.MovePlayer(m, start.ID)

	r := NewRenderer(ss)
	r.DrawMap(m, "")
	sx, sy, _ := r.Viewport(m).ToScreen(start.X, start.Y)
	if got, _, _, _ := ss.GetContent(sx, sy); got != []rune(PlayerGlyph)[0] {
		t.Errorf("player cell holds %q", got)
	}
}

func TestDrawHUD(t *testing.T) {
	ss := newSimScreen(t, 60, 24)
	r := NewRenderer(ss)
	r.DrawHUD(HUD{
		RunID:    "0123456789abcdef",
		Floor:    3,
		Gold:     45,
		Messages: []string{"old", "A battle begins", "You rest by the campfire"},
	})

	row := func(y int) string {
		var b strings.Builder
		for x := 0; x < 60; x++ {
			c, _, _, _ := ss.GetContent(x, y)
			b.WriteRune(c)
		}
		return b.String()
	}
	hudY := 24 - HUDHeight
	if s := row(hudY + 1); !strings.Contains(s, "Floor 3/9") || !strings.Contains(s, "Gold 45") || !strings.Contains(s, "01234567") {
		t.Errorf("status line %q", s)
	}
	if s := row(hudY + 2); !strings.Contains(s, "A battle begins") {
		t.Errorf("message line %q", s)
	}
	if s := row(hudY + 3); !strings.Contains(s, "campfire") {
		t.Errorf("message line %q", s)
	}
}
