// Package game runs the interactive map screen on a tcell screen: the player
// picks the next node with the cursor and the run manager applies the move.
package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"spire-run/assets"
	"spire-run/internal/mapgen"
	"spire-run/internal/models"
	"spire-run/internal/render"
	"spire-run/internal/run"
)

const helpLine = "[h/l or ←/→] choose  [Enter] travel  [n] new run  [q] quit (run is saved)"

// Game is the top-level orchestrator for one player's terminal session.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	runs     *run.Manager
	runID    string
	logger   *zap.Logger

	run      *models.RunState
	cursor   int
	messages []string
}

// New creates a Game that plays the run saved under runID on screen. The
// screen must already be initialised.
func New(screen tcell.Screen, runs *run.Manager, runID string, logger *zap.Logger) *Game {
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		runs:     runs,
		runID:    runID,
		logger:   logger.Named("game").With(zap.String("runID", runID)),
	}
}

// Run loads or creates the run and processes input until the player quits
// or ctx is cancelled. The run stays saved either way.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()
	stop := context.AfterFunc(ctx, g.screen.Fini)
	defer stop()

	if err := g.load(ctx); err != nil {
		return err
	}

	for {
		g.draw()

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			g.screen.Sync()
		case *tcell.EventKey:
			quit, err := g.processAction(ctx, keyToAction(ev))
			if err != nil {
				g.logger.Error("action failed", zap.Error(err))
				g.addMessage(fmt.Sprintf("Save failed: %v", err))
			}
			if quit {
				return nil
			}
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (g *Game) load(ctx context.Context) error {
	r, err := g.runs.Resume(ctx, g.runID)
	if err != nil {
		return fmt.Errorf("load run: %w", err)
	}
	g.run = r
	g.cursor = 0
	if r.Map.PlayerPosition == "" {
		g.addMessage("Choose where to begin your climb.")
	} else {
		g.addMessage(fmt.Sprintf("You return to floor %d.", r.Floor))
	}
	return nil
}

// choices returns the available nodes left to right.
func (g *Game) choices() []*mapgen.MapNode {
	nodes := g.run.Map.AvailableNodes()
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].X < nodes[j].X })
	return nodes
}

// selected returns the node under the cursor, or nil when nothing is
// available.
func (g *Game) selected() *mapgen.MapNode {
	nodes := g.choices()
	if len(nodes) == 0 {
		return nil
	}
	g.cursor = ((g.cursor % len(nodes)) + len(nodes)) % len(nodes)
	return nodes[g.cursor]
}

// processAction handles one player action. It reports whether the player
// asked to quit.
func (g *Game) processAction(ctx context.Context, action Action) (bool, error) {
	switch action {
	case ActionQuit:
		return true, nil
	case ActionPrev:
		g.cursor--
	case ActionNext:
		g.cursor++
	case ActionSelect:
		return false, g.travel(ctx)
	case ActionNewRun:
		return false, g.restart(ctx, "You abandon the climb and start anew.")
	}
	return false, nil
}

func (g *Game) travel(ctx context.Context) error {
	target := g.selected()
	if target == nil {
		return nil
	}
	enc, ok, err := g.runs.Select(ctx, g.run, target.ID)
	if !ok {
		return err
	}
	g.cursor = 0

	if lore := assets.Lore(enc.Level, g.run.Seed); lore != "" {
		g.addMessage(lore)
	}
	msg := enc.Title() + "."
	if enc.Gold > 0 {
		msg = fmt.Sprintf("%s +%d gold.", enc.Title(), enc.Gold)
	}
	g.addMessage(msg)
	if err != nil {
		return err
	}

	if enc.Final {
		g.showVictory()
		return g.restart(ctx, "A new spire rises.")
	}
	return nil
}

// restart finishes the current run and starts a fresh one under the same id.
func (g *Game) restart(ctx context.Context, msg string) error {
	if err := g.runs.Finish(ctx, g.run); err != nil {
		return err
	}
	r, err := g.runs.Start(ctx, g.runID)
	if err != nil {
		return err
	}
	g.run = r
	g.cursor = 0
	g.addMessage(msg)
	return nil
}

func (g *Game) draw() {
	cursorID := ""
	if n := g.selected(); n != nil {
		cursorID = n.ID
	}
	g.renderer.DrawMap(g.run.Map, cursorID)
	g.renderer.DrawHUD(render.HUD{
		RunID:    g.run.ID,
		Floor:    g.run.Floor,
		Gold:     g.run.Gold,
		Help:     helpLine,
		Messages: g.messages,
	})
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

// showVictory draws the end-of-run panel and waits for any key.
func (g *Game) showVictory() {
	lines := []string{
		"🐉  The boss falls!  🐉",
		fmt.Sprintf("Floors climbed: %d   Gold: %d", g.run.Floor, g.run.Gold),
		"",
		"Press any key to begin a new climb",
	}
	g.screen.Clear()
	w, h := g.screen.Size()
	y := (h - len(lines)) / 2
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for i, line := range lines {
		x := max((w-runewidth.StringWidth(line))/2, 0)
		col := x
		for _, ch := range line {
			g.screen.SetContent(col, y+i, ch, nil, style)
			col += max(runewidth.RuneWidth(ch), 1)
		}
	}
	g.screen.Show()

	for {
		switch g.screen.PollEvent().(type) {
		case nil, *tcell.EventKey:
			return
		case *tcell.EventResize:
			g.screen.Sync()
		}
	}
}
