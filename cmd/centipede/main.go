package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/K2Da/space-centipede/game"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const tps = 60

var (
	colorBackground = color.RGBA{R: 8, G: 10, B: 24, A: 255}
	colorBorder     = color.RGBA{R: 60, G: 70, B: 110, A: 255}
	colorHead       = color.RGBA{R: 250, G: 220, B: 90, A: 255}
	colorSegment    = color.RGBA{R: 110, G: 220, B: 120, A: 255}
	colorPurged     = color.RGBA{R: 110, G: 110, B: 120, A: 160}
	colorPost       = color.RGBA{R: 230, G: 90, B: 80, A: 255}
	colorBar        = color.RGBA{R: 230, G: 160, B: 80, A: 200}
	colorCursor     = color.RGBA{R: 140, G: 180, B: 255, A: 200}
)

// Game adapts a Simulation to ebiten. World origin is the window center, y up.
type Game struct {
	sim       *game.Simulation
	pilot     *game.Autopilot
	autopilot bool
	lastEvent string
	status    string // transient HUD line, e.g. after copying
}

func NewGame(cfg game.Config, autopilot bool) *Game {
	return &Game{
		sim:       game.NewSimulation(cfg),
		pilot:     game.NewAutopilot(cfg.Seed),
		autopilot: autopilot,
	}
}

func (g *Game) toWorld(x, y int) game.Point {
	cfg := g.sim.Config()
	return game.Point{X: float64(x) - cfg.BorderX, Y: cfg.BorderY - float64(y)}
}

func (g *Game) toScreen(p game.Point) (float32, float32) {
	cfg := g.sim.Config()
	return float32(p.X + cfg.BorderX), float32(cfg.BorderY - p.Y)
}

func (g *Game) summary() string {
	st := g.sim.Status()
	return fmt.Sprintf("space centipede: score %d, high score %d, %.0fs played", st.Score, st.HighScore, g.sim.Now())
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.autopilot = !g.autopilot
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.summary()); err != nil {
			log.Printf("copy to clipboard: %v", err)
			g.status = "clipboard unavailable"
		} else {
			g.status = "summary copied"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.RequestGameStart()
	}

	if g.autopilot {
		g.pilot.Drive(g.sim, 1.0/tps)
	} else {
		g.sim.SteerTarget(g.toWorld(ebiten.CursorPosition()))
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.sim.SteerTap()
		}
		for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
			g.sim.SteerTarget(g.toWorld(ebiten.TouchPosition(id)))
			g.sim.SteerTap()
		}
	}

	for _, e := range g.sim.Tick(1.0 / tps) {
		g.lastEvent = e.String()
		if e.Type == game.GameOver {
			log.Printf("game over: %s", g.summary())
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	cfg := g.sim.Config()
	snap := g.sim.Snapshot()

	vector.StrokeRect(screen, 0, 0, float32(2*cfg.BorderX), float32(2*cfg.BorderY), 2, colorBorder, false)

	for _, gate := range snap.Gates {
		x0, y0 := g.toScreen(gate.BarFrom)
		x1, y1 := g.toScreen(gate.BarTo)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, colorBar, true)
		for _, p := range gate.Posts {
			x, y := g.toScreen(p)
			vector.DrawFilledCircle(screen, x, y, float32(cfg.PostRadius), colorPost, true)
		}
	}

	// Purged first so living segments draw on top
	for i := len(snap.Segments) - 1; i >= 0; i-- {
		s := snap.Segments[i]
		if !s.Visible {
			continue
		}
		clr := colorSegment
		if s.Purged {
			clr = colorPurged
		}
		x, y := g.toScreen(s.Position)
		vector.DrawFilledCircle(screen, x, y, float32(cfg.SegmentSpacing/3), clr, true)
	}

	if snap.Alive {
		x, y := g.toScreen(snap.Head)
		vector.DrawFilledCircle(screen, x, y, float32(cfg.HeadRadius), colorHead, true)
		if snap.Circular {
			cx, cy := g.toScreen(snap.Center)
			vector.StrokeCircle(screen, cx, cy, 3, 1, colorCursor, true)
		}
	}

	cx, cy := g.toScreen(snap.Cursor)
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, colorCursor, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, colorCursor, false)

	hud := fmt.Sprintf("score %d  high %d  tail %d  speed %.0f", snap.Score, snap.HighScore, snap.TailCount, snap.Speed)
	if g.autopilot {
		hud += "  [autopilot]"
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 6)
	if !snap.Alive {
		ebitenutil.DebugPrintAt(screen, "ENTER to start   A autopilot   C copy summary", 8, 22)
	}
	if g.lastEvent != "" {
		ebitenutil.DebugPrintAt(screen, g.lastEvent, 8, int(2*cfg.BorderY)-36)
	}
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 8, int(2*cfg.BorderY)-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.sim.Config()
	return int(2 * cfg.BorderX), int(2 * cfg.BorderY)
}

func main() {
	seed := flag.Int64("seed", 0, "random seed for gates and autopilot (0 = time based)")
	autopilot := flag.Bool("autopilot", false, "start with the autopilot steering")
	manual := flag.Bool("manual-start", false, "wait for ENTER instead of starting games automatically")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.Seed = *seed
	cfg.AutoRestart = !*manual

	ebiten.SetWindowTitle("Space Centipede")
	ebiten.SetWindowSize(int(2*cfg.BorderX), int(2*cfg.BorderY))
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(NewGame(cfg, *autopilot)); err != nil {
		log.Fatal(err)
	}
}
