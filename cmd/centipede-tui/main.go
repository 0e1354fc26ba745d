package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/K2Da/space-centipede/game"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	frameMs    = 16
	sampleRate = beep.SampleRate(44100)
)

// tone is a short sine cue
type tone struct {
	freq float64
	dur  time.Duration
}

var eventTones = map[game.EventType]tone{
	game.GateThrough: {freq: 880, dur: 60 * time.Millisecond},
	game.GateCrushed: {freq: 220, dur: 120 * time.Millisecond},
	game.TailEaten:   {freq: 330, dur: 90 * time.Millisecond},
	game.GameOver:    {freq: 110, dur: 400 * time.Millisecond},
}

var (
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	styleHead    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSegment = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePurged  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePost    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBar     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleCursor  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

type Game struct {
	screen        tcell.Screen
	width, height int

	sim       *game.Simulation
	pilot     *game.Autopilot
	autopilot bool

	// Cursor in cells
	cursorX, cursorY int
	mouseDown        bool

	audioInit bool
}

func NewGame(cfg game.Config, autopilot bool) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	g := &Game{
		screen:    screen,
		sim:       game.NewSimulation(cfg),
		pilot:     game.NewAutopilot(cfg.Seed),
		autopilot: autopilot,
	}
	g.width, g.height = screen.Size()
	g.cursorX, g.cursorY = g.width/2, g.height/2

	if err := g.initAudio(); err != nil {
		// Non-fatal, game can run without sound
		log.Printf("Audio initialization failed: %v", err)
	}
	return g, nil
}

func (g *Game) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		g.audioInit = true
	}
	return err
}

func (g *Game) play(t tone) {
	if !g.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(t.dur), sine))
}

// arena is the drawable area; the last row is the HUD
func (g *Game) arena() (int, int) {
	return g.width, g.height - 1
}

func (g *Game) toCell(p game.Point) (int, int) {
	cfg := g.sim.Config()
	w, h := g.arena()
	x := (p.X + cfg.BorderX) / (2 * cfg.BorderX) * float64(w-1)
	y := (cfg.BorderY - p.Y) / (2 * cfg.BorderY) * float64(h-1)
	return int(math.Round(x)), int(math.Round(y))
}

func (g *Game) toWorld(x, y int) game.Point {
	cfg := g.sim.Config()
	w, h := g.arena()
	if w < 2 || h < 2 {
		return game.Point{}
	}
	return game.Point{
		X: float64(x)/float64(w-1)*2*cfg.BorderX - cfg.BorderX,
		Y: cfg.BorderY - float64(y)/float64(h-1)*2*cfg.BorderY,
	}
}

func (g *Game) set(x, y int, r rune, style tcell.Style) {
	w, h := g.arena()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	g.screen.SetContent(x, y, r, nil, style)
}

func (g *Game) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *Game) moveCursor(dx, dy int) {
	w, h := g.arena()
	g.cursorX = min(max(g.cursorX+dx, 0), w-1)
	g.cursorY = min(max(g.cursorY+dy, 0), h-1)
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			g.sim.RequestGameStart()
		case tcell.KeyUp:
			g.moveCursor(0, -1)
		case tcell.KeyDown:
			g.moveCursor(0, 1)
		case tcell.KeyLeft:
			g.moveCursor(-1, 0)
		case tcell.KeyRight:
			g.moveCursor(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				if !g.autopilot {
					g.sim.SteerTap()
				}
			case 'a':
				g.autopilot = !g.autopilot
			}
		}

	case *tcell.EventMouse:
		g.cursorX, g.cursorY = ev.Position()
		g.moveCursor(0, 0)
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !g.mouseDown && !g.autopilot {
			g.sim.SteerTarget(g.toWorld(g.cursorX, g.cursorY))
			g.sim.SteerTap()
		}
		g.mouseDown = pressed

	case *tcell.EventResize:
		g.width, g.height = g.screen.Size()
		g.moveCursor(0, 0)
		g.screen.Sync()
	}
	return true
}

func (g *Game) update(dt float64) {
	if g.autopilot {
		g.pilot.Drive(g.sim, dt)
	} else {
		g.sim.SteerTarget(g.toWorld(g.cursorX, g.cursorY))
	}
	for _, e := range g.sim.Tick(dt) {
		if t, ok := eventTones[e.Type]; ok {
			g.play(t)
		}
	}
}

func (g *Game) draw() {
	g.screen.Clear()
	snap := g.sim.Snapshot()
	w, h := g.arena()

	for x := 0; x < w; x++ {
		g.set(x, 0, '─', styleBorder)
		g.set(x, h-1, '─', styleBorder)
	}
	for y := 0; y < h; y++ {
		g.set(0, y, '│', styleBorder)
		g.set(w-1, y, '│', styleBorder)
	}

	for _, gate := range snap.Gates {
		// Sample the bar densely enough to leave no gaps between cells
		const steps = 24
		for i := 0; i <= steps; i++ {
			p := gate.BarFrom.Add(gate.BarTo.Sub(gate.BarFrom).Scale(float64(i) / steps))
			x, y := g.toCell(p)
			g.set(x, y, '·', styleBar)
		}
		for _, p := range gate.Posts {
			x, y := g.toCell(p)
			g.set(x, y, '●', stylePost)
		}
	}

	for i := len(snap.Segments) - 1; i >= 0; i-- {
		s := snap.Segments[i]
		if !s.Visible {
			continue
		}
		x, y := g.toCell(s.Position)
		if s.Purged {
			g.set(x, y, '∘', stylePurged)
		} else {
			g.set(x, y, 'o', styleSegment)
		}
	}

	if snap.Alive {
		x, y := g.toCell(snap.Head)
		g.set(x, y, '@', styleHead)
	}
	if !g.autopilot {
		g.set(g.cursorX, g.cursorY, '+', styleCursor)
	}

	hud := fmt.Sprintf(" score %d  high %d  tail %d  speed %.0f", snap.Score, snap.HighScore, snap.TailCount, snap.Speed)
	if g.autopilot {
		hud += "  [autopilot]"
	}
	if !snap.Alive {
		hud += "  ENTER start  a autopilot  q quit"
	}
	g.text(0, g.height-1, hud, styleHUD)
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- g.screen.PollEvent()
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			g.update(dt)
			g.draw()
		}
	}
}

func (g *Game) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func main() {
	seed := flag.Int64("seed", 0, "random seed for gates and autopilot (0 = time based)")
	autopilot := flag.Bool("autopilot", false, "start with the autopilot steering")
	flag.Parse()

	cfg := game.DefaultConfig()
	cfg.Seed = *seed

	g, err := NewGame(cfg, *autopilot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}
