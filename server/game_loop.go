package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/K2Da/space-centipede/game"
)

// session is one player's private game
type session struct {
	sim       *game.Simulation
	pilot     *game.Autopilot
	autopilot bool
}

// GameLoop drives every session at a fixed tick rate
type GameLoop struct {
	conns    *ConnManager
	cfg      game.Config
	tickRate int
	sessions map[string]*session // conn ID -> session; owned by the loop goroutine
}

// NewGameLoop creates a game loop bound to the conn manager
func NewGameLoop(conns *ConnManager, cfg game.Config, tickRate int) *GameLoop {
	return &GameLoop{
		conns:    conns,
		cfg:      cfg,
		tickRate: tickRate,
		sessions: make(map[string]*session),
	}
}

// Run starts the fixed-timestep loop. Blocks until stop is closed.
func (gl *GameLoop) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second / time.Duration(gl.tickRate))
	defer ticker.Stop()
	log.Printf("game loop started at %d ticks/sec", gl.tickRate)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			gl.tick()
		}
	}
}

// tick advances every session by one fixed step
func (gl *GameLoop) tick() {
	dt := 1 / float64(gl.tickRate)
	conns := gl.conns.Snapshot()

	// 1. Forget sessions whose connection went away
	live := make(map[string]bool, len(conns))
	for _, c := range conns {
		live[c.ID] = true
	}
	for id := range gl.sessions {
		if !live[id] {
			delete(gl.sessions, id)
		}
	}

	for _, c := range conns {
		s := gl.session(c.ID)

		// 2. Feed buffered input, or let the autopilot steer
		in := c.TakeInput()
		if in.Autopilot != nil && *in.Autopilot != s.autopilot {
			s.autopilot = *in.Autopilot
			log.Printf("session %s: autopilot %v", c.ID, s.autopilot)
		}
		if in.Start {
			s.sim.RequestGameStart()
		}
		if s.autopilot {
			s.pilot.Drive(s.sim, dt)
		} else {
			if in.HasCursor {
				s.sim.SteerTarget(in.Cursor)
			}
			for i := 0; i < in.Taps; i++ {
				s.sim.SteerTap()
			}
		}

		// 3. Step the simulation
		events := s.sim.Tick(dt)

		// 4. Send state, then this tick's events
		if err := c.Send(stateFromSnapshot(s.sim.Snapshot(), s.autopilot)); err != nil {
			log.Printf("send error to %s: %v", c.ID, err)
			continue
		}
		if len(events) == 0 {
			continue
		}
		_ = c.Send(EventsMsg{Type: MsgEvents, Events: eventsToDTO(events)})

		// 5. Log lifecycle events and report game over
		for _, e := range events {
			switch e.Type {
			case game.GameStarted:
				log.Printf("session %s: game started", c.ID)
			case game.GameOver:
				st := s.sim.Status()
				log.Printf("session %s: game over, score %d (high %d)", c.ID, st.Score, st.HighScore)
				_ = c.Send(GameOverMsg{Type: MsgGameOver, Score: st.Score, HighScore: st.HighScore})
			}
		}
	}
}

// session returns the session for id, creating it on first sight
func (gl *GameLoop) session(id string) *session {
	if s, ok := gl.sessions[id]; ok {
		return s
	}
	s := &session{
		sim:   game.NewSimulation(gl.cfg),
		pilot: game.NewAutopilot(rand.Int63()),
	}
	gl.sessions[id] = s
	return s
}
