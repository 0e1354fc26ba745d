package main

import (
	"math"

	"github.com/K2Da/space-centipede/game"
)

// Protocol uses single-character JSON keys to minimize wire size.
// All x,y coordinates are rounded to 1 decimal place.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "p" = tap       {"t":"p"}
//     "m" = cursor    {"t":"m","x":10.5,"y":-3}
//     "g" = start     {"t":"g"}
//     "a" = autopilot {"t":"a","v":1}           (v=1 on, 0 off)
//   Server → Client:
//     "w" = welcome   {"t":"w","i":"id","bx":625,"by":325,"r":60}
//     "s" = state     {"t":"s","n":1.5,"a":1,"h":[x,y],...}
//     "e" = events    {"t":"e","e":[{"k":"gate_through","g":3}]}
//     "d" = game over {"t":"d","p":score,"hp":highScore}
//     "x" = error     {"t":"x","m":"reason"}

// Message type identifiers
const (
	MsgTap       = "p"
	MsgCursor    = "m"
	MsgStart     = "g"
	MsgAutopilot = "a"
	MsgWelcome   = "w"
	MsgState     = "s"
	MsgEvents    = "e"
	MsgGameOver  = "d"
	MsgError     = "x"
)

// ClientMessage is any incoming message from the browser.
type ClientMessage struct {
	Type  string  `json:"t"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	Value int     `json:"v,omitempty"` // 0 or 1
}

// WelcomeMsg is sent immediately on WebSocket connect.
// bx/by are the arena half extents, r the tick rate.
type WelcomeMsg struct {
	Type     string  `json:"t"`
	ID       string  `json:"i"`
	BorderX  float64 `json:"bx"`
	BorderY  float64 `json:"by"`
	TickRate int     `json:"r"`
}

// SegmentDTO is one tail segment. Invisible segments are never sent.
// {"i":3,"x":1.0,"y":2.0,"d":[dx,dy],"p":1}
type SegmentDTO struct {
	Index  int        `json:"i"`
	X      float64    `json:"x"`
	Y      float64    `json:"y"`
	Facing [2]float64 `json:"d"`
	Purged int        `json:"p,omitempty"` // 1 while drifting away
}

// GateDTO is a gate as two posts and the bar between them.
// {"i":7,"a":[x,y],"b":[x,y]}
type GateDTO struct {
	ID   int        `json:"i"`
	From [2]float64 `json:"a"`
	To   [2]float64 `json:"b"`
}

// StateMsg is the per-tick state update sent to each client.
type StateMsg struct {
	Type      string       `json:"t"`
	Time      float64      `json:"n"`
	Alive     int          `json:"a"`
	Head      [2]float64   `json:"h"`
	Circular  int          `json:"c,omitempty"`
	Center    *[2]float64  `json:"o,omitempty"` // circle center while turning
	Cursor    [2]float64   `json:"u"`
	Speed     float64      `json:"v"`
	TailCount int          `json:"l"`
	Score     int          `json:"p"`
	HighScore int          `json:"hp"`
	Autopilot int          `json:"ap,omitempty"`
	Segments  []SegmentDTO `json:"s"`
	Gates     []GateDTO    `json:"g"`
}

// EventDTO is one event raised during a tick.
// {"k":"gate_crushed","g":3} / {"k":"tail_eaten","i":4} / {"k":"game_over","x":1,"y":2}
type EventDTO struct {
	Kind      string  `json:"k"`
	GateID    int     `json:"g,omitempty"`
	TailIndex int     `json:"i,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
}

// EventsMsg carries the events of one tick, in order.
type EventsMsg struct {
	Type   string     `json:"t"`
	Events []EventDTO `json:"e"`
}

// GameOverMsg is sent when the centipede dies.
type GameOverMsg struct {
	Type      string `json:"t"`
	Score     int    `json:"p"`
	HighScore int    `json:"hp"`
}

// ErrorMsg is sent before the server closes a connection it refused.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// round1 rounds to the wire precision
func round1(v float64) float64 {
	return math.Round(v*CoordPrecision) / CoordPrecision
}

func pair(p game.Point) [2]float64 {
	return [2]float64{round1(p.X), round1(p.Y)}
}

// stateFromSnapshot builds the compact state message for one session
func stateFromSnapshot(snap game.Snapshot, autopilot bool) StateMsg {
	msg := StateMsg{
		Type:      MsgState,
		Time:      round1(snap.Time),
		Head:      pair(snap.Head),
		Cursor:    pair(snap.Cursor),
		Speed:     round1(snap.Speed),
		TailCount: snap.TailCount,
		Score:     snap.Score,
		HighScore: snap.HighScore,
		Segments:  make([]SegmentDTO, 0, len(snap.Segments)),
		Gates:     make([]GateDTO, 0, len(snap.Gates)),
	}
	if snap.Alive {
		msg.Alive = 1
	}
	if snap.Circular {
		msg.Circular = 1
		c := pair(snap.Center)
		msg.Center = &c
	}
	if autopilot {
		msg.Autopilot = 1
	}
	for _, s := range snap.Segments {
		if !s.Visible {
			continue
		}
		dto := SegmentDTO{
			Index:  s.Index,
			X:      round1(s.Position.X),
			Y:      round1(s.Position.Y),
			Facing: pair(s.Direction),
		}
		if s.Purged {
			dto.Purged = 1
		}
		msg.Segments = append(msg.Segments, dto)
	}
	for _, g := range snap.Gates {
		msg.Gates = append(msg.Gates, GateDTO{
			ID:   g.ID,
			From: pair(g.BarFrom),
			To:   pair(g.BarTo),
		})
	}
	return msg
}

// eventsToDTO converts the events of a tick for the wire
func eventsToDTO(events []game.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dto := EventDTO{Kind: e.Type.String()}
		switch e.Type {
		case game.GateCrushed, game.GateThrough:
			dto.GateID = e.GateID
		case game.TailEaten:
			dto.TailIndex = e.TailIndex
		case game.GameOver:
			dto.X, dto.Y = round1(e.Position.X), round1(e.Position.Y)
		}
		out = append(out, dto)
	}
	return out
}
