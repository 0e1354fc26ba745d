package game

import "fmt"

// EventType identifies an outbound simulation event
type EventType int

const (
	GameStarted EventType = iota
	GameOver
	GateCrushed
	GateThrough
	TailEaten
)

var eventNames = [...]string{
	GameStarted: "game_started",
	GameOver:    "game_over",
	GateCrushed: "gate_crushed",
	GateThrough: "gate_through",
	TailEaten:   "tail_eaten",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// Event is something other components must react to. Only the fields relevant
// to the type are set.
type Event struct {
	Type      EventType
	Time      float64 // simulation time
	GateID    int     // GateCrushed, GateThrough
	TailIndex int     // TailEaten
	Position  Point   // head position for GameOver
}

func (e Event) String() string {
	switch e.Type {
	case GateCrushed, GateThrough:
		return fmt.Sprintf("%s gate=%d t=%.2f", e.Type, e.GateID, e.Time)
	case TailEaten:
		return fmt.Sprintf("%s index=%d t=%.2f", e.Type, e.TailIndex, e.Time)
	case GameOver:
		return fmt.Sprintf("%s at=(%.1f,%.1f) t=%.2f", e.Type, e.Position.X, e.Position.Y, e.Time)
	default:
		return fmt.Sprintf("%s t=%.2f", e.Type, e.Time)
	}
}
