package main

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/K2Da/space-centipede/game"
	"github.com/gorilla/websocket"
)

type testServer struct {
	srv  *server
	loop *GameLoop
	http *httptest.Server
}

func newTestServer(t *testing.T, maxPlayers int, cooldown time.Duration) *testServer {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.AutoRestart = false
	cfg.Seed = 1
	conns := NewConnManager()
	srv := &server{
		conns:      conns,
		limiter:    newIPRateLimiter(cooldown),
		maxPlayers: maxPlayers,
		borderX:    cfg.BorderX,
		borderY:    cfg.BorderY,
		tickRate:   TickRate,
	}
	ts := &testServer{
		srv:  srv,
		loop: NewGameLoop(conns, cfg, TickRate),
		http: httptest.NewServer(newMux(srv, t.TempDir())),
	}
	t.Cleanup(ts.http.Close)
	return ts
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.http.URL, "http") + WebSocketPath
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

// waitConns polls until the server has registered n connections
func (ts *testServer) waitConns(t *testing.T, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for ts.srv.conns.Count() != n {
		if time.Now().After(deadline) {
			t.Fatalf("connection count = %d, want %d", ts.srv.conns.Count(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// readMsg reads one message and returns its type and raw bytes
func readMsg(t *testing.T, ws *websocket.Conn) (string, []byte) {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var head struct {
		Type string `json:"t"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return head.Type, raw
}

func send(t *testing.T, ws *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestServer_WelcomeThenGame(t *testing.T) {
	ts := newTestServer(t, 4, 0)
	ws := ts.dial(t)

	typ, raw := readMsg(t, ws)
	if typ != MsgWelcome {
		t.Fatalf("first message %s, want welcome", raw)
	}
	var welcome WelcomeMsg
	_ = json.Unmarshal(raw, &welcome)
	if welcome.ID == "" || welcome.BorderX != 625 || welcome.BorderY != 325 {
		t.Fatalf("welcome = %+v", welcome)
	}
	ts.waitConns(t, 1)

	send(t, ws, ClientMessage{Type: MsgStart})

	// The start message is buffered asynchronously; tick until it lands.
	var started bool
	var state StateMsg
	for i := 0; i < 100 && !started; i++ {
		ts.loop.tick()
		typ, raw := readMsg(t, ws)
		if typ != MsgState {
			t.Fatalf("tick %d: got %s, want state", i, raw)
		}
		if err := json.Unmarshal(raw, &state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if state.Alive == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		typ, raw = readMsg(t, ws)
		var events EventsMsg
		_ = json.Unmarshal(raw, &events)
		if typ != MsgEvents || len(events.Events) == 0 || events.Events[0].Kind != game.GameStarted.String() {
			t.Fatalf("after the first live state got %s, want game_started", raw)
		}
		started = true
	}
	if !started {
		t.Fatal("game never started")
	}
	if state.TailCount != game.InitialLength || len(state.Segments) != game.InitialLength {
		t.Fatalf("state tail %d with %d segments, want %d", state.TailCount, len(state.Segments), game.InitialLength)
	}
}

func TestServer_RefusesWhenFull(t *testing.T) {
	ts := newTestServer(t, 0, 0)
	ws := ts.dial(t)

	typ, raw := readMsg(t, ws)
	if typ != MsgError {
		t.Fatalf("got %s, want an error", raw)
	}
	if ts.srv.conns.Count() != 0 {
		t.Fatal("refused connection was registered")
	}
}

func TestServer_RateLimitsByIP(t *testing.T) {
	ts := newTestServer(t, 4, time.Hour)
	first := ts.dial(t)
	if typ, raw := readMsg(t, first); typ != MsgWelcome {
		t.Fatalf("first connection got %s", raw)
	}

	second := ts.dial(t)
	if typ, raw := readMsg(t, second); typ != MsgError {
		t.Fatalf("second connection got %s, want an error", raw)
	}
}

func TestServer_DisconnectDropsSession(t *testing.T) {
	ts := newTestServer(t, 4, 0)
	ws := ts.dial(t)
	readMsg(t, ws)
	ts.waitConns(t, 1)

	ts.loop.tick()
	if len(ts.loop.sessions) != 1 {
		t.Fatalf("%d sessions, want 1", len(ts.loop.sessions))
	}

	ws.Close()
	ts.waitConns(t, 0)
	ts.loop.tick()
	if len(ts.loop.sessions) != 0 {
		t.Fatalf("%d sessions after disconnect, want 0", len(ts.loop.sessions))
	}
}

func TestConn_TakeInputClearsButKeepsCursor(t *testing.T) {
	c := &Conn{}
	c.handle(ClientMessage{Type: MsgTap})
	c.handle(ClientMessage{Type: MsgTap})
	c.handle(ClientMessage{Type: MsgCursor, X: 10, Y: -4})
	c.handle(ClientMessage{Type: MsgAutopilot, Value: 1})
	c.handle(ClientMessage{Type: "zz"})

	in := c.TakeInput()
	if in.Taps != 2 || !in.HasCursor || in.Cursor != (game.Point{X: 10, Y: -4}) {
		t.Fatalf("input = %+v", in)
	}
	if in.Autopilot == nil || !*in.Autopilot {
		t.Fatal("autopilot switch lost")
	}

	again := c.TakeInput()
	if again.Taps != 0 || again.HasCursor || again.Autopilot != nil || again.Start {
		t.Fatalf("input not cleared: %+v", again)
	}
	if again.Cursor != (game.Point{X: 10, Y: -4}) {
		t.Fatalf("cursor = %v, want it kept", again.Cursor)
	}
}

func TestStateFromSnapshot(t *testing.T) {
	snap := game.Snapshot{
		Time:     1.26,
		Alive:    true,
		Head:     game.Point{X: 1.04, Y: -2.06},
		Circular: true,
		Center:   game.Point{X: 3, Y: 4},
		Segments: []game.SegmentView{
			{Index: 0, Position: game.Point{X: 0.55}, Visible: true},
			{Index: 1, Visible: false},
			{Index: 2, Position: game.Point{X: 9}, Visible: true, Purged: true},
		},
		Gates: []game.GateView{{ID: 5, BarFrom: game.Point{X: 1}, BarTo: game.Point{X: 2}}},
	}

	msg := stateFromSnapshot(snap, true)

	if msg.Head != [2]float64{1, -2.1} || msg.Time != 1.3 {
		t.Fatalf("head %v time %v not rounded to 0.1", msg.Head, msg.Time)
	}
	if msg.Alive != 1 || msg.Circular != 1 || msg.Center == nil || *msg.Center != [2]float64{3, 4} || msg.Autopilot != 1 {
		t.Fatalf("flags = %+v", msg)
	}
	if len(msg.Segments) != 2 || msg.Segments[0].X != 0.6 || msg.Segments[1].Purged != 1 {
		t.Fatalf("segments = %+v, want the two visible ones", msg.Segments)
	}
	if len(msg.Gates) != 1 || msg.Gates[0].From != [2]float64{1, 0} || msg.Gates[0].To != [2]float64{2, 0} {
		t.Fatalf("gates = %+v", msg.Gates)
	}
}

func TestEventsToDTO(t *testing.T) {
	got := eventsToDTO([]game.Event{
		{Type: game.GateThrough, GateID: 3},
		{Type: game.TailEaten, TailIndex: 4},
		{Type: game.GameOver, Position: game.Point{X: 1.23, Y: 4}},
	})
	want := []EventDTO{
		{Kind: "gate_through", GateID: 3},
		{Kind: "tail_eaten", TailIndex: 4},
		{Kind: "game_over", X: 1.2, Y: 4},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("CENTIPEDE_ADDR", ":9999")
	t.Setenv("CENTIPEDE_STATIC_DIR", "/srv/client")
	t.Setenv("CENTIPEDE_TICK_RATE", "30")
	cfg := loadConfig()
	if cfg.Addr != ":9999" || cfg.StaticDir != "/srv/client" || cfg.TickRate != 30 {
		t.Fatalf("config = %+v", cfg)
	}

	t.Setenv("CENTIPEDE_TICK_RATE", "fast")
	if cfg := loadConfig(); cfg.TickRate != TickRate {
		t.Fatalf("bad tick rate accepted: %d", cfg.TickRate)
	}
}
