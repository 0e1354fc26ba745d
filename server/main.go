package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/K2Da/space-centipede/game"
	"github.com/gorilla/websocket"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	times    map[string]time.Time
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	rl := &ipRateLimiter{cooldown: cooldown, times: make(map[string]time.Time)}
	// Cleanup stale entries every 60s
	go func() {
		for range time.Tick(60 * time.Second) {
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.cooldown)
			for ip, t := range rl.times {
				if t.Before(cutoff) {
					delete(rl.times, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if time.Since(last) < rl.cooldown {
			return false
		}
	}
	rl.times[ip] = time.Now()
	return true
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Enable per-message deflate compression (RFC 7692)
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// server owns the HTTP side: upgrades, limits and session registration
type server struct {
	conns      *ConnManager
	limiter    *ipRateLimiter
	maxPlayers int
	borderX    float64
	borderY    float64
	tickRate   int
}

// handleWS upgrades the request and blocks until the client disconnects
func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	// Extract client IP (handle X-Forwarded-For for reverse proxies)
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// Check limits after upgrade so client can receive error messages
	if s.conns.Count() >= s.maxPlayers {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	if !s.limiter.allow(ip) {
		sendErrorAndClose(ws, "Too many connections. Please wait a moment.")
		return
	}

	ws.EnableWriteCompression(true)

	conn := NewConn(ws)
	// Welcome goes out before the loop can see the conn, so it always arrives first
	_ = conn.Send(WelcomeMsg{
		Type:     MsgWelcome,
		ID:       conn.ID,
		BorderX:  s.borderX,
		BorderY:  s.borderY,
		TickRate: s.tickRate,
	})
	s.conns.Add(conn)
	log.Printf("player connected: %s", conn.ID)

	conn.ReadLoop(func(c *Conn) {
		s.conns.Remove(c.ID)
		log.Printf("player disconnected: %s", c.ID)
	})
}

// newMux wires the websocket endpoint and the static client
func newMux(s *server, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.handleWS)
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	return mux
}

func main() {
	cfg := loadConfig()

	gameCfg := game.DefaultConfig()
	gameCfg.AutoRestart = false // clients ask for each game with "g"

	conns := NewConnManager()
	loop := NewGameLoop(conns, gameCfg, cfg.TickRate)
	srv := &server{
		conns:      conns,
		limiter:    newIPRateLimiter(IPCooldownSec * time.Second),
		maxPlayers: MaxPlayers,
		borderX:    gameCfg.BorderX,
		borderY:    gameCfg.BorderY,
		tickRate:   cfg.TickRate,
	}

	// Start game loop in background
	go loop.Run(nil)

	log.Printf("server listening on %s (arena %.0fx%.0f, static %s)", cfg.Addr, 2*gameCfg.BorderX, 2*gameCfg.BorderY, cfg.StaticDir)
	if err := http.ListenAndServe(cfg.Addr, newMux(srv, cfg.StaticDir)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
