package main

import (
	"log"
	"os"
	"strconv"
)

// Server configuration defaults
const (
	ServerPort    = ":8080"
	StaticDir     = "../client"
	WebSocketPath = "/ws"

	// Game loop
	TickRate = 60 // ticks per second

	// Connection limits
	MaxPlayers    = 64
	IPCooldownSec = 2 // seconds between connections from one IP

	// Broadcast
	CoordPrecision = 10.0 // coordinates are sent rounded to 1/CoordPrecision
)

// serverConfig is the runtime configuration after environment overrides
type serverConfig struct {
	Addr      string
	StaticDir string
	TickRate  int
}

// loadConfig applies CENTIPEDE_* environment overrides on top of the defaults
func loadConfig() serverConfig {
	cfg := serverConfig{
		Addr:      ServerPort,
		StaticDir: StaticDir,
		TickRate:  TickRate,
	}
	if env := os.Getenv("CENTIPEDE_ADDR"); env != "" {
		cfg.Addr = env
	}
	if env := os.Getenv("CENTIPEDE_STATIC_DIR"); env != "" {
		cfg.StaticDir = env
	}
	if env := os.Getenv("CENTIPEDE_TICK_RATE"); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil || n <= 0 {
			log.Printf("ignoring CENTIPEDE_TICK_RATE=%q: want a positive integer", env)
		} else {
			cfg.TickRate = n
		}
	}
	return cfg
}
