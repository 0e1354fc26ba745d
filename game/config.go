package game

// Game tuning constants
const (
	// Board: PanelCountX × PanelCountY panels centered on the origin, y up.
	PanelSize   = 50.0
	PanelCountX = 25
	PanelCountY = 13
	BoardSizeX  = PanelCountX * PanelSize
	BoardSizeY  = PanelCountY * PanelSize
	BorderX     = BoardSizeX / 2 // head bounces once |x| exceeds this
	BorderY     = BoardSizeY / 2

	// Centipede
	InitialLength  = 30    // living segments on spawn
	DefaultSpeed   = 100.0 // units per second
	SpeedUp        = 3.0   // units per second, per second of circular movement
	HeadRadius     = 8.0
	SegmentSpacing = 30.0 // arc length between consecutive chain points

	// Gates
	GateMinWidth          = 100.0
	GateMaxWidth          = 180.0
	PostRadius            = 8.0
	SpawnInterval         = 2.0   // seconds of play per gate
	GateHeadClearance     = 100.0 // no gate center closer than this to the head
	GatePlacementAttempts = 10

	// Damage and lifecycle
	PurgeGrace      = 2.5 // seconds a purged segment drifts before removal
	RestartCooldown = 2.0 // seconds between game over and the next start

	// Score gained per gate = floor(tailCount * speed / ScoreDivisor)
	ScoreDivisor = 100.0
)

// Config carries the tuning values into a Simulation.
type Config struct {
	BorderX float64
	BorderY float64

	InitialLength  int
	DefaultSpeed   float64
	SpeedUp        float64
	HeadRadius     float64
	SegmentSpacing float64

	GateMinWidth          float64
	GateMaxWidth          float64
	PostRadius            float64
	SpawnInterval         float64
	GateHeadClearance     float64
	GatePlacementAttempts int

	PurgeGrace      float64
	RestartCooldown float64
	ScoreDivisor    float64

	// AutoRestart raises the start signal by itself at startup and once the
	// restart cool-down has passed.
	AutoRestart bool

	// Seed feeds the gate spawner; 0 picks a time based seed.
	Seed int64
}

// DefaultConfig returns the stock game tuning.
func DefaultConfig() Config {
	return Config{
		BorderX:               BorderX,
		BorderY:               BorderY,
		InitialLength:         InitialLength,
		DefaultSpeed:          DefaultSpeed,
		SpeedUp:               SpeedUp,
		HeadRadius:            HeadRadius,
		SegmentSpacing:        SegmentSpacing,
		GateMinWidth:          GateMinWidth,
		GateMaxWidth:          GateMaxWidth,
		PostRadius:            PostRadius,
		SpawnInterval:         SpawnInterval,
		GateHeadClearance:     GateHeadClearance,
		GatePlacementAttempts: GatePlacementAttempts,
		PurgeGrace:            PurgeGrace,
		RestartCooldown:       RestartCooldown,
		ScoreDivisor:          ScoreDivisor,
		AutoRestart:           true,
	}
}
