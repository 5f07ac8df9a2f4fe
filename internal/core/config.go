package core

// RuntimeConfig contains configuration passed to a story session at start.
// Front ends use the screen size for layout; the seed drives every roll.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Title animation ticks per second
	Seed     int64 // RNG seed for deterministic play
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0, // 0 means a fresh seed is drawn by the platform layer
	}
}
