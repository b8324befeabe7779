package core

// RuntimeConfig contains the settings shared by the preview front-ends.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Redraw ticks per second (animation playback)
	Seed     int64 // RNG seed for the generation run
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 8,
		Seed:     0, // 0 means use current time
	}
}
