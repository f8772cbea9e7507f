package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Timer refreshes per second (default 4)
	Seed     int64  // RNG seed for reproducible boards
	Player   string // Name shown in the HUD and stored with scores
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 4,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "guest",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int64 // Final score, set only when Won
	GameOver bool  // Whether the game has ended
	Won      bool  // Whether the board was cleared
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State GameState
	// Changed is true when the board changed (a reveal or flag took effect).
	Changed bool
}
