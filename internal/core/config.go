package core

// RuntimeConfig contains configuration passed to the presentation layer.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// Status is the state of a single level attempt.
type Status int

const (
	// StatusPlaying accepts presses until the buffer is full.
	StatusPlaying Status = iota

	// StatusRetrying follows a wrong answer: the buffer stays full until
	// the presentation layer calls Retry after its feedback delay.
	StatusRetrying

	// StatusWon is terminal for the level.
	StatusWon
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusRetrying:
		return "retrying"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}

// BackspaceKey is the identifier of the backspace key. It is exempt from
// every rule policy.
const BackspaceKey = "BACKSPACE"
