package client

import "time"

// Result tells the caller why the home page closed.
type Result int

const (
	ResultQuit     Result = iota // User quit or input closed
	ResultGames                  // User asked for the catalog
	ResultInactive               // Disconnected for inactivity
)

func (r Result) String() string {
	switch r {
	case ResultGames:
		return "games"
	case ResultInactive:
		return "inactive"
	default:
		return "quit"
	}
}

// ClientState holds the per-session state of the home page around the field.
type ClientState struct {
	result      Result
	isInactive  bool // Whether the inactivity warning is shown
	wasInactive bool
	opened      time.Time
	pointerCol  int // Last pointer cell, 1-based; 0 when the pointer is away
	pointerRow  int
}

// NewClientState creates the state of a freshly opened home page.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{opened: now}
}
