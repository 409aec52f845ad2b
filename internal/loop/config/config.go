// Package config centralizes the tunable parameters of the home page.
package config

import "time"

// PixelScale is the number of logical units per sub-pixel. The particle field
// is tuned in browser pixels; a terminal cell is roughly 8x16 of them, so one
// half-block sub-pixel stands for 8x8.
const PixelScale = 8.0

// Max render resolution in terminal cells. Larger terminals get a centred
// render area.
const (
	MaxTermWidth  = 320
	MaxTermHeight = 100
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Home page text
const (
	Title            = "NovaPlay"
	Subtitle         = "Free indie games, one keystroke away"
	NotificationText = "Need help? Join the NovaPlay Discord for support."
	NotificationKey  = "supportNotificationClosed"
	FollowerGlyph    = "✦"
)
