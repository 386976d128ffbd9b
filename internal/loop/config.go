package loop

import "time"

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Screens
const (
	IntroDuration   = 8 * time.Second
	MaxNameLength   = 16
	LeaderboardSize = 5
	SliderStep      = 0.1
	textWidth       = 52 // Menu lines are padded to this width so shorter text overwrites longer
)

// Shutdown
const (
	ShutdownDisplay = 10 * time.Second // Shutdown message shown before auto-disconnect
)

// Inactivity, remote sessions only
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)

// Hub polling while waiting for players to leave.
const hubPollInterval = 200 * time.Millisecond
