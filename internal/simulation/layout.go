package simulation

import "time"

// Canvas dimensions in canvas units (pixels in the ebiten frontend).
const (
	CanvasWidth  = 1000
	CanvasHeight = 600
)

// Region placement.
const (
	RegionX      = 400
	RegionY      = 200
	RegionWidth  = 200
	RegionHeight = 200

	// FadeMargin shrinks the region into the fade area and bounds spawn targets.
	FadeMargin = 30
)

// Motion constants applied once per frame.
const (
	ProgressStep   = 0.02
	EaseFactor     = 0.05
	SettleDistance = 5.0
)

// Spawn geometry.
const (
	EnterOffset = 40 // how far off-canvas entering slimes appear
	ExitOffset  = 60 // how far off-canvas exiting slimes aim
	EnterMinY   = 100
	EnterMaxY   = 500
	ExitMinY    = 50
	ExitMaxY    = 550
)

// Spawner gates.
const (
	EnterThreshold = 0.5
	ExitThreshold  = 0.3
)

// TokenSize is the drawn width and height of a slime sprite.
const TokenSize = 50

// CountdownResolution is how often the countdown display refreshes.
const CountdownResolution = 100 * time.Millisecond
