package main

import "time"

type Mode int

const (
	ModePlaying Mode = iota
	ModeSolving
	ModeSolved
	ModeConfirm
)

type ViewFilter int

const (
	ViewAll ViewFilter = iota
	ViewBorderOnly
	ViewNonBorderOnly
)

func (v ViewFilter) String() string {
	switch v {
	case ViewBorderOnly:
		return "border"
	case ViewNonBorderOnly:
		return "inner"
	default:
		return "all"
	}
}

// Next cycles All -> BorderOnly -> NonBorderOnly -> All.
func (v ViewFilter) Next() ViewFilter {
	return (v + 1) % 3
}

type ConfirmAction int

const (
	ConfirmNewPuzzle ConfirmAction = iota
	ConfirmQuit
)

type ActionType int

const (
	ActionMovePiece ActionType = iota
)

const (
	defaultRows              = 10
	defaultColumns           = 15
	defaultMaxImageWidth     = 50.0
	defaultMaxImageHeight    = 75.0
	defaultAnimationDuration = 250.0
	minAnimationDuration     = 50.0
	defaultSolveRandom       = false
	defaultHintsEnabled      = true
	defaultScaleMultiplier   = 2.0
	defaultFrameRate         = 60
	defaultPlacementAttempts = 1000
)

// Tab geometry. Magnitudes stay inside (tabMin, tabMax) so a tab never
// reaches a corner of its edge.
const (
	tabMin      = 0.3
	tabMax      = 0.7
	neckRatio   = 0.1
	tabRatio    = 0.2
	tabShoulder = 0.2
)

const (
	snapDivisor    = 5.0
	placementGap   = 10.0
	previewOpacity = 0.15
	outlineWidth   = 1.0
)

const (
	panStep       = 4
	soundDuration = 180 * time.Millisecond
)
