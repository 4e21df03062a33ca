package rules

import (
	"fmt"
)

// Phase represents the broad phases of a Pokemon TCG turn.
// ATTACK is merged into MAIN: declaring an attack is a main-phase action
// that ends the turn, so no separate attack phase is ever observable.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseMulligan
	PhaseDraw
	PhaseMain
	PhaseCleanup
	PhaseSuddenDeath
)

var phaseNames = map[Phase]string{
	PhaseSetup:       "SETUP",
	PhaseMulligan:    "MULLIGAN",
	PhaseDraw:        "DRAW",
	PhaseMain:        "MAIN",
	PhaseCleanup:     "CLEANUP",
	PhaseSuddenDeath: "SUDDEN_DEATH",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Interactive reports whether the phase ever presents choices to a player.
// DRAW and CLEANUP are auto-resolved by the engine.
func (p Phase) Interactive() bool {
	switch p {
	case PhaseSetup, PhaseMulligan, PhaseMain, PhaseSuddenDeath:
		return true
	default:
		return false
	}
}

// Result represents the outcome of a game.
type Result int

const (
	ResultInProgress Result = iota
	ResultPlayerOneWin
	ResultPlayerTwoWin
	ResultDraw
)

var resultNames = map[Result]string{
	ResultInProgress:   "IN_PROGRESS",
	ResultPlayerOneWin: "PLAYER_0_WIN",
	ResultPlayerTwoWin: "PLAYER_1_WIN",
	ResultDraw:         "DRAW",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RESULT_%d", int(r))
}

// WinnerResult maps a player index to the corresponding win result.
func WinnerResult(playerIndex int) Result {
	if playerIndex == 0 {
		return ResultPlayerOneWin
	}
	return ResultPlayerTwoWin
}

// FirstTurnRestricted reports whether the going-first restriction applies:
// on turn 1 the starting player may not attack or play a Supporter.
func FirstTurnRestricted(turnCount, activePlayer, startingPlayer int) bool {
	return turnCount == 1 && activePlayer == startingPlayer
}
