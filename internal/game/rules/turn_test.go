package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "SETUP", PhaseSetup.String())
	assert.Equal(t, "MAIN", PhaseMain.String())
	assert.Equal(t, "SUDDEN_DEATH", PhaseSuddenDeath.String())
	assert.Equal(t, "PHASE_99", Phase(99).String())
}

func TestPhaseInteractive(t *testing.T) {
	assert.True(t, PhaseMain.Interactive())
	assert.True(t, PhaseSetup.Interactive())
	assert.False(t, PhaseDraw.Interactive())
	assert.False(t, PhaseCleanup.Interactive())
}

func TestFirstTurnRestricted(t *testing.T) {
	assert.True(t, FirstTurnRestricted(1, 0, 0))
	assert.False(t, FirstTurnRestricted(1, 1, 0), "player going second is unrestricted")
	assert.False(t, FirstTurnRestricted(2, 0, 0), "restriction lifts after turn 1")
}

func TestWinnerResult(t *testing.T) {
	assert.Equal(t, ResultPlayerOneWin, WinnerResult(0))
	assert.Equal(t, ResultPlayerTwoWin, WinnerResult(1))
}
