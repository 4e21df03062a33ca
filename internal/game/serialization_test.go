package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksumStableAcrossCalls(t *testing.T) {
	e := testEngine(17)
	state := testState(e)
	assert.Equal(t, Checksum(state), Checksum(state))
}

func TestChecksumIgnoresHiddenPileOrder(t *testing.T) {
	e := testEngine(17)
	state := testState(e)
	before := Checksum(state)

	// Physically reordering face-down prizes changes nothing observable.
	p := state.Players[0].Prizes.Cards
	p[0], p[len(p)-1] = p[len(p)-1], p[0]
	assert.Equal(t, before, Checksum(state))
}

func TestChecksumSeesDeckOrder(t *testing.T) {
	e := testEngine(17)
	state := testState(e)
	before := Checksum(state)

	// Deck order determines future draws, so it must be part of identity.
	d := state.Players[0].Deck.Cards
	require.Greater(t, len(d), 1)
	d[0], d[1] = d[1], d[0]
	assert.NotEqual(t, before, Checksum(state))
}

func TestChecksumSeesGameContent(t *testing.T) {
	e := testEngine(17)
	base := testState(e)
	sum := Checksum(base)

	t.Run("damage", func(t *testing.T) {
		s := base.Clone()
		s.Players[1].Board.Active.DamageCounters++
		assert.NotEqual(t, sum, Checksum(s))
	})

	t.Run("status", func(t *testing.T) {
		s := base.Clone()
		s.Players[0].Board.Active.AddStatus(StatusAsleep)
		assert.NotEqual(t, sum, Checksum(s))
	})

	t.Run("turn flags", func(t *testing.T) {
		s := base.Clone()
		s.Players[0].EnergyAttachedThisTurn = true
		assert.NotEqual(t, sum, Checksum(s))
	})

	t.Run("phase", func(t *testing.T) {
		s := base.Clone()
		s.TurnCount++
		assert.NotEqual(t, sum, Checksum(s))
	})
}
