package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsolation(t *testing.T) {
	e := testEngine(1)
	state := testState(e)
	state.Players[0].Board.Active.DamageCounters = 2
	state.Players[0].Board.Active.AddStatus(StatusPoisoned)

	clone := state.Clone()
	require.Equal(t, Checksum(state), Checksum(clone))

	t.Run("board mutations stay local", func(t *testing.T) {
		clone.Players[0].Board.Active.DamageCounters = 9
		clone.Players[0].Board.Active.AddStatus(StatusBurned)
		assert.Equal(t, 2, state.Players[0].Board.Active.DamageCounters)
		assert.False(t, state.Players[0].Board.Active.HasStatus(StatusBurned))
	})

	t.Run("zone mutations stay local", func(t *testing.T) {
		clone.Players[1].Hand.Add(clone.Players[1].Deck.DrawTop())
		assert.NotEqual(t, state.Players[1].Hand.Len(), clone.Players[1].Hand.Len())
	})

	t.Run("census maps are independent", func(t *testing.T) {
		clone.Players[0].InitialDeckCounts["Charmander"] = 99
		assert.NotEqual(t, 99, state.Players[0].InitialDeckCounts["Charmander"])
	})
}

func TestCloneCoversAttachmentsAndStages(t *testing.T) {
	e := testEngine(1)
	state := testState(e)

	active := state.Players[0].Board.Active
	active.AttachedEnergy = append(active.AttachedEnergy, NewCardInstance("en-1", "fix-fire-energy", 0))
	active.PreviousStages = append(active.PreviousStages, NewCardInstance("prev-1", "fix-charmander", 0))

	clone := state.Clone()
	cloneActive := clone.Players[0].Board.Active
	require.Len(t, cloneActive.AttachedEnergy, 1)
	require.Len(t, cloneActive.PreviousStages, 1)

	assert.NotSame(t, active.AttachedEnergy[0], cloneActive.AttachedEnergy[0])
	assert.NotSame(t, active.PreviousStages[0], cloneActive.PreviousStages[0])
}

func TestStepDoesNotMutateInput(t *testing.T) {
	e := testEngine(7)
	state := testState(e)
	before := Checksum(state)

	actions := e.LegalActions(state)
	require.NotEmpty(t, actions)
	attach, ok := findAction(actions, ActionAttachEnergy)
	require.True(t, ok)

	next, err := e.Step(state, attach)
	require.NoError(t, err)
	assert.Equal(t, before, Checksum(state))
	assert.NotEqual(t, before, Checksum(next))
}
