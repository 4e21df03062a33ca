package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchDeckDefaults(t *testing.T) {
	step := NewSearchDeck(0, PurposeSearchTarget, 2, Filter{"supertype": "Pokemon"}, ZoneHand)

	assert.Equal(t, StepSearchDeck, step.Type)
	assert.Equal(t, ZoneDeck, step.Zone)
	assert.True(t, step.ShuffleAfter, "deck searches shuffle after by default")
	assert.Equal(t, 0, step.MinCount, "hidden-zone searches always allow fail to find")
	assert.True(t, step.CanConfirm(), "empty selection is confirmable when min is zero")
}

func TestSelectionCounts(t *testing.T) {
	step := NewSelectFromZone(1, ZoneDiscard, PurposeGenericChoice, 2, 1, nil)

	assert.False(t, step.CanConfirm(), "below min count")
	assert.False(t, step.SelectionFull())

	step.SelectedCardIDs = append(step.SelectedCardIDs, "a")
	assert.True(t, step.CanConfirm())
	assert.False(t, step.SelectionFull())

	step.SelectedCardIDs = append(step.SelectedCardIDs, "b")
	assert.True(t, step.SelectionFull())
	assert.True(t, step.IsSelected("a"))
	assert.False(t, step.IsSelected("c"))
}

func TestAttachToTargetFull(t *testing.T) {
	step := NewAttachToTarget(0, "energy-1", []string{"pk-1", "pk-2"})

	assert.False(t, step.SelectionFull())
	step.SelectedTargetID = "pk-2"
	assert.True(t, step.SelectionFull())
}

func TestZoneHidden(t *testing.T) {
	assert.True(t, ZoneDeck.Hidden())
	assert.True(t, ZonePrizes.Hidden())
	assert.False(t, ZoneDiscard.Hidden())
	assert.False(t, ZoneHand.Hidden())
}

func TestStepCloneIsolation(t *testing.T) {
	step := NewSearchDeck(0, PurposeSearchTarget, 3, Filter{"name": "Charmander"}, ZoneHand)
	step.SelectedCardIDs = []string{"x"}
	step.ExcludeCardIDs = []string{"y"}

	clone := step.Clone()
	require.Equal(t, step.SelectedCardIDs, clone.SelectedCardIDs)

	clone.SelectedCardIDs[0] = "changed"
	clone.Filter["name"] = "Squirtle"
	clone.ExcludeCardIDs = append(clone.ExcludeCardIDs, "z")

	assert.Equal(t, "x", step.SelectedCardIDs[0])
	assert.Equal(t, "Charmander", step.Filter["name"])
	assert.Len(t, step.ExcludeCardIDs, 1)
}
