package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcgsim/ptcg-server-go/internal/game"
)

func sampleActions() []game.Action {
	return []game.Action{
		{Type: game.ActionEndTurn, Player: 0},
		{Type: game.ActionAttachEnergy, Player: 0, CardID: "en-1", TargetID: "pk-1"},
		{Type: game.ActionAttack, Player: 0, CardID: "pk-1", AttackName: "Ember"},
	}
}

func TestRandomAgentDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()
	actions := sampleActions()

	pick := func() game.Action {
		a := NewRandomAgent("rand", 99)
		chosen, err := a.ChooseAction(ctx, nil, actions)
		require.NoError(t, err)
		return chosen
	}
	assert.Equal(t, pick().Key(), pick().Key())
}

func TestRandomAgentEmptyActions(t *testing.T) {
	a := NewRandomAgent("rand", 1)
	_, err := a.ChooseAction(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrNoActions)
}

func TestGreedyAgentPrefersAttack(t *testing.T) {
	a := NewGreedyAgent("greedy", 1)
	chosen, err := a.ChooseAction(context.Background(), nil, sampleActions())
	require.NoError(t, err)
	assert.Equal(t, game.ActionAttack, chosen.Type)
}

func TestGreedyAgentFallsBack(t *testing.T) {
	a := NewGreedyAgent("greedy", 1)
	chosen, err := a.ChooseAction(context.Background(), nil, []game.Action{{Type: game.ActionEndTurn, Player: 0}})
	require.NoError(t, err)
	assert.Equal(t, game.ActionEndTurn, chosen.Type)
}

func TestAgentsHonorContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRandomAgent("rand", 1).ChooseAction(ctx, nil, sampleActions())
	assert.Error(t, err)
	_, err = NewGreedyAgent("greedy", 1).ChooseAction(ctx, nil, sampleActions())
	assert.Error(t, err)
}
