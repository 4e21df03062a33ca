package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcgsim/ptcg-server-go/internal/carddata"
	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/game/agents"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

func newRunner(t *testing.T, seed int64) (*Runner, *game.Engine) {
	t.Helper()
	engine := game.NewEngine(carddata.Registry(), carddata.Logic(), nil, seed)
	runner := NewRunner(engine,
		agents.NewRandomAgent("p0", seed+1),
		agents.NewRandomAgent("p1", seed+2),
		nil)
	return runner, engine
}

func TestRandomSelfPlayFinishes(t *testing.T) {
	runner, engine := newRunner(t, 100)

	state, err := engine.NewGame([2]string{"p0", "p1"}, carddata.DemoDecks())
	require.NoError(t, err)

	outcome, err := runner.Play(context.Background(), state)
	require.NoError(t, err)

	assert.True(t, state.IsGameOver())
	assert.NotEqual(t, rules.ResultInProgress, outcome.Result)
	assert.Positive(t, outcome.Steps)
	assert.NotEmpty(t, outcome.Checksum)
}

func TestSelfPlayPreservesCardCounts(t *testing.T) {
	runner, engine := newRunner(t, 200)

	state, err := engine.NewGame([2]string{"p0", "p1"}, carddata.DemoDecks())
	require.NoError(t, err)

	_, err = runner.Play(context.Background(), state)
	require.NoError(t, err)

	for i, p := range state.Players {
		assert.Len(t, p.AllCards(), game.DeckSize, "player %d lost or gained cards", i)
	}
}

func TestSelfPlayDeterministicPerSeed(t *testing.T) {
	run := func() string {
		runner, engine := newRunner(t, 300)
		state, err := engine.NewGame([2]string{"p0", "p1"}, carddata.DemoDecks())
		require.NoError(t, err)
		outcome, err := runner.Play(context.Background(), state)
		require.NoError(t, err)
		return outcome.Checksum
	}
	assert.Equal(t, run(), run())
}

func TestPlayManyDealsFreshGames(t *testing.T) {
	runner, engine := newRunner(t, 400)

	outcomes, err := runner.PlayMany(context.Background(), 3, func() (*game.GameState, error) {
		return engine.NewGame([2]string{"p0", "p1"}, carddata.DemoDecks())
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	seen := map[string]bool{}
	for _, o := range outcomes {
		assert.False(t, seen[o.GameID], "game ids must be unique")
		seen[o.GameID] = true
	}
}

func TestPlayRespectsContext(t *testing.T) {
	runner, engine := newRunner(t, 500)
	state, err := engine.NewGame([2]string{"p0", "p1"}, carddata.DemoDecks())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Play(ctx, state)
	assert.Error(t, err)
}
