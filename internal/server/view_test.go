package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcgsim/ptcg-server-go/internal/carddata"
	"github.com/ptcgsim/ptcg-server-go/internal/game"
)

func newTestGame(t *testing.T, seed int64) (*game.Engine, *game.GameState) {
	t.Helper()
	engine := game.NewEngine(carddata.Registry(), carddata.Logic(), nil, seed)
	state, err := engine.NewGame([2]string{"Ash", "Gary"}, carddata.DemoDecks())
	require.NoError(t, err)
	return engine, state
}

func TestBuildViewHidesOpponentHand(t *testing.T) {
	engine, state := newTestGame(t, 1)

	view := BuildView(engine, state, 0)

	require.Equal(t, 0, view.Viewer)
	assert.Len(t, view.Players[0].Hand, game.StartingHandSize)
	assert.Empty(t, view.Players[1].Hand, "opponent hand contents must not leak")
	assert.Equal(t, game.StartingHandSize, view.Players[1].HandCount)
}

func TestBuildViewHidesDecksAndPrizes(t *testing.T) {
	engine, state := newTestGame(t, 1)

	view := BuildView(engine, state, 0)

	for i := range view.Players {
		pv := view.Players[i]
		assert.Equal(t, state.Players[i].Deck.Len(), pv.DeckCount)
		assert.Equal(t, game.StartingPrizeCount, pv.PrizeCount)
	}
}

func TestBuildViewSpectatorSeesNoHands(t *testing.T) {
	engine, state := newTestGame(t, 1)

	view := BuildView(engine, state, SpectatorSeat)

	assert.Empty(t, view.Players[0].Hand)
	assert.Empty(t, view.Players[1].Hand)
	assert.Equal(t, game.StartingHandSize, view.Players[0].HandCount)
}

func TestBuildViewNamesCards(t *testing.T) {
	engine, state := newTestGame(t, 1)

	view := BuildView(engine, state, 0)

	for _, cv := range view.Players[0].Hand {
		assert.NotEmpty(t, cv.Name)
		assert.NotEmpty(t, cv.InstanceID)
	}
}

func TestActionViewsCarryStableKeys(t *testing.T) {
	engine, state := newTestGame(t, 1)

	actions := engine.LegalActions(state)
	require.NotEmpty(t, actions)

	views := actionViews(actions)
	require.Len(t, views, len(actions))
	for i, av := range views {
		assert.Equal(t, actions[i].Key(), av.Key)
		assert.Equal(t, actions[i].Type.String(), av.Type)
	}
}
