package carddata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

func TestDemoDecksAreLegal(t *testing.T) {
	registry := Registry()
	for i, deck := range DemoDecks() {
		assert.NoError(t, deck.Validate(registry), "deck %d", i)
	}
}

func TestEveryTrainerHasLogic(t *testing.T) {
	logic := Logic()
	for _, def := range Defs() {
		if !def.IsTrainer() || def.IsStadium() || def.IsTool() {
			continue
		}
		_, ok := logic.Lookup(def.ID, "")
		assert.True(t, ok, "trainer %s has no registered logic", def.Name)
	}
}

func newMidGameState(t *testing.T, e *game.Engine) *game.GameState {
	t.Helper()
	state := &game.GameState{
		ID:        "carddata-test",
		TurnCount: 2, Phase: rules.PhaseMain,
		Result: rules.ResultInProgress, WinnerID: game.NoWinner,
	}
	for i := range state.Players {
		state.Players[i] = &game.PlayerState{
			Index:             i,
			InitialDeckCounts: map[string]int{},
			FunctionalIDMap:   map[string]string{},
		}
		state.Players[i].Board.MaxBench = game.DefaultMaxBench
		active := game.NewCardInstance("active-"+string(rune('a'+i)), "base-snorlax", i)
		active.TurnsInPlay = 1
		state.Players[i].Board.Active = active
	}
	return state
}

func TestRareCandyChain(t *testing.T) {
	e := game.NewEngine(Registry(), Logic(), nil, 21)
	state := newMidGameState(t, e)
	p := state.Players[0]

	charmander := game.NewCardInstance("rc-base", "base-charmander", 0)
	charmander.TurnsInPlay = 1
	p.Board.AddToBench(charmander)

	candy := game.NewCardInstance("rc-candy", "base-rare-candy", 0)
	zard := game.NewCardInstance("rc-zard", "base-charizard-ex", 0)
	filler := game.NewCardInstance("rc-filler", "base-fire-energy", 0)
	p.Hand.Add(candy)
	p.Hand.Add(zard)
	p.Hand.Add(filler)

	actions := e.LegalActions(state)
	var play game.Action
	found := false
	for _, a := range actions {
		if a.Type == game.ActionPlayItem && a.CardID == candy.ID {
			play = a
			found = true
		}
	}
	require.True(t, found, "rare candy should be playable")
	assert.Equal(t, charmander.ID, play.TargetID)

	require.NoError(t, e.StepInPlace(state, play))
	require.True(t, state.HasPendingResolution())

	// Only the matching Stage 2 is selectable.
	selections := e.LegalActions(state)
	require.Len(t, selections, 1)
	require.Equal(t, game.ActionSelectCard, selections[0].Type)
	assert.Equal(t, zard.ID, selections[0].Target.CardID)

	require.NoError(t, e.StepInPlace(state, selections[0]))
	assert.False(t, state.HasPendingResolution())

	require.Equal(t, 1, p.Board.BenchCount())
	evolved := p.Board.Bench[0]
	assert.Equal(t, "base-charizard-ex", evolved.CardID)
	assert.False(t, evolved.EvolvedThisTurn, "rare candy skips the sickness gate")
	require.Len(t, evolved.PreviousStages, 1)
	assert.Equal(t, charmander.ID, evolved.PreviousStages[0].ID)
}

func TestRareCandyNotOfferedOnFreshBasic(t *testing.T) {
	e := game.NewEngine(Registry(), Logic(), nil, 21)
	state := newMidGameState(t, e)
	p := state.Players[0]

	charmander := game.NewCardInstance("rc-fresh", "base-charmander", 0)
	charmander.TurnsInPlay = 0 // played this turn
	p.Board.AddToBench(charmander)
	p.Hand.Add(game.NewCardInstance("rc-candy-2", "base-rare-candy", 0))
	p.Hand.Add(game.NewCardInstance("rc-zard-2", "base-charizard-ex", 0))

	for _, a := range e.LegalActions(state) {
		if a.Type == game.ActionPlayItem && a.CardID == "rc-candy-2" {
			t.Fatal("rare candy offered against a Pokemon played this turn")
		}
	}
}

func TestProfessorsResearch(t *testing.T) {
	e := game.NewEngine(Registry(), Logic(), nil, 21)
	state := newMidGameState(t, e)
	p := state.Players[0]

	research := game.NewCardInstance("pr-1", "base-research", 0)
	p.Hand.Add(research)
	p.Hand.Add(game.NewCardInstance("pr-keep", "base-fire-energy", 0))
	for i := 0; i < 10; i++ {
		p.Deck.Add(game.NewCardInstance("pr-deck-"+string(rune('a'+i)), "base-fire-energy", 0))
	}

	require.NoError(t, e.StepInPlace(state, game.Action{Type: game.ActionPlaySupporter, Player: 0, CardID: research.ID}))

	assert.Equal(t, 7, p.Hand.Len())
	assert.Equal(t, 3, p.Deck.Len())
	// The played supporter and the discarded hand card.
	assert.Equal(t, 2, p.Discard.Len())
	assert.True(t, p.SupporterPlayedThisTurn)
}
