package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// DeckList is a deck as card definition ids, one entry per physical copy.
type DeckList []string

// Validate checks the deck against the registry and the fixed size.
func (d DeckList) Validate(cards CardRegistry) error {
	if len(d) != DeckSize {
		return fmt.Errorf("deck has %d cards, want %d", len(d), DeckSize)
	}
	for _, id := range d {
		if _, ok := cards.Get(id); !ok {
			return fmt.Errorf("unknown card id %q", id)
		}
	}
	return nil
}

// NewGame deals a fresh game from two decklists: shuffled decks, opening
// hands, prizes face down, and the belief census for both players. The
// starting player is decided by the engine's RNG stream. The returned
// state is in SETUP awaiting active Pokemon placement.
func (e *Engine) NewGame(names [2]string, decks [2]DeckList) (*GameState, error) {
	for i, deck := range decks {
		if err := deck.Validate(e.cards); err != nil {
			return nil, fmt.Errorf("player %d deck: %w", i, err)
		}
	}

	state := &GameState{
		ID:         uuid.NewString(),
		Phase:      rules.PhaseSetup,
		Result:     rules.ResultInProgress,
		WinnerID:   NoWinner,
		RandomSeed: e.seed,
	}

	for i := range state.Players {
		player := newPlayerState(i, names[i])
		for _, cardID := range decks[i] {
			player.Deck.Add(NewCardInstance(uuid.NewString(), cardID, i))
		}
		player.Deck.Shuffle(e.rng)

		for n := 0; n < StartingHandSize; n++ {
			player.Hand.Add(player.Deck.DrawTop())
		}
		for n := 0; n < StartingPrizeCount; n++ {
			player.Prizes.Add(player.Deck.DrawTop())
		}

		e.initializeDeckKnowledge(player)
		state.Players[i] = player
	}

	if e.coinFlip() {
		state.StartingPlayer = 1
	}
	state.ActivePlayer = state.StartingPlayer
	e.syncBenchLimits(state)

	e.logger.Info("game created",
		zap.String("game_id", state.ID),
		zap.String("player_0", names[0]),
		zap.String("player_1", names[1]),
		zap.Int("starting_player", state.StartingPlayer))
	return state, nil
}

// initializeDeckKnowledge takes the belief census: per-name counts over
// the player's whole 60 and the card-id-to-functional-id map, both
// frozen for the rest of the game.
func (e *Engine) initializeDeckKnowledge(player *PlayerState) {
	for _, card := range player.AllCards() {
		def := e.Def(card)
		if def == nil {
			continue
		}
		player.InitialDeckCounts[def.Name]++
		player.FunctionalIDMap[def.ID] = def.FunctionalID()
	}
}
