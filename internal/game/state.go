package game

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// DeckSize is the fixed deck size; card conservation is checked against it.
const DeckSize = 60

// StartingHandSize is drawn at setup.
const StartingHandSize = 7

// StartingPrizeCount is laid out at setup (1 in sudden death).
const StartingPrizeCount = 6

// TurnMetadata records what happened during one turn, consumed by card
// predicates ("if a Pokemon was knocked out last turn").
type TurnMetadata struct {
	PokemonKnockedOut bool
	DamageDealt       int
	AttackUsed        string
	EnergyAttached    bool
}

// PlayerState is everything one player owns.
type PlayerState struct {
	Index int
	Name  string

	Deck    Zone
	Hand    Zone
	Discard Zone
	Prizes  Zone
	Board   Board

	// Per-turn flags, reset at cleanup.
	EnergyAttachedThisTurn  bool
	SupporterPlayedThisTurn bool
	RetreatedThisTurn       bool
	StadiumPlayedThisTurn   bool

	PrizesTaken int

	// Bonus draws owed for the opponent's mulligans, settled after setup.
	MulliganCredits int

	// Belief-layer census, filled at game start and never mutated after.
	InitialDeckCounts map[string]int
	FunctionalIDMap   map[string]string
	HasSearchedDeck   bool
}

func newPlayerState(index int, name string) *PlayerState {
	return &PlayerState{
		Index:             index,
		Name:              name,
		Deck:              newDeckZone(),
		Hand:              newHandZone(),
		Discard:           newDiscardZone(),
		Prizes:            newPrizeZone(),
		Board:             newBoard(),
		InitialDeckCounts: make(map[string]int),
		FunctionalIDMap:   make(map[string]string),
	}
}

// FunctionalID returns the frozen functional id for one of the player's
// card definition ids, or "" for a card outside the opening pool.
func (p *PlayerState) FunctionalID(cardID string) string {
	return p.FunctionalIDMap[cardID]
}

// FindPokemon returns the in-play Pokemon with the given instance id.
func (p *PlayerState) FindPokemon(id string) *CardInstance {
	return p.Board.FindPokemon(id)
}

// HasActivePokemon reports whether the active spot is occupied.
func (p *PlayerState) HasActivePokemon() bool { return p.Board.Active != nil }

// HasAnyPokemonInPlay reports whether the player has any Pokemon on the
// board at all.
func (p *PlayerState) HasAnyPokemonInPlay() bool {
	return p.Board.Active != nil || len(p.Board.Bench) > 0
}

// ResetTurnFlags clears the per-turn flags at the start of a turn.
func (p *PlayerState) ResetTurnFlags() {
	p.EnergyAttachedThisTurn = false
	p.SupporterPlayedThisTurn = false
	p.RetreatedThisTurn = false
	p.StadiumPlayedThisTurn = false
}

// AllCards returns every card instance the player owns across all zones,
// boards, attachments and prior evolution stages. Used by the
// conservation invariant and the belief census.
func (p *PlayerState) AllCards() []*CardInstance {
	var out []*CardInstance
	out = append(out, p.Deck.Cards...)
	out = append(out, p.Hand.Cards...)
	out = append(out, p.Discard.Cards...)
	out = append(out, p.Prizes.Cards...)
	for _, pk := range p.Board.AllPokemon() {
		out = append(out, flattenInstance(pk)...)
	}
	return out
}

func flattenInstance(c *CardInstance) []*CardInstance {
	out := []*CardInstance{c}
	out = append(out, c.AttachedEnergy...)
	out = append(out, c.AttachedTools...)
	for _, prev := range c.PreviousStages {
		out = append(out, flattenInstance(prev)...)
	}
	return out
}

// VisibleCards returns the player's cards in public or owner-visible
// locations: hand, discard and board (with attachments and prior stages).
// Prizes and deck are excluded; prizes stay hidden even from the belief
// census.
func (p *PlayerState) VisibleCards() []*CardInstance {
	var out []*CardInstance
	out = append(out, p.Hand.Cards...)
	out = append(out, p.Discard.Cards...)
	for _, pk := range p.Board.AllPokemon() {
		out = append(out, flattenInstance(pk)...)
	}
	return out
}

// NoWinner is the WinnerID value while the game is undecided.
const NoWinner = -1

// GameState is one immutable-by-convention snapshot of a game. It is
// created at setup and thereafter only replaced by Step output.
type GameState struct {
	ID      string
	Players [2]*PlayerState

	TurnCount      int
	ActivePlayer   int
	StartingPlayer int
	Phase          rules.Phase

	Stadium         *CardInstance
	ActiveEffects   []*effects.Effect
	ResolutionStack []*stack.Step

	Result   rules.Result
	WinnerID int

	// CleanupTicked guards the once-per-turn cleanup effects when forced
	// interrupts (promotion, bench discard) suspend the handover.
	CleanupTicked bool

	RandomSeed  int64
	MoveHistory []Action

	TurnMetadata     TurnMetadata
	LastTurnMetadata TurnMetadata
}

// Player returns the player at the given index.
func (s *GameState) Player(i int) *PlayerState { return s.Players[i] }

// ActivePlayerState returns the player whose turn it is.
func (s *GameState) ActivePlayerState() *PlayerState { return s.Players[s.ActivePlayer] }

// OpponentState returns the non-active player.
func (s *GameState) OpponentState() *PlayerState { return s.Players[1-s.ActivePlayer] }

// IsGameOver reports whether a result has been decided.
func (s *GameState) IsGameOver() bool { return s.Result != rules.ResultInProgress }

// SwitchActivePlayer rotates the turn to the other player.
func (s *GameState) SwitchActivePlayer() { s.ActivePlayer = 1 - s.ActivePlayer }

// PushStep pushes a resolution step onto the stack (LIFO).
func (s *GameState) PushStep(step *stack.Step) {
	s.ResolutionStack = append(s.ResolutionStack, step)
}

// TopStep returns the pending step, or nil when the stack is empty.
func (s *GameState) TopStep() *stack.Step {
	if len(s.ResolutionStack) == 0 {
		return nil
	}
	return s.ResolutionStack[len(s.ResolutionStack)-1]
}

// PopStep removes and returns the top step, or nil.
func (s *GameState) PopStep() *stack.Step {
	if len(s.ResolutionStack) == 0 {
		return nil
	}
	top := s.ResolutionStack[len(s.ResolutionStack)-1]
	s.ResolutionStack = s.ResolutionStack[:len(s.ResolutionStack)-1]
	return top
}

// HasPendingResolution reports whether any resolution step is pending.
func (s *GameState) HasPendingResolution() bool { return len(s.ResolutionStack) > 0 }

// FindPokemonAnywhere locates an in-play Pokemon across both boards and
// returns it with its controller's index, or (nil, -1).
func (s *GameState) FindPokemonAnywhere(id string) (*CardInstance, int) {
	for i, p := range s.Players {
		if pk := p.FindPokemon(id); pk != nil {
			return pk, i
		}
	}
	return nil, -1
}

// SetWinner records the game result for the given player index.
func (s *GameState) SetWinner(player int) {
	s.Result = rules.WinnerResult(player)
	s.WinnerID = player
}
