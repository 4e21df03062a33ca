// Package effects tracks persistent game effects: retreat-cost modifiers,
// action locks, prize-count modifiers and the like. Effects are plain data
// created by card logic and expired by the engine during cleanup.
package effects

// Source identifies what kind of card created an effect.
type Source string

const (
	SourceAbility Source = "ABILITY"
	SourceAttack  Source = "ATTACK"
	SourceTrainer Source = "TRAINER"
	SourceStadium Source = "STADIUM"
	SourceTool    Source = "TOOL"
)

// Well-known parameter keys. Card logic is free to add its own.
const (
	ParamPrevents           = "prevents"             // action kind blocked while active
	ParamScope              = "scope"                // self | opponent | all
	ParamTargetCardID       = "target_card_id"       // narrow a block to one card instance
	ParamRetreatCostMod     = "retreat_cost_modifier"
	ParamPrizeCountMod      = "prize_count_modifier"
	ParamCondition          = "condition"            // logic-registry key for a predicate
	ParamBlocksAbilities    = "blocks_opponent_abilities"
	ParamDamageDealtMod     = "damage_dealt_modifier"
	ParamDamageTakenMod     = "damage_taken_modifier"
)

const (
	// ScopeAll applies an effect to both players.
	ScopeAll = "all"
	// ScopeSelf applies an effect to the owning player only.
	ScopeSelf = "self"
	// ScopeOpponent applies an effect to the owner's opponent only.
	ScopeOpponent = "opponent"
)

// TargetAllPlayers is the TargetPlayer value for player-unscoped effects.
const TargetAllPlayers = -1

// PermanentDuration marks an effect that never expires on its own.
const PermanentDuration = -1

// Effect is one persistent effect in play.
type Effect struct {
	ID           string
	Name         string
	SourceCardID string
	Source       Source
	OwnerPlayer  int

	// Target scope: specific card ids, a player, or both unset for global.
	TargetCardIDs []string
	TargetPlayer  int

	Params map[string]string

	// Duration bookkeeping. DurationTurns of PermanentDuration never
	// expires; ExpiresOnPlayer names a player index whose cleanup ends
	// the effect regardless of elapsed turns (-1 for none).
	DurationTurns   int
	TurnsElapsed    int
	ExpiresOnPlayer int
	AppliedTurn     int
}

// New builds an effect with the given name and source, defaulting to a
// permanent, globally scoped effect.
func New(id, name, sourceCardID string, source Source, owner int) *Effect {
	return &Effect{
		ID:              id,
		Name:            name,
		SourceCardID:    sourceCardID,
		Source:          source,
		OwnerPlayer:     owner,
		TargetPlayer:    TargetAllPlayers,
		Params:          make(map[string]string),
		DurationTurns:   PermanentDuration,
		ExpiresOnPlayer: -1,
	}
}

// IsExpired reports whether the effect has run out at the given cleanup
// boundary. atCleanup is true only when called from the cleanup phase;
// player-boundary expiry applies only then.
func (e *Effect) IsExpired(turn, activePlayer int, atCleanup bool) bool {
	if e.DurationTurns == PermanentDuration && e.ExpiresOnPlayer < 0 {
		return false
	}
	if atCleanup && e.ExpiresOnPlayer >= 0 && e.ExpiresOnPlayer == activePlayer {
		return true
	}
	if e.DurationTurns >= 0 && e.TurnsElapsed >= e.DurationTurns {
		return true
	}
	return false
}

// AppliesToPlayer reports whether the effect's scope covers the player.
func (e *Effect) AppliesToPlayer(player int) bool {
	if e.TargetPlayer == TargetAllPlayers {
		return true
	}
	return e.TargetPlayer == player
}

// AppliesToCard reports whether the effect's scope covers the card
// instance. An effect with no card targets covers every card within its
// player scope.
func (e *Effect) AppliesToCard(cardID string) bool {
	if len(e.TargetCardIDs) == 0 {
		return true
	}
	for _, id := range e.TargetCardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the effect.
func (e *Effect) Clone() *Effect {
	out := *e
	out.TargetCardIDs = append([]string(nil), e.TargetCardIDs...)
	if e.Params != nil {
		out.Params = make(map[string]string, len(e.Params))
		for k, v := range e.Params {
			out.Params[k] = v
		}
	}
	return &out
}
