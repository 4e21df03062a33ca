package game

import (
	"go.uber.org/zap"
)

// Damage counters ticked at each cleanup for the lingering conditions.
const (
	poisonCounters = 1
	burnCounters   = 2
)

// ApplyStatusCondition puts a status condition on a Pokemon unless a
// registered guard vetoes it. Mutually exclusive conditions displace each
// other inside AddStatus.
func (e *Engine) ApplyStatusCondition(state *GameState, owner int, target *CardInstance, condition StatusCondition) bool {
	if target == nil {
		return false
	}
	if logic, ok := e.logic.Lookup(target.CardID, ""); ok && logic.Guard != nil {
		if !logic.Guard(state, target, condition) {
			e.logger.Debug("status vetoed by guard",
				zap.String("game_id", state.ID),
				zap.String("target", target.ID),
				zap.String("condition", string(condition)))
			return false
		}
	}
	for _, tool := range target.AttachedTools {
		if logic, ok := e.logic.Lookup(tool.CardID, ""); ok && logic.Guard != nil {
			if !logic.Guard(state, target, condition) {
				return false
			}
		}
	}
	target.AddStatus(condition)
	return true
}

// tickStatusDamage applies poison and burn counters to both actives
// during cleanup, then resolves any resulting knockouts.
func (e *Engine) tickStatusDamage(state *GameState) {
	for i, p := range state.Players {
		active := p.Board.Active
		if active == nil {
			continue
		}
		before := active.DamageCounters
		if active.HasStatus(StatusPoisoned) {
			active.DamageCounters += poisonCounters
		}
		if active.HasStatus(StatusBurned) {
			active.DamageCounters += burnCounters
		}
		if active.DamageCounters != before {
			e.logger.Debug("status damage ticked",
				zap.String("game_id", state.ID),
				zap.String("pokemon", active.ID),
				zap.Int("counters", active.DamageCounters-before))
			e.checkKnockout(state, i, active)
		}
	}
}
