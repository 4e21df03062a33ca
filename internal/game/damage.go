package game

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
)

const (
	resistanceReduction = 30

	// Modifier kinds looked up on tool / ability logic.
	ModifierRetreatCost = "retreat_cost"
	ModifierDamageDealt = "damage_dealt"
	ModifierDamageTaken = "damage_taken"
)

// CalculateDamage runs the full attack damage pipeline: base damage,
// attacker-side modifiers, weakness, resistance, defender-side modifiers,
// then global effect modifiers. The result never goes negative.
func (e *Engine) CalculateDamage(state *GameState, attacker, defender *CardInstance, base int) int {
	damage := base

	damage = e.applyCardModifiers(state, attacker, ModifierDamageDealt, damage)
	damage += e.effectModifierTotal(state, attacker, effects.ParamDamageDealtMod)

	attackerDef := e.Def(attacker)
	defenderDef := e.Def(defender)
	if attackerDef != nil && defenderDef != nil {
		if defenderDef.Weakness != "" && attackerDef.HasType(defenderDef.Weakness) {
			damage *= 2
		}
		if defenderDef.Resistance != "" && attackerDef.HasType(defenderDef.Resistance) {
			damage -= resistanceReduction
		}
	}

	damage = e.applyCardModifiers(state, defender, ModifierDamageTaken, damage)
	damage += e.effectModifierTotal(state, defender, effects.ParamDamageTakenMod)

	if damage < 0 {
		damage = 0
	}
	return damage
}

// applyCardModifiers folds the modifier hooks registered for a card and
// its attached tools over a value.
func (e *Engine) applyCardModifiers(state *GameState, card *CardInstance, kind string, value int) int {
	if card == nil {
		return value
	}
	if logic, ok := e.logic.Lookup(card.CardID, ""); ok && logic.Modifier != nil && logic.ModifierKind == kind {
		value = logic.Modifier(state, kind, value)
	}
	for _, tool := range card.AttachedTools {
		if logic, ok := e.logic.Lookup(tool.CardID, ""); ok && logic.Modifier != nil && logic.ModifierKind == kind {
			value = logic.Modifier(state, kind, value)
		}
	}
	return value
}

// effectModifierTotal sums a numeric effect parameter over the active
// effects that apply to the card.
func (e *Engine) effectModifierTotal(state *GameState, card *CardInstance, param string) int {
	if card == nil {
		return 0
	}
	total := 0
	for _, eff := range state.ActiveEffects {
		if !eff.AppliesToCard(card.ID) {
			continue
		}
		if n, ok := atoiParam(eff.Params[param]); ok {
			total += n
		}
	}
	return total
}

// ApplyDamage converts attack damage into counters (10 HP each) on the
// target. Effect-placed counters bypass this and use PlaceDamageCounters.
func (e *Engine) ApplyDamage(state *GameState, target *CardInstance, damage int) {
	if target == nil || damage <= 0 {
		return
	}
	target.DamageCounters += damage / 10
}

// PlaceDamageCounters puts counters on a Pokemon directly, skipping
// weakness, resistance and modifiers.
func (e *Engine) PlaceDamageCounters(state *GameState, owner int, target *CardInstance, counters int) {
	if target == nil || counters <= 0 {
		return
	}
	target.DamageCounters += counters
	e.checkKnockout(state, owner, target)
}

// Heal removes up to the given number of counters.
func (e *Engine) Heal(target *CardInstance, counters int) {
	if target == nil {
		return
	}
	target.DamageCounters -= counters
	if target.DamageCounters < 0 {
		target.DamageCounters = 0
	}
}
