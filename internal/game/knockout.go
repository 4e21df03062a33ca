package game

import (
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
)

// checkKnockout resolves a knockout if the Pokemon's damage has reached
// its HP. owner is the index of the player controlling the Pokemon.
func (e *Engine) checkKnockout(state *GameState, owner int, pokemon *CardInstance) {
	if pokemon == nil {
		return
	}
	def := e.Def(pokemon)
	if def == nil || pokemon.DamageCounters*10 < def.HP {
		return
	}
	e.handleKnockout(state, owner, pokemon)
}

// handleKnockout discards the knocked out Pokemon with its whole stack,
// transfers prizes to the opponent and records the event in the turn
// metadata.
func (e *Engine) handleKnockout(state *GameState, owner int, pokemon *CardInstance) {
	victim := state.Player(owner)
	attacker := state.Player(1 - owner)

	if victim.Board.Active == pokemon {
		victim.Board.Active = nil
	} else {
		victim.Board.RemoveBenchByID(pokemon.ID)
	}

	state.ActiveEffects = effects.RemoveBySource(state.ActiveEffects, pokemon.ID)
	e.discardPokemonStack(victim, pokemon)

	prizes := e.prizeCount(state, attacker.Board.Active, pokemon)
	for i := 0; i < prizes && !attacker.Prizes.Empty(); i++ {
		prize := attacker.Prizes.Cards[0]
		attacker.Prizes.Cards = attacker.Prizes.Cards[1:]
		attacker.Hand.Add(prize)
		attacker.PrizesTaken++
	}

	state.TurnMetadata.PokemonKnockedOut = true
	e.logger.Debug("pokemon knocked out",
		zap.String("game_id", state.ID),
		zap.String("pokemon", pokemon.ID),
		zap.Int("owner", owner),
		zap.Int("prizes", prizes))
}

// prizeCount returns how many prizes a knockout is worth: the victim's
// rule-box value plus any prize modifier effects whose conditions hold,
// never below one.
func (e *Engine) prizeCount(state *GameState, killer, victim *CardInstance) int {
	def := e.Def(victim)
	prizes := 1
	if def != nil {
		prizes = def.PrizeValue()
	}

	for _, eff := range state.ActiveEffects {
		mod, ok := atoiParam(eff.Params[effects.ParamPrizeCountMod])
		if !ok || mod == 0 || !eff.AppliesToCard(victim.ID) {
			continue
		}
		if cond := eff.Params[effects.ParamCondition]; cond != "" {
			fn, ok := e.logic.ConditionByName(cond)
			if !ok || !fn(state, killer, victim) {
				continue
			}
		}
		prizes += mod
	}

	if prizes < 1 {
		prizes = 1
	}
	return prizes
}

// discardPokemonStack moves a Pokemon plus its energy, tools and prior
// evolution stages into its owner's discard pile.
func (e *Engine) discardPokemonStack(player *PlayerState, pokemon *CardInstance) {
	for _, card := range flattenInstance(pokemon) {
		card.AttachedEnergy = nil
		card.AttachedTools = nil
		card.PreviousStages = nil
		card.DamageCounters = 0
		card.ClearAllStatus()
		card.AttackEffects = nil
		player.Discard.Add(card)
	}
}
