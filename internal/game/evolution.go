package game

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// canEvolve checks whether the in-play Pokemon may evolve into the card
// described by evoDef this turn.
func (e *Engine) canEvolve(state *GameState, pokemon *CardInstance, evoDef *CardDef) error {
	if rules.FirstTurnRestricted(state.TurnCount, state.ActivePlayer, state.StartingPlayer) {
		return newRuleError(ErrFirstTurnRestriction, "no evolution on the first turn")
	}
	base := e.Def(pokemon)
	if base == nil || evoDef == nil || evoDef.EvolvesFrom != base.Name {
		return newRuleError(ErrInvalidEvolutionChain, "%s does not evolve from %s", nameOrUnknown(evoDef), nameOrUnknown(base))
	}
	if pokemon.TurnsInPlay < 1 {
		return newRuleError(ErrEvolutionSickness, "%s was played this turn", base.Name)
	}
	if pokemon.EvolvedThisTurn {
		return newRuleError(ErrEvolutionSickness, "%s already evolved this turn", base.Name)
	}
	return nil
}

func nameOrUnknown(def *CardDef) string {
	if def == nil {
		return "unknown card"
	}
	return def.Name
}

func (e *Engine) applyEvolve(state *GameState, action Action) error {
	player := state.Player(action.Player)
	pokemon := player.FindPokemon(action.TargetID)
	if pokemon == nil {
		e.warnIllegal(state, action, "evolution target not in play")
		return nil
	}
	evoCard := player.Hand.FindByID(action.CardID)
	if evoCard == nil {
		e.warnIllegal(state, action, "evolution card not in hand")
		return nil
	}
	if err := e.canEvolve(state, pokemon, e.Def(evoCard)); err != nil {
		return err
	}
	player.Hand.TakeByID(action.CardID)
	e.evolvePokemon(state, player, pokemon, evoCard, false)
	return nil
}

// evolvePokemon replaces an in-play Pokemon with the evolution card,
// carrying over damage, attachments and turn counters. The replaced card
// stays underneath as a previous stage. skipSickness lifts the
// turns-in-play gating for effects like Rare Candy.
func (e *Engine) evolvePokemon(state *GameState, player *PlayerState, pokemon *CardInstance, evoCard *CardInstance, skipSickness bool) {
	evoCard.DamageCounters = pokemon.DamageCounters
	evoCard.AttachedEnergy = pokemon.AttachedEnergy
	evoCard.AttachedTools = pokemon.AttachedTools
	evoCard.TurnsInPlay = pokemon.TurnsInPlay
	evoCard.EvolvedThisTurn = !skipSickness

	evoCard.EvolutionChain = append(evoCard.EvolutionChain, pokemon.EvolutionChain...)
	evoCard.EvolutionChain = append(evoCard.EvolutionChain, pokemon.CardID)
	evoCard.PreviousStages = append(evoCard.PreviousStages, pokemon.PreviousStages...)

	// Give up the attachments' old home so the stack flattens cleanly.
	pokemon.AttachedEnergy = nil
	pokemon.AttachedTools = nil
	pokemon.PreviousStages = nil
	evoCard.PreviousStages = append(evoCard.PreviousStages, pokemon)

	// Evolving removes special conditions and lingering attack effects.
	evoCard.ClearAllStatus()
	evoCard.AttackEffects = nil

	if player.Board.Active == pokemon {
		player.Board.Active = evoCard
	} else {
		for i, b := range player.Board.Bench {
			if b == pokemon {
				player.Board.Bench[i] = evoCard
				break
			}
		}
	}

	e.triggerHooks(state, evoCard, "on_evolve")
	e.syncBenchLimits(state)
}
