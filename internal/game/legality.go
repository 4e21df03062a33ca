package game

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// LegalActions enumerates every rules-legal action for the current state.
// It returns nil only when the game is over. Repeated calls against the
// same state produce the same actions in the same order.
//
// Priority: pending resolution steps replace everything; forced
// interrupts (no active Pokemon, oversized bench) replace normal phase
// generation; otherwise the current phase decides.
func (e *Engine) LegalActions(state *GameState) []Action {
	if state.IsGameOver() {
		return nil
	}

	if state.HasPendingResolution() {
		return e.resolutionStackActions(state)
	}

	if forced := e.interruptActions(state); len(forced) > 0 {
		return forced
	}

	switch state.Phase {
	case rules.PhaseSetup:
		return e.setupActions(state)
	case rules.PhaseMulligan:
		return e.mulliganActions(state)
	case rules.PhaseMain, rules.PhaseSuddenDeath:
		return e.mainPhaseActions(state)
	default:
		// DRAW and CLEANUP are auto-resolved and unreachable here.
		return nil
	}
}

// interruptActions returns forced actions that preempt normal play: a
// missing active Pokemon must be replaced from the bench, and a bench
// over its (possibly shrunken) limit must be discarded down.
func (e *Engine) interruptActions(state *GameState) []Action {
	var actions []Action
	for i, p := range state.Players {
		if !p.HasActivePokemon() && p.Board.BenchCount() > 0 {
			for _, pk := range p.Board.Bench {
				actions = append(actions, promoteActive(i, pk.ID))
			}
			return actions
		}
		if p.Board.BenchCount() > p.Board.MaxBench {
			for _, pk := range p.Board.Bench {
				actions = append(actions, discardBench(i, pk.ID))
			}
			return actions
		}
	}
	return nil
}

func (e *Engine) setupActions(state *GameState) []Action {
	var actions []Action
	player := state.ActivePlayerState()

	if !player.HasActivePokemon() {
		seen := make(map[string]bool)
		for _, card := range player.Hand.Cards {
			def := e.Def(card)
			if def == nil || !def.IsBasicPokemon() {
				continue
			}
			if seen[def.FunctionalID()] {
				continue
			}
			seen[def.FunctionalID()] = true
			actions = append(actions, placeActive(player.Index, card.ID))
		}
		if len(actions) == 0 {
			// No basics: reveal hand and mulligan.
			actions = append(actions, Action{Type: ActionRevealMulligan, Player: player.Index})
		}
		return actions
	}

	seen := make(map[string]bool)
	for _, card := range player.Hand.Cards {
		def := e.Def(card)
		if def == nil || !def.IsBasicPokemon() || !player.Board.CanAddToBench() {
			continue
		}
		if seen[def.FunctionalID()] {
			continue
		}
		seen[def.FunctionalID()] = true
		actions = append(actions, placeBench(player.Index, card.ID))
	}
	actions = append(actions, Action{Type: ActionFinishSetup, Player: player.Index})
	return actions
}

func (e *Engine) mulliganActions(state *GameState) []Action {
	// The opponent of the mulliganing player chooses whether to draw an
	// extra card for each mulligan.
	player := state.ActivePlayerState()
	return []Action{
		{Type: ActionMulliganDraw, Player: player.Index},
		{Type: ActionFinishSetup, Player: player.Index},
	}
}

func (e *Engine) mainPhaseActions(state *GameState) []Action {
	player := state.ActivePlayerState()

	actions := []Action{endTurn(player.Index)}
	actions = append(actions, e.energyAttachActions(state)...)
	actions = append(actions, e.playBasicActions(state)...)
	actions = append(actions, e.evolutionActions(state)...)
	actions = append(actions, e.trainerActions(state)...)
	actions = append(actions, e.abilityActions(state)...)
	actions = append(actions, e.retreatActions(state)...)
	actions = append(actions, e.attackActions(state)...)
	return actions
}

// energyAttachActions generates one atomic attach action per unique
// energy card (by functional id) per board target.
func (e *Engine) energyAttachActions(state *GameState) []Action {
	player := state.ActivePlayerState()
	if player.EnergyAttachedThisTurn || !player.HasAnyPokemonInPlay() {
		return nil
	}

	targets := player.Board.AllPokemon()
	var actions []Action
	seen := make(map[string]bool)
	for _, card := range player.Hand.Cards {
		def := e.Def(card)
		if def == nil || !def.IsEnergy() {
			continue
		}
		if seen[def.FunctionalID()] {
			continue
		}
		seen[def.FunctionalID()] = true
		for _, target := range targets {
			actions = append(actions, attachEnergy(player.Index, card.ID, target.ID))
		}
	}
	return actions
}

func (e *Engine) playBasicActions(state *GameState) []Action {
	player := state.ActivePlayerState()
	if !player.Board.CanAddToBench() {
		return nil
	}

	var actions []Action
	// Dedup by functional id, not name: printings with the same name can
	// have different stats or abilities.
	seen := make(map[string]bool)
	for _, card := range player.Hand.Cards {
		def := e.Def(card)
		if def == nil || !def.IsBasicPokemon() {
			continue
		}
		if seen[def.FunctionalID()] {
			continue
		}
		seen[def.FunctionalID()] = true
		actions = append(actions, playBasic(player.Index, card.ID))
	}
	return actions
}

func (e *Engine) evolutionActions(state *GameState) []Action {
	player := state.ActivePlayerState()
	if state.TurnCount == 1 {
		return nil
	}

	var actions []Action
	// Dedup by (functional id, target): identical evolution cards
	// collapse, targets never do.
	seen := make(map[string]bool)
	for _, card := range player.Hand.Cards {
		def := e.Def(card)
		if def == nil || def.EvolvesFrom == "" {
			continue
		}
		for _, pokemon := range player.Board.AllPokemon() {
			if e.canEvolve(state, pokemon, def) != nil {
				continue
			}
			key := def.FunctionalID() + ":" + pokemon.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			actions = append(actions, evolve(player.Index, card.ID, pokemon.ID))
		}
	}
	return actions
}

func (e *Engine) trainerActions(state *GameState) []Action {
	player := state.ActivePlayerState()

	itemsLocked := !e.CheckGlobalPermission(state, PermissionPlayItem, player.Index, "")
	supportersLocked := !e.CheckGlobalPermission(state, PermissionPlaySupporter, player.Index, "")

	var actions []Action
	seen := make(map[string]bool)
	for _, card := range player.Hand.Cards {
		def := e.Def(card)
		if def == nil || !def.IsTrainer() {
			continue
		}
		fid := def.FunctionalID()

		switch {
		case def.IsItem():
			if itemsLocked || seen[fid] {
				continue
			}
			seen[fid] = true
			actions = append(actions, e.trainerAction(state, card, ActionPlayItem)...)

		case def.IsSupporter():
			if supportersLocked || player.SupporterPlayedThisTurn || seen[fid] {
				continue
			}
			if rules.FirstTurnRestricted(state.TurnCount, state.ActivePlayer, state.StartingPlayer) {
				continue
			}
			seen[fid] = true
			actions = append(actions, e.trainerAction(state, card, ActionPlaySupporter)...)

		case def.IsStadium():
			if player.StadiumPlayedThisTurn || seen[fid] {
				continue
			}
			// A stadium with the same name as the one in play cannot be
			// played (compared by name, not functional id).
			if state.Stadium != nil {
				if current := e.Def(state.Stadium); current != nil && current.Name == def.Name {
					continue
				}
			}
			seen[fid] = true
			actions = append(actions, Action{Type: ActionPlayStadium, Player: player.Index, CardID: card.ID})

		case def.IsTool():
			for _, pokemon := range player.Board.AllPokemon() {
				if len(pokemon.AttachedTools) == 0 {
					actions = append(actions, Action{Type: ActionAttachTool, Player: player.Index, CardID: card.ID, TargetID: pokemon.ID})
				}
			}
		}
	}
	return actions
}

// trainerAction synthesizes the action for an item or supporter, letting
// a registered generator override the generic single action.
func (e *Engine) trainerAction(state *GameState, card *CardInstance, actionType ActionType) []Action {
	if logic, ok := e.logic.Lookup(card.CardID, ""); ok && logic.Generator != nil {
		return logic.Generator(state, card, state.ActivePlayer)
	}
	return []Action{{Type: actionType, Player: state.ActivePlayer, CardID: card.ID}}
}

func (e *Engine) abilityActions(state *GameState) []Action {
	player := state.ActivePlayerState()

	var actions []Action
	for _, pokemon := range player.Board.AllPokemon() {
		def := e.Def(pokemon)
		if def == nil {
			continue
		}
		for _, ability := range def.Abilities {
			if !ability.Activatable {
				continue
			}
			if pokemon.AbilitiesUsedThisTurn[ability.Name] {
				continue
			}
			if e.abilityBlocked(state, pokemon) {
				continue
			}
			if !e.CheckGlobalPermission(state, PermissionUseAbility, player.Index, pokemon.ID) {
				continue
			}
			if logic, ok := e.logic.Lookup(pokemon.CardID, ability.Name); ok && logic.Generator != nil {
				actions = append(actions, logic.Generator(state, pokemon, player.Index)...)
				continue
			}
			actions = append(actions, useAbility(player.Index, pokemon.ID, ability.Name))
		}
	}
	return actions
}

func (e *Engine) retreatActions(state *GameState) []Action {
	player := state.ActivePlayerState()
	if player.RetreatedThisTurn {
		return nil
	}
	if !player.HasActivePokemon() || player.Board.BenchCount() == 0 {
		return nil
	}

	active := player.Board.Active
	if active.AsleepOrParalyzed() {
		return nil
	}
	if !e.CheckGlobalPermission(state, PermissionRetreat, player.Index, active.ID) {
		return nil
	}
	if e.providedEnergy(active).Total() < e.retreatCost(state, active) {
		return nil
	}

	var actions []Action
	for _, bench := range player.Board.Bench {
		actions = append(actions, retreat(player.Index, active.ID, bench.ID))
	}
	return actions
}

func (e *Engine) attackActions(state *GameState) []Action {
	player := state.ActivePlayerState()
	if !player.HasActivePokemon() {
		return nil
	}

	active := player.Board.Active
	if active.AsleepOrParalyzed() {
		return nil
	}
	if active.HasAttackEffect(attackEffectCannotAttack) {
		return nil
	}
	if rules.FirstTurnRestricted(state.TurnCount, state.ActivePlayer, state.StartingPlayer) {
		return nil
	}
	if !e.CheckGlobalPermission(state, PermissionAttack, player.Index, active.ID) {
		return nil
	}

	def := e.Def(active)
	if def == nil {
		return nil
	}

	var actions []Action
	for _, atk := range def.Attacks {
		if e.hasEnergyForAttack(active, atk.Cost) {
			actions = append(actions, attack(player.Index, active.ID, atk.Name))
		}
	}
	return actions
}
