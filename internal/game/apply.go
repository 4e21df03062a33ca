package game

import (
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// Transient attack effects recognized by the engine.
const (
	attackEffectCannotAttack = "cannot_attack_next_turn"
)

const confusionSelfCounters = 3

func (e *Engine) applyAction(state *GameState, action Action) error {
	switch action.Type {
	case ActionPlaceActive:
		e.applyPlaceActive(state, action)
	case ActionPlaceBench:
		e.applyPlaceBench(state, action)
	case ActionRevealMulligan:
		e.applyRevealMulligan(state, action)
	case ActionMulliganDraw:
		e.applyMulliganDraw(state, action)
	case ActionFinishSetup:
		e.applyFinishSetup(state, action)
	case ActionPlayBasic:
		e.applyPlayBasic(state, action)
	case ActionEvolve:
		return e.applyEvolve(state, action)
	case ActionAttachEnergy:
		e.applyAttachEnergy(state, action)
	case ActionPlayItem:
		e.applyTrainer(state, action)
	case ActionPlaySupporter:
		e.applyTrainer(state, action)
	case ActionPlayStadium:
		e.applyPlayStadium(state, action)
	case ActionAttachTool:
		e.applyAttachTool(state, action)
	case ActionUseAbility:
		e.applyUseAbility(state, action)
	case ActionRetreat:
		e.applyRetreat(state, action)
	case ActionAttack:
		e.applyAttack(state, action)
	case ActionEndTurn:
		state.Phase = rules.PhaseCleanup
	case ActionPromoteActive:
		e.applyPromoteActive(state, action)
	case ActionDiscardBench:
		e.applyDiscardBench(state, action)
	case ActionSelectCard:
		return e.applySelectCard(state, action)
	case ActionConfirmSelection:
		return e.applyConfirmSelection(state, action)
	default:
		return newRuleError(ErrUnknownActionType, "%s", action.Type)
	}
	return nil
}

// warnIllegal logs a defensive no-op: the legality generator should have
// prevented the action, so reaching here means a caller bug, not a reason
// to crash a running search.
func (e *Engine) warnIllegal(state *GameState, action Action, reason string) {
	e.logger.Warn("ignoring illegal action",
		zap.String("game_id", state.ID),
		zap.String("action", action.Type.String()),
		zap.Int("player", action.Player),
		zap.String("reason", reason))
}

func (e *Engine) applyPlaceActive(state *GameState, action Action) {
	player := state.Player(action.Player)
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "card not in hand")
		return
	}
	player.Board.Active = card
}

func (e *Engine) applyPlaceBench(state *GameState, action Action) {
	player := state.Player(action.Player)
	if !player.Board.CanAddToBench() {
		e.warnIllegal(state, action, "bench full")
		return
	}
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "card not in hand")
		return
	}
	player.Board.AddToBench(card)
}

// applyRevealMulligan reshuffles a basic-less hand into the deck, redraws,
// and credits the opponent a bonus draw to take after setup.
func (e *Engine) applyRevealMulligan(state *GameState, action Action) {
	player := state.Player(action.Player)
	for len(player.Hand.Cards) > 0 {
		player.Deck.Add(player.Hand.DrawTop())
	}
	player.Deck.Shuffle(e.rng)
	for i := 0; i < StartingHandSize; i++ {
		if card := player.Deck.DrawTop(); card != nil {
			player.Hand.Add(card)
		}
	}
	state.Player(1 - action.Player).MulliganCredits++
	e.logger.Debug("mulligan revealed",
		zap.String("game_id", state.ID),
		zap.Int("player", action.Player))
}

func (e *Engine) applyMulliganDraw(state *GameState, action Action) {
	player := state.Player(action.Player)
	if player.MulliganCredits <= 0 {
		e.warnIllegal(state, action, "no mulligan draws available")
		return
	}
	player.MulliganCredits--
	if card := player.Deck.DrawTop(); card != nil {
		player.Hand.Add(card)
	}
	if player.MulliganCredits == 0 {
		e.settleMulligans(state)
	}
}

func (e *Engine) applyFinishSetup(state *GameState, action Action) {
	if state.Phase == rules.PhaseMulligan {
		// Declining the remaining bonus draws.
		state.Player(action.Player).MulliganCredits = 0
		e.settleMulligans(state)
		return
	}

	if state.ActivePlayer == state.StartingPlayer {
		state.SwitchActivePlayer()
		return
	}

	// Both players are set up; settle mulligan bonus draws before the
	// first turn.
	e.settleMulligans(state)
}

// settleMulligans hands the decision to the next player still owed bonus
// draws. Both players can hold credits when both mulliganed during
// setup; the first turn begins only once every credit is drawn or
// declined.
func (e *Engine) settleMulligans(state *GameState) {
	for i, p := range state.Players {
		if p.MulliganCredits > 0 {
			state.Phase = rules.PhaseMulligan
			state.ActivePlayer = i
			return
		}
	}
	e.beginFirstTurn(state)
}

func (e *Engine) applyPlayBasic(state *GameState, action Action) {
	player := state.Player(action.Player)
	if !player.Board.CanAddToBench() {
		e.warnIllegal(state, action, "bench full")
		return
	}
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "card not in hand")
		return
	}
	player.Board.AddToBench(card)
	e.triggerHooks(state, card, "on_play")
}

func (e *Engine) applyAttachEnergy(state *GameState, action Action) {
	player := state.Player(action.Player)
	target := player.FindPokemon(action.TargetID)
	if target == nil {
		e.warnIllegal(state, action, "attach target not in play")
		return
	}
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "energy not in hand")
		return
	}
	target.AttachedEnergy = append(target.AttachedEnergy, card)
	player.EnergyAttachedThisTurn = true
	state.TurnMetadata.EnergyAttached = true
}

// applyTrainer handles items and supporters: run the registered effect,
// push its resolution steps, then discard the card.
func (e *Engine) applyTrainer(state *GameState, action Action) {
	player := state.Player(action.Player)
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "trainer not in hand")
		return
	}

	if action.Type == ActionPlaySupporter {
		player.SupporterPlayedThisTurn = true
	}

	if logic, ok := e.logic.Lookup(card.CardID, ""); ok && logic.Effect != nil {
		result, err := logic.Effect(state, card, action)
		if err != nil {
			e.logger.Warn("trainer effect failed",
				zap.String("game_id", state.ID),
				zap.String("card_id", card.CardID),
				zap.Error(err))
		} else {
			e.applyEffectResult(state, result)
		}
	} else {
		e.logger.Warn("no logic registered for trainer",
			zap.String("game_id", state.ID),
			zap.String("card_id", card.CardID))
	}

	player.Discard.Add(card)
}

func (e *Engine) applyPlayStadium(state *GameState, action Action) {
	player := state.Player(action.Player)
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "stadium not in hand")
		return
	}

	if state.Stadium != nil {
		old := state.Stadium
		state.ActiveEffects = effects.RemoveBySource(state.ActiveEffects, old.ID)
		state.Player(old.Owner).Discard.Add(old)
	}

	state.Stadium = card
	player.StadiumPlayedThisTurn = true

	if logic, ok := e.logic.Lookup(card.CardID, ""); ok && logic.Effect != nil {
		if result, err := logic.Effect(state, card, action); err == nil {
			e.applyEffectResult(state, result)
		}
	}

	e.syncBenchLimits(state)
}

func (e *Engine) applyAttachTool(state *GameState, action Action) {
	player := state.Player(action.Player)
	target := player.FindPokemon(action.TargetID)
	if target == nil || len(target.AttachedTools) > 0 {
		e.warnIllegal(state, action, "invalid tool target")
		return
	}
	card := player.Hand.TakeByID(action.CardID)
	if card == nil {
		e.warnIllegal(state, action, "tool not in hand")
		return
	}
	target.AttachedTools = append(target.AttachedTools, card)
}

func (e *Engine) applyUseAbility(state *GameState, action Action) {
	player := state.Player(action.Player)
	pokemon := player.FindPokemon(action.CardID)
	if pokemon == nil {
		e.warnIllegal(state, action, "ability source not in play")
		return
	}

	pokemon.AbilitiesUsedThisTurn[action.AbilityName] = true

	logic, ok := e.logic.Lookup(pokemon.CardID, action.AbilityName)
	if !ok || logic.Effect == nil {
		e.logger.Warn("no logic registered for ability",
			zap.String("game_id", state.ID),
			zap.String("card_id", pokemon.CardID),
			zap.String("ability", action.AbilityName))
		return
	}

	result, err := logic.Effect(state, pokemon, action)
	if err != nil {
		e.logger.Warn("ability effect failed",
			zap.String("game_id", state.ID),
			zap.String("ability", action.AbilityName),
			zap.Error(err))
		return
	}
	e.applyEffectResult(state, result)
}

func (e *Engine) applyRetreat(state *GameState, action Action) {
	player := state.Player(action.Player)
	active := player.Board.Active
	if active == nil || active.ID != action.CardID {
		e.warnIllegal(state, action, "retreating card is not active")
		return
	}

	// Pay the cost by discarding the most recently attached energy.
	cost := e.retreatCost(state, active)
	for i := 0; i < cost && len(active.AttachedEnergy) > 0; i++ {
		last := len(active.AttachedEnergy) - 1
		player.Discard.Add(active.AttachedEnergy[last])
		active.AttachedEnergy = active.AttachedEnergy[:last]
	}

	// The Switch rule: leaving the active spot clears status and
	// transient attack effects.
	active.ClearAllStatus()
	active.AttackEffects = nil

	if !player.Board.SwitchActive(action.TargetID) {
		e.warnIllegal(state, action, "retreat target not on bench")
		return
	}
	player.RetreatedThisTurn = true
}

func (e *Engine) applyAttack(state *GameState, action Action) {
	player := state.Player(action.Player)
	opponent := state.Player(1 - action.Player)
	attacker := player.Board.Active
	if attacker == nil || attacker.ID != action.CardID {
		e.warnIllegal(state, action, "attacker is not active")
		return
	}

	state.TurnMetadata.AttackUsed = action.AttackName

	// Confusion: flip; tails damages the attacker and forfeits the attack.
	if attacker.HasStatus(StatusConfused) && !e.coinFlip() {
		attacker.DamageCounters += confusionSelfCounters
		e.logger.Debug("confusion flip failed",
			zap.String("game_id", state.ID),
			zap.String("attacker", attacker.ID))
		e.checkKnockout(state, action.Player, attacker)
		state.Phase = rules.PhaseCleanup
		return
	}

	def := e.Def(attacker)
	if def == nil {
		state.Phase = rules.PhaseCleanup
		return
	}
	var atk *AttackDef
	for i := range def.Attacks {
		if def.Attacks[i].Name == action.AttackName {
			atk = &def.Attacks[i]
			break
		}
	}
	if atk == nil {
		e.warnIllegal(state, action, "unknown attack")
		state.Phase = rules.PhaseCleanup
		return
	}

	baseDamage := atk.Damage
	if logic, ok := e.logic.Lookup(attacker.CardID, atk.Name); ok && logic.Effect != nil {
		result, err := logic.Effect(state, attacker, action)
		if err != nil {
			e.logger.Warn("attack effect failed",
				zap.String("game_id", state.ID),
				zap.String("attack", atk.Name),
				zap.Error(err))
		} else if result != nil {
			if result.Damage > 0 {
				baseDamage = result.Damage
			}
			e.applyEffectResult(state, result)
			if result.SelfDamageCounters > 0 {
				attacker.DamageCounters += result.SelfDamageCounters
				e.checkKnockout(state, action.Player, attacker)
			}
		}
	}

	defender := opponent.Board.Active
	if defender != nil && baseDamage > 0 {
		final := e.CalculateDamage(state, attacker, defender, baseDamage)
		e.ApplyDamage(state, defender, final)
		state.TurnMetadata.DamageDealt += final
		e.checkKnockout(state, 1-action.Player, defender)
	}

	state.Phase = rules.PhaseCleanup
}

func (e *Engine) applyPromoteActive(state *GameState, action Action) {
	player := state.Player(action.Player)
	if !player.Board.PromoteToActive(action.CardID) {
		e.warnIllegal(state, action, "cannot promote")
	}
}

func (e *Engine) applyDiscardBench(state *GameState, action Action) {
	player := state.Player(action.Player)
	pokemon := player.Board.RemoveBenchByID(action.CardID)
	if pokemon == nil {
		e.warnIllegal(state, action, "discard target not on bench")
		return
	}
	e.discardPokemonStack(player, pokemon)
}

// applyEffectResult folds an EffectResult into the state: steps are
// pushed in order so the first step ends up on top of the stack last
// (effects list steps outermost-first).
func (e *Engine) applyEffectResult(state *GameState, result *EffectResult) {
	if result == nil {
		return
	}
	for _, step := range result.Steps {
		state.PushStep(step)
	}
	for id, condition := range result.AddStatus {
		if target, owner := state.FindPokemonAnywhere(id); target != nil {
			e.ApplyStatusCondition(state, owner, target, condition)
		}
	}
}

// triggerHooks runs hook-category logic for a card's trigger point
// (on_play, on_evolve), respecting ability locks.
func (e *Engine) triggerHooks(state *GameState, card *CardInstance, trigger string) {
	def := e.Def(card)
	if def == nil {
		return
	}
	for _, ability := range def.Abilities {
		if ability.Trigger != trigger {
			continue
		}
		if e.abilityBlocked(state, card) {
			continue
		}
		logic, ok := e.logic.Lookup(card.CardID, ability.Name)
		if !ok || logic.Effect == nil || logic.Trigger != trigger {
			continue
		}
		result, err := logic.Effect(state, card, Action{Type: ActionUseAbility, Player: card.Owner, CardID: card.ID, AbilityName: ability.Name})
		if err != nil {
			e.logger.Warn("hook effect failed",
				zap.String("game_id", state.ID),
				zap.String("ability", ability.Name),
				zap.Error(err))
			continue
		}
		e.applyEffectResult(state, result)
	}
}

// abilityBlocked reports whether a passive lock prevents the Pokemon's
// abilities.
func (e *Engine) abilityBlocked(state *GameState, pokemon *CardInstance) bool {
	return effects.AbilitiesLocked(state.ActiveEffects, pokemon.Owner)
}
