package game

import (
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// resolutionStackActions generates the only actions legal while a
// resolution step is pending: selections scoped to the top step, plus
// confirmation where the step permits stopping.
func (e *Engine) resolutionStackActions(state *GameState) []Action {
	top := state.TopStep()
	if top == nil {
		return nil
	}

	switch top.Type {
	case stack.StepAttachToTarget:
		actions := make([]Action, 0, len(top.ValidTargetIDs))
		for _, id := range top.ValidTargetIDs {
			actions = append(actions, SelectCardAction(top.Player, KnownTarget(id)))
		}
		return actions

	case stack.StepSearchDeck:
		return e.searchDeckActions(state, top)

	case stack.StepSelectFromZone:
		return e.selectFromZoneActions(state, top)

	default:
		return nil
	}
}

// selectFromZoneActions enumerates selectable cards in a visible zone.
// Candidates are deduplicated by functional id; confirming early is only
// offered when the minimum is met and no further pick is possible or the
// zone hides its contents.
func (e *Engine) selectFromZoneActions(state *GameState, top *stack.Step) []Action {
	var actions []Action

	if !top.SelectionFull() {
		seen := make(map[string]bool)
		for _, card := range e.zoneCards(state, top.Player, top.Zone) {
			if top.IsSelected(card.ID) || top.IsExcluded(card.ID) {
				continue
			}
			def := e.Def(card)
			if def == nil || !e.cardMatchesFilter(def, top.Filter) {
				continue
			}
			if seen[def.FunctionalID()] {
				continue
			}
			seen[def.FunctionalID()] = true
			actions = append(actions, SelectCardAction(top.Player, KnownTarget(card.ID)))
		}
	}

	// In a public zone a player may not stop short while valid targets
	// remain; hidden zones always permit stopping at the minimum.
	if top.CanConfirm() && !top.SelectionFull() {
		if top.Zone.Hidden() || len(actions) == 0 {
			actions = append(actions, ConfirmSelectionAction(top.Player))
		}
	} else if top.SelectionFull() && top.CanConfirm() {
		actions = append(actions, ConfirmSelectionAction(top.Player))
	}

	return actions
}

// searchDeckActions enumerates believed targets for a hidden deck search,
// or the real contents once the searcher has perfect deck knowledge.
func (e *Engine) searchDeckActions(state *GameState, top *stack.Step) []Action {
	player := state.Player(top.Player)
	var actions []Action

	if !top.SelectionFull() {
		if player.HasSearchedDeck {
			// Perfect knowledge: offer actual deck cards, deduplicated
			// through the frozen census map.
			seen := make(map[string]bool)
			for _, card := range player.Deck.Cards {
				if top.IsSelected(card.ID) || top.IsExcluded(card.ID) {
					continue
				}
				def := e.Def(card)
				if def == nil || !e.cardMatchesFilter(def, top.Filter) {
					continue
				}
				fid := player.FunctionalID(card.CardID)
				if fid == "" {
					fid = def.FunctionalID()
				}
				if seen[fid] {
					continue
				}
				seen[fid] = true
				actions = append(actions, SelectCardAction(top.Player, KnownTarget(card.ID)))
			}
		} else {
			for _, name := range e.DeckSearchCandidates(state, top.Player, top.Filter) {
				if e.nameExhausted(state, top, name) {
					continue
				}
				actions = append(actions, SelectCardAction(top.Player, BelievedTarget(name)))
			}
		}
	}

	// Hidden zone: failing to find (confirming with nothing, or short of
	// the maximum) is always legal.
	actions = append(actions, ConfirmSelectionAction(top.Player))
	return actions
}

// nameExhausted reports whether further picks of a believed name are
// pointless: every copy already selected, or a previous pick proved the
// remaining copies are prized.
func (e *Engine) nameExhausted(state *GameState, top *stack.Step, name string) bool {
	for _, failed := range top.FailedTargets {
		if failed == name {
			return true
		}
	}
	selected := 0
	for _, id := range top.SelectedCardIDs {
		if card := state.Player(top.Player).Deck.FindByID(id); card != nil {
			if def := e.Def(card); def != nil && def.Name == name {
				selected++
			}
		}
	}
	census := state.Player(top.Player).InitialDeckCounts[name]
	return selected >= census
}

func (e *Engine) applySelectCard(state *GameState, action Action) error {
	top := state.TopStep()
	if top == nil {
		e.warnIllegal(state, action, "no pending resolution step")
		return nil
	}

	switch top.Type {
	case stack.StepAttachToTarget:
		target := action.Target.CardID
		valid := false
		for _, id := range top.ValidTargetIDs {
			if id == target {
				valid = true
				break
			}
		}
		if !valid {
			e.warnIllegal(state, action, "not a valid attach target")
			return nil
		}
		top.SelectedTargetID = target
		state.PopStep()
		return e.processStepCompletion(state, top)

	case stack.StepSelectFromZone:
		card := e.findInZone(state, top.Player, top.Zone, action.Target.CardID)
		if card == nil || top.IsSelected(card.ID) || top.IsExcluded(card.ID) {
			e.warnIllegal(state, action, "card not selectable")
			return nil
		}
		top.SelectedCardIDs = append(top.SelectedCardIDs, card.ID)

	case stack.StepSearchDeck:
		player := state.Player(top.Player)
		switch action.Target.Kind {
		case TargetKnown:
			card := player.Deck.FindByID(action.Target.CardID)
			if card == nil || top.IsSelected(card.ID) {
				e.warnIllegal(state, action, "card not in deck")
				return nil
			}
			top.SelectedCardIDs = append(top.SelectedCardIDs, card.ID)
		case TargetBelieved:
			card := e.resolveBelievedTarget(state, top, action.Target.CardName)
			if card == nil {
				// The believed copy is prized: not an error, the search
				// simply comes up empty for that name.
				top.FailedTargets = append(top.FailedTargets, action.Target.CardName)
				e.logger.Debug("believed target not in deck",
					zap.String("game_id", state.ID),
					zap.String("name", action.Target.CardName))
				return nil
			}
			top.SelectedCardIDs = append(top.SelectedCardIDs, card.ID)
		default:
			e.warnIllegal(state, action, "selection needs a target")
			return nil
		}

	default:
		e.warnIllegal(state, action, "step takes no card selection")
		return nil
	}

	// Reaching the maximum completes the step immediately; a separate
	// confirm would be a dead move.
	if top.SelectionFull() {
		state.PopStep()
		return e.processStepCompletion(state, top)
	}
	return nil
}

// resolveBelievedTarget finds a not-yet-selected deck card matching a
// believed name.
func (e *Engine) resolveBelievedTarget(state *GameState, top *stack.Step, name string) *CardInstance {
	for _, card := range state.Player(top.Player).Deck.Cards {
		if top.IsSelected(card.ID) {
			continue
		}
		if def := e.Def(card); def != nil && def.Name == name {
			return card
		}
	}
	return nil
}

func (e *Engine) applyConfirmSelection(state *GameState, action Action) error {
	top := state.TopStep()
	if top == nil {
		e.warnIllegal(state, action, "no pending resolution step")
		return nil
	}
	if !top.CanConfirm() {
		e.warnIllegal(state, action, "selection below minimum")
		return nil
	}
	state.PopStep()
	return e.processStepCompletion(state, top)
}

// processStepCompletion executes the completed step's outcome, then any
// continuation: the engine's built-in chains first, then callbacks
// registered by card logic.
func (e *Engine) processStepCompletion(state *GameState, step *stack.Step) error {
	switch step.Type {
	case stack.StepSelectFromZone:
		e.completeSelection(state, step)
	case stack.StepSearchDeck:
		e.completeSearch(state, step)
	case stack.StepAttachToTarget:
		e.completeAttach(state, step)
	case stack.StepEvolveTarget:
		e.completeForcedEvolve(state, step)
	}

	if fn, ok := e.logic.Callback(step.OnComplete); ok {
		result, err := fn(state, step)
		if err != nil {
			return err
		}
		e.applyEffectResult(state, result)
	}
	return nil
}

func (e *Engine) completeSelection(state *GameState, step *stack.Step) {
	player := state.Player(step.Player)
	switch step.Purpose {
	case stack.PurposeDiscardCost:
		for _, id := range step.SelectedCardIDs {
			if card := e.takeFromZone(state, step.Player, step.Zone, id); card != nil {
				player.Discard.Add(card)
			}
		}
	case stack.PurposeEnergyToAttach:
		if step.OnComplete == stack.CallbackAttachEnergySelectTarget {
			// Chain: each chosen energy now needs a target.
			targets := make([]string, 0)
			for _, pk := range player.Board.AllPokemon() {
				targets = append(targets, pk.ID)
			}
			for _, id := range step.SelectedCardIDs {
				attach := stack.NewAttachToTarget(step.Player, id, targets)
				attach.SourceCardID = step.SourceCardID
				attach.OnComplete = stack.CallbackAttachEnergyComplete
				state.PushStep(attach)
			}
		}
	case stack.PurposeBenchDiscard:
		for _, id := range step.SelectedCardIDs {
			if pk := player.Board.RemoveBenchByID(id); pk != nil {
				e.discardPokemonStack(player, pk)
			}
		}
	}
	// Other purposes leave the cards in place for the callback.
}

// completeSearch moves the found cards to the step's destination, marks
// the searcher as having seen the deck, and shuffles.
func (e *Engine) completeSearch(state *GameState, step *stack.Step) {
	player := state.Player(step.Player)
	for _, id := range step.SelectedCardIDs {
		card := player.Deck.TakeByID(id)
		if card == nil {
			continue
		}
		switch step.Destination {
		case stack.ZoneHand, "":
			player.Hand.Add(card)
		case stack.ZoneDiscard:
			player.Discard.Add(card)
		case stack.ZoneBench:
			if player.Board.CanAddToBench() {
				player.Board.AddToBench(card)
			} else {
				player.Hand.Add(card)
			}
		default:
			player.Hand.Add(card)
		}
	}

	// The searcher saw every remaining card; their belief collapses to
	// perfect knowledge until the deck changes hidden again.
	player.HasSearchedDeck = true

	if step.ShuffleAfter {
		player.Deck.Shuffle(e.rng)
	}
}

func (e *Engine) completeAttach(state *GameState, step *stack.Step) {
	if step.OnComplete != stack.CallbackAttachEnergyComplete {
		return
	}
	player := state.Player(step.Player)
	target := player.FindPokemon(step.SelectedTargetID)
	if target == nil {
		e.logger.Warn("attach target vanished",
			zap.String("game_id", state.ID),
			zap.String("target", step.SelectedTargetID))
		return
	}
	card := player.Hand.TakeByID(step.CardToAttachID)
	if card == nil {
		card = player.Discard.TakeByID(step.CardToAttachID)
	}
	if card == nil {
		e.logger.Warn("attach card vanished",
			zap.String("game_id", state.ID),
			zap.String("card", step.CardToAttachID))
		return
	}
	target.AttachedEnergy = append(target.AttachedEnergy, card)
}

func (e *Engine) completeForcedEvolve(state *GameState, step *stack.Step) {
	pokemon, owner := state.FindPokemonAnywhere(step.BasePokemonID)
	if pokemon == nil {
		return
	}
	player := state.Player(owner)
	evoCard := player.Hand.TakeByID(step.EvolutionCardID)
	if evoCard == nil {
		return
	}
	e.evolvePokemon(state, player, pokemon, evoCard, step.SkipEvolutionSickness)
}

// drainAutoSteps executes steps that need no player input (forced
// evolutions pushed by effects).
func (e *Engine) drainAutoSteps(state *GameState) {
	for {
		top := state.TopStep()
		if top == nil || top.Type != stack.StepEvolveTarget {
			return
		}
		state.PopStep()
		if err := e.processStepCompletion(state, top); err != nil {
			e.logger.Warn("auto step failed",
				zap.String("game_id", state.ID),
				zap.Error(err))
			return
		}
	}
}

// zoneCards returns the cards in a player's step-addressable zone.
func (e *Engine) zoneCards(state *GameState, player int, zone stack.Zone) []*CardInstance {
	p := state.Player(player)
	switch zone {
	case stack.ZoneDeck:
		return p.Deck.Cards
	case stack.ZoneHand:
		return p.Hand.Cards
	case stack.ZoneDiscard:
		return p.Discard.Cards
	case stack.ZonePrizes:
		return p.Prizes.Cards
	case stack.ZoneBench:
		return p.Board.Bench
	case stack.ZoneActive:
		if p.Board.Active != nil {
			return []*CardInstance{p.Board.Active}
		}
	}
	return nil
}

func (e *Engine) findInZone(state *GameState, player int, zone stack.Zone, id string) *CardInstance {
	for _, card := range e.zoneCards(state, player, zone) {
		if card.ID == id {
			return card
		}
	}
	return nil
}

func (e *Engine) takeFromZone(state *GameState, player int, zone stack.Zone, id string) *CardInstance {
	p := state.Player(player)
	switch zone {
	case stack.ZoneDeck:
		return p.Deck.TakeByID(id)
	case stack.ZoneHand:
		return p.Hand.TakeByID(id)
	case stack.ZoneDiscard:
		return p.Discard.TakeByID(id)
	case stack.ZonePrizes:
		return p.Prizes.TakeByID(id)
	}
	return nil
}
