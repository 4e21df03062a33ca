package effects

// TickAndExpire advances turn counters on every effect and removes the
// ones that have expired at the current cleanup boundary. It returns the
// surviving effects in their original order.
func TickAndExpire(list []*Effect, turn, activePlayer int) []*Effect {
	if len(list) == 0 {
		return list
	}

	kept := list[:0]
	for _, e := range list {
		e.TurnsElapsed++
		if e.IsExpired(turn, activePlayer, true) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// RemoveBySource removes every effect created by the given source card,
// for when a stadium or tool leaves play.
func RemoveBySource(list []*Effect, sourceCardID string) []*Effect {
	kept := list[:0]
	for _, e := range list {
		if e.SourceCardID == sourceCardID {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// BlocksAction reports whether any effect prevents the given action kind
// for the player, optionally narrowed to one card instance. Scope rules:
// "all" blocks both players, "self" only the effect owner, "opponent"
// only the owner's opponent.
func BlocksAction(list []*Effect, kind string, player int, cardID string) bool {
	for _, e := range list {
		if e.Params[ParamPrevents] != kind {
			continue
		}
		if !scopeCovers(e, player) {
			continue
		}
		if target := e.Params[ParamTargetCardID]; target != "" && target != cardID {
			continue
		}
		return true
	}
	return false
}

// AbilitiesLocked reports whether the player's activatable abilities are
// blocked by an opposing passive lock.
func AbilitiesLocked(list []*Effect, player int) bool {
	for _, e := range list {
		if e.Params[ParamBlocksAbilities] != "true" {
			continue
		}
		if e.OwnerPlayer != player {
			return true
		}
	}
	return false
}

func scopeCovers(e *Effect, player int) bool {
	switch e.Params[ParamScope] {
	case ScopeSelf:
		return e.OwnerPlayer == player
	case ScopeOpponent:
		return e.OwnerPlayer != player
	case ScopeAll, "":
		return e.AppliesToPlayer(player)
	default:
		return false
	}
}
