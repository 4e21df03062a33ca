package game

import (
	"fmt"
)

// ActionType enumerates every action kind a player can take.
type ActionType int

const (
	ActionPlaceActive ActionType = iota
	ActionPlaceBench
	ActionRevealMulligan
	ActionMulliganDraw
	ActionFinishSetup
	ActionPlayBasic
	ActionEvolve
	ActionAttachEnergy
	ActionPlayItem
	ActionPlaySupporter
	ActionPlayStadium
	ActionAttachTool
	ActionUseAbility
	ActionRetreat
	ActionAttack
	ActionEndTurn
	ActionPromoteActive
	ActionDiscardBench
	ActionSelectCard
	ActionConfirmSelection
)

var actionTypeNames = map[ActionType]string{
	ActionPlaceActive:      "PLACE_ACTIVE",
	ActionPlaceBench:       "PLACE_BENCH",
	ActionRevealMulligan:   "REVEAL_MULLIGAN",
	ActionMulliganDraw:     "MULLIGAN_DRAW",
	ActionFinishSetup:      "FINISH_SETUP",
	ActionPlayBasic:        "PLAY_BASIC",
	ActionEvolve:           "EVOLVE",
	ActionAttachEnergy:     "ATTACH_ENERGY",
	ActionPlayItem:         "PLAY_ITEM",
	ActionPlaySupporter:    "PLAY_SUPPORTER",
	ActionPlayStadium:      "PLAY_STADIUM",
	ActionAttachTool:       "ATTACH_TOOL",
	ActionUseAbility:       "USE_ABILITY",
	ActionRetreat:          "RETREAT",
	ActionAttack:           "ATTACK",
	ActionEndTurn:          "END_TURN",
	ActionPromoteActive:    "PROMOTE_ACTIVE",
	ActionDiscardBench:     "DISCARD_BENCH",
	ActionSelectCard:       "SELECT_CARD",
	ActionConfirmSelection: "CONFIRM_SELECTION",
}

func (t ActionType) String() string {
	if name, ok := actionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(t))
}

// ParseActionType decodes the wire name of an action type.
func ParseActionType(name string) (ActionType, bool) {
	for t, n := range actionTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// TargetKind tags a SearchTarget variant.
type TargetKind int

const (
	// TargetNone means the action carries no search target.
	TargetNone TargetKind = iota
	// TargetKnown references an actual card instance id.
	TargetKnown
	// TargetBelieved references a card by name that the selecting player
	// believes is in a hidden zone. Resolved against the real zone on
	// application; resolution failure means the card was prized and is
	// not an error.
	TargetBelieved
)

// SearchTarget identifies what a SELECT_CARD action points at: a known
// instance or a believed card name.
type SearchTarget struct {
	Kind     TargetKind
	CardID   string
	CardName string
}

// KnownTarget builds a target for an actual card instance.
func KnownTarget(cardID string) SearchTarget {
	return SearchTarget{Kind: TargetKnown, CardID: cardID}
}

// BelievedTarget builds a target for a card the player believes exists in
// a hidden zone.
func BelievedTarget(name string) SearchTarget {
	return SearchTarget{Kind: TargetBelieved, CardName: name}
}

func (t SearchTarget) IsZero() bool { return t.Kind == TargetNone }

func (t SearchTarget) String() string {
	switch t.Kind {
	case TargetKnown:
		return t.CardID
	case TargetBelieved:
		return "believed " + t.CardName
	default:
		return ""
	}
}

// Action is one legal move. Type selects the kind; only the fields that
// kind needs are set.
type Action struct {
	Type   ActionType
	Player int

	CardID      string // the card being played/moved/used
	TargetID    string // the instance being targeted (evolution base, attach target, bench slot)
	AttackName  string
	AbilityName string
	Target      SearchTarget // SELECT_CARD only

	Label string // human-readable description
}

func (a Action) String() string {
	if a.Label != "" {
		return a.Label
	}
	return a.Type.String()
}

// Key returns a stable identity for deduplication and replay matching.
func (a Action) Key() string {
	return fmt.Sprintf("%s|%d|%s|%s|%s|%s|%s",
		a.Type, a.Player, a.CardID, a.TargetID, a.AttackName, a.AbilityName, a.Target)
}

func placeActive(player int, cardID string) Action {
	return Action{Type: ActionPlaceActive, Player: player, CardID: cardID}
}

func placeBench(player int, cardID string) Action {
	return Action{Type: ActionPlaceBench, Player: player, CardID: cardID}
}

func playBasic(player int, cardID string) Action {
	return Action{Type: ActionPlayBasic, Player: player, CardID: cardID}
}

func evolve(player int, cardID, targetID string) Action {
	return Action{Type: ActionEvolve, Player: player, CardID: cardID, TargetID: targetID}
}

func attachEnergy(player int, cardID, targetID string) Action {
	return Action{Type: ActionAttachEnergy, Player: player, CardID: cardID, TargetID: targetID}
}

func attack(player int, cardID, attackName string) Action {
	return Action{Type: ActionAttack, Player: player, CardID: cardID, AttackName: attackName}
}

func useAbility(player int, cardID, abilityName string) Action {
	return Action{Type: ActionUseAbility, Player: player, CardID: cardID, AbilityName: abilityName}
}

func retreat(player int, activeID, benchID string) Action {
	return Action{Type: ActionRetreat, Player: player, CardID: activeID, TargetID: benchID}
}

func endTurn(player int) Action {
	return Action{Type: ActionEndTurn, Player: player}
}

func promoteActive(player int, cardID string) Action {
	return Action{Type: ActionPromoteActive, Player: player, CardID: cardID}
}

func discardBench(player int, cardID string) Action {
	return Action{Type: ActionDiscardBench, Player: player, CardID: cardID}
}

// SelectCardAction builds a stack selection action for a known or
// believed target.
func SelectCardAction(player int, target SearchTarget) Action {
	return Action{Type: ActionSelectCard, Player: player, Target: target}
}

// ConfirmSelectionAction builds a stack confirmation action.
func ConfirmSelectionAction(player int) Action {
	return Action{Type: ActionConfirmSelection, Player: player}
}
