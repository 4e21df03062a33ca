// Package stack defines the resolution steps that represent in-progress
// multi-step card effects. While any step is pending, normal action
// generation is suspended and only selection actions scoped to the top
// step are legal.
package stack

import (
	"fmt"
)

// StepType tags the resolution step variant.
type StepType int

const (
	StepSelectFromZone StepType = iota
	StepSearchDeck
	StepAttachToTarget
	StepEvolveTarget
)

var stepTypeNames = map[StepType]string{
	StepSelectFromZone: "SELECT_FROM_ZONE",
	StepSearchDeck:     "SEARCH_DECK",
	StepAttachToTarget: "ATTACH_TO_TARGET",
	StepEvolveTarget:   "EVOLVE_TARGET",
}

func (t StepType) String() string {
	if name, ok := stepTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(t))
}

// Zone identifies a card location a step can select from or move cards to.
type Zone string

const (
	ZoneDeck    Zone = "DECK"
	ZoneHand    Zone = "HAND"
	ZoneDiscard Zone = "DISCARD"
	ZonePrizes  Zone = "PRIZES"
	ZoneBench   Zone = "BENCH"
	ZoneActive  Zone = "ACTIVE"
)

// Hidden reports whether the zone is hidden from its owner. Searches of
// hidden zones always permit fail-to-find; searches of public zones never
// do when valid targets exist.
func (z Zone) Hidden() bool {
	return z == ZoneDeck || z == ZonePrizes
}

// Purpose describes why a selection is being made, for effect callbacks
// and display.
type Purpose string

const (
	PurposeDiscardCost    Purpose = "DISCARD_COST"
	PurposeSearchTarget   Purpose = "SEARCH_TARGET"
	PurposeEvolutionBase  Purpose = "EVOLUTION_BASE"
	PurposeEnergyToAttach Purpose = "ENERGY_TO_ATTACH"
	PurposeAttachTarget   Purpose = "ATTACH_TARGET"
	PurposeBenchDiscard   Purpose = "BENCH_DISCARD"
	PurposeGenericChoice  Purpose = "GENERIC_CHOICE"
)

// Callback names a completion continuation resolved by the engine when the
// step finishes. Effects outside the engine register their own under their
// card ids.
type Callback string

const (
	CallbackNone                     Callback = ""
	CallbackAttachEnergySelectTarget Callback = "attach_energy_select_target"
	CallbackAttachEnergyComplete     Callback = "attach_energy_complete"
	CallbackRetreatDiscardComplete   Callback = "retreat_discard_complete"
	CallbackEvolveComplete           Callback = "evolve_complete"
)

// Filter restricts which cards a step may select. Keys are open-ended
// criteria (supertype, subtype, name, evolves_from, max_hp, energy_type,
// is_basic) evaluated against card definitions.
type Filter map[string]string

// Copy returns an independent copy of the filter.
func (f Filter) Copy() Filter {
	if f == nil {
		return nil
	}
	out := make(Filter, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Step is one pending resolution step. Type selects the variant; the
// variant-specific fields below it are meaningful only for that variant.
type Step struct {
	Type           StepType
	SourceCardID   string
	SourceCardName string
	Player         int
	Purpose        Purpose
	Complete       bool
	OnComplete     Callback

	// SELECT_FROM_ZONE and SEARCH_DECK
	Zone            Zone
	Count           int // maximum number of cards to select
	MinCount        int // minimum required before confirming (0 = may fail to find)
	ExactCount      bool
	Filter          Filter
	ExcludeCardIDs  []string
	SelectedCardIDs []string

	// SEARCH_DECK
	Destination  Zone
	ShuffleAfter bool
	RevealCards  bool
	// Believed card names already searched for and not found (prized).
	FailedTargets []string

	// ATTACH_TO_TARGET
	CardToAttachID   string
	ValidTargetIDs   []string
	SelectedTargetID string

	// EVOLVE_TARGET
	BasePokemonID         string
	EvolutionCardID       string
	SkipEvolutionSickness bool
	SkipStage             bool
}

// NewSelectFromZone builds a selection step over a zone.
func NewSelectFromZone(player int, zone Zone, purpose Purpose, count, minCount int, filter Filter) *Step {
	return &Step{
		Type:     StepSelectFromZone,
		Player:   player,
		Purpose:  purpose,
		Zone:     zone,
		Count:    count,
		MinCount: minCount,
		Filter:   filter,
	}
}

// NewSearchDeck builds a deck search step. Deck searches shuffle after
// completion unless explicitly suppressed, and being hidden-zone searches
// they always allow selecting fewer than the maximum, including none.
func NewSearchDeck(player int, purpose Purpose, count int, filter Filter, destination Zone) *Step {
	return &Step{
		Type:         StepSearchDeck,
		Player:       player,
		Purpose:      purpose,
		Zone:         ZoneDeck,
		Count:        count,
		MinCount:     0,
		Filter:       filter,
		Destination:  destination,
		ShuffleAfter: true,
	}
}

// NewAttachToTarget builds a step that attaches a chosen card to one of
// the valid targets.
func NewAttachToTarget(player int, cardID string, targets []string) *Step {
	return &Step{
		Type:           StepAttachToTarget,
		Player:         player,
		Purpose:        PurposeAttachTarget,
		CardToAttachID: cardID,
		ValidTargetIDs: targets,
	}
}

// NewEvolveTarget builds a forced-evolution step (used by effects that
// evolve directly, optionally skipping sickness or a stage).
func NewEvolveTarget(player int, baseID, evolutionID string) *Step {
	return &Step{
		Type:            StepEvolveTarget,
		Player:          player,
		Purpose:         PurposeEvolutionBase,
		BasePokemonID:   baseID,
		EvolutionCardID: evolutionID,
	}
}

// SelectionFull reports whether the step has reached its maximum count.
func (s *Step) SelectionFull() bool {
	switch s.Type {
	case StepSelectFromZone, StepSearchDeck:
		return len(s.SelectedCardIDs) >= s.Count
	case StepAttachToTarget:
		return s.SelectedTargetID != ""
	default:
		return true
	}
}

// CanConfirm reports whether the player may explicitly confirm the
// selection as-is.
func (s *Step) CanConfirm() bool {
	switch s.Type {
	case StepSelectFromZone, StepSearchDeck:
		return len(s.SelectedCardIDs) >= s.MinCount
	default:
		return false
	}
}

// IsSelected reports whether the card id is already in the selection.
func (s *Step) IsSelected(cardID string) bool {
	for _, id := range s.SelectedCardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the card id is excluded from selection.
func (s *Step) IsExcluded(cardID string) bool {
	for _, id := range s.ExcludeCardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the step.
func (s *Step) Clone() *Step {
	out := *s
	out.Filter = s.Filter.Copy()
	out.ExcludeCardIDs = append([]string(nil), s.ExcludeCardIDs...)
	out.SelectedCardIDs = append([]string(nil), s.SelectedCardIDs...)
	out.ValidTargetIDs = append([]string(nil), s.ValidTargetIDs...)
	out.FailedTargets = append([]string(nil), s.FailedTargets...)
	return &out
}
