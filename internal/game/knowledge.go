package game

import (
	"sort"

	"github.com/ptcgsim/ptcg-server-go/internal/game/energy"
	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// DeckSearchCandidates returns the card names the player believes may
// still be in their deck: the initial census minus every copy visible in
// the hand, discard or on the board. Prized copies are invisible, so a
// believed candidate can fail to resolve; that is the searcher finding
// out the hard way. Names whose definitions cannot be checked against
// the filter are included optimistically.
func (e *Engine) DeckSearchCandidates(state *GameState, playerIdx int, filter stack.Filter) []string {
	player := state.Player(playerIdx)

	visible := make(map[string]int)
	for _, card := range player.VisibleCards() {
		if def := e.Def(card); def != nil {
			visible[def.Name]++
		}
	}

	var names []string
	for name, total := range player.InitialDeckCounts {
		if total-visible[name] <= 0 {
			continue
		}
		if def := e.sampleDef(player, name); def != nil && !e.cardMatchesFilter(def, filter) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sampleDef finds any definition carried by one of the player's copies of
// a named card.
func (e *Engine) sampleDef(player *PlayerState, name string) *CardDef {
	for _, card := range player.AllCards() {
		if def := e.Def(card); def != nil && def.Name == name {
			return def
		}
	}
	return nil
}

// cardMatchesFilter evaluates a step filter against a definition. An
// empty filter matches everything; unknown keys are ignored.
func (e *Engine) cardMatchesFilter(def *CardDef, filter stack.Filter) bool {
	for key, want := range filter {
		switch key {
		case "supertype":
			if string(def.Supertype) != want {
				return false
			}
		case "subtype":
			if !def.HasSubtype(Subtype(want)) {
				return false
			}
		case "name":
			if def.Name != want {
				return false
			}
		case "evolves_from":
			if def.EvolvesFrom != want {
				return false
			}
		case "max_hp":
			limit, ok := atoiParam(want)
			if !ok || def.HP > limit {
				return false
			}
		case "pokemon_type":
			if !def.HasType(energy.Type(want)) {
				return false
			}
		case "energy_type":
			if !def.IsEnergy() {
				return false
			}
			found := false
			for _, t := range def.EnergyValues() {
				if string(t) == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "is_basic":
			isBasic := def.IsBasicPokemon() || def.HasSubtype(SubtypeBasicEnergy)
			if (want == "true") != isBasic {
				return false
			}
		}
	}
	return true
}
