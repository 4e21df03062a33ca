package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

func TestDeckKnowledgeCensus(t *testing.T) {
	e := testEngine(13)
	state := testState(e)
	p := state.Players[0]

	assert.Equal(t, 12, p.InitialDeckCounts["Fire Energy"])
	assert.Equal(t, 6, p.InitialDeckCounts["Water Energy"])
	assert.Equal(t, 1, p.InitialDeckCounts["Charmander"])
	assert.Equal(t, 1, p.InitialDeckCounts["Pikachu"])

	assert.Equal(t, e.DefByID("fix-pikachu").FunctionalID(), p.FunctionalID("fix-pikachu"))
	assert.Empty(t, p.FunctionalID("not-in-pool"))
}

func TestDeckSearchCandidatesSubtractVisible(t *testing.T) {
	e := testEngine(13)
	state := testState(e)
	p := state.Players[0]

	t.Run("visible copies excluded", func(t *testing.T) {
		names := e.DeckSearchCandidates(state, 0, stack.Filter{"supertype": "Pokemon"})
		assert.NotContains(t, names, "Charmander", "the active copy is visible")
		assert.Contains(t, names, "Pikachu")
		assert.Contains(t, names, "Charmeleon")
	})

	t.Run("prized copies stay candidates", func(t *testing.T) {
		var pikachu *CardInstance
		for _, c := range p.Deck.Cards {
			if c.CardID == "fix-pikachu" {
				pikachu = c
			}
		}
		require.NotNil(t, pikachu)
		p.Prizes.Add(p.Deck.TakeByID(pikachu.ID))

		names := e.DeckSearchCandidates(state, 0, stack.Filter{"supertype": "Pokemon"})
		assert.Contains(t, names, "Pikachu", "belief cannot see prizes")
	})

	t.Run("drawn copies excluded", func(t *testing.T) {
		var meleon *CardInstance
		for _, c := range p.Deck.Cards {
			if c.CardID == "fix-charmeleon" {
				meleon = c
			}
		}
		require.NotNil(t, meleon)
		p.Hand.Add(p.Deck.TakeByID(meleon.ID))

		names := e.DeckSearchCandidates(state, 0, stack.Filter{"supertype": "Pokemon"})
		assert.NotContains(t, names, "Charmeleon")
	})
}

func TestDeckSearchCandidatesSorted(t *testing.T) {
	e := testEngine(13)
	state := testState(e)

	names := e.DeckSearchCandidates(state, 0, nil)
	assert.IsIncreasing(t, names)
}

func TestCardMatchesFilter(t *testing.T) {
	e := testEngine(13)
	pikachu := e.DefByID("fix-pikachu")
	meleon := e.DefByID("fix-charmeleon")
	fire := e.DefByID("fix-fire-energy")

	cases := []struct {
		name   string
		def    *CardDef
		filter stack.Filter
		want   bool
	}{
		{"empty filter matches", pikachu, nil, true},
		{"supertype match", pikachu, stack.Filter{"supertype": "Pokemon"}, true},
		{"supertype mismatch", fire, stack.Filter{"supertype": "Pokemon"}, false},
		{"basic subtype", pikachu, stack.Filter{"subtype": "Basic"}, true},
		{"stage1 not basic", meleon, stack.Filter{"subtype": "Basic"}, false},
		{"name", pikachu, stack.Filter{"name": "Pikachu"}, true},
		{"evolves_from", meleon, stack.Filter{"evolves_from": "Charmander"}, true},
		{"max_hp pass", pikachu, stack.Filter{"max_hp": "90"}, true},
		{"max_hp fail", meleon, stack.Filter{"max_hp": "90"}, false},
		{"pokemon_type", pikachu, stack.Filter{"pokemon_type": "Lightning"}, true},
		{"energy_type", fire, stack.Filter{"energy_type": "Fire"}, true},
		{"is_basic energy", fire, stack.Filter{"is_basic": "true"}, true},
		{"combined", meleon, stack.Filter{"supertype": "Pokemon", "evolves_from": "Charmander", "max_hp": "120"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, e.cardMatchesFilter(tc.def, tc.filter))
		})
	}
}
