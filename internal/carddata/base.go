// Package carddata ships a small built-in card pool with its play logic,
// enough to run full games without a database: a Charizard line, a
// Pikachu line, basic energies and a handful of staple trainers.
package carddata

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/game/energy"
	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// Defs returns the built-in card definitions.
func Defs() []*game.CardDef {
	return []*game.CardDef{
		{
			ID: "base-charmander", Name: "Charmander",
			Supertype: game.SupertypePokemon, Subtypes: []game.Subtype{game.SubtypeBasic},
			HP: 70, Types: []energy.Type{energy.Fire},
			RetreatCost: 1, Weakness: energy.Water,
			Attacks: []game.AttackDef{
				{Name: "Ember", Cost: energy.Cost{energy.Fire, energy.Colorless}, Damage: 30},
			},
		},
		{
			ID: "base-charmeleon", Name: "Charmeleon",
			Supertype: game.SupertypePokemon, Subtypes: []game.Subtype{game.SubtypeStage1},
			HP: 100, Types: []energy.Type{energy.Fire},
			EvolvesFrom: "Charmander", RetreatCost: 2, Weakness: energy.Water,
			Attacks: []game.AttackDef{
				{Name: "Flame Tail", Cost: energy.Cost{energy.Fire, energy.Fire}, Damage: 60},
			},
		},
		{
			ID: "base-charizard-ex", Name: "Charizard ex",
			Supertype: game.SupertypePokemon,
			Subtypes:  []game.Subtype{game.SubtypeStage2, game.SubtypeEX, game.SubtypeTera},
			HP:        330, Types: []energy.Type{energy.Fire},
			EvolvesFrom: "Charmeleon", RetreatCost: 2, Weakness: energy.Water,
			Attacks: []game.AttackDef{
				{Name: "Brave Wing", Cost: energy.Cost{energy.Fire}, Damage: 60},
				{Name: "Burning Darkness", Cost: energy.Cost{energy.Fire, energy.Fire}, Damage: 180},
			},
		},
		{
			ID: "base-pikachu", Name: "Pikachu",
			Supertype: game.SupertypePokemon, Subtypes: []game.Subtype{game.SubtypeBasic},
			HP: 60, Types: []energy.Type{energy.Lightning},
			RetreatCost: 1, Weakness: energy.Fighting,
			Attacks: []game.AttackDef{
				{Name: "Quick Attack", Cost: energy.Cost{energy.Colorless}, Damage: 10},
				{Name: "Thunderbolt", Cost: energy.Cost{energy.Lightning, energy.Lightning, energy.Colorless}, Damage: 90},
			},
		},
		{
			ID: "base-raichu", Name: "Raichu",
			Supertype: game.SupertypePokemon, Subtypes: []game.Subtype{game.SubtypeStage1},
			HP: 120, Types: []energy.Type{energy.Lightning},
			EvolvesFrom: "Pikachu", RetreatCost: 1, Weakness: energy.Fighting,
			Attacks: []game.AttackDef{
				{Name: "Thunder Shock", Cost: energy.Cost{energy.Lightning, energy.Lightning}, Damage: 100},
			},
		},
		{
			ID: "base-snorlax", Name: "Snorlax",
			Supertype: game.SupertypePokemon, Subtypes: []game.Subtype{game.SubtypeBasic},
			HP: 150, Types: []energy.Type{energy.Colorless},
			RetreatCost: 4, Weakness: energy.Fighting,
			Attacks: []game.AttackDef{
				{Name: "Body Slam", Cost: energy.Cost{energy.Colorless, energy.Colorless, energy.Colorless}, Damage: 80},
			},
		},

		{
			ID: "base-fire-energy", Name: "Fire Energy",
			Supertype: game.SupertypeEnergy, Subtypes: []game.Subtype{game.SubtypeBasicEnergy},
			EnergyType: energy.Fire, BasicEnergy: true,
		},
		{
			ID: "base-lightning-energy", Name: "Lightning Energy",
			Supertype: game.SupertypeEnergy, Subtypes: []game.Subtype{game.SubtypeBasicEnergy},
			EnergyType: energy.Lightning, BasicEnergy: true,
		},
		{
			ID: "base-double-turbo", Name: "Double Turbo Energy",
			Supertype: game.SupertypeEnergy, Subtypes: []game.Subtype{game.SubtypeSpecialEnergy},
			Provides: []energy.Type{energy.Colorless, energy.Colorless},
		},

		{
			ID: "base-nest-ball", Name: "Nest Ball",
			Supertype: game.SupertypeTrainer, Subtypes: []game.Subtype{game.SubtypeItem},
		},
		{
			ID: "base-ultra-ball", Name: "Ultra Ball",
			Supertype: game.SupertypeTrainer, Subtypes: []game.Subtype{game.SubtypeItem},
		},
		{
			ID: "base-rare-candy", Name: "Rare Candy",
			Supertype: game.SupertypeTrainer, Subtypes: []game.Subtype{game.SubtypeItem},
		},
		{
			ID: "base-research", Name: "Professor's Research",
			Supertype: game.SupertypeTrainer, Subtypes: []game.Subtype{game.SubtypeSupporter},
		},
		{
			ID: "base-area-zero", Name: "Area Zero Underdepths",
			Supertype: game.SupertypeTrainer, Subtypes: []game.Subtype{game.SubtypeStadium},
		},
		{
			ID: "base-float-stone", Name: "Float Stone",
			Supertype: game.SupertypeTrainer, Subtypes: []game.Subtype{game.SubtypeTool},
		},
	}
}

// Registry builds a card registry over the built-in pool.
func Registry() *game.MapCardRegistry {
	return game.NewCardRegistry(Defs()...)
}

// Logic builds the logic registry for the built-in pool.
func Logic() *game.LogicRegistry {
	logic := game.NewLogicRegistry()

	// Nest Ball: search the deck for a Basic Pokemon and bench it.
	logic.Register("base-nest-ball", "", &game.CardLogic{
		Category: game.LogicTrainer,
		Effect: func(state *game.GameState, card *game.CardInstance, action game.Action) (*game.EffectResult, error) {
			step := stack.NewSearchDeck(action.Player, stack.PurposeSearchTarget, 1,
				stack.Filter{"supertype": "Pokemon", "subtype": "Basic"}, stack.ZoneBench)
			step.SourceCardID = card.CardID
			step.SourceCardName = "Nest Ball"
			return &game.EffectResult{Steps: []*stack.Step{step}}, nil
		},
	})

	// Ultra Ball: discard 2, then search for any Pokemon. The discard
	// step must resolve first, so it is listed last (LIFO).
	logic.Register("base-ultra-ball", "", &game.CardLogic{
		Category: game.LogicTrainer,
		Effect: func(state *game.GameState, card *game.CardInstance, action game.Action) (*game.EffectResult, error) {
			if state.Player(action.Player).Hand.Len() < 2 {
				return &game.EffectResult{}, nil
			}
			search := stack.NewSearchDeck(action.Player, stack.PurposeSearchTarget, 1,
				stack.Filter{"supertype": "Pokemon"}, stack.ZoneHand)
			search.SourceCardID = card.CardID
			discard := stack.NewSelectFromZone(action.Player, stack.ZoneHand, stack.PurposeDiscardCost, 2, 2, nil)
			discard.SourceCardID = card.CardID
			return &game.EffectResult{Steps: []*stack.Step{search, discard}}, nil
		},
	})

	// Professor's Research: discard your hand, draw 7.
	logic.Register("base-research", "", &game.CardLogic{
		Category: game.LogicTrainer,
		Effect: func(state *game.GameState, card *game.CardInstance, action game.Action) (*game.EffectResult, error) {
			p := state.Player(action.Player)
			for !p.Hand.Empty() {
				p.Discard.Add(p.Hand.DrawTop())
			}
			for i := 0; i < 7 && !p.Deck.Empty(); i++ {
				p.Hand.Add(p.Deck.DrawTop())
			}
			return &game.EffectResult{}, nil
		},
	})

	// Rare Candy: evolve a Basic straight into its Stage 2, skipping the
	// middle stage and the sickness check the skip would otherwise trip.
	logic.Register("base-rare-candy", "", &game.CardLogic{
		Category:  game.LogicTrainer,
		Generator: rareCandyActions,
		Effect:    rareCandyEffect,
	})
	logic.RegisterCallback(CallbackRareCandyEvolve, rareCandyComplete)

	// Float Stone: the holder retreats for free.
	logic.Register("base-float-stone", "", &game.CardLogic{
		Category:     game.LogicModifier,
		ModifierKind: game.ModifierRetreatCost,
		Modifier: func(state *game.GameState, kind string, value int) int {
			return 0
		},
	})

	return logic
}

// DemoDecks returns two ready-to-play 60 card decklists over the built-in
// pool.
func DemoDecks() [2]game.DeckList {
	charizard := game.DeckList{}
	charizard = appendCopies(charizard, "base-charmander", 4)
	charizard = appendCopies(charizard, "base-charmeleon", 3)
	charizard = appendCopies(charizard, "base-charizard-ex", 3)
	charizard = appendCopies(charizard, "base-snorlax", 2)
	charizard = appendCopies(charizard, "base-nest-ball", 4)
	charizard = appendCopies(charizard, "base-ultra-ball", 4)
	charizard = appendCopies(charizard, "base-rare-candy", 4)
	charizard = appendCopies(charizard, "base-research", 4)
	charizard = appendCopies(charizard, "base-area-zero", 2)
	charizard = appendCopies(charizard, "base-float-stone", 2)
	charizard = appendCopies(charizard, "base-double-turbo", 4)
	charizard = appendCopies(charizard, "base-fire-energy", 24)

	pikachu := game.DeckList{}
	pikachu = appendCopies(pikachu, "base-pikachu", 4)
	pikachu = appendCopies(pikachu, "base-raichu", 4)
	pikachu = appendCopies(pikachu, "base-snorlax", 3)
	pikachu = appendCopies(pikachu, "base-nest-ball", 4)
	pikachu = appendCopies(pikachu, "base-ultra-ball", 4)
	pikachu = appendCopies(pikachu, "base-research", 4)
	pikachu = appendCopies(pikachu, "base-float-stone", 3)
	pikachu = appendCopies(pikachu, "base-double-turbo", 4)
	pikachu = appendCopies(pikachu, "base-lightning-energy", 30)

	return [2]game.DeckList{charizard, pikachu}
}

func appendCopies(deck game.DeckList, cardID string, n int) game.DeckList {
	for i := 0; i < n; i++ {
		deck = append(deck, cardID)
	}
	return deck
}
