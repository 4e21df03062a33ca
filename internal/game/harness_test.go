package game

import (
	"strconv"

	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
	"github.com/ptcgsim/ptcg-server-go/internal/game/energy"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// Fixture card pool used across the engine tests.
func testDefs() []*CardDef {
	return []*CardDef{
		{
			ID: "fix-charmander", Name: "Charmander",
			Supertype: SupertypePokemon, Subtypes: []Subtype{SubtypeBasic},
			HP: 70, Types: []energy.Type{energy.Fire},
			RetreatCost: 1, Weakness: energy.Water,
			Attacks: []AttackDef{
				{Name: "Ember", Cost: energy.Cost{energy.Fire, energy.Colorless}, Damage: 30},
			},
		},
		{
			ID: "fix-charmeleon", Name: "Charmeleon",
			Supertype: SupertypePokemon, Subtypes: []Subtype{SubtypeStage1},
			HP: 100, Types: []energy.Type{energy.Fire},
			EvolvesFrom: "Charmander", RetreatCost: 2, Weakness: energy.Water,
			Attacks: []AttackDef{
				{Name: "Flame Tail", Cost: energy.Cost{energy.Fire, energy.Fire}, Damage: 60},
			},
		},
		{
			ID: "fix-charizard-ex", Name: "Charizard ex",
			Supertype: SupertypePokemon, Subtypes: []Subtype{SubtypeStage2, SubtypeEX},
			HP: 330, Types: []energy.Type{energy.Fire},
			EvolvesFrom: "Charmeleon", RetreatCost: 2, Weakness: energy.Water,
			Attacks: []AttackDef{
				{Name: "Burning Darkness", Cost: energy.Cost{energy.Fire, energy.Fire}, Damage: 180},
			},
		},
		{
			ID: "fix-squirtle", Name: "Squirtle",
			Supertype: SupertypePokemon, Subtypes: []Subtype{SubtypeBasic},
			HP: 60, Types: []energy.Type{energy.Water},
			RetreatCost: 1,
			Attacks: []AttackDef{
				{Name: "Water Gun", Cost: energy.Cost{energy.Water}, Damage: 20},
			},
		},
		{
			ID: "fix-pikachu", Name: "Pikachu",
			Supertype: SupertypePokemon, Subtypes: []Subtype{SubtypeBasic},
			HP: 60, Types: []energy.Type{energy.Lightning},
			Attacks: []AttackDef{
				{Name: "Quick Attack", Cost: energy.Cost{energy.Colorless}, Damage: 10},
			},
		},
		{
			ID: "fix-teratops", Name: "Teratops ex",
			Supertype: SupertypePokemon, Subtypes: []Subtype{SubtypeBasic, SubtypeEX, SubtypeTera},
			HP: 230, Types: []energy.Type{energy.Fighting},
			RetreatCost: 2,
			Attacks: []AttackDef{
				{Name: "Land Crush", Cost: energy.Cost{energy.Fighting, energy.Fighting}, Damage: 130},
			},
		},
		{
			ID: "fix-fire-energy", Name: "Fire Energy",
			Supertype: SupertypeEnergy, Subtypes: []Subtype{SubtypeBasicEnergy},
			EnergyType: energy.Fire, BasicEnergy: true,
		},
		{
			ID: "fix-water-energy", Name: "Water Energy",
			Supertype: SupertypeEnergy, Subtypes: []Subtype{SubtypeBasicEnergy},
			EnergyType: energy.Water, BasicEnergy: true,
		},
		{
			ID: "fix-double-turbo", Name: "Double Turbo Energy",
			Supertype: SupertypeEnergy, Subtypes: []Subtype{SubtypeSpecialEnergy},
			Provides: []energy.Type{energy.Colorless, energy.Colorless},
		},
		{
			ID: "fix-nest-ball", Name: "Nest Ball",
			Supertype: SupertypeTrainer, Subtypes: []Subtype{SubtypeItem},
		},
		{
			ID: "fix-research", Name: "Professor's Research",
			Supertype: SupertypeTrainer, Subtypes: []Subtype{SubtypeSupporter},
		},
		{
			ID: "fix-area-zero", Name: "Area Zero Underdepths",
			Supertype: SupertypeTrainer, Subtypes: []Subtype{SubtypeStadium},
		},
		{
			ID: "fix-float-stone", Name: "Float Stone",
			Supertype: SupertypeTrainer, Subtypes: []Subtype{SubtypeTool},
		},
	}
}

func testLogic() *LogicRegistry {
	logic := NewLogicRegistry()

	// Nest Ball: search the deck for a Basic Pokemon and bench it.
	logic.Register("fix-nest-ball", "", &CardLogic{
		Category: LogicTrainer,
		Effect: func(state *GameState, card *CardInstance, action Action) (*EffectResult, error) {
			step := stack.NewSearchDeck(action.Player, stack.PurposeSearchTarget, 1,
				stack.Filter{"supertype": "Pokemon", "subtype": "Basic"}, stack.ZoneBench)
			step.SourceCardID = card.CardID
			return &EffectResult{Steps: []*stack.Step{step}}, nil
		},
	})

	// Float Stone: the holder retreats for free.
	logic.Register("fix-float-stone", "", &CardLogic{
		Category:     LogicModifier,
		ModifierKind: ModifierRetreatCost,
		Modifier: func(state *GameState, kind string, value int) int {
			return 0
		},
	})

	return logic
}

func testEngine(seed int64) *Engine {
	return NewEngine(NewCardRegistry(testDefs()...), testLogic(), nil, seed)
}

// testState builds a minimal mid-game state: both players with an active
// Pokemon, stocked decks and the belief census taken.
func testState(e *Engine) *GameState {
	state := &GameState{
		ID:             "test-game",
		TurnCount:      2,
		ActivePlayer:   0,
		StartingPlayer: 0,
		Phase:          rules.PhaseMain,
		Result:         rules.ResultInProgress,
		WinnerID:       NoWinner,
	}

	serial := 0
	instance := func(owner int, cardID string) *CardInstance {
		serial++
		return NewCardInstance(cardID+"-inst-"+strconv.Itoa(serial), cardID, owner)
	}

	for i := range state.Players {
		p := newPlayerState(i, "player")
		state.Players[i] = p

		if i == 0 {
			p.Board.Active = instance(i, "fix-charmander")
		} else {
			p.Board.Active = instance(i, "fix-squirtle")
		}
		p.Board.Active.TurnsInPlay = 1

		for n := 0; n < 8; n++ {
			p.Deck.Add(instance(i, "fix-fire-energy"))
		}
		p.Deck.Add(instance(i, "fix-charmeleon"))
		p.Deck.Add(instance(i, "fix-pikachu"))
		for n := 0; n < 4; n++ {
			p.Hand.Add(instance(i, "fix-fire-energy"))
		}
		for n := 0; n < 6; n++ {
			p.Prizes.Add(instance(i, "fix-water-energy"))
		}

		e.initializeDeckKnowledge(p)
	}

	e.syncBenchLimits(state)
	return state
}

// newTestPrizeEffect builds a prize-count modifier effect targeted at one
// card, optionally gated on a named condition.
func newTestPrizeEffect(targetID, modifier, condition string) *effects.Effect {
	eff := effects.New("eff-prize", "extra prize", "src-card", effects.SourceAbility, 0)
	eff.TargetCardIDs = []string{targetID}
	eff.Params[effects.ParamPrizeCountMod] = modifier
	if condition != "" {
		eff.Params[effects.ParamCondition] = condition
	}
	return eff
}

// findAction returns the first legal action of the given type, with ok
// reporting presence.
func findAction(actions []Action, t ActionType) (Action, bool) {
	for _, a := range actions {
		if a.Type == t {
			return a, true
		}
	}
	return Action{}, false
}

func countActions(actions []Action, t ActionType) int {
	n := 0
	for _, a := range actions {
		if a.Type == t {
			n++
		}
	}
	return n
}
