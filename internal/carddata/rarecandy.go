package carddata

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// CallbackRareCandyEvolve continues a Rare Candy play after the Stage 2
// has been picked from hand.
const CallbackRareCandyEvolve stack.Callback = "rare_candy_evolve"

var defsByName, defsByID = func() (map[string]*game.CardDef, map[string]*game.CardDef) {
	byName := make(map[string]*game.CardDef)
	byID := make(map[string]*game.CardDef)
	for _, d := range Defs() {
		byName[d.Name] = d
		byID[d.ID] = d
	}
	return byName, byID
}()

// stage2EvolvesFromBasic reports whether the Stage 2 definition sits two
// steps above the named Basic.
func stage2EvolvesFromBasic(stage2 *game.CardDef, basicName string) bool {
	if !stage2.HasSubtype(game.SubtypeStage2) {
		return false
	}
	middle, ok := defsByName[stage2.EvolvesFrom]
	return ok && middle.EvolvesFrom == basicName
}

// rareCandyActions offers one play per eligible Basic in play: there must
// be a matching Stage 2 in hand and the Basic must be allowed to evolve
// this turn.
func rareCandyActions(state *game.GameState, card *game.CardInstance, player int) []game.Action {
	if state.TurnCount == 1 && state.ActivePlayer == state.StartingPlayer {
		return nil
	}
	p := state.Player(player)

	var actions []game.Action
	for _, pokemon := range p.Board.AllPokemon() {
		base, ok := defsByName[pokemonName(state, pokemon)]
		if !ok || !base.IsBasicPokemon() {
			continue
		}
		if pokemon.TurnsInPlay < 1 || pokemon.EvolvedThisTurn {
			continue
		}
		for _, handCard := range p.Hand.Cards {
			def, ok := defsByName[pokemonName(state, handCard)]
			if ok && stage2EvolvesFromBasic(def, base.Name) {
				actions = append(actions, game.Action{
					Type: game.ActionPlayItem, Player: player,
					CardID: card.ID, TargetID: pokemon.ID,
				})
				break
			}
		}
	}
	return actions
}

// rareCandyEffect pushes the Stage 2 pick; anything in hand that cannot
// legally land on the target is excluded up front.
func rareCandyEffect(state *game.GameState, card *game.CardInstance, action game.Action) (*game.EffectResult, error) {
	p := state.Player(action.Player)
	target := p.FindPokemon(action.TargetID)
	if target == nil {
		return &game.EffectResult{}, nil
	}
	baseName := pokemonName(state, target)

	step := stack.NewSelectFromZone(action.Player, stack.ZoneHand, stack.PurposeEvolutionBase, 1, 1,
		stack.Filter{"supertype": "Pokemon", "subtype": "Stage 2"})
	step.SourceCardID = card.CardID
	step.SourceCardName = "Rare Candy"
	step.BasePokemonID = target.ID
	step.OnComplete = CallbackRareCandyEvolve

	for _, handCard := range p.Hand.Cards {
		def, ok := defsByName[pokemonName(state, handCard)]
		if !ok || !stage2EvolvesFromBasic(def, baseName) {
			step.ExcludeCardIDs = append(step.ExcludeCardIDs, handCard.ID)
		}
	}
	return &game.EffectResult{Steps: []*stack.Step{step}}, nil
}

// rareCandyComplete turns the pick into a forced evolution that skips the
// middle stage and the sickness gate.
func rareCandyComplete(state *game.GameState, step *stack.Step) (*game.EffectResult, error) {
	if len(step.SelectedCardIDs) == 0 {
		return nil, nil
	}
	evolve := stack.NewEvolveTarget(step.Player, step.BasePokemonID, step.SelectedCardIDs[0])
	evolve.SkipEvolutionSickness = true
	evolve.SkipStage = true
	return &game.EffectResult{Steps: []*stack.Step{evolve}}, nil
}

// pokemonName resolves a card instance's printed name from the built-in
// pool.
func pokemonName(state *game.GameState, card *game.CardInstance) string {
	if d, ok := defsByID[card.CardID]; ok {
		return d.Name
	}
	return ""
}
