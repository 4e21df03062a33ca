package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

func playNestBall(t *testing.T, e *Engine, state *GameState) {
	t.Helper()
	ball := NewCardInstance("nest-1", "fix-nest-ball", 0)
	state.Players[0].Hand.Add(ball)
	require.NoError(t, e.StepInPlace(state, Action{Type: ActionPlayItem, Player: 0, CardID: ball.ID}))
	require.True(t, state.HasPendingResolution())
}

func TestStackSuspendsNormalActions(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	playNestBall(t, e, state)

	for _, a := range e.LegalActions(state) {
		switch a.Type {
		case ActionSelectCard, ActionConfirmSelection:
		default:
			t.Fatalf("unexpected action %s while stack pending", a.Type)
		}
	}
}

func TestDeckSearchOffersBelievedTargets(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	playNestBall(t, e, state)

	actions := e.LegalActions(state)

	// Charmander is visible in play, so only Pikachu survives the census
	// subtraction. Failing to find is always on the table.
	require.Equal(t, 1, countActions(actions, ActionSelectCard))
	require.Equal(t, 1, countActions(actions, ActionConfirmSelection))

	sel, _ := findAction(actions, ActionSelectCard)
	assert.Equal(t, TargetBelieved, sel.Target.Kind)
	assert.Equal(t, "Pikachu", sel.Target.CardName)
}

func TestDeckSearchFindAndBench(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	playNestBall(t, e, state)

	sel, ok := findAction(e.LegalActions(state), ActionSelectCard)
	require.True(t, ok)
	require.NoError(t, e.StepInPlace(state, sel))

	// Exact count reached: the step completes without a confirm.
	assert.False(t, state.HasPendingResolution())

	p := state.Players[0]
	require.Equal(t, 1, p.Board.BenchCount())
	def := e.Def(p.Board.Bench[0])
	require.NotNil(t, def)
	assert.Equal(t, "Pikachu", def.Name)
	assert.True(t, p.HasSearchedDeck)
}

func TestDeckSearchBelievedTargetPrized(t *testing.T) {
	e := testEngine(5)
	state := testState(e)

	// Move the only Pikachu out of the deck; the belief census cannot
	// know, so the search still offers it.
	p := state.Players[0]
	var pikachu *CardInstance
	for _, c := range p.Deck.Cards {
		if c.CardID == "fix-pikachu" {
			pikachu = c
			break
		}
	}
	require.NotNil(t, pikachu)
	p.Prizes.Add(p.Deck.TakeByID(pikachu.ID))

	playNestBall(t, e, state)
	sel, ok := findAction(e.LegalActions(state), ActionSelectCard)
	require.True(t, ok)
	require.Equal(t, "Pikachu", sel.Target.CardName)

	// Not an error: the copy turns out to be prized.
	require.NoError(t, e.StepInPlace(state, sel))
	require.True(t, state.HasPendingResolution())

	// The failed name is not offered again.
	actions := e.LegalActions(state)
	assert.Zero(t, countActions(actions, ActionSelectCard))
	require.Equal(t, 1, countActions(actions, ActionConfirmSelection))

	confirm, _ := findAction(actions, ActionConfirmSelection)
	require.NoError(t, e.StepInPlace(state, confirm))
	assert.False(t, state.HasPendingResolution())
	assert.Zero(t, p.Board.BenchCount())
}

func TestDeckSearchPerfectKnowledgeAfterSearch(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	state.Players[0].HasSearchedDeck = true

	playNestBall(t, e, state)
	actions := e.LegalActions(state)

	sel, ok := findAction(actions, ActionSelectCard)
	require.True(t, ok)
	assert.Equal(t, TargetKnown, sel.Target.Kind, "a searched deck is selected by real instance")
}

func TestPublicZoneSelectionBlocksEarlyConfirm(t *testing.T) {
	e := testEngine(5)
	state := testState(e)

	step := stack.NewSelectFromZone(0, stack.ZoneHand, stack.PurposeDiscardCost, 2, 2, nil)
	state.PushStep(step)

	actions := e.LegalActions(state)
	assert.NotZero(t, countActions(actions, ActionSelectCard))
	assert.Zero(t, countActions(actions, ActionConfirmSelection),
		"a public zone selection below minimum cannot be confirmed while picks remain")
}

func TestDiscardCostSelection(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	p := state.Players[0]
	handBefore := p.Hand.Len()

	step := stack.NewSelectFromZone(0, stack.ZoneHand, stack.PurposeDiscardCost, 2, 2, nil)
	state.PushStep(step)

	for i := 0; i < 2; i++ {
		sel, ok := findAction(e.LegalActions(state), ActionSelectCard)
		require.True(t, ok)
		require.NoError(t, e.StepInPlace(state, sel))
	}

	assert.False(t, state.HasPendingResolution())
	assert.Equal(t, handBefore-2, p.Hand.Len())
	assert.Equal(t, 2, p.Discard.Len())
}

func TestAttachEnergyChain(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	p := state.Players[0]

	// An effect picked an energy in hand; the chain continues with the
	// target choice and ends with the attachment.
	step := stack.NewSelectFromZone(0, stack.ZoneHand, stack.PurposeEnergyToAttach, 1, 1,
		stack.Filter{"supertype": "Energy"})
	step.OnComplete = stack.CallbackAttachEnergySelectTarget
	state.PushStep(step)

	sel, ok := findAction(e.LegalActions(state), ActionSelectCard)
	require.True(t, ok)
	require.NoError(t, e.StepInPlace(state, sel))

	require.True(t, state.HasPendingResolution())
	top := state.TopStep()
	require.Equal(t, stack.StepAttachToTarget, top.Type)
	require.Equal(t, []string{p.Board.Active.ID}, top.ValidTargetIDs)

	targetSel, ok := findAction(e.LegalActions(state), ActionSelectCard)
	require.True(t, ok)
	require.NoError(t, e.StepInPlace(state, targetSel))

	assert.False(t, state.HasPendingResolution())
	assert.Len(t, p.Board.Active.AttachedEnergy, 1)
}

func TestForcedEvolveStepAutoResolves(t *testing.T) {
	e := testEngine(5)
	state := testState(e)
	p := state.Players[0]

	evo := NewCardInstance("evo-f", "fix-charmeleon", 0)
	p.Hand.Add(evo)

	step := stack.NewEvolveTarget(0, p.Board.Active.ID, evo.ID)
	step.SkipEvolutionSickness = true
	state.PushStep(step)

	e.drainAutoSteps(state)

	assert.False(t, state.HasPendingResolution())
	evolved := p.Board.Active
	require.NotNil(t, evolved)
	assert.Equal(t, "fix-charmeleon", evolved.CardID)
	assert.False(t, evolved.EvolvedThisTurn, "sickness skipped")
	require.Len(t, evolved.PreviousStages, 1)
}
