package game

import (
	"math/rand"
	"strconv"

	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
	"github.com/ptcgsim/ptcg-server-go/internal/game/energy"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// Permission kinds consulted through CheckGlobalPermission before the
// corresponding actions.
const (
	PermissionPlayItem      = "global_play_item"
	PermissionPlaySupporter = "global_play_supporter"
	PermissionUseAbility    = "global_use_ability"
	PermissionAttack        = "global_attack"
	PermissionBenchDamage   = "global_bench_damage"
	PermissionRetreat       = "global_retreat"
)

// Engine is the rules engine: legal-action enumeration and the step
// function. It holds no game state of its own beyond the RNG stream; the
// card and logic registries are injected and read-only.
type Engine struct {
	cards  CardRegistry
	logic  *LogicRegistry
	logger *zap.Logger
	seed   int64
	rng    *rand.Rand
}

// NewEngine creates an engine. A nil logger is replaced with a no-op
// logger; the seed fixes the RNG stream for reproducible chance nodes.
func NewEngine(cards CardRegistry, logic *LogicRegistry, logger *zap.Logger, seed int64) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if logic == nil {
		logic = NewLogicRegistry()
	}
	return &Engine{
		cards:  cards,
		logic:  logic,
		logger: logger,
		seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Def returns the static definition for a card instance, or nil when the
// registry has no entry (logged once per lookup at debug level).
func (e *Engine) Def(c *CardInstance) *CardDef {
	if c == nil {
		return nil
	}
	return e.DefByID(c.CardID)
}

// DefByID returns the static definition for a card id.
func (e *Engine) DefByID(cardID string) *CardDef {
	def, ok := e.cards.Get(cardID)
	if !ok {
		e.logger.Debug("card definition missing", zap.String("card_id", cardID))
		return nil
	}
	return def
}

// Step applies one action to the state and returns the resulting state.
// The input state is never mutated: a fast clone is taken first and every
// handler works on the clone. Legality violations detected by handlers
// are defensive no-ops (warn + unchanged clone); rule errors like invalid
// evolution surface as *RuleError.
func (e *Engine) Step(state *GameState, action Action) (*GameState, error) {
	next := state.Clone()
	if err := e.StepInPlace(next, action); err != nil {
		return next, err
	}
	return next, nil
}

// StepInPlace applies the action to the given state directly. Callers
// that batch simulations on a private clone use this to skip the extra
// copy.
func (e *Engine) StepInPlace(state *GameState, action Action) error {
	if state.IsGameOver() {
		e.logger.Warn("step on finished game",
			zap.String("game_id", state.ID),
			zap.String("action", action.Type.String()))
		return nil
	}

	if err := e.applyAction(state, action); err != nil {
		return err
	}

	e.drainAutoSteps(state)
	e.checkWinConditions(state)

	// Resolve CLEANUP through DRAW into MAIN atomically so search never
	// observes an action-less phase.
	if state.Phase == rules.PhaseCleanup && !state.HasPendingResolution() {
		e.runCleanup(state)
	}

	state.MoveHistory = append(state.MoveHistory, action)
	return nil
}

// CheckGlobalPermission reports whether the action kind is currently
// allowed for the player (optionally for one specific card). It scans the
// active effects for matching blocks; card logic creates those effects,
// so the engine needs no per-card special cases.
func (e *Engine) CheckGlobalPermission(state *GameState, kind string, player int, cardID string) bool {
	return !effects.BlocksAction(state.ActiveEffects, kind, player, cardID)
}

// MaxBenchSize returns the player's current bench limit: the default 5,
// or 8 while Area Zero Underdepths is in play and the player has a Tera
// Pokemon on their board.
func (e *Engine) MaxBenchSize(state *GameState, player int) int {
	size := DefaultMaxBench
	if state.Stadium == nil {
		return size
	}
	stadiumDef := e.Def(state.Stadium)
	if stadiumDef == nil || stadiumDef.Name != "Area Zero Underdepths" {
		return size
	}
	for _, pk := range state.Players[player].Board.AllPokemon() {
		if def := e.Def(pk); def != nil && def.HasSubtype(SubtypeTera) {
			return 8
		}
	}
	return size
}

// syncBenchLimits refreshes both boards' MaxBench from the stadium state.
// A shrink leaves the bench oversized, which surfaces as forced
// discard-to-fix interrupt actions.
func (e *Engine) syncBenchLimits(state *GameState) {
	for i := range state.Players {
		state.Players[i].Board.MaxBench = e.MaxBenchSize(state, i)
	}
}

// providedEnergy computes the pool a Pokemon's attachments supply, using
// each card's declared values (dual energy provides several units).
func (e *Engine) providedEnergy(pokemon *CardInstance) energy.Pool {
	values := make([][]energy.Type, 0, len(pokemon.AttachedEnergy))
	for _, card := range pokemon.AttachedEnergy {
		def := e.Def(card)
		if def == nil {
			continue
		}
		units := def.EnergyValues()
		if len(units) == 0 {
			units = []energy.Type{energy.Colorless}
		}
		values = append(values, units)
	}
	return energy.PoolFromValues(values...)
}

// hasEnergyForAttack checks an attack's printed cost against the
// attacker's attachments.
func (e *Engine) hasEnergyForAttack(pokemon *CardInstance, cost energy.Cost) bool {
	return energy.CanPay(cost, e.providedEnergy(pokemon))
}

// retreatCost computes the active Pokemon's current retreat cost: the
// printed cost plus effect and tool modifiers, clamped at zero.
func (e *Engine) retreatCost(state *GameState, pokemon *CardInstance) int {
	def := e.Def(pokemon)
	if def == nil {
		return 0
	}
	cost := def.RetreatCost
	for _, eff := range state.ActiveEffects {
		if !eff.AppliesToCard(pokemon.ID) || !eff.AppliesToPlayer(pokemon.Owner) {
			continue
		}
		if mod, ok := atoiParam(eff.Params[effects.ParamRetreatCostMod]); ok {
			cost += mod
		}
	}
	for _, tool := range pokemon.AttachedTools {
		if logic, ok := e.logic.Lookup(tool.CardID, ""); ok && logic.Modifier != nil && logic.ModifierKind == ModifierRetreatCost {
			cost = logic.Modifier(state, ModifierRetreatCost, cost)
		}
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}

// coinFlip returns true for heads, drawing from the engine's RNG stream.
func (e *Engine) coinFlip() bool {
	return e.rng.Intn(2) == 0
}

func atoiParam(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
