package game

import (
	"github.com/ptcgsim/ptcg-server-go/internal/game/stack"
)

// CardRegistry resolves card ids to their static definitions. Injected
// into the engine; implementations must be read-only once the engine is
// constructed.
type CardRegistry interface {
	Get(cardID string) (*CardDef, bool)
}

// MapCardRegistry is the standard in-memory registry.
type MapCardRegistry struct {
	defs map[string]*CardDef
}

// NewCardRegistry builds a registry from the given definitions, keyed by
// their ids.
func NewCardRegistry(defs ...*CardDef) *MapCardRegistry {
	m := make(map[string]*CardDef, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return &MapCardRegistry{defs: m}
}

// Get returns the definition for a card id.
func (r *MapCardRegistry) Get(cardID string) (*CardDef, bool) {
	d, ok := r.defs[cardID]
	return d, ok
}

// All returns every registered definition.
func (r *MapCardRegistry) All() []*CardDef {
	out := make([]*CardDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// LogicCategory classifies a registered card behavior.
type LogicCategory string

const (
	LogicAttack      LogicCategory = "attack"
	LogicActivatable LogicCategory = "activatable"
	LogicTrainer     LogicCategory = "trainer"
	LogicModifier    LogicCategory = "modifier"
	LogicGuard       LogicCategory = "guard"
	LogicHook        LogicCategory = "hook"
	LogicCondition   LogicCategory = "condition"
)

// EffectResult is what a card effect hands back to the engine: resolution
// steps to push (deeper decisions), damage to deal, statuses to apply and
// effects to register.
type EffectResult struct {
	Steps              []*stack.Step
	Damage             int
	AddStatus          map[string]StatusCondition // pokemon instance id -> condition
	SelfDamageCounters int
}

// GeneratorFunc produces the legal actions a card offers, overriding the
// generic action the engine would synthesize.
type GeneratorFunc func(state *GameState, card *CardInstance, player int) []Action

// EffectFunc executes a card's effect against the (already cloned) state.
type EffectFunc func(state *GameState, card *CardInstance, action Action) (*EffectResult, error)

// ModifierFunc adjusts a numeric quantity (damage_dealt, damage_taken,
// retreat_cost, global_damage).
type ModifierFunc func(state *GameState, kind string, value int) int

// GuardFunc can veto a status condition being applied to a target.
type GuardFunc func(state *GameState, target *CardInstance, condition StatusCondition) bool

// ConditionFunc evaluates a predicate for prize-count modifiers.
type ConditionFunc func(state *GameState, killer, victim *CardInstance) bool

// CallbackFunc runs when a resolution step owned by a card completes.
type CallbackFunc func(state *GameState, step *stack.Step) (*EffectResult, error)

// CardLogic is one registered behavior for a (card id, effect name) pair.
type CardLogic struct {
	Category     LogicCategory
	Generator    GeneratorFunc
	Effect       EffectFunc
	Modifier     ModifierFunc
	ModifierKind string // which quantity the modifier adjusts
	Guard        GuardFunc
	Condition    ConditionFunc
	Trigger      string // hook trigger: on_play, on_evolve
}

// LogicRegistry maps (card id, effect name) pairs to behaviors, plus
// named step-completion callbacks and named predicates referenced by
// effect parameters. Immutable once handed to the engine.
type LogicRegistry struct {
	entries    map[string]*CardLogic
	callbacks  map[stack.Callback]CallbackFunc
	conditions map[string]ConditionFunc
}

// NewLogicRegistry builds an empty logic registry.
func NewLogicRegistry() *LogicRegistry {
	return &LogicRegistry{
		entries:    make(map[string]*CardLogic),
		callbacks:  make(map[stack.Callback]CallbackFunc),
		conditions: make(map[string]ConditionFunc),
	}
}

func logicKey(cardID, effectName string) string { return cardID + "/" + effectName }

// Register adds a behavior for a card's named effect (attack name,
// ability name, or empty for a trainer's single effect).
func (r *LogicRegistry) Register(cardID, effectName string, logic *CardLogic) {
	r.entries[logicKey(cardID, effectName)] = logic
}

// Lookup returns the behavior for a (card id, effect name) pair.
func (r *LogicRegistry) Lookup(cardID, effectName string) (*CardLogic, bool) {
	l, ok := r.entries[logicKey(cardID, effectName)]
	return l, ok
}

// RegisterCallback adds a named step-completion callback.
func (r *LogicRegistry) RegisterCallback(name stack.Callback, fn CallbackFunc) {
	r.callbacks[name] = fn
}

// Callback returns a registered step-completion callback.
func (r *LogicRegistry) Callback(name stack.Callback) (CallbackFunc, bool) {
	fn, ok := r.callbacks[name]
	return fn, ok
}

// RegisterCondition adds a named predicate usable from effect
// parameters (prize-count modifiers and similar).
func (r *LogicRegistry) RegisterCondition(name string, fn ConditionFunc) {
	r.conditions[name] = fn
}

// ConditionByName returns a registered predicate.
func (r *LogicRegistry) ConditionByName(name string) (ConditionFunc, bool) {
	fn, ok := r.conditions[name]
	return fn, ok
}
