package game

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ptcgsim/ptcg-server-go/internal/game/energy"
)

// Supertype is the top-level card classification.
type Supertype string

const (
	SupertypePokemon Supertype = "Pokemon"
	SupertypeTrainer Supertype = "Trainer"
	SupertypeEnergy  Supertype = "Energy"
)

// Subtype refines a card's supertype.
type Subtype string

const (
	SubtypeBasic         Subtype = "Basic"
	SubtypeStage1        Subtype = "Stage 1"
	SubtypeStage2        Subtype = "Stage 2"
	SubtypeEX            Subtype = "ex"
	SubtypeV             Subtype = "V"
	SubtypeVMAX          Subtype = "VMAX"
	SubtypeVSTAR         Subtype = "VSTAR"
	SubtypeGX            Subtype = "GX"
	SubtypeMega          Subtype = "Mega"
	SubtypeTera          Subtype = "Tera"
	SubtypeItem          Subtype = "Item"
	SubtypeSupporter     Subtype = "Supporter"
	SubtypeStadium       Subtype = "Stadium"
	SubtypeTool          Subtype = "Pokemon Tool"
	SubtypeBasicEnergy   Subtype = "Basic Energy"
	SubtypeSpecialEnergy Subtype = "Special Energy"
)

// StatusCondition is a special condition on an active Pokemon. Asleep,
// Confused and Paralyzed are mutually exclusive; Burned and Poisoned stack
// with anything.
type StatusCondition string

const (
	StatusAsleep    StatusCondition = "Asleep"
	StatusBurned    StatusCondition = "Burned"
	StatusConfused  StatusCondition = "Confused"
	StatusParalyzed StatusCondition = "Paralyzed"
	StatusPoisoned  StatusCondition = "Poisoned"
)

// exclusiveStatuses cannot coexist; applying one removes the others.
var exclusiveStatuses = map[StatusCondition]bool{
	StatusAsleep:    true,
	StatusConfused:  true,
	StatusParalyzed: true,
}

// AttackDef is a printed attack on a Pokemon card.
type AttackDef struct {
	Name   string
	Cost   energy.Cost
	Damage int
	Text   string
}

// AbilityDef is a printed ability on a Pokemon card.
type AbilityDef struct {
	Name        string
	Text        string
	Activatable bool   // player-activated during the main phase
	Trigger     string // hook trigger (on_play, on_evolve) for hook abilities
}

// CardDef is the static definition of a card, shared by every printed
// copy. Definitions are immutable and owned by the card registry.
type CardDef struct {
	ID        string
	Name      string
	Supertype Supertype
	Subtypes  []Subtype

	// Pokemon fields
	HP          int
	Types       []energy.Type
	EvolvesFrom string
	RetreatCost int
	Weakness    energy.Type
	Resistance  energy.Type
	Attacks     []AttackDef
	Abilities   []AbilityDef

	// Energy fields
	EnergyType  energy.Type
	Provides    []energy.Type // special energy; empty means one unit of EnergyType
	BasicEnergy bool
}

func (d *CardDef) IsPokemon() bool { return d.Supertype == SupertypePokemon }
func (d *CardDef) IsTrainer() bool { return d.Supertype == SupertypeTrainer }
func (d *CardDef) IsEnergy() bool  { return d.Supertype == SupertypeEnergy }

// HasSubtype reports whether the card carries the given subtype.
func (d *CardDef) HasSubtype(s Subtype) bool {
	for _, st := range d.Subtypes {
		if st == s {
			return true
		}
	}
	return false
}

// HasType reports whether the Pokemon is of the given energy type.
func (d *CardDef) HasType(t energy.Type) bool {
	for _, pt := range d.Types {
		if pt == t {
			return true
		}
	}
	return false
}

func (d *CardDef) IsBasicPokemon() bool { return d.IsPokemon() && d.HasSubtype(SubtypeBasic) }
func (d *CardDef) IsItem() bool         { return d.IsTrainer() && d.HasSubtype(SubtypeItem) }
func (d *CardDef) IsSupporter() bool    { return d.IsTrainer() && d.HasSubtype(SubtypeSupporter) }
func (d *CardDef) IsStadium() bool      { return d.IsTrainer() && d.HasSubtype(SubtypeStadium) }
func (d *CardDef) IsTool() bool         { return d.IsTrainer() && d.HasSubtype(SubtypeTool) }

// EnergyValues returns the units one attached copy of this energy card
// provides.
func (d *CardDef) EnergyValues() []energy.Type {
	if !d.IsEnergy() {
		return nil
	}
	if len(d.Provides) > 0 {
		return d.Provides
	}
	return []energy.Type{d.EnergyType}
}

// FunctionalID returns a canonical signature identifying mechanically
// interchangeable printings: same name, hp, subtypes, attacks and
// abilities collapse to the same id regardless of set or art.
func (d *CardDef) FunctionalID() string {
	subtypes := make([]string, len(d.Subtypes))
	for i, s := range d.Subtypes {
		subtypes[i] = string(s)
	}
	sort.Strings(subtypes)

	attacks := make([]string, len(d.Attacks))
	for i, a := range d.Attacks {
		attacks[i] = a.Name + ":" + a.Cost.String() + ":" + strconv.Itoa(a.Damage)
	}
	sort.Strings(attacks)

	abilities := make([]string, len(d.Abilities))
	for i, a := range d.Abilities {
		abilities[i] = a.Name
	}
	sort.Strings(abilities)

	return strings.Join([]string{
		d.Name,
		strconv.Itoa(d.HP),
		strings.Join(subtypes, ","),
		strings.Join(attacks, ","),
		strings.Join(abilities, ","),
	}, "|")
}

// PrizeValue returns the base prizes awarded for knocking this card out:
// Mega, VMAX and VSTAR give 3, ex, V and GX give 2, everything else 1.
func (d *CardDef) PrizeValue() int {
	switch {
	case d.HasSubtype(SubtypeMega), d.HasSubtype(SubtypeVMAX), d.HasSubtype(SubtypeVSTAR):
		return 3
	case d.HasSubtype(SubtypeEX), d.HasSubtype(SubtypeV), d.HasSubtype(SubtypeGX):
		return 2
	default:
		return 1
	}
}

// CardInstance is one physical card in a game, referencing its static
// definition by CardID and carrying all mutable play-state.
type CardInstance struct {
	ID     string // unique instance id
	CardID string
	Owner  int

	DamageCounters   int // 1 counter = 10 damage; never stored as raw HP
	StatusConditions map[StatusCondition]bool
	AttachedEnergy   []*CardInstance
	AttachedTools    []*CardInstance

	// Evolution bookkeeping: chain holds prior-stage card ids oldest
	// first, previous stages hold the actual displaced instances so
	// devolution and multi-card discard can recover them.
	EvolutionChain []string
	PreviousStages []*CardInstance

	TurnsInPlay          int
	EvolvedThisTurn      bool
	AbilitiesUsedThisTurn map[string]bool
	AttackEffects        []string
}

// NewCardInstance creates a fresh instance of a definition for a player.
func NewCardInstance(id, cardID string, owner int) *CardInstance {
	return &CardInstance{
		ID:                    id,
		CardID:                cardID,
		Owner:                 owner,
		StatusConditions:      make(map[StatusCondition]bool),
		AbilitiesUsedThisTurn: make(map[string]bool),
	}
}

// HasStatus reports whether the condition is present.
func (c *CardInstance) HasStatus(s StatusCondition) bool {
	return c.StatusConditions[s]
}

// AddStatus applies a condition, removing any mutually exclusive ones.
func (c *CardInstance) AddStatus(s StatusCondition) {
	if exclusiveStatuses[s] {
		for ex := range exclusiveStatuses {
			delete(c.StatusConditions, ex)
		}
	}
	c.StatusConditions[s] = true
}

// RemoveStatus clears one condition.
func (c *CardInstance) RemoveStatus(s StatusCondition) {
	delete(c.StatusConditions, s)
}

// ClearAllStatus removes every condition (retreat, evolution, bench
// return).
func (c *CardInstance) ClearAllStatus() {
	for s := range c.StatusConditions {
		delete(c.StatusConditions, s)
	}
}

// AsleepOrParalyzed reports whether the Pokemon can neither attack nor
// retreat.
func (c *CardInstance) AsleepOrParalyzed() bool {
	return c.HasStatus(StatusAsleep) || c.HasStatus(StatusParalyzed)
}

// HasAttackEffect reports whether a transient attack effect is present.
func (c *CardInstance) HasAttackEffect(name string) bool {
	for _, e := range c.AttackEffects {
		if e == name {
			return true
		}
	}
	return false
}
