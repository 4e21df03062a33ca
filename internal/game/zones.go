package game

import (
	"math/rand"
)

// Zone is an ordered sequence of card instances. Hidden zones (deck,
// prizes) are invisible to both players' normal inspection; private zones
// (hand) are visible to the owner only.
type Zone struct {
	Cards   []*CardInstance
	Ordered bool
	Hidden  bool
	Private bool
}

func newDeckZone() Zone   { return Zone{Ordered: true, Hidden: true} }
func newHandZone() Zone   { return Zone{Private: true} }
func newDiscardZone() Zone { return Zone{Ordered: true} }
func newPrizeZone() Zone  { return Zone{Hidden: true} }

// Len returns the number of cards in the zone.
func (z *Zone) Len() int { return len(z.Cards) }

// Empty reports whether the zone has no cards.
func (z *Zone) Empty() bool { return len(z.Cards) == 0 }

// Add appends a card to the zone.
func (z *Zone) Add(card *CardInstance) {
	z.Cards = append(z.Cards, card)
}

// FindByID returns the card with the given instance id, or nil.
func (z *Zone) FindByID(id string) *CardInstance {
	for _, c := range z.Cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// TakeByID removes and returns the card with the given instance id, or
// nil if absent.
func (z *Zone) TakeByID(id string) *CardInstance {
	for i, c := range z.Cards {
		if c.ID == id {
			z.Cards = append(z.Cards[:i], z.Cards[i+1:]...)
			return c
		}
	}
	return nil
}

// DrawTop removes and returns the top card, or nil if the zone is empty.
func (z *Zone) DrawTop() *CardInstance {
	if len(z.Cards) == 0 {
		return nil
	}
	top := z.Cards[0]
	z.Cards = z.Cards[1:]
	return top
}

// Shuffle randomizes the zone order using the given source.
func (z *Zone) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(z.Cards), func(i, j int) {
		z.Cards[i], z.Cards[j] = z.Cards[j], z.Cards[i]
	})
}

// DefaultMaxBench is the standard bench limit; stadium effects can raise
// it (and its shrinking back forces discards).
const DefaultMaxBench = 5

// Board is a player's in-play area: one active spot plus the bench.
type Board struct {
	Active   *CardInstance
	Bench    []*CardInstance
	MaxBench int
}

func newBoard() Board {
	return Board{MaxBench: DefaultMaxBench}
}

// BenchCount returns the number of benched Pokemon.
func (b *Board) BenchCount() int { return len(b.Bench) }

// CanAddToBench reports whether the bench has a free slot.
func (b *Board) CanAddToBench() bool { return len(b.Bench) < b.MaxBench }

// AddToBench appends a Pokemon to the bench.
func (b *Board) AddToBench(card *CardInstance) {
	b.Bench = append(b.Bench, card)
}

// AllPokemon returns the active Pokemon (if any) followed by the bench.
func (b *Board) AllPokemon() []*CardInstance {
	out := make([]*CardInstance, 0, len(b.Bench)+1)
	if b.Active != nil {
		out = append(out, b.Active)
	}
	out = append(out, b.Bench...)
	return out
}

// FindPokemon returns the in-play Pokemon with the given instance id.
func (b *Board) FindPokemon(id string) *CardInstance {
	if b.Active != nil && b.Active.ID == id {
		return b.Active
	}
	for _, p := range b.Bench {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemoveBenchByID removes and returns the benched Pokemon with the given
// id, or nil.
func (b *Board) RemoveBenchByID(id string) *CardInstance {
	for i, p := range b.Bench {
		if p.ID == id {
			b.Bench = append(b.Bench[:i], b.Bench[i+1:]...)
			return p
		}
	}
	return nil
}

// PromoteToActive moves the benched Pokemon with the given id to the
// empty active spot. Returns false if the spot is occupied or the id is
// not on the bench.
func (b *Board) PromoteToActive(id string) bool {
	if b.Active != nil {
		return false
	}
	p := b.RemoveBenchByID(id)
	if p == nil {
		return false
	}
	b.Active = p
	return true
}

// SwitchActive swaps the active Pokemon with the named bench Pokemon,
// vacating the active slot first so the bench never transiently
// overflows. Returns false if the id is not benched.
func (b *Board) SwitchActive(benchID string) bool {
	incoming := b.RemoveBenchByID(benchID)
	if incoming == nil {
		return false
	}
	outgoing := b.Active
	b.Active = incoming
	if outgoing != nil {
		b.Bench = append(b.Bench, outgoing)
	}
	return true
}
