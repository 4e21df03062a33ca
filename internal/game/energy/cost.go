package energy

import (
	"sort"
	"strings"
)

// Type represents an energy type. Colorless is the wildcard: a Colorless
// requirement can be paid by any energy type.
type Type string

const (
	Grass     Type = "Grass"
	Fire      Type = "Fire"
	Water     Type = "Water"
	Lightning Type = "Lightning"
	Psychic   Type = "Psychic"
	Fighting  Type = "Fighting"
	Darkness  Type = "Darkness"
	Metal     Type = "Metal"
	Dragon    Type = "Dragon"
	Colorless Type = "Colorless"
)

// Cost is a multiset of required energy types, in printed order.
// Example: [Fire, Fire, Colorless].
type Cost []Type

// Counts splits the cost into per-type specific requirements and the
// number of Colorless wildcard slots.
func (c Cost) Counts() (specific map[Type]int, wildcards int) {
	specific = make(map[Type]int)
	for _, t := range c {
		if t == Colorless {
			wildcards++
		} else {
			specific[t]++
		}
	}
	return specific, wildcards
}

// Total returns the total number of energy units required.
func (c Cost) Total() int {
	return len(c)
}

func (c Cost) String() string {
	parts := make([]string, len(c))
	for i, t := range c {
		parts[i] = string(t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Reduce returns a copy of the cost with up to generic units removed from
// the Colorless slots first, then the named types removed exactly.
// Cost-reduction effects never take a cost below zero units.
func (c Cost) Reduce(generic int, types []Type) Cost {
	remaining := make(Cost, 0, len(c))
	removeTyped := make(map[Type]int)
	for _, t := range types {
		removeTyped[t]++
	}

	// Drop wildcard slots first.
	for _, t := range c {
		if t == Colorless && generic > 0 {
			generic--
			continue
		}
		if removeTyped[t] > 0 {
			removeTyped[t]--
			continue
		}
		remaining = append(remaining, t)
	}

	// Leftover generic reduction eats specific slots too.
	for generic > 0 && len(remaining) > 0 {
		remaining = remaining[:len(remaining)-1]
		generic--
	}

	return remaining
}

// Pool is a multiset of provided energy units by type. One physical energy
// card usually provides one unit; dual/compound cards contribute more via
// the provider's value override (see PoolFromValues).
type Pool map[Type]int

// PoolFromValues builds a pool from per-card provided units. Each entry in
// values is the full list of units one attached card supplies.
func PoolFromValues(values ...[]Type) Pool {
	pool := make(Pool)
	for _, units := range values {
		for _, t := range units {
			pool[t]++
		}
	}
	return pool
}

// Total returns the total number of provided units of all types.
func (p Pool) Total() int {
	total := 0
	for _, n := range p {
		total += n
	}
	return total
}

// Copy returns an independent copy of the pool.
func (p Pool) Copy() Pool {
	out := make(Pool, len(p))
	for t, n := range p {
		out[t] = n
	}
	return out
}

func (p Pool) String() string {
	keys := make([]string, 0, len(p))
	for t := range p {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
	}
	b.WriteByte('}')
	return b.String()
}
