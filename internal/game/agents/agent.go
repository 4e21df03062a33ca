// Package agents provides decision policies that drive games through the
// engine: the engine enumerates, an agent chooses.
package agents

import (
	"context"
	"errors"
	"math/rand"

	"github.com/ptcgsim/ptcg-server-go/internal/game"
)

// ErrNoActions is returned when an agent is asked to choose from nothing.
var ErrNoActions = errors.New("agents: no legal actions to choose from")

// Agent chooses one of the legal actions for the acting player.
type Agent interface {
	Name() string
	ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error)
}

// RandomAgent picks uniformly from the legal actions. With a fixed seed
// it makes self-play runs reproducible.
type RandomAgent struct {
	name string
	rng  *rand.Rand
}

// NewRandomAgent creates a seeded random agent.
func NewRandomAgent(name string, seed int64) *RandomAgent {
	return &RandomAgent{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Name() string { return a.name }

func (a *RandomAgent) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	if len(actions) == 0 {
		return game.Action{}, ErrNoActions
	}
	return actions[a.rng.Intn(len(actions))], nil
}

// GreedyAgent prefers attacks, then evolutions, then energy attachment,
// falling back to the first remaining action. It is a baseline opponent,
// not a strong one.
type GreedyAgent struct {
	name string
	rng  *rand.Rand
}

// NewGreedyAgent creates a seeded greedy agent; the seed only breaks ties.
func NewGreedyAgent(name string, seed int64) *GreedyAgent {
	return &GreedyAgent{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (a *GreedyAgent) Name() string { return a.name }

var greedyOrder = []game.ActionType{
	game.ActionAttack,
	game.ActionEvolve,
	game.ActionAttachEnergy,
	game.ActionPlayItem,
	game.ActionPlaySupporter,
	game.ActionPlayBasic,
	game.ActionSelectCard,
}

func (a *GreedyAgent) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	if err := ctx.Err(); err != nil {
		return game.Action{}, err
	}
	if len(actions) == 0 {
		return game.Action{}, ErrNoActions
	}

	for _, preferred := range greedyOrder {
		var matching []game.Action
		for _, action := range actions {
			if action.Type == preferred {
				matching = append(matching, action)
			}
		}
		if len(matching) > 0 {
			return matching[a.rng.Intn(len(matching))], nil
		}
	}
	return actions[a.rng.Intn(len(actions))], nil
}
