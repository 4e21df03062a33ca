// Package sim drives complete self-play games between two agents,
// collecting the outcome for analysis or storage.
package sim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/game/agents"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// DefaultMaxSteps caps runaway games; a well-formed game ends long before.
const DefaultMaxSteps = 5000

// Outcome summarizes one finished game.
type Outcome struct {
	GameID   string
	Result   rules.Result
	WinnerID int
	Turns    int
	Steps    int
	Duration time.Duration
	Checksum string
}

// Runner plays games between two agents on one engine.
type Runner struct {
	engine   *game.Engine
	agents   [2]agents.Agent
	logger   *zap.Logger
	maxSteps int
}

// NewRunner wires a runner. A nil logger is replaced with a no-op one.
func NewRunner(engine *game.Engine, a0, a1 agents.Agent, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		engine:   engine,
		agents:   [2]agents.Agent{a0, a1},
		logger:   logger,
		maxSteps: DefaultMaxSteps,
	}
}

// Play runs one game to completion from the given state, mutating it in
// place. The acting agent is the player the current decision belongs to,
// which during forced interrupts is not necessarily the turn player.
func (r *Runner) Play(ctx context.Context, state *game.GameState) (*Outcome, error) {
	start := time.Now()
	steps := 0

	for !state.IsGameOver() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if steps >= r.maxSteps {
			return nil, fmt.Errorf("sim: game %s exceeded %d steps", state.ID, r.maxSteps)
		}

		actions := r.engine.LegalActions(state)
		if len(actions) == 0 {
			return nil, fmt.Errorf("sim: game %s has no legal actions in %s", state.ID, state.Phase)
		}

		actor := actions[0].Player
		action, err := r.agents[actor].ChooseAction(ctx, state, actions)
		if err != nil {
			return nil, fmt.Errorf("sim: agent %s: %w", r.agents[actor].Name(), err)
		}

		if err := r.engine.StepInPlace(state, action); err != nil {
			return nil, fmt.Errorf("sim: applying %s: %w", action.Type, err)
		}
		steps++
	}

	outcome := &Outcome{
		GameID:   state.ID,
		Result:   state.Result,
		WinnerID: state.WinnerID,
		Turns:    state.TurnCount,
		Steps:    steps,
		Duration: time.Since(start),
		Checksum: game.Checksum(state),
	}
	r.logger.Info("game finished",
		zap.String("game_id", outcome.GameID),
		zap.String("result", outcome.Result.String()),
		zap.Int("turns", outcome.Turns),
		zap.Int("steps", outcome.Steps),
		zap.Duration("duration", outcome.Duration))
	return outcome, nil
}

// PlayMany runs n fresh games from the deal function, which must return a
// new starting state per call.
func (r *Runner) PlayMany(ctx context.Context, n int, deal func() (*game.GameState, error)) ([]*Outcome, error) {
	outcomes := make([]*Outcome, 0, n)
	for i := 0; i < n; i++ {
		state, err := deal()
		if err != nil {
			return outcomes, fmt.Errorf("sim: dealing game %d: %w", i, err)
		}
		outcome, err := r.Play(ctx, state)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}
