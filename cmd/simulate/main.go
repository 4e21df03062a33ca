package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/carddata"
	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/game/agents"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
	"github.com/ptcgsim/ptcg-server-go/internal/sim"
)

var (
	numGames = flag.Int("games", 100, "number of games to play")
	seed     = flag.Int64("seed", 0, "base RNG seed (0 = current time)")
	agentA   = flag.String("agent-a", "greedy", "agent for seat 0: random or greedy")
	agentB   = flag.String("agent-b", "random", "agent for seat 1: random or greedy")
	verbose  = flag.Bool("verbose", false, "enable debug logging")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := game.NewEngine(carddata.Registry(), carddata.Logic(), logger, baseSeed)

	a0, err := buildAgent(*agentA, "seat-0", baseSeed+1)
	if err != nil {
		logger.Fatal("invalid agent", zap.Error(err))
	}
	a1, err := buildAgent(*agentB, "seat-1", baseSeed+2)
	if err != nil {
		logger.Fatal("invalid agent", zap.Error(err))
	}

	runner := sim.NewRunner(engine, a0, a1, logger)

	logger.Info("starting self-play",
		zap.Int("games", *numGames),
		zap.Int64("seed", baseSeed),
		zap.String("agent_a", a0.Name()),
		zap.String("agent_b", a1.Name()),
	)

	start := time.Now()
	outcomes, err := runner.PlayMany(ctx, *numGames, func() (*game.GameState, error) {
		return engine.NewGame([2]string{a0.Name(), a1.Name()}, carddata.DemoDecks())
	})
	if err != nil && ctx.Err() == nil {
		logger.Fatal("self-play failed", zap.Error(err))
	}

	report(logger, outcomes, time.Since(start))
}

func buildAgent(kind, name string, seed int64) (agents.Agent, error) {
	switch kind {
	case "random":
		return agents.NewRandomAgent(name+"-random", seed), nil
	case "greedy":
		return agents.NewGreedyAgent(name+"-greedy", seed), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", kind)
	}
}

func report(logger *zap.Logger, outcomes []*sim.Outcome, elapsed time.Duration) {
	if len(outcomes) == 0 {
		logger.Warn("no games finished")
		return
	}

	wins := [2]int{}
	draws := 0
	totalTurns := 0
	for _, o := range outcomes {
		totalTurns += o.Turns
		switch o.Result {
		case rules.ResultDraw:
			draws++
		default:
			if o.WinnerID == 0 || o.WinnerID == 1 {
				wins[o.WinnerID]++
			}
		}
	}

	logger.Info("self-play complete",
		zap.Int("games", len(outcomes)),
		zap.Int("seat0_wins", wins[0]),
		zap.Int("seat1_wins", wins[1]),
		zap.Int("draws", draws),
		zap.Float64("avg_turns", float64(totalTurns)/float64(len(outcomes))),
		zap.Duration("elapsed", elapsed),
		zap.Float64("games_per_sec", float64(len(outcomes))/elapsed.Seconds()),
	)
}
