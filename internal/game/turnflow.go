package game

import (
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game/effects"
	"github.com/ptcgsim/ptcg-server-go/internal/game/rules"
)

// beginFirstTurn hands the board to the starting player and runs their
// first auto-draw.
func (e *Engine) beginFirstTurn(state *GameState) {
	state.ActivePlayer = state.StartingPlayer
	state.TurnCount = 1
	for _, p := range state.Players {
		for _, pk := range p.Board.AllPokemon() {
			pk.TurnsInPlay = 1
		}
	}
	e.autoDraw(state)
}

// checkWinConditions settles the game result. Checked after every action:
//   - a player with no Pokemon in play (past setup) loses,
//   - a player who has taken their last prize wins,
//   - both at once goes to sudden death.
func (e *Engine) checkWinConditions(state *GameState) {
	if state.IsGameOver() || state.Phase == rules.PhaseSetup || state.Phase == rules.PhaseMulligan {
		return
	}

	var winners []int
	for i, p := range state.Players {
		opponent := state.Player(1 - i)
		if !opponent.HasAnyPokemonInPlay() {
			winners = append(winners, i)
			continue
		}
		if p.Prizes.Empty() && p.PrizesTaken > 0 {
			winners = append(winners, i)
		}
	}

	switch len(winners) {
	case 0:
		return
	case 1:
		state.SetWinner(winners[0])
		e.logger.Info("game decided",
			zap.String("game_id", state.ID),
			zap.Int("winner", winners[0]),
			zap.String("result", state.Result.String()))
	default:
		e.startSuddenDeath(state)
	}
}

// startSuddenDeath continues a simultaneously-won game with a single
// fresh prize per player; the next prize taken decides it. If a side has
// no board left to play with, the game is a draw.
func (e *Engine) startSuddenDeath(state *GameState) {
	if !state.Players[0].HasAnyPokemonInPlay() || !state.Players[1].HasAnyPokemonInPlay() {
		state.Result = rules.ResultDraw
		state.WinnerID = NoWinner
		e.logger.Info("game drawn", zap.String("game_id", state.ID))
		return
	}

	for _, p := range state.Players {
		p.PrizesTaken = 0
		p.Prizes.Cards = nil
		if card := p.Deck.DrawTop(); card != nil {
			p.Prizes.Add(card)
		}
	}
	state.Phase = rules.PhaseSuddenDeath
	e.logger.Info("sudden death", zap.String("game_id", state.ID))
}

// runCleanup resolves the end-of-turn sequence and the next turn's draw
// in one pass, leaving the state in MAIN (or SUDDEN_DEATH) for the next
// player.
func (e *Engine) runCleanup(state *GameState) {
	if !state.CleanupTicked {
		e.tickStatusDamage(state)
		e.checkWinConditions(state)
		if state.IsGameOver() {
			return
		}

		// Asleep Pokemon flip to wake between turns.
		for _, p := range state.Players {
			if active := p.Board.Active; active != nil && active.HasStatus(StatusAsleep) && e.coinFlip() {
				active.RemoveStatus(StatusAsleep)
			}
		}

		state.ActiveEffects = effects.TickAndExpire(state.ActiveEffects, state.TurnCount, state.ActivePlayer)
		e.syncBenchLimits(state)
		state.CleanupTicked = true
	}

	// A knockout or shrunken bench can demand interrupt choices before
	// the turn can be handed over.
	if e.hasPendingInterrupts(state) {
		return
	}
	state.CleanupTicked = false
	e.finishCleanup(state)
}

// hasPendingInterrupts reports whether forced choices (promotion, bench
// discard) block the turn handover.
func (e *Engine) hasPendingInterrupts(state *GameState) bool {
	for _, p := range state.Players {
		if !p.HasActivePokemon() && p.Board.BenchCount() > 0 {
			return true
		}
		if p.Board.BenchCount() > p.Board.MaxBench {
			return true
		}
	}
	return false
}

// finishCleanup hands the turn over: per-turn state resets, ticks the
// board, switches the active player and auto-draws them into their main
// phase.
func (e *Engine) finishCleanup(state *GameState) {
	outgoing := state.ActivePlayerState()

	// Paralysis wears off at the end of the paralyzed player's turn.
	if active := outgoing.Board.Active; active != nil {
		active.RemoveStatus(StatusParalyzed)
	}

	for _, pk := range outgoing.Board.AllPokemon() {
		pk.TurnsInPlay++
		pk.EvolvedThisTurn = false
		pk.AbilitiesUsedThisTurn = make(map[string]bool)
	}
	outgoing.ResetTurnFlags()

	state.LastTurnMetadata = state.TurnMetadata
	state.TurnMetadata = TurnMetadata{}

	state.SwitchActivePlayer()
	state.TurnCount++
	e.autoDraw(state)
}

// autoDraw performs the mandatory turn-start draw. Drawing from an empty
// deck loses the game on the spot.
func (e *Engine) autoDraw(state *GameState) {
	player := state.ActivePlayerState()

	if player.Deck.Empty() {
		state.SetWinner(1 - player.Index)
		e.logger.Info("deck out",
			zap.String("game_id", state.ID),
			zap.Int("loser", player.Index))
		return
	}
	player.Hand.Add(player.Deck.DrawTop())

	if state.Phase != rules.PhaseSuddenDeath {
		state.Phase = rules.PhaseMain
	}
}
