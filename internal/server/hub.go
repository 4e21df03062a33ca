package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/game"
	"github.com/ptcgsim/ptcg-server-go/internal/sim"
)

// Envelope is the wire frame for every message in both directions.
type Envelope struct {
	Type   string          `json:"type"`
	GameID string          `json:"game_id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type reply struct {
	Type   string `json:"type"`
	GameID string `json:"game_id,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Message types accepted from clients.
const (
	msgCreateGame   = "create_game"
	msgJoinGame     = "join_game"
	msgState        = "state"
	msgLegalActions = "legal_actions"
	msgSubmitAction = "submit_action"
)

// Message types sent to clients.
const (
	msgGameState   = "game_state"
	msgActionList  = "action_list"
	msgGameCreated = "game_created"
	msgError       = "error"
)

type createGameRequest struct {
	Players [2]string `json:"players"`
	Seed    int64     `json:"seed"`
}

type joinGameRequest struct {
	Seat int `json:"seat"`
}

type submitActionRequest struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	CardID      string `json:"card_id"`
	TargetID    string `json:"target_id"`
	AttackName  string `json:"attack_name"`
	AbilityName string `json:"ability_name"`
	TargetCard  string `json:"target_card_id"`
	TargetName  string `json:"target_card_name"`
}

// OutcomeStore persists finished games. The repository package satisfies
// it; a nil store disables persistence.
type OutcomeStore interface {
	SaveOutcome(ctx context.Context, players [2]string, o *sim.Outcome) error
}

// liveGame pairs one engine with one state. Each game owns its engine so
// per-game seeds stay independent.
type liveGame struct {
	engine  *game.Engine
	state   *game.GameState
	names   [2]string
	started time.Time
	saved   bool
}

// Hub owns every live game and connected client.
type Hub struct {
	cards  game.CardRegistry
	logic  *game.LogicRegistry
	decks  [2]game.DeckList
	store  OutcomeStore
	logger *zap.Logger

	mu      sync.RWMutex
	games   map[string]*liveGame
	clients map[*Client]bool
}

// NewHub wires a hub. The registries and deck lists are shared by every
// game the hub creates; store may be nil.
func NewHub(cards game.CardRegistry, logic *game.LogicRegistry, decks [2]game.DeckList, store OutcomeStore, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		cards:   cards,
		logic:   logic,
		decks:   decks,
		store:   store,
		logger:  logger,
		games:   make(map[string]*liveGame),
		clients: make(map[*Client]bool),
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	h.logger.Debug("client connected", zap.String("remote", c.remote))
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("client disconnected", zap.String("remote", c.remote))
}

// CreateGame deals a fresh game and returns its id.
func (h *Hub) CreateGame(names [2]string, seed int64) (*liveGame, error) {
	if names[0] == "" {
		names[0] = "Player 1"
	}
	if names[1] == "" {
		names[1] = "Player 2"
	}
	engine := game.NewEngine(h.cards, h.logic, h.logger, seed)
	state, err := engine.NewGame(names, h.decks)
	if err != nil {
		return nil, fmt.Errorf("deal game: %w", err)
	}

	lg := &liveGame{
		engine:  engine,
		state:   state,
		names:   names,
		started: time.Now(),
	}
	h.mu.Lock()
	h.games[state.ID] = lg
	h.mu.Unlock()

	h.logger.Info("game created",
		zap.String("game_id", state.ID),
		zap.Int64("seed", seed),
		zap.String("player_one", names[0]),
		zap.String("player_two", names[1]),
	)
	return lg, nil
}

func (h *Hub) gameByID(id string) (*liveGame, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	lg, ok := h.games[id]
	return lg, ok
}

func (h *Hub) handleMessage(c *Client, env Envelope) {
	switch env.Type {
	case msgCreateGame:
		h.handleCreateGame(c, env)
	case msgJoinGame:
		h.handleJoinGame(c, env)
	case msgState:
		h.handleState(c, env)
	case msgLegalActions:
		h.handleLegalActions(c, env)
	case msgSubmitAction:
		h.handleSubmitAction(c, env)
	default:
		c.sendReply(reply{Type: msgError, Error: fmt.Sprintf("unknown message type %q", env.Type)})
	}
}

func (h *Hub) handleCreateGame(c *Client, env Envelope) {
	var req createGameRequest
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &req); err != nil {
			c.sendReply(reply{Type: msgError, Error: "malformed create_game request"})
			return
		}
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	lg, err := h.CreateGame(req.Players, seed)
	if err != nil {
		c.sendReply(reply{Type: msgError, Error: err.Error()})
		return
	}

	h.mu.Lock()
	c.gameID = lg.state.ID
	c.seat = 0
	h.mu.Unlock()
	c.sendReply(reply{Type: msgGameCreated, GameID: lg.state.ID})
	c.sendReply(reply{Type: msgGameState, GameID: lg.state.ID, Data: BuildView(lg.engine, lg.state, c.seat)})
}

func (h *Hub) handleJoinGame(c *Client, env Envelope) {
	lg, ok := h.gameByID(env.GameID)
	if !ok {
		c.sendReply(reply{Type: msgError, GameID: env.GameID, Error: "no such game"})
		return
	}

	seat := SpectatorSeat
	if len(env.Data) > 0 {
		var req joinGameRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			c.sendReply(reply{Type: msgError, GameID: env.GameID, Error: "malformed join_game request"})
			return
		}
		if req.Seat == 0 || req.Seat == 1 {
			seat = req.Seat
		}
	}

	h.mu.Lock()
	c.gameID = env.GameID
	c.seat = seat
	view := BuildView(lg.engine, lg.state, seat)
	h.mu.Unlock()
	c.sendReply(reply{Type: msgGameState, GameID: env.GameID, Data: view})
}

func (h *Hub) handleState(c *Client, env Envelope) {
	gameID := env.GameID
	if gameID == "" {
		gameID = c.gameID
	}
	lg, ok := h.gameByID(gameID)
	if !ok {
		c.sendReply(reply{Type: msgError, GameID: gameID, Error: "no such game"})
		return
	}
	h.mu.RLock()
	view := BuildView(lg.engine, lg.state, c.seat)
	h.mu.RUnlock()
	c.sendReply(reply{Type: msgGameState, GameID: gameID, Data: view})
}

func (h *Hub) handleLegalActions(c *Client, env Envelope) {
	gameID := env.GameID
	if gameID == "" {
		gameID = c.gameID
	}
	lg, ok := h.gameByID(gameID)
	if !ok {
		c.sendReply(reply{Type: msgError, GameID: gameID, Error: "no such game"})
		return
	}

	h.mu.RLock()
	actions := lg.engine.LegalActions(lg.state)
	h.mu.RUnlock()

	// Seated players only see their own decisions; spectators see none.
	var mine []game.Action
	for _, a := range actions {
		if a.Player == c.seat {
			mine = append(mine, a)
		}
	}
	c.sendReply(reply{Type: msgActionList, GameID: gameID, Data: actionViews(mine)})
}

func (h *Hub) handleSubmitAction(c *Client, env Envelope) {
	gameID := env.GameID
	if gameID == "" {
		gameID = c.gameID
	}
	lg, ok := h.gameByID(gameID)
	if !ok {
		c.sendReply(reply{Type: msgError, GameID: gameID, Error: "no such game"})
		return
	}
	if c.seat != 0 && c.seat != 1 {
		c.sendReply(reply{Type: msgError, GameID: gameID, Error: "spectators cannot act"})
		return
	}

	var req submitActionRequest
	if err := json.Unmarshal(env.Data, &req); err != nil {
		c.sendReply(reply{Type: msgError, GameID: gameID, Error: "malformed submit_action request"})
		return
	}

	h.mu.Lock()
	action, err := matchAction(lg.engine, lg.state, c.seat, req)
	if err == nil {
		err = lg.engine.StepInPlace(lg.state, action)
	}
	finished := err == nil && lg.state.IsGameOver() && !lg.saved
	if finished {
		lg.saved = true
	}
	h.mu.Unlock()

	if err != nil {
		c.sendReply(reply{Type: msgError, GameID: gameID, Error: err.Error()})
		return
	}

	h.broadcastGameState(gameID, lg)
	if finished {
		h.persistOutcome(lg)
	}
}

// matchAction resolves the request against the current legal set; only
// actions the engine itself enumerated are accepted. Called with h.mu
// held.
func matchAction(e *game.Engine, state *game.GameState, seat int, req submitActionRequest) (game.Action, error) {
	want := game.Action{Player: seat, CardID: req.CardID, TargetID: req.TargetID,
		AttackName: req.AttackName, AbilityName: req.AbilityName}
	if t, ok := game.ParseActionType(req.Type); ok {
		want.Type = t
	}
	switch {
	case req.TargetCard != "":
		want.Target = game.KnownTarget(req.TargetCard)
	case req.TargetName != "":
		want.Target = game.BelievedTarget(req.TargetName)
	}

	for _, a := range e.LegalActions(state) {
		if a.Player != seat {
			continue
		}
		if req.Key != "" {
			if a.Key() == req.Key {
				return a, nil
			}
			continue
		}
		if a.Key() == want.Key() {
			return a, nil
		}
	}
	return game.Action{}, fmt.Errorf("action is not legal in the current state")
}

// broadcastGameState sends each connected client of the game its own
// sanitized view.
func (h *Hub) broadcastGameState(gameID string, lg *liveGame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if client.gameID != gameID {
			continue
		}
		client.sendReply(reply{
			Type:   msgGameState,
			GameID: gameID,
			Data:   BuildView(lg.engine, lg.state, client.seat),
		})
	}
}

func (h *Hub) persistOutcome(lg *liveGame) {
	h.mu.RLock()
	outcome := &sim.Outcome{
		GameID:   lg.state.ID,
		Result:   lg.state.Result,
		WinnerID: lg.state.WinnerID,
		Turns:    lg.state.TurnCount,
		Steps:    len(lg.state.MoveHistory),
		Duration: time.Since(lg.started),
		Checksum: game.Checksum(lg.state),
	}
	names := lg.names
	h.mu.RUnlock()

	h.logger.Info("game finished",
		zap.String("game_id", outcome.GameID),
		zap.String("result", outcome.Result.String()),
		zap.Int("winner", outcome.WinnerID),
		zap.Int("turns", outcome.Turns),
	)

	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.store.SaveOutcome(ctx, names, outcome); err != nil {
		h.logger.Error("failed to persist game outcome",
			zap.String("game_id", outcome.GameID),
			zap.Error(err))
	}
}
