package server

import (
	"sort"

	"github.com/ptcgsim/ptcg-server-go/internal/game"
)

// SpectatorSeat is the viewer index for clients without a seat.
const SpectatorSeat = -1

// CardView is one visible card instance.
type CardView struct {
	InstanceID string `json:"instance_id"`
	CardID     string `json:"card_id"`
	Name       string `json:"name"`
}

// AttackView is one printed attack of an in-play Pokemon.
type AttackView struct {
	Name   string `json:"name"`
	Cost   string `json:"cost"`
	Damage int    `json:"damage"`
}

// PokemonView is one in-play Pokemon with its attachments.
type PokemonView struct {
	CardView
	HP             int          `json:"hp"`
	DamageCounters int          `json:"damage_counters"`
	Status         []string     `json:"status,omitempty"`
	Attacks        []AttackView `json:"attacks,omitempty"`
	Energy         []CardView   `json:"energy,omitempty"`
	Tools          []CardView   `json:"tools,omitempty"`
	EvolvedFrom    []CardView   `json:"evolved_from,omitempty"`
}

// PlayerView is one player's side as seen by a particular viewer. Hidden
// zones (deck, prizes) are counts only; an opponent's hand is a count
// only.
type PlayerView struct {
	Index       int           `json:"index"`
	Name        string        `json:"name"`
	DeckCount   int           `json:"deck_count"`
	HandCount   int           `json:"hand_count"`
	Hand        []CardView    `json:"hand,omitempty"`
	Discard     []CardView    `json:"discard"`
	PrizeCount  int           `json:"prize_count"`
	PrizesTaken int           `json:"prizes_taken"`
	Active      *PokemonView  `json:"active,omitempty"`
	Bench       []PokemonView `json:"bench"`
}

// StepView describes the pending resolution step without exposing the
// hidden cards behind it.
type StepView struct {
	Type     string `json:"type"`
	Player   int    `json:"player"`
	Zone     string `json:"zone,omitempty"`
	MinCount int    `json:"min_count"`
	MaxCount int    `json:"max_count"`
	Selected int    `json:"selected"`
}

// GameView is one full sanitized snapshot.
type GameView struct {
	GameID         string        `json:"game_id"`
	Turn           int           `json:"turn"`
	Phase          string        `json:"phase"`
	Result         string        `json:"result"`
	ActivePlayer   int           `json:"active_player"`
	StartingPlayer int           `json:"starting_player"`
	Winner         int           `json:"winner"`
	Viewer         int           `json:"viewer"`
	Players        [2]PlayerView `json:"players"`
	Stadium        *CardView     `json:"stadium,omitempty"`
	PendingStep    *StepView     `json:"pending_step,omitempty"`
	StackDepth     int           `json:"stack_depth"`
}

// ActionView is one legal action on the wire.
type ActionView struct {
	Key         string `json:"key"`
	Type        string `json:"type"`
	Player      int    `json:"player"`
	CardID      string `json:"card_id,omitempty"`
	TargetID    string `json:"target_id,omitempty"`
	AttackName  string `json:"attack_name,omitempty"`
	AbilityName string `json:"ability_name,omitempty"`
	Target      string `json:"target,omitempty"`
	Label       string `json:"label,omitempty"`
}

// BuildView renders the state for one viewer seat. Spectators see both
// hands as counts only.
func BuildView(e *game.Engine, state *game.GameState, viewer int) *GameView {
	v := &GameView{
		GameID:         state.ID,
		Turn:           state.TurnCount,
		Phase:          state.Phase.String(),
		Result:         state.Result.String(),
		ActivePlayer:   state.ActivePlayer,
		StartingPlayer: state.StartingPlayer,
		Winner:         state.WinnerID,
		Viewer:         viewer,
		StackDepth:     len(state.ResolutionStack),
	}
	for i, p := range state.Players {
		v.Players[i] = buildPlayerView(e, p, viewer == i)
	}
	if state.Stadium != nil {
		cv := cardView(e, state.Stadium)
		v.Stadium = &cv
	}
	if top := state.TopStep(); top != nil {
		v.PendingStep = &StepView{
			Type:     top.Type.String(),
			Player:   top.Player,
			Zone:     string(top.Zone),
			MinCount: top.MinCount,
			MaxCount: top.Count,
			Selected: len(top.SelectedCardIDs),
		}
	}
	return v
}

func buildPlayerView(e *game.Engine, p *game.PlayerState, owner bool) PlayerView {
	pv := PlayerView{
		Index:       p.Index,
		Name:        p.Name,
		DeckCount:   p.Deck.Len(),
		HandCount:   p.Hand.Len(),
		PrizeCount:  p.Prizes.Len(),
		PrizesTaken: p.PrizesTaken,
		Discard:     cardViews(e, p.Discard.Cards),
		Bench:       make([]PokemonView, 0, len(p.Board.Bench)),
	}
	if owner {
		pv.Hand = cardViews(e, p.Hand.Cards)
	}
	if p.Board.Active != nil {
		av := pokemonView(e, p.Board.Active)
		pv.Active = &av
	}
	for _, pk := range p.Board.Bench {
		pv.Bench = append(pv.Bench, pokemonView(e, pk))
	}
	return pv
}

func cardView(e *game.Engine, c *game.CardInstance) CardView {
	cv := CardView{InstanceID: c.ID, CardID: c.CardID}
	if def := e.Def(c); def != nil {
		cv.Name = def.Name
	}
	return cv
}

func cardViews(e *game.Engine, cards []*game.CardInstance) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardView(e, c))
	}
	return out
}

func pokemonView(e *game.Engine, pk *game.CardInstance) PokemonView {
	pv := PokemonView{
		CardView:       cardView(e, pk),
		DamageCounters: pk.DamageCounters,
		Energy:         cardViews(e, pk.AttachedEnergy),
		Tools:          cardViews(e, pk.AttachedTools),
		EvolvedFrom:    cardViews(e, pk.PreviousStages),
	}
	if def := e.Def(pk); def != nil {
		pv.HP = def.HP
		for _, atk := range def.Attacks {
			pv.Attacks = append(pv.Attacks, AttackView{
				Name:   atk.Name,
				Cost:   atk.Cost.String(),
				Damage: atk.Damage,
			})
		}
	}
	for status, on := range pk.StatusConditions {
		if on {
			pv.Status = append(pv.Status, string(status))
		}
	}
	sort.Strings(pv.Status)
	return pv
}

func actionViews(actions []game.Action) []ActionView {
	out := make([]ActionView, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionView{
			Key:         a.Key(),
			Type:        a.Type.String(),
			Player:      a.Player,
			CardID:      a.CardID,
			TargetID:    a.TargetID,
			AttackName:  a.AttackName,
			AbilityName: a.AbilityName,
			Target:      a.Target.String(),
			Label:       a.Label,
		})
	}
	return out
}
