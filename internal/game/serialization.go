package game

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
)

// Checksum returns a hex sha256 over a canonical rendering of the state.
// Two states with identical game content produce identical checksums
// regardless of map iteration order, which is what replay verification
// and transposition detection key on.
func Checksum(s *GameState) string {
	h := sha256.New()

	fmt.Fprintf(h, "turn:%d active:%d start:%d phase:%s result:%s cleanup:%t\n",
		s.TurnCount, s.ActivePlayer, s.StartingPlayer, s.Phase, s.Result, s.CleanupTicked)

	for i, p := range s.Players {
		fmt.Fprintf(h, "player:%d prizes_taken:%d mulligans:%d searched:%t flags:%t%t%t%t\n",
			i, p.PrizesTaken, p.MulliganCredits, p.HasSearchedDeck,
			p.EnergyAttachedThisTurn, p.SupporterPlayedThisTurn,
			p.RetreatedThisTurn, p.StadiumPlayedThisTurn)

		writeZone(h, "deck", &p.Deck, true)
		writeZone(h, "hand", &p.Hand, false)
		writeZone(h, "discard", &p.Discard, true)
		writeZone(h, "prizes", &p.Prizes, false)

		writeInstance(h, "active", p.Board.Active)
		fmt.Fprintf(h, "bench:%d max:%d\n", len(p.Board.Bench), p.Board.MaxBench)
		for _, pk := range p.Board.Bench {
			writeInstance(h, "benched", pk)
		}
	}

	writeInstance(h, "stadium", s.Stadium)

	effectIDs := make([]string, 0, len(s.ActiveEffects))
	byID := make(map[string]string, len(s.ActiveEffects))
	for _, eff := range s.ActiveEffects {
		effectIDs = append(effectIDs, eff.ID)
		byID[eff.ID] = fmt.Sprintf("effect:%s name:%s source:%s turns:%d/%d",
			eff.ID, eff.Name, eff.SourceCardID, eff.TurnsElapsed, eff.DurationTurns)
	}
	sort.Strings(effectIDs)
	for _, id := range effectIDs {
		fmt.Fprintln(h, byID[id])
	}

	for _, step := range s.ResolutionStack {
		fmt.Fprintf(h, "step:%s player:%d purpose:%s selected:%v target:%s\n",
			step.Type, step.Player, step.Purpose, step.SelectedCardIDs, step.SelectedTargetID)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// writeZone renders a zone's card ids. Order-carrying zones keep their
// order; unordered zones are sorted so physical shuffling of face-down
// piles never changes the checksum of equal contents.
func writeZone(w io.Writer, name string, z *Zone, ordered bool) {
	ids := make([]string, len(z.Cards))
	for i, c := range z.Cards {
		ids[i] = c.ID
	}
	if !ordered {
		sort.Strings(ids)
	}
	fmt.Fprintf(w, "%s:%v\n", name, ids)
}

func writeInstance(w io.Writer, role string, c *CardInstance) {
	if c == nil {
		fmt.Fprintf(w, "%s:-\n", role)
		return
	}
	statuses := make([]string, 0, len(c.StatusConditions))
	for s := range c.StatusConditions {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	energyIDs := make([]string, len(c.AttachedEnergy))
	for i, en := range c.AttachedEnergy {
		energyIDs[i] = en.ID
	}
	toolIDs := make([]string, len(c.AttachedTools))
	for i, t := range c.AttachedTools {
		toolIDs[i] = t.ID
	}

	fmt.Fprintf(w, "%s:%s card:%s dmg:%d status:%v energy:%v tools:%v turns:%d evolved:%t\n",
		role, c.ID, c.CardID, c.DamageCounters, statuses, energyIDs, toolIDs,
		c.TurnsInPlay, c.EvolvedThisTurn)
	for _, prev := range c.PreviousStages {
		writeInstance(w, "under", prev)
	}
}
