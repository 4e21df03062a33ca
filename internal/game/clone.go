package game

// Clone returns a deep copy of the state built by explicit field-by-field
// reconstruction. Every mutable collection and nested instance is copied;
// strings, enums and numbers are referenced as-is. The clone shares no
// mutable memory with the original, which is what lets search workers own
// independent states without locking.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		ID:             s.ID,
		TurnCount:      s.TurnCount,
		ActivePlayer:   s.ActivePlayer,
		StartingPlayer: s.StartingPlayer,
		Phase:          s.Phase,
		Result:         s.Result,
		WinnerID:       s.WinnerID,
		CleanupTicked:  s.CleanupTicked,
		RandomSeed:     s.RandomSeed,

		TurnMetadata:     s.TurnMetadata,
		LastTurnMetadata: s.LastTurnMetadata,
	}

	for i, p := range s.Players {
		out.Players[i] = clonePlayerState(p)
	}

	if s.Stadium != nil {
		out.Stadium = cloneCardInstance(s.Stadium)
	}

	for _, e := range s.ActiveEffects {
		out.ActiveEffects = append(out.ActiveEffects, e.Clone())
	}

	for _, step := range s.ResolutionStack {
		out.ResolutionStack = append(out.ResolutionStack, step.Clone())
	}

	// Actions are value types with no mutable internals beyond the slice
	// itself.
	if len(s.MoveHistory) > 0 {
		out.MoveHistory = make([]Action, len(s.MoveHistory))
		copy(out.MoveHistory, s.MoveHistory)
	}

	return out
}

func clonePlayerState(p *PlayerState) *PlayerState {
	out := &PlayerState{
		Index: p.Index,
		Name:  p.Name,

		Deck:    cloneZone(p.Deck),
		Hand:    cloneZone(p.Hand),
		Discard: cloneZone(p.Discard),
		Prizes:  cloneZone(p.Prizes),
		Board:   cloneBoard(p.Board),

		EnergyAttachedThisTurn:  p.EnergyAttachedThisTurn,
		SupporterPlayedThisTurn: p.SupporterPlayedThisTurn,
		RetreatedThisTurn:       p.RetreatedThisTurn,
		StadiumPlayedThisTurn:   p.StadiumPlayedThisTurn,

		PrizesTaken:     p.PrizesTaken,
		MulliganCredits: p.MulliganCredits,
		HasSearchedDeck: p.HasSearchedDeck,
	}

	out.InitialDeckCounts = make(map[string]int, len(p.InitialDeckCounts))
	for name, n := range p.InitialDeckCounts {
		out.InitialDeckCounts[name] = n
	}
	out.FunctionalIDMap = make(map[string]string, len(p.FunctionalIDMap))
	for id, fid := range p.FunctionalIDMap {
		out.FunctionalIDMap[id] = fid
	}

	return out
}

func cloneZone(z Zone) Zone {
	out := Zone{Ordered: z.Ordered, Hidden: z.Hidden, Private: z.Private}
	if len(z.Cards) > 0 {
		out.Cards = make([]*CardInstance, len(z.Cards))
		for i, c := range z.Cards {
			out.Cards[i] = cloneCardInstance(c)
		}
	}
	return out
}

func cloneBoard(b Board) Board {
	out := Board{MaxBench: b.MaxBench}
	if b.Active != nil {
		out.Active = cloneCardInstance(b.Active)
	}
	if len(b.Bench) > 0 {
		out.Bench = make([]*CardInstance, len(b.Bench))
		for i, p := range b.Bench {
			out.Bench[i] = cloneCardInstance(p)
		}
	}
	return out
}

func cloneCardInstance(c *CardInstance) *CardInstance {
	out := &CardInstance{
		ID:              c.ID,
		CardID:          c.CardID,
		Owner:           c.Owner,
		DamageCounters:  c.DamageCounters,
		TurnsInPlay:     c.TurnsInPlay,
		EvolvedThisTurn: c.EvolvedThisTurn,
	}

	out.StatusConditions = make(map[StatusCondition]bool, len(c.StatusConditions))
	for s := range c.StatusConditions {
		out.StatusConditions[s] = true
	}
	out.AbilitiesUsedThisTurn = make(map[string]bool, len(c.AbilitiesUsedThisTurn))
	for name := range c.AbilitiesUsedThisTurn {
		out.AbilitiesUsedThisTurn[name] = true
	}

	if len(c.AttachedEnergy) > 0 {
		out.AttachedEnergy = make([]*CardInstance, len(c.AttachedEnergy))
		for i, e := range c.AttachedEnergy {
			out.AttachedEnergy[i] = cloneCardInstance(e)
		}
	}
	if len(c.AttachedTools) > 0 {
		out.AttachedTools = make([]*CardInstance, len(c.AttachedTools))
		for i, t := range c.AttachedTools {
			out.AttachedTools[i] = cloneCardInstance(t)
		}
	}
	if len(c.PreviousStages) > 0 {
		out.PreviousStages = make([]*CardInstance, len(c.PreviousStages))
		for i, p := range c.PreviousStages {
			out.PreviousStages[i] = cloneCardInstance(p)
		}
	}

	out.EvolutionChain = append([]string(nil), c.EvolutionChain...)
	out.AttackEffects = append([]string(nil), c.AttackEffects...)

	return out
}
