package catan

func handleEndTurn(state GameState, actorID string) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}

	for i, t := range state.Trades {
		if t.Proposer == actorID && t.Status == TradeOpen {
			t.Status = TradeCancelled
			state.Trades[i] = t
		}
	}

	next := (state.Turn.CurrentPlayerIndex + 1) % len(state.Players)
	state.Turn.CurrentPlayerIndex = next
	state.Turn.TurnNumber++
	state.Turn.MainSubPhase = MainRollDice
	state.Turn.DiceRoll = nil
	state.Turn.DevCardPlayedTurn = false
	state.Turn.DevCardBoughtTurn = false
	state.Turn.RoadBuildingLeft = 0
	state.Turn.MustStealFrom = nil
	state.logEvent("turn_ended", state.Players[state.playerIndex(actorID)].Name+" ended their turn")
	return state, nil
}
