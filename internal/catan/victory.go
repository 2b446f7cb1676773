package catan

// checkVictory computes the current player's score and, if it has reached
// ten, declares them the winner and ends the game. Only the current
// player is ever checked — another player sitting on a silently-winning
// hand (hidden VP cards) does not trigger a win on someone else's turn.
func checkVictory(state GameState) GameState {
	current := state.currentPlayer()
	if Score(state, current.ID) < 10 {
		return state
	}
	state.Winner = current.ID
	state.Turn.Phase = PhaseGameOver
	state.logEvent("victory", current.Name+" reached 10 victory points")
	return state
}
