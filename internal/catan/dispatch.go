package catan

import "catan-server/internal/coord"

// Dispatch is the pure reducer entry point: the phase-specific handler
// validates the action against a clone of state, and any failure is
// returned as a *RejectionError with the original state completely
// untouched; on success the handler's new state is returned, and every
// transition that leaves the game in MAIN is followed by a victory check.
// Two calls with equal (state, actorID, action) always yield equal
// results, since nothing here reads wall-clock time or global RNG state —
// only state.Seed.
func Dispatch(state GameState, actorID string, action Action) (GameState, error) {
	if state.Turn.Phase == PhaseGameOver {
		return state, reject("the game is over")
	}

	working := state.clone()

	var (
		next GameState
		err  error
	)
	switch state.Turn.Phase {
	case PhaseSetup:
		next, err = dispatchSetup(working, actorID, action)
	case PhaseMain:
		next, err = dispatchMain(working, actorID, action)
	default:
		err = reject("unknown phase")
	}
	if err != nil {
		return state, err
	}

	if next.Turn.Phase == PhaseMain {
		next = checkVictory(next)
	}
	return next, nil
}

// NewGameState creates a fresh game for the given players, generating the
// board and shuffling the dev-card deck from seed. Every player must
// already carry their starting piece counts (see NewPlayer).
func NewGameState(gameID string, players []Player, seed int64) GameState {
	board, seed := coord.GenerateBoard(seed)
	deck, seed := shuffleDevDeck(seed)

	order := snakeOrder(len(players))

	state := GameState{
		GameID:  gameID,
		Board:   board,
		Players: players,
		Turn: TurnState{
			Phase:              PhaseSetup,
			SetupOrder:         order,
			SetupStep:          0,
			SetupSubPhase:      SetupPlaceSettlement,
			PendingDiscards:    map[string]int{},
			TurnNumber:         1,
			CurrentPlayerIndex: order[0],
		},
		DevDeck:   deck,
		Bank:      Bundle{Wood: 19, Brick: 19, Sheep: 19, Wheat: 19, Ore: 19},
		Buildings: map[coord.Vertex]Building{},
		Roads:     map[coord.Edge]string{},
		Seed:      seed,
	}
	return state
}

// snakeOrder builds the setup turn order 0,1,...,n-1,n-1,...,1,0.
func snakeOrder(n int) []int {
	order := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, i)
	}
	return order
}
