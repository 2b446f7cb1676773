package catan

func handleBuyDevCard(state GameState, actorID string) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	if len(state.DevDeck) == 0 {
		return state, reject("the development card deck is empty")
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if !p.Resources.Covers(devCardCost) {
		return state, reject("not enough resources for a development card")
	}

	p.Resources = p.Resources.Minus(devCardCost)
	card := DevCard{Type: state.DevDeck[0], TurnAcquired: state.Turn.TurnNumber}
	state.DevDeck = state.DevDeck[1:]
	p.DevCards = append(p.DevCards, card)
	state.Players[pIdx] = p
	state.Bank = state.Bank.Plus(devCardCost)
	state.Turn.DevCardBoughtTurn = true
	state.logEvent("dev_card_bought", p.Name+" bought a development card")
	return state, nil
}

// findPlayableCard locates the first card of kind owned by actorID that
// was not acquired this turn, rejecting if none qualifies or a card has
// already been played this turn.
func findPlayableCard(state GameState, actorID string, kind DevCardType) (int, error) {
	if state.Turn.DevCardPlayedTurn {
		return -1, reject("you have already played a development card this turn")
	}
	p := state.mustPlayer(actorID)
	for i, c := range p.DevCards {
		if c.Type == kind && c.TurnAcquired != state.Turn.TurnNumber {
			return i, nil
		}
	}
	return -1, reject("you don't hold a playable card of that kind")
}

func removeDevCard(state *GameState, pIdx, cardIdx int) {
	p := state.Players[pIdx]
	p.DevCards = append(p.DevCards[:cardIdx], p.DevCards[cardIdx+1:]...)
	state.Players[pIdx] = p
}

func handlePlayKnight(state GameState, actorID string, action Action) (GameState, error) {
	if state.Turn.MainSubPhase != MainRollDice && state.Turn.MainSubPhase != MainTradeBuildPlay {
		return state, reject("a knight can only be played before rolling or during trade/build/play")
	}
	cardIdx, err := findPlayableCard(state, actorID, Knight)
	if err != nil {
		return state, err
	}

	pIdx := state.playerIndex(actorID)
	removeDevCard(&state, pIdx, cardIdx)
	state.Turn.DevCardPlayedTurn = true
	p := state.Players[pIdx]
	p.KnightsPlayed++
	state.Players[pIdx] = p
	state.logEvent("knight_played", p.Name+" played a knight")
	recomputeLargestArmy(&state)

	return resolveRobberMove(state, action.Hex, actorID)
}

func handlePlayRoadBuilding(state GameState, actorID string) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	cardIdx, err := findPlayableCard(state, actorID, RoadBuilding)
	if err != nil {
		return state, err
	}

	pIdx := state.playerIndex(actorID)
	removeDevCard(&state, pIdx, cardIdx)
	state.Turn.DevCardPlayedTurn = true

	p := state.Players[pIdx]
	left := 2
	if p.RoadsLeft < left {
		left = p.RoadsLeft
	}
	state.Turn.RoadBuildingLeft = left
	state.logEvent("road_building_played", p.Name+" played road building")
	return state, nil
}

func handlePlayYearOfPlenty(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	if len(action.Resources) != 2 {
		return state, reject("year of plenty requires exactly two chosen resources")
	}
	cardIdx, err := findPlayableCard(state, actorID, YearOfPlenty)
	if err != nil {
		return state, err
	}

	grant := NewBundle()
	for _, r := range action.Resources {
		grant[r]++
	}
	if !state.Bank.Covers(grant) {
		return state, reject("the bank doesn't have enough of those resources")
	}

	pIdx := state.playerIndex(actorID)
	removeDevCard(&state, pIdx, cardIdx)
	state.Turn.DevCardPlayedTurn = true

	p := state.Players[pIdx]
	p.Resources = p.Resources.Plus(grant)
	state.Players[pIdx] = p
	state.Bank = state.Bank.Minus(grant)
	state.logEvent("year_of_plenty_played", p.Name+" played year of plenty")
	return state, nil
}

func handlePlayMonopoly(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	cardIdx, err := findPlayableCard(state, actorID, Monopoly)
	if err != nil {
		return state, err
	}

	pIdx := state.playerIndex(actorID)
	removeDevCard(&state, pIdx, cardIdx)
	state.Turn.DevCardPlayedTurn = true

	collected := 0
	for i := range state.Players {
		if i == pIdx {
			continue
		}
		n := state.Players[i].Resources[action.Resource]
		if n == 0 {
			continue
		}
		state.Players[i].Resources[action.Resource] = 0
		collected += n
	}
	p := state.Players[pIdx]
	p.Resources[action.Resource] += collected
	state.Players[pIdx] = p
	state.logEvent("monopoly_played", p.Name+" collected "+itoa(collected)+" "+action.Resource.String())
	return state, nil
}
