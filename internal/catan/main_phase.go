package catan

func dispatchMain(state GameState, actorID string, action Action) (GameState, error) {
	switch action.Type {
	case ActionDiscardResources:
		return handleDiscard(state, actorID, action)
	case ActionRespondToTrade:
		return handleRespondToTrade(state, actorID, action)
	}

	current := state.currentPlayer()
	if actorID != current.ID {
		return state, reject("it is not your turn")
	}

	switch action.Type {
	case ActionRollDice:
		return handleRollDice(state)
	case ActionMoveRobber:
		return handleMoveRobber(state, action)
	case ActionSteal:
		return handleSteal(state, action)
	case ActionPlaceSettlement:
		return handlePlaceSettlementMain(state, actorID, action)
	case ActionPlaceRoad:
		return handlePlaceRoadMain(state, actorID, action)
	case ActionPlaceCity:
		return handlePlaceCity(state, actorID, action)
	case ActionBuyDevCard:
		return handleBuyDevCard(state, actorID)
	case ActionPlayKnight:
		return handlePlayKnight(state, actorID, action)
	case ActionPlayRoadBuilding:
		return handlePlayRoadBuilding(state, actorID)
	case ActionPlayYearOfPlenty:
		return handlePlayYearOfPlenty(state, actorID, action)
	case ActionPlayMonopoly:
		return handlePlayMonopoly(state, actorID, action)
	case ActionProposeTrade:
		return handleProposeTrade(state, actorID, action)
	case ActionConfirmTrade:
		return handleConfirmTrade(state, actorID, action)
	case ActionCancelTrade:
		return handleCancelTrade(state, actorID, action)
	case ActionBankTrade:
		return handleBankTrade(state, actorID, action)
	case ActionEndTurn:
		return handleEndTurn(state, actorID)
	default:
		return state, reject("unknown action type")
	}
}

func requireSubPhase(state GameState, want MainSubPhase) error {
	if state.Turn.MainSubPhase != want {
		return reject("that action isn't allowed in the current sub-phase")
	}
	return nil
}
