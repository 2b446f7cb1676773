package catan

import "catan-server/internal/coord"

const genericPortKind = coord.PortGeneric

// portKindFor is the specific port that gives a 2:1 rate on r.
func portKindFor(r Resource) coord.PortKind {
	switch r {
	case Wood:
		return coord.PortWood
	case Brick:
		return coord.PortBrick
	case Sheep:
		return coord.PortSheep
	case Wheat:
		return coord.PortWheat
	default:
		return coord.PortOre
	}
}

func handleProposeTrade(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	if !action.Offering.NonNegative() || !action.Requesting.NonNegative() {
		return state, reject("trade amounts must be non-negative")
	}
	pIdx := state.playerIndex(actorID)
	if !state.Players[pIdx].Resources.Covers(action.Offering) {
		return state, reject("you don't hold what you're offering")
	}

	offer := TradeOffer{
		ID:         "trade-" + itoa(len(state.Trades)+1),
		Proposer:   actorID,
		Offering:   action.Offering.clone(),
		Requesting: action.Requesting.clone(),
		Responses:  map[string]ResponderStatus{},
		Status:     TradeOpen,
	}
	state.Trades = append(state.Trades, offer)
	state.logEvent("trade_proposed", state.Players[pIdx].Name+" proposed a trade")
	return state, nil
}

func findOpenTrade(state GameState, tradeID string) (int, error) {
	for i, t := range state.Trades {
		if t.ID == tradeID {
			if t.Status != TradeOpen {
				return -1, reject("that trade offer is no longer open")
			}
			return i, nil
		}
	}
	return -1, reject("no such trade offer")
}

// handleRespondToTrade is one of the two actions allowed from any player
// regardless of whose turn it is, since any non-proposer may answer an
// open offer on the spot.
func handleRespondToTrade(state GameState, actorID string, action Action) (GameState, error) {
	idx, err := findOpenTrade(state, action.TradeID)
	if err != nil {
		return state, err
	}
	t := state.Trades[idx]
	if actorID == t.Proposer {
		return state, reject("you can't respond to your own trade offer")
	}

	if action.Accept {
		t.Responses[actorID] = ResponseAccepted
	} else {
		t.Responses[actorID] = ResponseRejected
	}
	state.Trades[idx] = t
	return state, nil
}

func handleConfirmTrade(state GameState, actorID string, action Action) (GameState, error) {
	idx, err := findOpenTrade(state, action.TradeID)
	if err != nil {
		return state, err
	}
	t := state.Trades[idx]
	if t.Proposer != actorID {
		return state, reject("only the proposer can confirm a trade")
	}
	if t.Responses[action.TargetPlayerID] != ResponseAccepted {
		return state, reject("that player hasn't accepted the offer")
	}

	proposerIdx := state.playerIndex(t.Proposer)
	partnerIdx := state.playerIndex(action.TargetPlayerID)
	proposer := state.Players[proposerIdx]
	partner := state.Players[partnerIdx]

	if !proposer.Resources.Covers(t.Offering) {
		return state, reject("you no longer hold what you offered")
	}
	if !partner.Resources.Covers(t.Requesting) {
		return state, reject("the other player no longer holds what was requested")
	}

	proposer.Resources = proposer.Resources.Minus(t.Offering).Plus(t.Requesting)
	partner.Resources = partner.Resources.Minus(t.Requesting).Plus(t.Offering)
	state.Players[proposerIdx] = proposer
	state.Players[partnerIdx] = partner

	t.Status = TradeExecuted
	state.Trades[idx] = t
	state.logEvent("trade_executed", proposer.Name+" traded with "+partner.Name)
	return state, nil
}

func handleCancelTrade(state GameState, actorID string, action Action) (GameState, error) {
	idx, err := findOpenTrade(state, action.TradeID)
	if err != nil {
		return state, err
	}
	t := state.Trades[idx]
	if t.Proposer != actorID {
		return state, reject("only the proposer can cancel a trade")
	}
	t.Status = TradeCancelled
	state.Trades[idx] = t
	return state, nil
}

// BestRate returns the most favorable bank/port exchange rate the player
// can use for resource r: 2 with a matching specific port, 3 with a
// generic port, 4 with neither.
func BestRate(state GameState, playerID string, r Resource) int {
	p := state.mustPlayer(playerID)
	if p.Ports[portKindFor(r)] {
		return 2
	}
	if p.Ports[genericPortKind] {
		return 3
	}
	return 4
}

func handleBankTrade(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	var giveRes, getRes Resource
	var giveN, getN, giveKinds, getKinds int
	for r, n := range action.Giving {
		if n != 0 {
			giveRes, giveN = r, n
			giveKinds++
		}
	}
	for r, n := range action.Receiving {
		if n != 0 {
			getRes, getN = r, n
			getKinds++
		}
	}
	if giveKinds != 1 || getKinds != 1 {
		return state, reject("a bank trade must give exactly one resource kind and receive one")
	}
	if giveN <= 0 || getN != 1 {
		return state, reject("a bank trade must receive exactly one card")
	}
	if giveRes == getRes {
		return state, reject("a bank trade must receive a different resource than it gives")
	}

	rate := BestRate(state, actorID, giveRes)
	if giveN != rate {
		return state, reject("that doesn't match your available exchange rate")
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if p.Resources[giveRes] < giveN {
		return state, reject("you don't hold enough of that resource")
	}
	if state.Bank[getRes] < getN {
		return state, reject("the bank doesn't have enough of that resource")
	}

	p.Resources[giveRes] -= giveN
	p.Resources[getRes] += getN
	state.Players[pIdx] = p
	state.Bank[giveRes] += giveN
	state.Bank[getRes] -= getN
	state.logEvent("bank_trade", p.Name+" traded with the bank")
	return state, nil
}
