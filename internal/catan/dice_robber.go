package catan

import "catan-server/internal/coord"

func handleRollDice(state GameState) (GameState, error) {
	if err := requireSubPhase(state, MainRollDice); err != nil {
		return state, err
	}
	roll, seed := rollDice(state.Seed)
	state.Seed = seed
	state.Turn.DiceRoll = &roll
	state.logEvent("dice_rolled", diceLogDetail(roll))

	if roll.Total == 7 {
		computePendingDiscards(&state)
		if len(state.Turn.PendingDiscards) > 0 {
			state.Turn.MainSubPhase = MainDiscard
		} else {
			state.Turn.MainSubPhase = MainMoveRobber
		}
		return state, nil
	}

	produceResources(&state, roll.Total)
	state.Turn.MainSubPhase = MainTradeBuildPlay
	return state, nil
}

func diceLogDetail(roll DiceRoll) string {
	if roll.Total == 7 {
		return "rolled a 7"
	}
	return "rolled " + itoa(roll.Total)
}

// computePendingDiscards sets the discard requirement (floor(count/2)) for
// every player holding more than seven resource cards.
func computePendingDiscards(state *GameState) {
	for _, p := range state.Players {
		total := p.Resources.Total()
		if total > 7 {
			state.Turn.PendingDiscards[p.ID] = total / 2
		}
	}
}

// produceResources distributes resources for every hex matching diceTotal,
// skipping the desert and whichever hex currently holds the robber, and
// applying the all-or-nothing bank-scarcity rule per resource.
func produceResources(state *GameState, diceTotal int) {
	t := coord.Get()
	claims := make(map[Resource]int)
	owed := make(map[Resource]map[string]int) // resource -> playerID -> amount

	for _, hi := range state.Board.Hexes {
		if hi.Terrain == coord.TerrainDesert || hi.Token != diceTotal {
			continue
		}
		if hi.Hex == state.Board.RobberHex {
			continue
		}
		res := terrainResource[hi.Terrain]
		for _, v := range t.HexVertices[hi.Hex] {
			b, ok := state.Buildings[v]
			if !ok {
				continue
			}
			n := 1
			if b.Kind == City {
				n = 2
			}
			claims[res] += n
			if owed[res] == nil {
				owed[res] = map[string]int{}
			}
			owed[res][b.Owner] += n
		}
	}

	for res, total := range claims {
		if total > state.Bank[res] {
			state.logEvent("produced", "bank ran short of "+res.String()+"; nobody received any")
			continue
		}
		for pid, n := range owed[res] {
			idx := state.playerIndex(pid)
			state.Players[idx].Resources[res] += n
		}
		state.Bank[res] -= total
	}
}

func handleDiscard(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainDiscard); err != nil {
		return state, err
	}
	required, ok := state.Turn.PendingDiscards[actorID]
	if !ok {
		return state, reject("you have no pending discard")
	}
	bundle := action.DiscardBundle
	if !bundle.NonNegative() {
		return state, reject("discard amounts must be non-negative")
	}
	if bundle.Total() != required {
		return state, reject("discard count doesn't match the required amount")
	}
	idx := state.playerIndex(actorID)
	if !state.Players[idx].Resources.Covers(bundle) {
		return state, reject("you don't hold that many of those resources")
	}

	state.Players[idx].Resources = state.Players[idx].Resources.Minus(bundle)
	state.Bank = state.Bank.Plus(bundle)
	delete(state.Turn.PendingDiscards, actorID)

	if len(state.Turn.PendingDiscards) == 0 {
		state.Turn.MainSubPhase = MainMoveRobber
	}
	return state, nil
}

func handleMoveRobber(state GameState, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainMoveRobber); err != nil {
		return state, err
	}
	return resolveRobberMove(state, action.Hex, state.currentPlayer().ID)
}

// resolveRobberMove relocates the robber and either resolves the steal
// immediately (zero or one candidate) or parks the turn in STEAL awaiting
// a chosen target. afterRobberPhase decides the subphase to land in once
// there's nothing left to steal, and it is used identically whether this
// robber move came from the normal 7-roll flow or from a knight played
// before rolling — the two cases are told apart only by whether DiceRoll
// is nil, not by any extra flag.
func resolveRobberMove(state GameState, hex coord.Cube, moverID string) (GameState, error) {
	if hex == state.Board.RobberHex {
		return state, reject("the robber must move to a different hex")
	}
	if !isBoardHex(state, hex) {
		return state, reject("that hex is not on the board")
	}
	state.Board.RobberHex = hex
	state.logEvent("robber_moved", "robber moved to a new hex")

	candidates := stealCandidates(state, hex, moverID)
	state.Turn.MustStealFrom = candidates

	switch len(candidates) {
	case 0:
		state.Turn.MainSubPhase = afterRobberPhase(state)
	case 1:
		return doSteal(state, moverID, candidates[0])
	default:
		state.Turn.MainSubPhase = MainSteal
	}
	return state, nil
}

func isBoardHex(state GameState, hex coord.Cube) bool {
	for _, hi := range state.Board.Hexes {
		if hi.Hex == hex {
			return true
		}
	}
	return false
}

func stealCandidates(state GameState, hex coord.Cube, moverID string) []string {
	t := coord.Get()
	seen := map[string]bool{}
	var out []string
	for _, v := range t.HexVertices[hex] {
		b, ok := state.Buildings[v]
		if !ok || b.Owner == moverID || seen[b.Owner] {
			continue
		}
		if state.mustPlayer(b.Owner).Resources.Total() == 0 {
			continue
		}
		seen[b.Owner] = true
		out = append(out, b.Owner)
	}
	return out
}

func handleSteal(state GameState, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainSteal); err != nil {
		return state, err
	}
	valid := false
	for _, c := range state.Turn.MustStealFrom {
		if c == action.TargetPlayerID {
			valid = true
			break
		}
	}
	if !valid {
		return state, reject("that player is not a valid steal target")
	}
	return doSteal(state, state.currentPlayer().ID, action.TargetPlayerID)
}

func doSteal(state GameState, moverID, targetID string) (GameState, error) {
	moverIdx := state.playerIndex(moverID)
	targetIdx := state.playerIndex(targetID)

	res, seed, ok := pickStolenResource(state.Players[targetIdx].Resources, state.Seed)
	state.Seed = seed
	if ok {
		state.Players[targetIdx].Resources[res]--
		state.Players[moverIdx].Resources[res]++
		state.logEvent("stole", state.Players[moverIdx].Name+" stole from "+state.Players[targetIdx].Name)
	}
	state.Turn.MustStealFrom = nil
	state.Turn.MainSubPhase = afterRobberPhase(state)
	return state, nil
}

// afterRobberPhase is the shared landing subphase once the robber/steal
// flow finishes: back to ROLL_DICE if this move preceded the dice roll
// (a knight played during ROLL_DICE), otherwise TRADE_BUILD_PLAY.
func afterRobberPhase(state GameState) MainSubPhase {
	if state.Turn.DiceRoll == nil {
		return MainRollDice
	}
	return MainTradeBuildPlay
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
