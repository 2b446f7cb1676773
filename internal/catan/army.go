package catan

// recomputeLargestArmy applies the same award/transfer rules as longest
// road, keyed on knights played instead of road length, threshold 3.
func recomputeLargestArmy(state *GameState) {
	const threshold = 3

	counts := make([]int, len(state.Players))
	maxCount := 0
	for i, p := range state.Players {
		counts[i] = p.KnightsPlayed
		if p.KnightsPlayed > maxCount {
			maxCount = p.KnightsPlayed
		}
	}

	incumbent := -1
	for i, p := range state.Players {
		if p.LargestArmy {
			incumbent = i
		}
	}

	if maxCount < threshold {
		if incumbent != -1 {
			state.Players[incumbent].LargestArmy = false
		}
		return
	}

	if incumbent != -1 && counts[incumbent] == maxCount {
		return
	}

	var topHolders []int
	for i, c := range counts {
		if c == maxCount {
			topHolders = append(topHolders, i)
		}
	}

	if len(topHolders) == 1 {
		if incumbent != -1 {
			state.Players[incumbent].LargestArmy = false
		}
		state.Players[topHolders[0]].LargestArmy = true
		state.logEvent("largest_army_awarded", state.Players[topHolders[0]].Name+" took the largest army bonus")
		return
	}

	if incumbent != -1 {
		state.Players[incumbent].LargestArmy = false
	}
}
