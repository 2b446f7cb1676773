package catan

import (
	"catan-server/internal/coord"

	"github.com/katalvlaran/lvlath/graph/core"
)

// roadNetwork builds an undirected graph of one player's roads, vertices
// keyed by their canonical serialization, for the longest-road DFS below.
func roadNetwork(state GameState, playerID string) *core.Graph {
	g := core.NewGraph()
	for e, owner := range state.Roads {
		if owner != playerID {
			continue
		}
		ends := coord.EdgeVertices(e)
		a, b := ends[0].String(), ends[1].String()
		if !g.HasVertex(a) {
			_ = g.AddVertex(a)
		}
		if !g.HasVertex(b) {
			_ = g.AddVertex(b)
		}
		_, _ = g.AddEdge(a, b, 1)
	}
	return g
}

// blockedVertices reports, for each vertex string key, whether an enemy of
// playerID owns a building there — traversal through such a vertex is
// forbidden, per the "enemy buildings cut the road" rule.
func blockedVertices(state GameState, playerID string) map[string]bool {
	blocked := make(map[string]bool)
	for v, b := range state.Buildings {
		if b.Owner != playerID {
			blocked[v.String()] = true
		}
	}
	return blocked
}

// longestRoadLength returns the length of the longest simple edge-disjoint
// path through playerID's road network, halting traversal at any vertex
// owned by another player. lvlath's graph gives vertex/neighbor lookups;
// the edge-disjoint longest-path search itself isn't something the
// library's DFS package provides directly (it detects cycles and walks a
// single unweighted DFS order), so it's implemented here directly on top
// of core.Graph's adjacency.
func longestRoadLength(state GameState, playerID string) int {
	g := roadNetwork(state, playerID)
	blocked := blockedVertices(state, playerID)

	best := 0
	for _, v := range g.Vertices() {
		if blocked[v] {
			continue
		}
		visited := map[[2]string]bool{}
		length := longestFrom(g, v, blocked, visited)
		if length > best {
			best = length
		}
	}
	return best
}

func edgeKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

// longestFrom runs a DFS from v, tracking used edges (not vertices) so the
// path may revisit a vertex via a different edge but never reuse the same
// road twice, and never continuing through a vertex the enemy occupies.
func longestFrom(g *core.Graph, v string, blocked map[string]bool, used map[[2]string]bool) int {
	neighborIDs, err := g.NeighborIDs(v)
	if err != nil {
		return 0
	}
	best := 0
	for _, n := range neighborIDs {
		key := edgeKey(v, n)
		if used[key] {
			continue
		}
		if blocked[n] {
			// The edge into n is still usable (it was built before n was
			// settled by an enemy), but the path cannot continue past n.
			if 1 > best {
				best = 1
			}
			continue
		}
		used[key] = true
		length := 1 + longestFrom(g, n, blocked, used)
		used[key] = false
		if length > best {
			best = length
		}
	}
	return best
}

// recomputeLongestRoad refreshes every player's LongestRoadLength and
// re-adjudicates the longest-road bonus holder, applying the transfer
// rules verbatim: the incumbent keeps the bonus while tied for or ahead of
// the new max; a strict unique surpasser takes it; if the incumbent's own
// length drops and the new max is tied among multiple players, nobody
// holds it.
func recomputeLongestRoad(state *GameState) {
	const threshold = 5

	lengths := make([]int, len(state.Players))
	maxLen := 0
	for i, p := range state.Players {
		l := longestRoadLength(*state, p.ID)
		lengths[i] = l
		state.Players[i].LongestRoadLength = l
		if l > maxLen {
			maxLen = l
		}
	}

	incumbent := -1
	for i, p := range state.Players {
		if p.LongestRoad {
			incumbent = i
		}
	}

	if maxLen < threshold {
		if incumbent != -1 {
			state.Players[incumbent].LongestRoad = false
		}
		return
	}

	var topHolders []int
	for i, l := range lengths {
		if l == maxLen {
			topHolders = append(topHolders, i)
		}
	}

	if incumbent != -1 && lengths[incumbent] == maxLen {
		return // tied for or still at the max: keeps the bonus
	}

	if len(topHolders) == 1 {
		if incumbent != -1 {
			state.Players[incumbent].LongestRoad = false
		}
		state.Players[topHolders[0]].LongestRoad = true
		state.logEvent("longest_road_awarded", state.Players[topHolders[0]].Name+" took the longest road bonus")
		return
	}

	// Multiple players tie at the new max and the incumbent isn't among
	// them (or there is no incumbent): nobody holds the bonus.
	if incumbent != -1 {
		state.Players[incumbent].LongestRoad = false
	}
}
