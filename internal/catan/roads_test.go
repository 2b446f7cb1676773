package catan

import (
	"testing"

	"catan-server/internal/coord"
)

// buildRoadChain grows a simple path of n edges for owner, starting from
// start, by greedily picking an unused edge to an unvisited vertex at each
// step. It returns the vertex path, one longer than the edge count.
func buildRoadChain(t *testing.T, s *GameState, owner string, start coord.Vertex, n int) []coord.Vertex {
	tbl := coord.Get()
	path := []coord.Vertex{start}
	v := start
	for i := 0; i < n; i++ {
		var next coord.Vertex
		found := false
		for _, e := range tbl.VertexAdjacentEdges[v] {
			if _, used := s.Roads[e]; used {
				continue
			}
			ends := coord.EdgeVertices(e)
			other := ends[0]
			if other == v {
				other = ends[1]
			}
			visited := false
			for _, pv := range path {
				if pv == other {
					visited = true
					break
				}
			}
			if visited {
				continue
			}
			s.Roads[e] = owner
			next = other
			found = true
			break
		}
		if !found {
			t.Fatalf("could not extend road chain at step %d", i)
		}
		path = append(path, next)
		v = next
	}
	return path
}

// TestSettlementCleavesLongestRoad matches the rule that an enemy settlement
// built mid-chain shortens the victim's longest road and can strip the
// bonus, since the recompute has to run after a settlement placement, not
// only after a road placement.
func TestSettlementCleavesLongestRoad(t *testing.T) {
	s := newTestState()
	start := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()
	s.Buildings[start] = Building{Kind: Settlement, Owner: "alice"}

	path := buildRoadChain(t, &s, "alice", start, 6)

	recomputeLongestRoad(&s)
	if s.Players[0].LongestRoadLength != 6 {
		t.Fatalf("expected alice's road length to be 6, got %d", s.Players[0].LongestRoadLength)
	}
	if !s.Players[0].LongestRoad {
		t.Fatal("expected alice to hold the longest road bonus at length 6")
	}

	mid := path[3]
	if _, occupied := s.Buildings[mid]; occupied {
		t.Fatalf("expected the cleave vertex to be free before bob settles there")
	}
	s.Buildings[mid] = Building{Kind: Settlement, Owner: "bob"}

	recomputeLongestRoad(&s)
	if s.Players[0].LongestRoadLength != 3 {
		t.Fatalf("expected the cleave to drop alice's longest road to 3, got %d", s.Players[0].LongestRoadLength)
	}
	if s.Players[0].LongestRoad {
		t.Fatal("expected alice to lose the longest road bonus once her chain drops below the threshold")
	}
}

// TestHandlePlaceSettlementMainCallsRecompute pins the wiring itself: a
// direct call into the main-phase settlement handler must invoke the same
// recompute, not just the direct recomputeLongestRoad calls tested above.
func TestHandlePlaceSettlementMainCallsRecompute(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	start := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()
	buildRoadChain(t, &s, "alice", start, 6)
	s.Players[0].RoadsLeft -= 6
	if s.Players[0].LongestRoad {
		t.Fatal("expected LongestRoad unset before the handler runs (sanity check on the fixture)")
	}

	// Place a second, disconnected settlement for alice herself so the
	// handler call below succeeds on its own rules without needing to
	// construct a legal enemy placement; what's under test is only that
	// handlePlaceSettlementMain calls recomputeLongestRoad at all, which a
	// stale LongestRoadLength after the call would reveal.
	v2 := coord.Vertex{Hex: coord.Cube{Q: 2, R: -1, S: -1}, Dir: "N"}.Canonicalize()
	tbl := coord.Get()
	var e2 coord.Edge
	for _, e := range tbl.VertexAdjacentEdges[v2] {
		e2 = e
		break
	}
	s.Roads[e2] = "alice"
	s.Players[0].Resources = settlementCost

	next, err := handlePlaceSettlementMain(s, "alice", Action{Type: ActionPlaceSettlement, Vertex: v2})
	if err != nil {
		t.Fatalf("unexpected error placing alice's second settlement: %v", err)
	}
	// The fixture's road at start plus the 6-edge chain from the same
	// vertex form one 7-edge path through alice's own settlement.
	if next.Players[0].LongestRoadLength != 7 {
		t.Fatalf("expected the handler's recompute to report alice's road length as 7, got %d", next.Players[0].LongestRoadLength)
	}
	if !next.Players[0].LongestRoad {
		t.Fatal("expected the handler's recompute to grant alice the longest road bonus")
	}
}
