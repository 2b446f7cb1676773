package catan

import (
	"testing"

	"catan-server/internal/coord"
)

func newTestState() GameState {
	players := []Player{
		NewPlayer("alice", "Alice", "red"),
		NewPlayer("bob", "Bob", "blue"),
		NewPlayer("carol", "Carol", "green"),
	}
	return NewGameState("game-1", players, 42)
}

func TestNewGameStateSnakeOrder(t *testing.T) {
	s := newTestState()
	want := []int{0, 1, 2, 2, 1, 0}
	if len(s.Turn.SetupOrder) != len(want) {
		t.Fatalf("expected %d setup steps, got %d", len(want), len(s.Turn.SetupOrder))
	}
	for i, v := range want {
		if s.Turn.SetupOrder[i] != v {
			t.Fatalf("setup order[%d] = %d, want %d", i, s.Turn.SetupOrder[i], v)
		}
	}
	if len(s.DevDeck) != 25 {
		t.Fatalf("expected 25 development cards, got %d", len(s.DevDeck))
	}
}

func TestDispatchRejectsWrongTurn(t *testing.T) {
	s := newTestState()
	v := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()
	_, err := Dispatch(s, "bob", Action{Type: ActionPlaceSettlement, Vertex: v})
	if err == nil {
		t.Fatal("expected rejection for acting out of turn")
	}
}

func TestDispatchReturnsOriginalStateOnRejection(t *testing.T) {
	s := newTestState()
	v := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()
	before := s
	next, err := Dispatch(s, "bob", Action{Type: ActionPlaceSettlement, Vertex: v})
	if err == nil {
		t.Fatal("expected rejection")
	}
	if len(next.Buildings) != len(before.Buildings) {
		t.Fatalf("state should be unchanged on rejection")
	}
}

func TestSetupPlacementFlow(t *testing.T) {
	s := newTestState()
	v1 := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()

	s, err := Dispatch(s, "alice", Action{Type: ActionPlaceSettlement, Vertex: v1})
	if err != nil {
		t.Fatalf("unexpected error placing settlement: %v", err)
	}
	if s.Turn.SetupSubPhase != SetupPlaceRoad {
		t.Fatalf("expected to move to road placement")
	}

	t_ := coord.Get()
	edges := t_.VertexAdjacentEdges[v1]
	if len(edges) == 0 {
		t.Fatalf("expected the settlement vertex to have adjacent edges")
	}

	s, err = Dispatch(s, "alice", Action{Type: ActionPlaceRoad, Edge: edges[0]})
	if err != nil {
		t.Fatalf("unexpected error placing road: %v", err)
	}
	if s.Turn.CurrentPlayerIndex != 1 {
		t.Fatalf("expected turn to advance to bob, got index %d", s.Turn.CurrentPlayerIndex)
	}
}

func TestSetupDistanceRuleRejectsAdjacentSettlement(t *testing.T) {
	s := newTestState()
	v1 := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()
	s, err := Dispatch(s, "alice", Action{Type: ActionPlaceSettlement, Vertex: v1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t_ := coord.Get()
	adj := t_.VertexAdjacentVertices[v1]
	if len(adj) == 0 {
		t.Fatalf("expected adjacent vertices")
	}

	edges := t_.VertexAdjacentEdges[v1]
	s, err = Dispatch(s, "alice", Action{Type: ActionPlaceRoad, Edge: edges[0]})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Bob tries to settle adjacent to alice's settlement; should be rejected.
	_, err = Dispatch(s, "bob", Action{Type: ActionPlaceSettlement, Vertex: adj[0]})
	if err == nil {
		t.Fatal("expected distance-rule rejection")
	}
}

func TestGameOverRejectsFurtherActions(t *testing.T) {
	s := newTestState()
	s.Turn.Phase = PhaseGameOver
	_, err := Dispatch(s, "alice", Action{Type: ActionEndTurn})
	if err == nil {
		t.Fatal("expected rejection once the game is over")
	}
}
