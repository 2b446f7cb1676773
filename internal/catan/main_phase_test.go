package catan

import (
	"testing"

	"catan-server/internal/coord"
)

// newMainPhaseState builds a three-player game already past setup, with
// alice holding one settlement and the one road adjacent to it, so
// main-phase handlers can be exercised directly without replaying setup.
func newMainPhaseState(t *testing.T) (GameState, coord.Vertex, coord.Edge) {
	s := newTestState()
	s.Turn.Phase = PhaseMain
	s.Turn.MainSubPhase = MainTradeBuildPlay
	s.Turn.CurrentPlayerIndex = 0
	s.Turn.TurnNumber = 3

	v := coord.Vertex{Hex: coord.Cube{Q: 0, R: 0, S: 0}, Dir: "N"}.Canonicalize()
	tbl := coord.Get()
	edges := tbl.VertexAdjacentEdges[v]
	if len(edges) == 0 {
		t.Fatalf("expected adjacent edges for test fixture vertex")
	}
	e := edges[0]

	s.Buildings[v] = Building{Kind: Settlement, Owner: "alice"}
	s.Roads[e] = "alice"
	s.Players[0].SettlementsLeft--
	s.Players[0].RoadsLeft--
	return s, v, e
}

func TestHandleRollDiceNonSevenProducesAndAdvances(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Turn.MainSubPhase = MainRollDice
	// Force a deterministic non-seven by trying seeds until one lands; the
	// handler itself is what's under test, not the specific roll.
	for i := int64(0); i < 200; i++ {
		s.Seed = i
		next, err := Dispatch(s, "alice", Action{Type: ActionRollDice})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Turn.DiceRoll == nil {
			t.Fatalf("expected a dice roll to be recorded")
		}
		if next.Turn.DiceRoll.Total == 7 {
			if next.Turn.MainSubPhase != MainDiscard && next.Turn.MainSubPhase != MainMoveRobber {
				t.Fatalf("expected discard or move-robber after a seven")
			}
			continue
		}
		if next.Turn.MainSubPhase != MainTradeBuildPlay {
			t.Fatalf("expected trade/build/play after a non-seven roll, got %v", next.Turn.MainSubPhase)
		}
		return
	}
}

func TestHandleBuyDevCard(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Players[0].Resources = Bundle{Sheep: 1, Wheat: 1, Ore: 1}

	next, err := Dispatch(s, "alice", Action{Type: ActionBuyDevCard})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.Players[0].DevCards) != 1 {
		t.Fatalf("expected one development card, got %d", len(next.Players[0].DevCards))
	}
	if next.Players[0].Resources.Total() != 0 {
		t.Fatalf("expected resources spent")
	}
	if len(next.DevDeck) != len(s.DevDeck)-1 {
		t.Fatalf("expected the deck to shrink by one")
	}
}

func TestHandleBuyDevCardRejectsInsufficientResources(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	_, err := Dispatch(s, "alice", Action{Type: ActionBuyDevCard})
	if err == nil {
		t.Fatal("expected rejection for insufficient resources")
	}
}

func TestHandlePlaceRoadRequiresConnectivity(t *testing.T) {
	s, v, _ := newMainPhaseState(t)
	s.Players[0].Resources = Bundle{Wood: 4, Brick: 4}

	tbl := coord.Get()
	// An edge far from alice's network, touching no road or building of
	// hers, should be rejected.
	farEdge := coord.Edge{Hex: coord.Cube{Q: 2, R: -2, S: 0}, Dir: "E"}.Canonicalize()
	_, err := Dispatch(s, "alice", Action{Type: ActionPlaceRoad, Edge: farEdge})
	if err == nil {
		t.Fatal("expected rejection for a disconnected road")
	}

	// An edge touching her existing settlement should succeed.
	var secondEdge coord.Edge
	for _, e := range tbl.VertexAdjacentEdges[v] {
		if _, occupied := s.Roads[e]; !occupied {
			secondEdge = e
			break
		}
	}
	_, err = Dispatch(s, "alice", Action{Type: ActionPlaceRoad, Edge: secondEdge})
	if err != nil {
		t.Fatalf("unexpected error connecting to an owned settlement: %v", err)
	}
}

func TestHandleBankTradeDefaultRate(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Players[0].Resources = Bundle{Wood: 4}

	next, err := Dispatch(s, "alice", Action{
		Type:      ActionBankTrade,
		Giving:    Bundle{Wood: 4},
		Receiving: Bundle{Ore: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Players[0].Resources[Wood] != 0 || next.Players[0].Resources[Ore] != 1 {
		t.Fatalf("unexpected resources after bank trade: %+v", next.Players[0].Resources)
	}
}

func TestHandleBankTradeRejectsWrongRatio(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Players[0].Resources = Bundle{Wood: 3}

	_, err := Dispatch(s, "alice", Action{
		Type:      ActionBankTrade,
		Giving:    Bundle{Wood: 3},
		Receiving: Bundle{Ore: 1},
	})
	if err == nil {
		t.Fatal("expected rejection for an unsupported 3:1 rate without a port")
	}
}

func TestHandleBankTradeRejectsSameResource(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Players[0].Resources = Bundle{Wood: 4}

	_, err := Dispatch(s, "alice", Action{
		Type:      ActionBankTrade,
		Giving:    Bundle{Wood: 4},
		Receiving: Bundle{Wood: 1},
	})
	if err == nil {
		t.Fatal("expected rejection for trading a resource for itself")
	}
}

func TestHandleBankTradeRejectsMultiCardReceive(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Players[0].Resources = Bundle{Wood: 8}

	_, err := Dispatch(s, "alice", Action{
		Type:      ActionBankTrade,
		Giving:    Bundle{Wood: 8},
		Receiving: Bundle{Ore: 2},
	})
	if err == nil {
		t.Fatal("expected rejection for receiving more than one card")
	}
}

func TestHandlePlayMonopoly(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Players[0].DevCards = []DevCard{{Type: Monopoly, TurnAcquired: 1}}
	s.Players[1].Resources[Sheep] = 3
	s.Players[2].Resources[Sheep] = 2

	next, err := Dispatch(s, "alice", Action{Type: ActionPlayMonopoly, Resource: Sheep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Players[0].Resources[Sheep] != 5 {
		t.Fatalf("expected alice to collect 5 sheep, got %d", next.Players[0].Resources[Sheep])
	}
	if next.Players[1].Resources[Sheep] != 0 || next.Players[2].Resources[Sheep] != 0 {
		t.Fatalf("expected other players to be stripped of sheep")
	}
}

func TestHandleEndTurnAdvancesPlayerAndResetsFlags(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	s.Turn.DevCardPlayedTurn = true
	s.Turn.DiceRoll = &DiceRoll{Die1: 3, Die2: 4, Total: 7}

	next, err := Dispatch(s, "alice", Action{Type: ActionEndTurn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Turn.CurrentPlayerIndex != 1 {
		t.Fatalf("expected turn to pass to bob, got index %d", next.Turn.CurrentPlayerIndex)
	}
	if next.Turn.DevCardPlayedTurn {
		t.Fatalf("expected dev-card-played flag to reset")
	}
	if next.Turn.DiceRoll != nil {
		t.Fatalf("expected dice roll to clear")
	}
	if next.Turn.MainSubPhase != MainRollDice {
		t.Fatalf("expected the new turn to start at roll dice")
	}
}

func TestVictoryOnlyForCurrentPlayer(t *testing.T) {
	s, _, _ := newMainPhaseState(t)
	// Give bob (not the current player) six cities, twelve points, past
	// the ten needed to win; since it isn't bob's turn, no action of
	// alice's should ever crown him.
	for _, v := range coord.Vertices(coord.Cube{Q: 1, R: 0, S: -1}) {
		s.Buildings[v] = Building{Kind: City, Owner: "bob"}
	}
	s.Players[0].Resources = Bundle{Wood: 4}
	next, err := Dispatch(s, "alice", Action{
		Type:      ActionBankTrade,
		Giving:    Bundle{Wood: 4},
		Receiving: Bundle{Ore: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Winner != "" {
		t.Fatalf("bob should not win on alice's turn")
	}
}
