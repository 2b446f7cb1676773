package coord

import "testing"

func TestVertexCanonicalizeIdempotent(t *testing.T) {
	v, err := ParseVertex(1, -1, 0, "S")
	if err != nil {
		t.Fatalf("ParseVertex: %v", err)
	}
	once := v.Canonicalize()
	twice := once.Canonicalize()
	if once != twice {
		t.Fatalf("canonicalize not idempotent: %v != %v", once, twice)
	}
}

func TestVertexRoundTrip(t *testing.T) {
	v, err := ParseVertex(0, 0, 0, "N")
	if err != nil {
		t.Fatalf("ParseVertex: %v", err)
	}
	parsed, err := ParseVertex(v.Hex.Q, v.Hex.R, v.Hex.S, v.Dir)
	if err != nil {
		t.Fatalf("ParseVertex round trip: %v", err)
	}
	if parsed != v {
		t.Fatalf("round trip mismatch: got %v want %v", parsed, v)
	}
}

func TestEdgeCanonicalizeIdempotent(t *testing.T) {
	e, err := ParseEdge(0, 0, 0, "NE")
	if err != nil {
		t.Fatalf("ParseEdge: %v", err)
	}
	once := e.Canonicalize()
	twice := once.Canonicalize()
	if once != twice {
		t.Fatalf("canonicalize not idempotent: %v != %v", once, twice)
	}
}

func TestCanonicalVertexAgreesAcrossTouchingHexes(t *testing.T) {
	h := Cube{Q: 0, R: 0, S: 0}
	for i := 0; i < 6; i++ {
		v := CanonicalVertex(h, i)
		// Re-derive the same vertex from each of its other touching hexes
		// and confirm they all agree on the canonical choice.
		for _, hc := range v.touchingCandidates() {
			found := false
			for j := 0; j < 6; j++ {
				if CanonicalVertex(hc, j) == v {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("vertex %v not reproduced from touching hex %v", v, hc)
			}
		}
	}
}

func TestCanonicalEdgeAgreesFromBothSides(t *testing.T) {
	h := Cube{Q: 0, R: 0, S: 0}
	for i := 0; i < 6; i++ {
		e := CanonicalEdge(h, i)
		n := h.Neighbor(i)
		found := false
		for j := 0; j < 6; j++ {
			if CanonicalEdge(n, j) == e {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("edge %v from hex %v not reproduced from neighbor %v", e, h, n)
		}
	}
}

func TestDistance(t *testing.T) {
	a := Cube{Q: 0, R: 0, S: 0}
	b := Cube{Q: 2, R: -1, S: -1}
	if got := Distance(a, b); got != 2 {
		t.Fatalf("Distance = %d, want 2", got)
	}
}

func TestParseVertexRejectsBadCube(t *testing.T) {
	if _, err := ParseVertex(1, 1, 1, "N"); err == nil {
		t.Fatalf("expected error for non-zero-sum cube coordinate")
	}
}

func TestParseVertexRejectsBadDir(t *testing.T) {
	if _, err := ParseVertex(0, 0, 0, "NE"); err == nil {
		t.Fatalf("expected error for vertex dir NE")
	}
}

func TestParseEdgeRejectsBadDir(t *testing.T) {
	if _, err := ParseEdge(0, 0, 0, "N"); err == nil {
		t.Fatalf("expected error for edge dir N")
	}
}
