// Package coord implements the hex-grid coordinate algebra shared by every
// room: cube-coordinate hexes, canonical vertices and edges, and the
// adjacency tables the rule engine queries to validate placement.
package coord

import "fmt"

// Cube is a cube coordinate satisfying Q+R+S == 0.
type Cube struct {
	Q, R, S int
}

// NewCube builds a Cube from q,r and derives s.
func NewCube(q, r int) Cube {
	return Cube{Q: q, R: r, S: -q - r}
}

func (c Cube) add(d Cube) Cube {
	return Cube{Q: c.Q + d.Q, R: c.R + d.R, S: c.S + d.S}
}

func (c Cube) String() string {
	return fmt.Sprintf("%d,%d,%d", c.Q, c.R, c.S)
}

// Less defines the lexicographic order over cube coordinates used to pick
// canonical representatives.
func (c Cube) Less(o Cube) bool {
	if c.Q != o.Q {
		return c.Q < o.Q
	}
	if c.R != o.R {
		return c.R < o.R
	}
	return c.S < o.S
}

// dirNames indexes the six neighbor directions of a pointy-top hex grid.
// Corner and edge canonicalization below is derived algebraically from this
// fixed indexing; changing the order changes which directions are "primary".
const (
	dirE = iota
	dirNE
	dirNW
	dirW
	dirSW
	dirSE
)

var dirs = [6]Cube{
	dirE:  {Q: 1, R: 0, S: -1},
	dirNE: {Q: 1, R: -1, S: 0},
	dirNW: {Q: 0, R: -1, S: 1},
	dirW:  {Q: -1, R: 0, S: 1},
	dirSW: {Q: -1, R: 1, S: 0},
	dirSE: {Q: 0, R: 1, S: -1},
}

var dirNames = [6]string{"E", "NE", "NW", "W", "SW", "SE"}

// cornerNames[i] is the compass label of the corner lying between
// dirs[i] and dirs[(i+1)%6].
var cornerNames = [6]string{"NE", "N", "NW", "SW", "S", "SE"}

func cornerIndex(name string) int {
	for i, n := range cornerNames {
		if n == name {
			return i
		}
	}
	return -1
}

func edgeDirIndex(name string) int {
	for i, n := range dirNames {
		if n == name {
			return i
		}
	}
	return -1
}

// Neighbor returns the hex adjacent to h in the given direction index.
func (c Cube) Neighbor(dirIdx int) Cube {
	return c.add(dirs[dirIdx])
}

// Neighbors returns all six adjacent hexes in direction order E,NE,NW,W,SW,SE.
func (c Cube) Neighbors() [6]Cube {
	var out [6]Cube
	for i := range dirs {
		out[i] = c.add(dirs[i])
	}
	return out
}

// Distance returns the hex distance between two cube coordinates.
func Distance(a, b Cube) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S - b.S)
	return max3(dq, dr, ds)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// Vertex is the canonical representation of a hex-grid intersection:
// a hex coordinate and which of its two primary corners (N or S) it names.
// Canonicalize is the only supported way to construct one from a raw
// (hex, arbitrary corner) reference.
type Vertex struct {
	Hex Cube
	Dir string // "N" or "S"
}

func (v Vertex) String() string {
	return fmt.Sprintf("%d,%d,%d,%s", v.Hex.Q, v.Hex.R, v.Hex.S, v.Dir)
}

func (v Vertex) less(o Vertex) bool {
	if v.Hex != o.Hex {
		return v.Hex.Less(o.Hex)
	}
	return v.Dir < o.Dir
}

// nonPrimaryVertexRewrite maps the four non-canonical corner indices to the
// neighbor-direction to shift through and the resulting primary corner
// index on that neighbor. Derived from the centroid identity
// corner_i(H) == corner_{(i+2)%6}(H+dirs[i]) == corner_{(i+4)%6}(H+dirs[(i+1)%6]):
// each non-primary corner equals the N or S corner of exactly one neighbor.
var nonPrimaryVertexRewrite = map[int]struct {
	shift  int
	target int
}{
	0: {shift: dirNE, target: 4}, // NE corner of H == S corner of H's NE neighbor
	2: {shift: dirNW, target: 4}, // NW corner of H == S corner of H's NW neighbor
	3: {shift: dirSW, target: 1}, // SW corner of H == N corner of H's SW neighbor
	5: {shift: dirSE, target: 1}, // SE corner of H == N corner of H's SE neighbor
}

// cornerToVertex rewrites a raw (hex, corner index) reference to its
// canonical-shaped (N/S) form. The result names the same geometric point
// but is not yet the board-wide canonical choice among equivalent forms;
// see Canonicalize.
func cornerToVertex(h Cube, idx int) Vertex {
	if idx == 1 {
		return Vertex{Hex: h, Dir: "N"}
	}
	if idx == 4 {
		return Vertex{Hex: h, Dir: "S"}
	}
	rw, ok := nonPrimaryVertexRewrite[idx]
	if !ok {
		panic(fmt.Sprintf("coord: invalid corner index %d", idx))
	}
	dirName := "N"
	if rw.target == 4 {
		dirName = "S"
	}
	return Vertex{Hex: h.Neighbor(rw.shift), Dir: dirName}
}

// CanonicalVertex resolves the raw corner idx of hex h to the board's
// canonical Vertex for that intersection: the lexicographically smallest
// of the up to three equivalent representations contributed by the hexes
// that meet at this point.
func CanonicalVertex(h Cube, idx int) Vertex {
	touching := [3]struct {
		hex Cube
		idx int
	}{
		{hex: h, idx: idx},
		{hex: h.Neighbor(idx), idx: (idx + 2) % 6},
		{hex: h.Neighbor((idx + 1) % 6), idx: (idx + 4) % 6},
	}
	best := cornerToVertex(touching[0].hex, touching[0].idx)
	for _, t := range touching[1:] {
		cand := cornerToVertex(t.hex, t.idx)
		if cand.less(best) {
			best = cand
		}
	}
	return best
}

// Canonicalize re-derives the canonical form of a Vertex that may already
// be in N/S shape but might not be the lexicographically smallest of its
// equivalents (e.g. when parsed from client input). It is idempotent.
func (v Vertex) Canonicalize() Vertex {
	idx := cornerIndex(v.Dir)
	if idx != 1 && idx != 4 {
		panic(fmt.Sprintf("coord: vertex dir must be N or S, got %q", v.Dir))
	}
	return CanonicalVertex(v.Hex, idx)
}

// ParseVertex parses the wire form {q,r,s,dir} and canonicalizes it.
func ParseVertex(q, r, s int, dir string) (Vertex, error) {
	if q+r+s != 0 {
		return Vertex{}, fmt.Errorf("coord: invalid cube coordinate %d,%d,%d", q, r, s)
	}
	if dir != "N" && dir != "S" {
		return Vertex{}, fmt.Errorf("coord: invalid vertex direction %q", dir)
	}
	return Vertex{Hex: Cube{Q: q, R: r, S: s}, Dir: dir}.Canonicalize(), nil
}

// Edge is the canonical representation of a hex side: a hex coordinate and
// one of its three primary directions (NE, E, SE).
type Edge struct {
	Hex Cube
	Dir string
}

func (e Edge) String() string {
	return fmt.Sprintf("%d,%d,%d,%s", e.Hex.Q, e.Hex.R, e.Hex.S, e.Dir)
}

func (e Edge) less(o Edge) bool {
	if e.Hex != o.Hex {
		return e.Hex.Less(o.Hex)
	}
	return e.Dir < o.Dir
}

var oppositeEdgeDir = map[int]int{
	dirE:  dirW,
	dirNE: dirSW,
	dirNW: dirSE,
	dirW:  dirE,
	dirSW: dirNE,
	dirSE: dirNW,
}

func sideToEdge(h Cube, idx int) Edge {
	if idx == dirE || idx == dirNE || idx == dirSE {
		return Edge{Hex: h, Dir: dirNames[idx]}
	}
	opp := oppositeEdgeDir[idx]
	return Edge{Hex: h.Neighbor(idx), Dir: dirNames[opp]}
}

// CanonicalEdge resolves the raw side idx of hex h to the board's
// canonical Edge: the smaller of the (up to two) representations
// contributed by the hexes on either side of the edge.
func CanonicalEdge(h Cube, idx int) Edge {
	best := sideToEdge(h, idx)
	opp := oppositeEdgeDir[idx]
	cand := sideToEdge(h.Neighbor(idx), opp)
	if cand.less(best) {
		best = cand
	}
	return best
}

// Canonicalize re-derives the canonical form of an Edge. Idempotent.
func (e Edge) Canonicalize() Edge {
	idx := edgeDirIndex(e.Dir)
	if idx != dirNE && idx != dirE && idx != dirSE {
		panic(fmt.Sprintf("coord: edge dir must be NE, E or SE, got %q", e.Dir))
	}
	return CanonicalEdge(e.Hex, idx)
}

// ParseEdge parses the wire form {q,r,s,dir} and canonicalizes it.
func ParseEdge(q, r, s int, dir string) (Edge, error) {
	if q+r+s != 0 {
		return Edge{}, fmt.Errorf("coord: invalid cube coordinate %d,%d,%d", q, r, s)
	}
	if dir != "NE" && dir != "E" && dir != "SE" {
		return Edge{}, fmt.Errorf("coord: invalid edge direction %q", dir)
	}
	return Edge{Hex: Cube{Q: q, R: r, S: s}, Dir: dir}.Canonicalize(), nil
}

// Vertices returns the canonical form of all six corners of h, in corner
// index order (NE, N, NW, SW, S, SE per cornerNames).
func Vertices(h Cube) [6]Vertex {
	var out [6]Vertex
	for i := 0; i < 6; i++ {
		out[i] = CanonicalVertex(h, i)
	}
	return out
}

// Edges returns the canonical form of all six sides of h, in direction
// index order (E, NE, NW, W, SW, SE per dirNames).
func Edges(h Cube) [6]Edge {
	var out [6]Edge
	for i := 0; i < 6; i++ {
		out[i] = CanonicalEdge(h, i)
	}
	return out
}

// EdgeVertices returns the two canonical vertices an edge connects. The
// edge toward neighbor dirs[idx] sits between corner_{idx-1} and corner_idx,
// since those are exactly the two corners that also touch that neighbor.
func EdgeVertices(e Edge) [2]Vertex {
	idx := edgeDirIndex(e.Dir)
	return [2]Vertex{
		CanonicalVertex(e.Hex, (idx+5)%6),
		CanonicalVertex(e.Hex, idx),
	}
}
