package transport

import (
	"errors"

	"catan-server/internal/coord"
)

var errUnknownResource = errors.New("unknown resource name")

func parseHex(w wireHex) coord.Cube {
	return coord.Cube{Q: w.Q, R: w.R, S: w.S}
}

func parseVertex(w wireVertex) (coord.Vertex, error) {
	v, err := coord.ParseVertex(w.Q, w.R, w.S, w.Dir)
	if err != nil {
		return coord.Vertex{}, err
	}
	return v.Canonicalize(), nil
}

func parseEdge(w wireEdge) (coord.Edge, error) {
	e, err := coord.ParseEdge(w.Q, w.R, w.S, w.Dir)
	if err != nil {
		return coord.Edge{}, err
	}
	return e.Canonicalize(), nil
}
