// Package transport implements the external interfaces: WebSocket framing
// and the JSON message envelopes of spec.md §6, plus the HTTP health and
// metrics routes.
package transport

import (
	"encoding/json"

	"catan-server/internal/catan"
)

// ClientMessage is the inbound tagged-union envelope; only the fields
// relevant to Type are populated.
type ClientMessage struct {
	Type       string `json:"type"`
	PlayerName string `json:"playerName,omitempty"`
	RoomID     string `json:"roomId,omitempty"`
	Token      string `json:"token,omitempty"`
	Message    string `json:"message,omitempty"`

	Action json.RawMessage `json:"action,omitempty"`
}

// wireAction mirrors catan.Action's wire shape; coordinates and bundles
// serialize the way spec.md §6 specifies (string-keyed maps, q/r/s+dir
// objects) rather than catan.Action's internal Go types directly.
type wireAction struct {
	Type string `json:"type"`

	Vertex *wireVertex `json:"vertex,omitempty"`
	Edge   *wireEdge   `json:"edge,omitempty"`
	Hex    *wireHex    `json:"hex,omitempty"`

	Resources      []string       `json:"resources,omitempty"`
	DiscardBundle  map[string]int `json:"discardBundle,omitempty"`
	Resource       string         `json:"resource,omitempty"`
	TargetPlayerID string         `json:"targetPlayerId,omitempty"`

	Offering     map[string]int `json:"offering,omitempty"`
	Requesting   map[string]int `json:"requesting,omitempty"`
	TradeID      string         `json:"tradeId,omitempty"`
	Accept       bool           `json:"accept,omitempty"`
	WithPlayerID string         `json:"withPlayerId,omitempty"`

	Giving    map[string]int `json:"giving,omitempty"`
	Receiving map[string]int `json:"receiving,omitempty"`
}

type wireHex struct {
	Q, R, S int
}

type wireVertex struct {
	Q, R, S int
	Dir     string
}

type wireEdge struct {
	Q, R, S int
	Dir     string
}

func bundleFromWire(m map[string]int) catan.Bundle {
	b := catan.NewBundle()
	for k, v := range m {
		if r, ok := catan.ParseResource(k); ok {
			b[r] = v
		}
	}
	return b
}

// decodeAction parses the embedded action payload into a catan.Action,
// returning an error for any unrecognized resource name so the caller can
// reply with the malformed-frame error kind. The action type is not checked
// here; an unknown type is passed through to the reducer.
func decodeAction(raw json.RawMessage) (catan.Action, error) {
	var w wireAction
	if err := json.Unmarshal(raw, &w); err != nil {
		return catan.Action{}, err
	}
	for _, m := range []map[string]int{w.DiscardBundle, w.Offering, w.Requesting, w.Giving, w.Receiving} {
		for k := range m {
			if _, ok := catan.ParseResource(k); !ok {
				return catan.Action{}, errUnknownResource
			}
		}
	}

	a := catan.Action{Type: catan.ActionType(w.Type)}
	if w.Vertex != nil {
		v, err := parseVertex(*w.Vertex)
		if err != nil {
			return catan.Action{}, err
		}
		a.Vertex = v
	}
	if w.Edge != nil {
		e, err := parseEdge(*w.Edge)
		if err != nil {
			return catan.Action{}, err
		}
		a.Edge = e
	}
	if w.Hex != nil {
		a.Hex = parseHex(*w.Hex)
	}
	for _, r := range w.Resources {
		res, ok := catan.ParseResource(r)
		if !ok {
			return catan.Action{}, errUnknownResource
		}
		a.Resources = append(a.Resources, res)
	}
	if w.DiscardBundle != nil {
		a.DiscardBundle = bundleFromWire(w.DiscardBundle)
	}
	if w.Resource != "" {
		res, ok := catan.ParseResource(w.Resource)
		if !ok {
			return catan.Action{}, errUnknownResource
		}
		a.Resource = res
	}
	a.TargetPlayerID = w.TargetPlayerID
	if w.Offering != nil {
		a.Offering = bundleFromWire(w.Offering)
	}
	if w.Requesting != nil {
		a.Requesting = bundleFromWire(w.Requesting)
	}
	a.TradeID = w.TradeID
	a.Accept = w.Accept
	if w.WithPlayerID != "" {
		a.TargetPlayerID = w.WithPlayerID
	}
	if w.Giving != nil {
		a.Giving = bundleFromWire(w.Giving)
	}
	if w.Receiving != nil {
		a.Receiving = bundleFromWire(w.Receiving)
	}
	return a, nil
}
