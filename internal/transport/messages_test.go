package transport

import (
	"encoding/json"
	"testing"

	"catan-server/internal/catan"
)

func TestDecodeActionPlaceSettlement(t *testing.T) {
	raw := json.RawMessage(`{"type":"PLACE_SETTLEMENT","vertex":{"q":0,"r":0,"s":0,"dir":"N"}}`)
	a, err := decodeAction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Type != catan.ActionPlaceSettlement {
		t.Fatalf("expected PLACE_SETTLEMENT, got %s", a.Type)
	}
	if a.Vertex.Dir != "N" && a.Vertex.Dir != "S" {
		t.Fatalf("expected a canonicalized N/S vertex, got %+v", a.Vertex)
	}
}

func TestDecodeActionBankTrade(t *testing.T) {
	raw := json.RawMessage(`{"type":"BANK_TRADE","giving":{"wood":4},"receiving":{"ore":1}}`)
	a, err := decodeAction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Giving[catan.Wood] != 4 {
		t.Fatalf("expected 4 wood offered, got %d", a.Giving[catan.Wood])
	}
	if a.Receiving[catan.Ore] != 1 {
		t.Fatalf("expected 1 ore requested, got %d", a.Receiving[catan.Ore])
	}
}

func TestDecodeActionRejectsUnknownResource(t *testing.T) {
	raw := json.RawMessage(`{"type":"BANK_TRADE","giving":{"unicorn":1}}`)
	if _, err := decodeAction(raw); err == nil {
		t.Fatal("expected an error for an unrecognized resource name")
	}
}

func TestDecodeActionProposeTrade(t *testing.T) {
	raw := json.RawMessage(`{"type":"PROPOSE_TRADE","offering":{"brick":1},"requesting":{"sheep":1}}`)
	a, err := decodeAction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Offering[catan.Brick] != 1 || a.Requesting[catan.Sheep] != 1 {
		t.Fatalf("unexpected bundles: offering=%v requesting=%v", a.Offering, a.Requesting)
	}
}

func TestDecodeActionRespondToTradeUsesWithPlayerID(t *testing.T) {
	raw := json.RawMessage(`{"type":"RESPOND_TO_TRADE","tradeId":"abc","withPlayerId":"p2","accept":true}`)
	a, err := decodeAction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.TradeID != "abc" || !a.Accept || a.TargetPlayerID != "p2" {
		t.Fatalf("unexpected action: %+v", a)
	}
}

func TestClientMessageUnmarshal(t *testing.T) {
	raw := []byte(`{"type":"GAME_ACTION","action":{"type":"END_TURN"}}`)
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Type != "GAME_ACTION" {
		t.Fatalf("expected type GAME_ACTION, got %s", msg.Type)
	}
	a, err := decodeAction(msg.Action)
	if err != nil {
		t.Fatalf("unexpected error decoding nested action: %v", err)
	}
	if a.Type != catan.ActionEndTurn {
		t.Fatalf("expected END_TURN, got %s", a.Type)
	}
}
