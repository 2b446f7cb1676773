package catan

import "catan-server/internal/coord"

// PlayerView is what one viewer is allowed to see about a seat: viewerID's
// own seat carries the real Resources/DevCards, every other seat only the
// counts, never the composition.
type PlayerView struct {
	ID    string
	Name  string
	Color string

	ResourceCount int
	Resources     Bundle // nil unless this is the viewer's own seat
	DevCardCount  int
	DevCards      []DevCard // nil unless this is the viewer's own seat

	KnightsPlayed     int
	LongestRoad       bool
	LargestArmy       bool
	LongestRoadLength int

	SettlementsLeft int
	CitiesLeft      int
	RoadsLeft       int

	Ports map[coord.PortKind]bool

	Connected bool
}

// GameStateView is the wire-safe projection of a GameState for one viewer.
type GameStateView struct {
	GameID string
	Board  coord.Board
	Players []PlayerView
	Turn    TurnState

	DevDeckRemaining int
	Trades           []TradeOffer
	Winner           string

	Log  []LogEntry
	Bank Bundle

	Buildings map[coord.Vertex]Building
	Roads     map[coord.Edge]string
}

// Project strips every other player's exact resource and development-card
// holdings down to bare counts, leaving everything else — the board, the
// bank, placed pieces, the public log, and open trade offers — visible to
// every viewer.
func Project(state GameState, viewerID string) GameStateView {
	views := make([]PlayerView, len(state.Players))
	for i, p := range state.Players {
		v := PlayerView{
			ID:                p.ID,
			Name:              p.Name,
			Color:             p.Color,
			ResourceCount:     p.Resources.Total(),
			DevCardCount:      len(p.DevCards),
			KnightsPlayed:     p.KnightsPlayed,
			LongestRoad:       p.LongestRoad,
			LargestArmy:       p.LargestArmy,
			LongestRoadLength: p.LongestRoadLength,
			SettlementsLeft:   p.SettlementsLeft,
			CitiesLeft:        p.CitiesLeft,
			RoadsLeft:         p.RoadsLeft,
			Ports:             p.Ports,
			Connected:         p.Connected,
		}
		if p.ID == viewerID {
			v.Resources = p.Resources.clone()
			v.DevCards = append([]DevCard(nil), p.DevCards...)
		}
		views[i] = v
	}

	return GameStateView{
		GameID:           state.GameID,
		Board:            state.Board,
		Players:          views,
		Turn:             state.Turn,
		DevDeckRemaining: len(state.DevDeck),
		Trades:           state.Trades,
		Winner:           state.Winner,
		Log:              state.Log,
		Bank:             state.Bank,
		Buildings:        state.Buildings,
		Roads:            state.Roads,
	}
}
