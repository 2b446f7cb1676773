// Package catan implements the deterministic game-state reducer: the
// seeded board is supplied by internal/coord, and this package owns every
// action-to-state transition, the phase validator, and the per-viewer
// projection that hides information a player shouldn't see.
package catan

import "catan-server/internal/coord"

// Resource is one of the five tradeable commodities.
type Resource int

const (
	Wood Resource = iota
	Brick
	Sheep
	Wheat
	Ore
)

var allResources = [5]Resource{Wood, Brick, Sheep, Wheat, Ore}

func (r Resource) String() string {
	switch r {
	case Wood:
		return "wood"
	case Brick:
		return "brick"
	case Sheep:
		return "sheep"
	case Wheat:
		return "wheat"
	case Ore:
		return "ore"
	default:
		return "unknown"
	}
}

// ParseResource parses the wire-format resource name.
func ParseResource(s string) (Resource, bool) {
	for _, r := range allResources {
		if r.String() == s {
			return r, true
		}
	}
	return 0, false
}

// terrainResource maps a hex's terrain to the resource it produces; the
// desert produces nothing and is filtered out by callers before lookup.
var terrainResource = map[coord.Terrain]Resource{
	coord.TerrainForest:    Wood,
	coord.TerrainHills:     Brick,
	coord.TerrainPasture:   Sheep,
	coord.TerrainFields:    Wheat,
	coord.TerrainMountains: Ore,
}

// Bundle is an immutable-by-convention count of resources; every mutating
// method returns a new Bundle rather than editing the receiver in place,
// matching the reducer's whole-state copy-on-write discipline.
type Bundle map[Resource]int

// NewBundle builds a zeroed bundle with every resource present as a key,
// so callers can range over it without nil-map surprises.
func NewBundle() Bundle {
	b := make(Bundle, 5)
	for _, r := range allResources {
		b[r] = 0
	}
	return b
}

func (b Bundle) clone() Bundle {
	out := make(Bundle, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Plus returns a new bundle with other's counts added.
func (b Bundle) Plus(other Bundle) Bundle {
	out := b.clone()
	for r, n := range other {
		out[r] += n
	}
	return out
}

// Minus returns a new bundle with other's counts subtracted.
func (b Bundle) Minus(other Bundle) Bundle {
	out := b.clone()
	for r, n := range other {
		out[r] -= n
	}
	return out
}

// Covers reports whether b has at least as much of every resource as need.
func (b Bundle) Covers(need Bundle) bool {
	for r, n := range need {
		if b[r] < n {
			return false
		}
	}
	return true
}

// Total is the card count across all resources.
func (b Bundle) Total() int {
	n := 0
	for _, v := range b {
		n += v
	}
	return n
}

// NonNegative reports whether every entry is >= 0.
func (b Bundle) NonNegative() bool {
	for _, v := range b {
		if v < 0 {
			return false
		}
	}
	return true
}

// DevCardType identifies a development card's behavior.
type DevCardType int

const (
	Knight DevCardType = iota
	VictoryPoint
	RoadBuilding
	YearOfPlenty
	Monopoly
)

func (d DevCardType) String() string {
	switch d {
	case Knight:
		return "knight"
	case VictoryPoint:
		return "victory_point"
	case RoadBuilding:
		return "road_building"
	case YearOfPlenty:
		return "year_of_plenty"
	case Monopoly:
		return "monopoly"
	default:
		return "unknown"
	}
}

// DevCard is a single drawn card, stamped with the turn it was acquired so
// the "can't play what you bought this turn" rule can be enforced.
type DevCard struct {
	Type          DevCardType
	TurnAcquired  int
}

// BuildingKind distinguishes a settlement from an upgraded city.
type BuildingKind int

const (
	Settlement BuildingKind = iota
	City
)

// Building occupies a canonical vertex.
type Building struct {
	Kind  BuildingKind
	Owner string
}

// Player is one seat's complete state, including the information that is
// hidden from opponents (Resources, DevCards) — Project strips that for
// every viewer but the player themself.
type Player struct {
	ID    string
	Name  string
	Color string

	Resources Bundle
	DevCards  []DevCard

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

func (p Player) clone() Player {
	np := p
	np.Resources = p.Resources.clone()
	np.DevCards = append([]DevCard(nil), p.DevCards...)
	np.Ports = make(map[coord.PortKind]bool, len(p.Ports))
	for k, v := range p.Ports {
		np.Ports[k] = v
	}
	return np
}

// PublicVP is the score visible to opponents: settlements, cities, and the
// longest-road/largest-army bonuses, but never hidden victory-point cards.
func PublicVP(state GameState, playerID string) int {
	p := state.mustPlayer(playerID)
	settlements, cities := countBuildings(state, playerID)
	vp := settlements*1 + cities*2
	if p.LongestRoad {
		vp += 2
	}
	if p.LargestArmy {
		vp += 2
	}
	return vp
}

// Score is the player's total victory points, including hidden VP cards.
// Only meaningful for the current player per spec (others may not be
// checked for a win on someone else's turn).
func Score(state GameState, playerID string) int {
	p := state.mustPlayer(playerID)
	settlements, cities := countBuildings(state, playerID)
	vp := settlements*1 + cities*2
	if p.LongestRoad {
		vp += 2
	}
	if p.LargestArmy {
		vp += 2
	}
	for _, c := range p.DevCards {
		if c.Type == VictoryPoint {
			vp++
		}
	}
	return vp
}

func countBuildings(state GameState, playerID string) (settlements, cities int) {
	for _, b := range state.Buildings {
		if b.Owner != playerID {
			continue
		}
		if b.Kind == Settlement {
			settlements++
		} else {
			cities++
		}
	}
	return
}

// Phase is the top-level turn-state discriminator.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseMain
	PhaseGameOver
)

// SetupSubPhase discriminates the two steps of a setup turn.
type SetupSubPhase int

const (
	SetupPlaceSettlement SetupSubPhase = iota
	SetupPlaceRoad
)

// MainSubPhase discriminates the steps of a regular turn.
type MainSubPhase int

const (
	MainRollDice MainSubPhase = iota
	MainDiscard
	MainMoveRobber
	MainSteal
	MainTradeBuildPlay
)

// DiceRoll retains both dice faces, not just their sum, so clients can
// render two distinct dice rather than a bare total.
type DiceRoll struct {
	Die1, Die2, Total int
}

// TurnState is the discriminated turn record described in the data model.
type TurnState struct {
	Phase Phase

	// SETUP fields.
	SetupOrder           []int
	SetupStep            int
	SetupSubPhase        SetupSubPhase
	LastSettlementVertex coord.Vertex

	// MAIN fields.
	MainSubPhase       MainSubPhase
	DiceRoll           *DiceRoll
	DevCardPlayedTurn  bool
	DevCardBoughtTurn  bool
	PendingDiscards    map[string]int
	RoadBuildingLeft   int
	MustStealFrom      []string

	TurnNumber         int
	CurrentPlayerIndex int
}

func (t TurnState) clone() TurnState {
	nt := t
	nt.SetupOrder = append([]int(nil), t.SetupOrder...)
	nt.PendingDiscards = make(map[string]int, len(t.PendingDiscards))
	for k, v := range t.PendingDiscards {
		nt.PendingDiscards[k] = v
	}
	nt.MustStealFrom = append([]string(nil), t.MustStealFrom...)
	if t.DiceRoll != nil {
		dr := *t.DiceRoll
		nt.DiceRoll = &dr
	}
	return nt
}

// TradeStatus is the lifecycle of a player-to-player trade offer.
type TradeStatus int

const (
	TradeOpen TradeStatus = iota
	TradeExecuted
	TradeCancelled
)

// ResponderStatus is one non-proposer's answer to an open trade offer.
type ResponderStatus int

const (
	ResponsePending ResponderStatus = iota
	ResponseAccepted
	ResponseRejected
)

// TradeOffer is a proposed player-to-player exchange.
type TradeOffer struct {
	ID         string
	Proposer   string
	Offering   Bundle
	Requesting Bundle
	Responses  map[string]ResponderStatus
	Status     TradeStatus
}

func (t TradeOffer) clone() TradeOffer {
	nt := t
	nt.Offering = t.Offering.clone()
	nt.Requesting = t.Requesting.clone()
	nt.Responses = make(map[string]ResponderStatus, len(t.Responses))
	for k, v := range t.Responses {
		nt.Responses[k] = v
	}
	return nt
}

// LogEntry is a structured, machine-filterable event record.
type LogEntry struct {
	Kind   string
	Detail string
}

// GameState is the immutable-by-convention aggregate the entire reducer
// operates on. Every dispatch that succeeds returns a new value; nothing
// in this struct is ever mutated after being handed to a caller.
type GameState struct {
	GameID  string
	Board   coord.Board
	Players []Player
	Turn    TurnState

	DevDeck []DevCardType
	Trades  []TradeOffer
	Winner  string

	Log  []LogEntry
	Bank Bundle

	Buildings map[coord.Vertex]Building
	Roads     map[coord.Edge]string

	Seed int64
}

// NewPlayer seats a player with the starting piece allotment and an empty
// hand, ready to be passed to NewGameState.
func NewPlayer(id, name, color string) Player {
	return Player{
		ID:              id,
		Name:            name,
		Color:           color,
		Resources:       NewBundle(),
		SettlementsLeft: 5,
		CitiesLeft:      4,
		RoadsLeft:       15,
		Ports:           map[coord.PortKind]bool{},
		Connected:       true,
	}
}

func (s GameState) mustPlayer(id string) Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	panic("catan: unknown player id " + id)
}

func (s GameState) playerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s GameState) currentPlayer() Player {
	return s.Players[s.Turn.CurrentPlayerIndex]
}

// clone performs the shallow-but-complete copy every handler starts from:
// every field that dispatch might touch gets a fresh container, so a
// rejected action can simply be discarded without having mutated state.
func (s GameState) clone() GameState {
	ns := s
	ns.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		ns.Players[i] = p.clone()
	}
	ns.Turn = s.Turn.clone()
	ns.DevDeck = append([]DevCardType(nil), s.DevDeck...)
	ns.Trades = make([]TradeOffer, len(s.Trades))
	for i, t := range s.Trades {
		ns.Trades[i] = t.clone()
	}
	ns.Log = append([]LogEntry(nil), s.Log...)
	ns.Bank = s.Bank.clone()
	ns.Buildings = make(map[coord.Vertex]Building, len(s.Buildings))
	for k, v := range s.Buildings {
		ns.Buildings[k] = v
	}
	ns.Roads = make(map[coord.Edge]string, len(s.Roads))
	for k, v := range s.Roads {
		ns.Roads[k] = v
	}
	return ns
}

func (s *GameState) logEvent(kind, detail string) {
	s.Log = append(s.Log, LogEntry{Kind: kind, Detail: detail})
}

// settlementCost and friends are the fixed piece costs from the rulebook.
var (
	settlementCost = Bundle{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}
	roadCost       = Bundle{Wood: 1, Brick: 1}
	cityCost       = Bundle{Wheat: 2, Ore: 3}
	devCardCost    = Bundle{Sheep: 1, Wheat: 1, Ore: 1}
)
