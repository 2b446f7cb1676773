package catan

import "catan-server/internal/coord"

func dispatchSetup(state GameState, actorID string, action Action) (GameState, error) {
	expected := state.Players[state.Turn.SetupOrder[state.Turn.SetupStep]].ID
	if actorID != expected {
		return state, reject("it is not your turn")
	}

	switch action.Type {
	case ActionPlaceSettlement:
		if state.Turn.SetupSubPhase != SetupPlaceSettlement {
			return state, reject("expected a road placement, not a settlement")
		}
		return setupPlaceSettlement(state, actorID, action.Vertex)
	case ActionPlaceRoad:
		if state.Turn.SetupSubPhase != SetupPlaceRoad {
			return state, reject("expected a settlement placement, not a road")
		}
		return setupPlaceRoad(state, actorID, action.Edge)
	default:
		return state, reject("that action is not allowed during setup")
	}
}

func setupPlaceSettlement(state GameState, actorID string, raw coord.Vertex) (GameState, error) {
	v := raw.Canonicalize()
	if _, occupied := state.Buildings[v]; occupied {
		return state, reject("that vertex is already occupied")
	}
	if err := checkDistanceRule(state, v); err != nil {
		return state, err
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if p.SettlementsLeft <= 0 {
		return state, reject("no settlements remaining")
	}

	p.SettlementsLeft--
	state.Players[pIdx] = p
	state.Buildings[v] = Building{Kind: Settlement, Owner: actorID}
	grantPortAccess(&state, pIdx, v)

	state.Turn.LastSettlementVertex = v
	state.Turn.SetupSubPhase = SetupPlaceRoad
	state.logEvent("setup_settlement", p.Name+" placed a setup settlement")
	recomputeLongestRoad(&state)
	return state, nil
}

func setupPlaceRoad(state GameState, actorID string, raw coord.Edge) (GameState, error) {
	e := raw.Canonicalize()
	if _, occupied := state.Roads[e]; occupied {
		return state, reject("that edge is already occupied")
	}
	ends := coord.EdgeVertices(e)
	if ends[0] != state.Turn.LastSettlementVertex && ends[1] != state.Turn.LastSettlementVertex {
		return state, reject("the setup road must touch the settlement just placed")
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if p.RoadsLeft <= 0 {
		return state, reject("no roads remaining")
	}
	p.RoadsLeft--
	state.Players[pIdx] = p
	state.Roads[e] = actorID
	state.logEvent("setup_road", p.Name+" placed a setup road")

	recomputeLongestRoad(&state)

	step := state.Turn.SetupStep
	isSecondRound := step >= len(state.Turn.SetupOrder)/2
	if isSecondRound {
		grantSetupResources(&state, state.Turn.LastSettlementVertex, actorID)
	}

	step++
	if step >= len(state.Turn.SetupOrder) {
		state.Turn.Phase = PhaseMain
		state.Turn.CurrentPlayerIndex = state.Turn.SetupOrder[0]
		state.Turn.MainSubPhase = MainRollDice
		state.Turn.TurnNumber = 1
	} else {
		state.Turn.SetupStep = step
		state.Turn.SetupSubPhase = SetupPlaceSettlement
		state.Turn.CurrentPlayerIndex = state.Turn.SetupOrder[step]
	}
	return state, nil
}

// checkDistanceRule rejects a vertex that touches an occupied vertex.
// Whether v itself is occupied is not checked here.
func checkDistanceRule(state GameState, v coord.Vertex) error {
	t := coord.Get()
	for _, adj := range t.VertexAdjacentVertices[v] {
		if _, occupied := state.Buildings[adj]; occupied {
			return reject("too close to another settlement (distance rule)")
		}
	}
	return nil
}

// grantPortAccess adds the port kind of any port edge touching v to the
// owning player's access set.
func grantPortAccess(state *GameState, playerIdx int, v coord.Vertex) {
	for _, port := range state.Board.Ports {
		ends := coord.EdgeVertices(port.Edge)
		if ends[0] == v || ends[1] == v {
			state.Players[playerIdx].Ports[port.Kind] = true
		}
	}
}

// grantSetupResources credits actorID with one card per non-desert hex
// touching v, per the second-round setup bonus.
func grantSetupResources(state *GameState, v coord.Vertex, actorID string) {
	t := coord.Get()
	pIdx := state.playerIndex(actorID)
	for _, h := range t.VertexHexes[v] {
		info := state.hexInfo(h)
		if info.Terrain == coord.TerrainDesert {
			continue
		}
		res := terrainResource[info.Terrain]
		state.Players[pIdx].Resources[res]++
		state.Bank[res]--
	}
}

func (s GameState) hexInfo(h coord.Cube) coord.HexInfo {
	for _, info := range s.Board.Hexes {
		if info.Hex == h {
			return info
		}
	}
	return coord.HexInfo{}
}
