package catan

import "catan-server/internal/coord"

func handlePlaceSettlementMain(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	v := action.Vertex.Canonicalize()
	if _, occupied := state.Buildings[v]; occupied {
		return state, reject("that vertex is already occupied")
	}
	if err := checkDistanceRule(state, v); err != nil {
		return state, err
	}
	if err := checkRoadTouch(state, actorID, v); err != nil {
		return state, err
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if p.SettlementsLeft <= 0 {
		return state, reject("no settlements remaining")
	}
	if !p.Resources.Covers(settlementCost) {
		return state, reject("not enough resources for a settlement")
	}

	p.Resources = p.Resources.Minus(settlementCost)
	p.SettlementsLeft--
	state.Players[pIdx] = p
	state.Bank = state.Bank.Plus(settlementCost)
	state.Buildings[v] = Building{Kind: Settlement, Owner: actorID}
	grantPortAccess(&state, pIdx, v)
	state.logEvent("settlement_built", p.Name+" built a settlement")
	recomputeLongestRoad(&state)
	return state, nil
}

// checkRoadTouch requires the vertex to touch at least one road owned by
// actorID, per the "settlements must connect to your own road network"
// rule that applies outside of setup.
func checkRoadTouch(state GameState, actorID string, v coord.Vertex) error {
	t := coord.Get()
	for _, e := range t.VertexAdjacentEdges[v] {
		if state.Roads[e] == actorID {
			return nil
		}
	}
	return reject("a new settlement must connect to one of your own roads")
}

func handlePlaceRoadMain(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	e := action.Edge.Canonicalize()
	if _, occupied := state.Roads[e]; occupied {
		return state, reject("that edge is already occupied")
	}
	if err := checkRoadConnectivity(state, actorID, e); err != nil {
		return state, err
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if p.RoadsLeft <= 0 {
		return state, reject("no roads remaining")
	}

	usingRoadBuilding := state.Turn.RoadBuildingLeft > 0
	if usingRoadBuilding {
		state.Turn.RoadBuildingLeft--
	} else {
		if !p.Resources.Covers(roadCost) {
			return state, reject("not enough resources for a road")
		}
		p.Resources = p.Resources.Minus(roadCost)
		state.Bank = state.Bank.Plus(roadCost)
	}

	p.RoadsLeft--
	state.Players[pIdx] = p
	state.Roads[e] = actorID
	state.logEvent("road_built", p.Name+" built a road")
	recomputeLongestRoad(&state)
	return state, nil
}

// checkRoadConnectivity requires the new edge to touch either an existing
// road of actorID's or a settlement/city of actorID's, and never to be
// reachable only by passing through an enemy-owned vertex.
func checkRoadConnectivity(state GameState, actorID string, e coord.Edge) error {
	ends := coord.EdgeVertices(e)
	for _, v := range ends {
		if b, ok := state.Buildings[v]; ok {
			if b.Owner == actorID {
				return nil
			}
			continue // an enemy building at this end blocks connecting through it
		}
		t := coord.Get()
		for _, adjEdge := range t.VertexAdjacentEdges[v] {
			if adjEdge != e && state.Roads[adjEdge] == actorID {
				return nil
			}
		}
	}
	return reject("a new road must connect to one of your own roads or buildings")
}

func handlePlaceCity(state GameState, actorID string, action Action) (GameState, error) {
	if err := requireSubPhase(state, MainTradeBuildPlay); err != nil {
		return state, err
	}
	v := action.Vertex.Canonicalize()
	b, ok := state.Buildings[v]
	if !ok || b.Owner != actorID || b.Kind != Settlement {
		return state, reject("you don't have a settlement there to upgrade")
	}

	pIdx := state.playerIndex(actorID)
	p := state.Players[pIdx]
	if p.CitiesLeft <= 0 {
		return state, reject("no cities remaining")
	}
	if !p.Resources.Covers(cityCost) {
		return state, reject("not enough resources for a city")
	}

	p.Resources = p.Resources.Minus(cityCost)
	p.CitiesLeft--
	p.SettlementsLeft++
	state.Players[pIdx] = p
	state.Bank = state.Bank.Plus(cityCost)
	state.Buildings[v] = Building{Kind: City, Owner: actorID}
	state.logEvent("city_built", p.Name+" upgraded a settlement to a city")
	return state, nil
}
