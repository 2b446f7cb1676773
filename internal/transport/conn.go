package transport

import (
	"context"
	"encoding/json"

	"catan-server/internal/catan"
	"catan-server/internal/obs"
	"catan-server/internal/room"

	"nhooyr.io/websocket"
)

// conn binds one WebSocket to the room it has joined, if any. It implements
// room.Sender so Room can push framed messages to it without knowing
// anything about websockets.
type conn struct {
	ws   *websocket.Conn
	ctx  context.Context
	send chan []byte

	log *obs.Logger

	lobby    *room.Lobby
	room     *room.Room
	playerID string
}

func newConn(ws *websocket.Conn, ctx context.Context, lobby *room.Lobby, log *obs.Logger) *conn {
	return &conn{
		ws:    ws,
		ctx:   ctx,
		send:  make(chan []byte, 64),
		log:   log,
		lobby: lobby,
	}
}

// Send implements room.Sender: it marshals msg and enqueues the frame,
// dropping it rather than blocking if the write side has stalled — the
// best-effort broadcast spec.md §5 requires.
func (c *conn) Send(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal outbound message", "err", err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *conn) sendError(message string) {
	c.Send(map[string]string{"type": "ERROR", "message": message})
}

// writeLoop drains the send channel onto the socket; the reader loop in
// handle runs on the same goroutine that accepted the connection, so the
// write side gets its own goroutine, matching the teacher's websocket.go
// split between a reader loop and a writer goroutine fed by a channel.
func (c *conn) writeLoop() {
	for data := range c.send {
		if err := c.ws.Write(c.ctx, websocket.MessageText, data); err != nil {
			return
		}
	}
}

func (c *conn) handle() {
	defer c.disconnect()
	go c.writeLoop()
	activeConnections.Inc()

	for {
		_, data, err := c.ws.Read(c.ctx)
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("Invalid message format")
			continue
		}
		c.dispatch(msg)
	}
}

func (c *conn) disconnect() {
	activeConnections.Dec()
	close(c.send)
	if c.room != nil && c.playerID != "" {
		c.room.SetConnected(c.playerID, nil, false)
	}
}

func (c *conn) dispatch(msg ClientMessage) {
	switch msg.Type {
	case "CREATE_ROOM":
		c.handleCreateRoom(msg)
	case "JOIN_ROOM":
		c.handleJoinRoom(msg)
	case "LEAVE_ROOM":
		c.handleLeaveRoom()
	case "START_GAME":
		c.handleStartGame()
	case "LIST_ROOMS":
		c.Send(roomListMessage{Type: "ROOM_LIST", Rooms: c.lobby.List()})
	case "RECONNECT":
		c.handleReconnect(msg)
	case "GAME_ACTION":
		c.handleGameAction(msg)
	case "CHAT":
		c.handleChat(msg)
	default:
		c.sendError("Unknown message type")
	}
}

func (c *conn) handleCreateRoom(msg ClientMessage) {
	r, playerID, token, err := c.lobby.Create(msg.PlayerName, c)
	if err != nil {
		c.sendError("Failed to create room: " + err.Error())
		return
	}
	roomsCreatedTotal.Inc()
	c.room = r
	c.playerID = playerID
	c.Send(roomCreatedMessage{Type: "ROOM_CREATED", RoomID: r.ID, PlayerID: playerID, Token: token})
}

func (c *conn) handleJoinRoom(msg ClientMessage) {
	r, ok := c.lobby.Get(msg.RoomID)
	if !ok {
		c.sendError("Failed to join room: room not found")
		return
	}
	playerID, token, info, err := r.Join(msg.PlayerName, c)
	if err != nil {
		c.sendError("Failed to join room: " + err.Error())
		return
	}
	c.room = r
	c.playerID = playerID
	c.Send(roomJoinedMessage{Type: "ROOM_JOINED", PlayerID: playerID, Token: token, RoomInfo: info})
}

func (c *conn) handleLeaveRoom() {
	if c.room == nil || c.playerID == "" {
		c.sendError("Not in a room")
		return
	}
	if err := c.room.Leave(c.playerID); err != nil {
		c.sendError(err.Error())
		return
	}
	c.Send(map[string]string{"type": "ROOM_LEFT"})
	c.room = nil
	c.playerID = ""
}

func (c *conn) handleStartGame() {
	if c.room == nil || c.playerID == "" {
		c.sendError("Not in a room")
		return
	}
	if err := c.room.Start(c.playerID, newSeed()); err != nil {
		c.sendError("Only the host can start the game")
		return
	}
}

func (c *conn) handleReconnect(msg ClientMessage) {
	r, playerID, err := c.lobby.Reconnect(msg.Token, c)
	if err != nil {
		c.sendError("Reconnection failed")
		return
	}
	c.room = r
	c.playerID = playerID
	view, ok := r.Project(playerID)
	if !ok {
		c.Send(map[string]string{"type": "ROOM_JOINED", "roomId": r.ID})
		return
	}
	c.Send(stateMessage{Type: "RECONNECTED", State: view})
}

func (c *conn) handleGameAction(msg ClientMessage) {
	if c.room == nil || c.playerID == "" {
		c.sendError("Not in a room")
		return
	}
	action, err := decodeAction(msg.Action)
	if err != nil {
		c.sendError("Invalid message format")
		return
	}
	if err := c.room.Dispatch(c.playerID, action); err != nil {
		actionsRejectedTotal.Inc()
		if rej, ok := err.(*catan.RejectionError); ok {
			c.Send(actionRejectedMessage{Type: "ACTION_REJECTED", Action: msg.Action, Reason: rej.Reason})
			return
		}
		c.sendError(err.Error())
		return
	}
	actionsDispatchedTotal.Inc()
}

func (c *conn) handleChat(msg ClientMessage) {
	if c.room == nil {
		c.sendError("Not in a room")
		return
	}
	name, _ := c.room.SeatName(c.playerID)
	c.room.Broadcast(chatMessage{Type: "CHAT_MESSAGE", PlayerID: c.playerID, PlayerName: name, Message: msg.Message})
}

type roomCreatedMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

type roomJoinedMessage struct {
	Type     string    `json:"type"`
	PlayerID string    `json:"playerId"`
	Token    string    `json:"token"`
	RoomInfo room.Info `json:"roomInfo"`
}

type roomListMessage struct {
	Type  string      `json:"type"`
	Rooms []room.Info `json:"rooms"`
}

type stateMessage struct {
	Type  string              `json:"type"`
	State catan.GameStateView `json:"state"`
}

type actionRejectedMessage struct {
	Type   string          `json:"type"`
	Action json.RawMessage `json:"action"`
	Reason string          `json:"reason"`
}

type chatMessage struct {
	Type       string `json:"type"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}
