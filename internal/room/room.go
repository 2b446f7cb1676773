// Package room implements the session host: rooms that own one Catan game
// each, reachable only through their own mailbox goroutine, plus the lobby
// that serializes room creation and listing across rooms.
package room

import (
	"time"

	"catan-server/internal/catan"
	"catan-server/internal/obs"

	"github.com/google/uuid"
)

// Status is a room's lifecycle stage.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

const MaxPlayers = 4

// Sender is whatever the transport layer uses to push a framed message to
// one connection; Room never touches a websocket directly, only this.
type Sender interface {
	Send(msg any)
}

// Seat is one joined player's seat in the room, independent of whether they
// are currently connected.
type Seat struct {
	PlayerID    string
	DisplayName string
	Color       string
	Token       string
	Conn        Sender
	Connected   bool
}

// Room owns exactly one game and is only ever mutated from its own run
// loop — every exported method enqueues a closure onto inbox and blocks for
// the result, so the reducer and the seat list are never touched from two
// goroutines at once.
type Room struct {
	ID           string
	HostPlayerID string
	Status       Status
	FinishedAt   time.Time

	seats []*Seat
	game  *catan.GameState

	log *obs.Logger

	inbox chan func()
	done  chan struct{}
}

func newRoom(id string, log *obs.Logger) *Room {
	r := &Room{
		ID:     id,
		Status: StatusWaiting,
		log:    log,
		inbox:  make(chan func(), 32),
		done:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Room) run() {
	for {
		select {
		case fn := <-r.inbox:
			fn()
		case <-r.done:
			return
		}
	}
}

// call runs fn on the room's owning goroutine and blocks until it returns,
// making every exported Room method synchronous from the caller's
// perspective while still serializing through the single mailbox.
func (r *Room) call(fn func()) {
	result := make(chan struct{})
	r.inbox <- func() {
		fn()
		close(result)
	}
	<-result
}

// Close stops the room's run loop; callers must not invoke any other method
// afterward.
func (r *Room) Close() {
	close(r.done)
}

// Info is the public room summary sent in ROOM_CREATED/ROOM_JOINED/ROOM_LIST.
type Info struct {
	RoomID       string   `json:"roomId"`
	HostPlayerID string   `json:"hostPlayerId"`
	Status       Status   `json:"status"`
	Players      []string `json:"players"`
	MaxPlayers   int      `json:"maxPlayers"`
}

// Snapshot returns the room's public info.
func (r *Room) Snapshot() Info {
	var info Info
	r.call(func() {
		info = r.infoLocked()
	})
	return info
}

func (r *Room) infoLocked() Info {
	names := make([]string, len(r.seats))
	for i, s := range r.seats {
		names[i] = s.DisplayName
	}
	return Info{
		RoomID:       r.ID,
		HostPlayerID: r.HostPlayerID,
		Status:       r.Status,
		Players:      names,
		MaxPlayers:   MaxPlayers,
	}
}

// Join seats a new player, assigning them a color and a reconnect token.
// Rejects once the room has left the waiting state or is already full.
func (r *Room) Join(displayName string, conn Sender) (playerID, token string, info Info, err error) {
	r.call(func() {
		if r.Status != StatusWaiting {
			err = errRoomNotJoinable
			return
		}
		if len(r.seats) >= MaxPlayers {
			err = errRoomFull
			return
		}
		playerID = uuid.NewString()
		token = uuid.NewString()
		seat := &Seat{
			PlayerID:    playerID,
			DisplayName: displayName,
			Color:       colorFor(len(r.seats)),
			Token:       token,
			Conn:        conn,
			Connected:   true,
		}
		r.seats = append(r.seats, seat)
		if r.HostPlayerID == "" {
			r.HostPlayerID = playerID
		}
		r.log.Info("player joined room", "room", r.ID, "player", playerID)
		info = r.infoLocked()
		r.broadcastLocked(roomUpdateMessage{Type: "ROOM_UPDATE", RoomInfo: info})
	})
	return
}

// Leave removes a seated player before the game has started; once playing,
// players may only disconnect (see SetConnected), not leave outright, since
// spec.md's reconnect model relies on the seat surviving.
func (r *Room) Leave(playerID string) error {
	var err error
	r.call(func() {
		if r.Status != StatusWaiting {
			err = errCannotLeaveInProgress
			return
		}
		for i, s := range r.seats {
			if s.PlayerID == playerID {
				r.seats = append(r.seats[:i], r.seats[i+1:]...)
				break
			}
		}
		if r.HostPlayerID == playerID && len(r.seats) > 0 {
			r.HostPlayerID = r.seats[0].PlayerID
		}
		r.broadcastLocked(roomUpdateMessage{Type: "ROOM_UPDATE", RoomInfo: r.infoLocked()})
	})
	return err
}

// Start transitions the room into play: requires the host, 3 or 4 seated
// players, and the waiting state.
func (r *Room) Start(playerID string, seed int64) error {
	var err error
	r.call(func() {
		if r.Status != StatusWaiting {
			err = errNotWaiting
			return
		}
		if playerID != r.HostPlayerID {
			err = errNotHost
			return
		}
		if len(r.seats) < 3 || len(r.seats) > 4 {
			err = errWrongPlayerCount
			return
		}
		players := make([]catan.Player, len(r.seats))
		for i, s := range r.seats {
			players[i] = catan.NewPlayer(s.PlayerID, s.DisplayName, s.Color)
		}
		game := catan.NewGameState(r.ID, players, seed)
		r.game = &game
		r.Status = StatusInProgress
		r.log.Info("room started", "room", r.ID, "players", len(r.seats))
		r.broadcastStateLocked("GAME_STARTED")
	})
	return err
}

// Dispatch runs one action against the room's game through catan.Dispatch,
// broadcasting the resulting per-viewer projection on success or returning
// the rejection to the caller (the transport layer relays it as
// ACTION_REJECTED to the sender only).
func (r *Room) Dispatch(playerID string, action catan.Action) error {
	var err error
	r.call(func() {
		if r.game == nil {
			err = errGameNotStarted
			return
		}
		next, dispatchErr := catan.Dispatch(*r.game, playerID, action)
		if dispatchErr != nil {
			r.log.Debug("action rejected", "room", r.ID, "player", playerID, "reason", dispatchErr.Error())
			err = dispatchErr
			return
		}
		*r.game = next
		if next.Turn.Phase == catan.PhaseGameOver && r.Status != StatusFinished {
			r.Status = StatusFinished
			r.FinishedAt = time.Now()
		}
		r.broadcastStateLocked("STATE_UPDATE")
	})
	return err
}

// SetConnected flips a seat's connection flag and notifies the rest of the
// room, per spec.md's rule that disconnect never cancels an in-flight
// action or clears pending obligations — only the flag itself changes.
func (r *Room) SetConnected(playerID string, conn Sender, connected bool) {
	r.call(func() {
		for _, s := range r.seats {
			if s.PlayerID != playerID {
				continue
			}
			s.Connected = connected
			if connected {
				s.Conn = conn
			}
			break
		}
		kind := "PLAYER_DISCONNECTED"
		if connected {
			kind = "PLAYER_RECONNECTED"
			r.log.Info("player reconnected", "room", r.ID, "player", playerID)
		} else {
			r.log.Info("player disconnected", "room", r.ID, "player", playerID)
		}
		r.broadcastLocked(playerConnMessage{Type: kind, PlayerID: playerID})
	})
}

// SeatByToken finds the seat matching a reconnect token, for the lobby's
// cross-room RECONNECT scan.
func (r *Room) SeatByToken(token string) (playerID string, found bool) {
	r.call(func() {
		for _, s := range r.seats {
			if s.Token == token {
				playerID, found = s.PlayerID, true
				return
			}
		}
	})
	return
}

// SeatName returns the display name a seated player joined with, for
// attributing chat messages.
func (r *Room) SeatName(playerID string) (name string, found bool) {
	r.call(func() {
		for _, s := range r.seats {
			if s.PlayerID == playerID {
				name, found = s.DisplayName, true
				return
			}
		}
	})
	return
}

// Project returns the filtered state view for one seat, for sending a full
// RECONNECTED snapshot.
func (r *Room) Project(playerID string) (catan.GameStateView, bool) {
	var view catan.GameStateView
	var ok bool
	r.call(func() {
		if r.game == nil {
			return
		}
		view = catan.Project(*r.game, playerID)
		ok = true
	})
	return view, ok
}

func (r *Room) broadcastStateLocked(kind string) {
	msg := stateMessage{Type: kind}
	for _, s := range r.seats {
		if !s.Connected || s.Conn == nil {
			continue
		}
		view := catan.Project(*r.game, s.PlayerID)
		m := msg
		m.State = view
		s.Conn.Send(m)
	}
}

// Broadcast sends msg to every connected seat, used for chat relay. Chat
// never touches the game, but the send still runs on the room's mailbox
// like every other exported method.
func (r *Room) Broadcast(msg any) {
	r.call(func() {
		r.broadcastLocked(msg)
	})
}

func (r *Room) broadcastLocked(msg any) {
	for _, s := range r.seats {
		if s.Connected && s.Conn != nil {
			s.Conn.Send(msg)
		}
	}
}

type stateMessage struct {
	Type  string              `json:"type"`
	State catan.GameStateView `json:"state"`
}

type roomUpdateMessage struct {
	Type     string `json:"type"`
	RoomInfo Info   `json:"roomInfo"`
}

type playerConnMessage struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

// colorFor assigns one of the four standard seat colors by join order.
func colorFor(seatIndex int) string {
	palette := []string{"red", "blue", "white", "orange"}
	if seatIndex < 0 || seatIndex >= len(palette) {
		return "gray"
	}
	return palette[seatIndex]
}
