package room

import (
	"math/rand"
	"time"

	"catan-server/internal/obs"
)

// roomCodeAlphabet excludes I, O, 0, 1 — characters easily confused with
// one another when a player reads a room code aloud or types it by hand.
const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const roomCodeLength = 6

// Lobby serializes room creation, lookup, and listing through its own
// mailbox goroutine, mirroring Room's single-writer discipline but for the
// cross-room operations spec.md calls out as needing their own owner.
type Lobby struct {
	log *obs.Logger

	rooms map[string]*Room
	inbox chan func()
	done  chan struct{}
}

// NewLobby starts the lobby's run loop.
func NewLobby(log *obs.Logger) *Lobby {
	l := &Lobby{
		log:   log,
		rooms: make(map[string]*Room),
		inbox: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Lobby) run() {
	for {
		select {
		case fn := <-l.inbox:
			fn()
		case <-l.done:
			return
		}
	}
}

func (l *Lobby) call(fn func()) {
	result := make(chan struct{})
	l.inbox <- func() {
		fn()
		close(result)
	}
	<-result
}

// Close stops the lobby and every room it owns.
func (l *Lobby) Close() {
	l.call(func() {
		for _, r := range l.rooms {
			r.Close()
		}
	})
	close(l.done)
}

// Create makes a fresh waiting room with a unique code and seats the host.
func (l *Lobby) Create(hostName string, conn Sender) (r *Room, playerID, token string, err error) {
	l.call(func() {
		code := l.uniqueCodeLocked()
		r = newRoom(code, l.log)
		l.rooms[code] = r
		l.log.Info("room created", "room", code)
	})
	playerID, token, _, err = r.Join(hostName, conn)
	return
}

func (l *Lobby) uniqueCodeLocked() string {
	for {
		code := randomCode()
		if _, exists := l.rooms[code]; !exists {
			return code
		}
	}
}

func randomCode() string {
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}

// Get returns the room with the given code.
func (l *Lobby) Get(code string) (*Room, bool) {
	var r *Room
	var ok bool
	l.call(func() {
		r, ok = l.rooms[code]
	})
	return r, ok
}

// List reports every waiting room's public info, never an in-progress or
// finished room's — spec.md's LIST_ROOMS is the lobby screen, not a spy
// window into active games.
func (l *Lobby) List() []Info {
	var codes []string
	l.call(func() {
		for code, r := range l.rooms {
			if r.Status == StatusWaiting {
				codes = append(codes, code)
			}
		}
	})
	infos := make([]Info, 0, len(codes))
	for _, code := range codes {
		r, ok := l.Get(code)
		if !ok {
			continue
		}
		infos = append(infos, r.Snapshot())
	}
	return infos
}

// Reconnect scans every room for a seat matching token, the way spec.md's
// reconnect flow describes ("the host scans all rooms for a player record
// matching that token").
func (l *Lobby) Reconnect(token string, conn Sender) (r *Room, playerID string, err error) {
	var candidates []*Room
	l.call(func() {
		for _, room := range l.rooms {
			candidates = append(candidates, room)
		}
	})
	for _, room := range candidates {
		if pid, found := room.SeatByToken(token); found {
			room.SetConnected(pid, conn, true)
			return room, pid, nil
		}
	}
	return nil, "", errReconnectFailed
}

// Remove deletes a finished or abandoned room from the lobby and stops its
// run loop.
func (l *Lobby) Remove(code string) {
	l.call(func() {
		if r, ok := l.rooms[code]; ok {
			r.Close()
			delete(l.rooms, code)
		}
	})
}

// CleanupLoop periodically removes every finished room, whether or not
// anyone is still connected to it, the mailbox-owner analogue of the
// teacher's session.Manager.CleanupLoop.
func (l *Lobby) CleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		l.cleanupOnce()
	}
}

func (l *Lobby) cleanupOnce() {
	var stale []string
	idle := make(map[string]time.Duration)
	l.call(func() {
		for code, r := range l.rooms {
			if r.Status == StatusFinished {
				stale = append(stale, code)
				idle[code] = time.Since(r.FinishedAt)
			}
		}
	})
	for _, code := range stale {
		l.log.Info("cleaning up finished room", "room", code, "idle", obs.HumanDuration(idle[code]))
		l.Remove(code)
	}
}
