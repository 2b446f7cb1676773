package room

import "errors"

var (
	errRoomNotJoinable       = errors.New("room is not accepting players")
	errRoomFull              = errors.New("room is full")
	errCannotLeaveInProgress = errors.New("cannot leave a room once the game has started")
	errNotWaiting            = errors.New("room is not in the waiting state")
	errNotHost               = errors.New("only the host can start the game")
	errWrongPlayerCount      = errors.New("need 3 or 4 players to start")
	errGameNotStarted        = errors.New("game has not started")
	errReconnectFailed       = errors.New("reconnection failed")
)
