package apperror

import "errors"

var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomFull           = errors.New("room is full")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrGameNotStarted     = errors.New("game is not started")
	ErrGameFinished       = errors.New("game is already finished")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrNotAdmin           = errors.New("only admin can do this")
	ErrPlayerNotInRoom    = errors.New("player is not in this room")
	ErrPlayerInRoom       = errors.New("player is already in this room")
	ErrPlayerNameRequired = errors.New("player name is required")

	ErrNotYourTurn          = errors.New("it's not your turn")
	ErrCardNotInHand        = errors.New("card not in hand")
	ErrInvalidCell          = errors.New("invalid cell")
	ErrInvalidPlacement     = errors.New("cannot place chip here")
	ErrInvalidRemoval       = errors.New("cannot remove this chip")
	ErrCardPositionMismatch = errors.New("card does not match board position")
	ErrPositionOccupied     = errors.New("position already occupied")
)
