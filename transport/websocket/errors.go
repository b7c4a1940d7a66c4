package websocket

import (
	"errors"

	"github.com/rocketscienceinc/sequence-backend/internal/apperror"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrMalformedMessage = errors.New("malformed message")
	ErrMissingCell      = errors.New("row and col are required")
	ErrMissingRoomCode  = errors.New("room code is required")
)

// clientErrors are shown to players verbatim; anything else is reported as internal.
var clientErrors = []error{
	ErrUnknownAction,
	ErrMalformedMessage,
	ErrMissingCell,
	ErrMissingRoomCode,
	apperror.ErrRoomNotFound,
	apperror.ErrRoomFull,
	apperror.ErrGameAlreadyStarted,
	apperror.ErrGameNotStarted,
	apperror.ErrGameFinished,
	apperror.ErrNotEnoughPlayers,
	apperror.ErrNotAdmin,
	apperror.ErrPlayerNotInRoom,
	apperror.ErrPlayerInRoom,
	apperror.ErrPlayerNameRequired,
	apperror.ErrNotYourTurn,
	apperror.ErrCardNotInHand,
	apperror.ErrInvalidCell,
	apperror.ErrInvalidPlacement,
	apperror.ErrInvalidRemoval,
	apperror.ErrCardPositionMismatch,
	apperror.ErrPositionOccupied,
}

func publicMessage(err error) string {
	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}
