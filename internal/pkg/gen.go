package pkg

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

const (
	RoomCodeLength = 6
	roomCodeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateRoomCode - generates a short alphanumeric room code from rng.
func GenerateRoomCode(rng *rand.Rand) string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		code[i] = roomCodeChars[rng.IntN(len(roomCodeChars))]
	}

	return string(code)
}

// GenerateConnectionID - generates a unique identifier for a client connection.
func GenerateConnectionID() string {
	return uuid.NewString()
}
