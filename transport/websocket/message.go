package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/sequence-backend/internal/entity"
)

// Actions sent by clients.
const (
	ActionCreateRoom     = "create_room"
	ActionJoinRoom       = "join_room"
	ActionToggleTeamMode = "toggle_team_mode"
	ActionStartGame      = "start_game"
	ActionPlayCard       = "play_card"
	ActionLeaveRoom      = "leave_room"
)

// Events sent by the server.
const (
	EventRoomCreated         = "room_created"
	EventRoomJoined          = "room_joined"
	EventPlayersUpdated      = "players_updated"
	EventGameSettingsUpdated = "game_settings_updated"
	EventGameStarted         = "game_started"
	EventGameUpdated         = "game_updated"
	EventHandUpdated         = "hand_updated"
	EventPlayerLeft          = "player_left"
	EventError               = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CreateRoomRequest struct {
	PlayerName string `json:"playerName"`
}

type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type ToggleTeamModeRequest struct {
	RoomCode string `json:"roomCode"`
	TeamMode bool   `json:"teamMode"`
}

type RoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type PlayCardRequest struct {
	RoomCode string      `json:"roomCode"`
	Card     entity.Card `json:"card"`
	Row      *int        `json:"row"`
	Col      *int        `json:"col"`
}

type RoomCreatedPayload struct {
	RoomCode string              `json:"roomCode"`
	Player   entity.PublicPlayer `json:"player"`
}

type RoomJoinedPayload struct {
	RoomCode string                `json:"roomCode"`
	Player   entity.PublicPlayer   `json:"player"`
	Players  []entity.PublicPlayer `json:"players"`
}

// PlayersPayload carries the seat order; during a game it also carries the turn index that indexes it.
type PlayersPayload struct {
	Players          []entity.PublicPlayer `json:"players"`
	CurrentTurnIndex *int                  `json:"currentTurnIndex,omitempty"`
}

type SettingsPayload struct {
	TeamMode bool                  `json:"teamMode"`
	Players  []entity.PublicPlayer `json:"players"`
}

// GameStartedPayload is private: Hand belongs to the receiving player only.
type GameStartedPayload struct {
	Board            entity.Board          `json:"board"`
	CurrentTurnIndex int                   `json:"currentTurnIndex"`
	Players          []entity.PublicPlayer `json:"players"`
	Hand             []entity.Card         `json:"hand,omitempty"`
	TeamMode         bool                  `json:"teamMode"`
}

type GameUpdatedPayload struct {
	Board            entity.Board            `json:"board"`
	CurrentTurnIndex int                     `json:"currentTurnIndex"`
	Sequences        []entity.SequenceRecord `json:"sequences"`
	Winner           *entity.Winner          `json:"winner"`
}

type HandPayload struct {
	Hand []entity.Card `json:"hand"`
}

type PlayerLeftPayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
