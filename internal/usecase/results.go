package usecase

import "github.com/rocketscienceinc/sequence-backend/internal/entity"

// Results are copies taken while the room was locked, safe to serialize after release.

type RoomSnapshot struct {
	Code             string                  `json:"roomCode"`
	Players          []entity.PublicPlayer   `json:"players"`
	Board            entity.Board            `json:"board"`
	GameStarted      bool                    `json:"gameStarted"`
	CurrentTurnIndex int                     `json:"currentTurnIndex"`
	TeamMode         bool                    `json:"teamMode"`
	Sequences        []entity.SequenceRecord `json:"sequences"`
	Winner           *entity.Winner          `json:"winner"`
}

type JoinResult struct {
	Code    string
	Player  entity.PublicPlayer
	Players []entity.PublicPlayer
}

type SettingsResult struct {
	TeamMode bool
	Players  []entity.PublicPlayer
}

type StartResult struct {
	Snapshot RoomSnapshot
	Hands    map[string][]entity.Card
}

type PlayResult struct {
	Snapshot RoomSnapshot
	Outcome  entity.MoveOutcome
	Hand     []entity.Card
}

type LeaveResult struct {
	Code             string
	Player           entity.PublicPlayer
	NewAdmin         *entity.PublicPlayer
	Players          []entity.PublicPlayer
	GameStarted      bool
	CurrentTurnIndex int
	RoomDeleted      bool
}

type RoomSummary struct {
	Code        string `json:"code"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	GameStarted bool   `json:"gameStarted"`
	TeamMode    bool   `json:"teamMode"`
}

func snapshotOf(room *entity.Room) RoomSnapshot {
	return RoomSnapshot{
		Code:             room.Code,
		Players:          room.PublicPlayers(),
		Board:            room.Board,
		GameStarted:      room.GameStarted,
		CurrentTurnIndex: room.CurrentTurnIndex,
		TeamMode:         room.TeamMode,
		Sequences:        room.SequencesCopy(),
		Winner:           copyWinner(room.Winner),
	}
}

func copyWinner(winner *entity.Winner) *entity.Winner {
	if winner == nil {
		return nil
	}

	cp := *winner
	if winner.Team != nil {
		team := *winner.Team
		cp.Team = &team
	}

	return &cp
}
