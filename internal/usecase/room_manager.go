package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/sequence-backend/internal/apperror"
	"github.com/rocketscienceinc/sequence-backend/internal/entity"
	"github.com/rocketscienceinc/sequence-backend/internal/pkg"
	"github.com/rocketscienceinc/sequence-backend/internal/repository"
)

const maxCodeAttempts = 32

var ErrNoFreeRoomCode = errors.New("could not allocate a free room code")

type roomRepo interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
}

// RoomManager owns every room of the process. Actions on one room are serialized
// by the room's lock; different rooms proceed in parallel.
type RoomManager struct {
	logger   *slog.Logger
	roomRepo roomRepo
	rules    entity.Rules
	now      func() time.Time

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewRoomManager(logger *slog.Logger, roomRepo roomRepo, rules entity.Rules, rng *rand.Rand) *RoomManager {
	return &RoomManager{
		logger:   logger.With("component", "room_manager"),
		roomRepo: roomRepo,
		rules:    rules,
		now:      time.Now,
		rng:      rng,
	}
}

// CreateRoom opens a room with a fresh deck and board and makes the creator its admin.
func (that *RoomManager) CreateRoom(ctx context.Context, playerID, playerName string) (*JoinResult, error) {
	name, err := normalizeName(playerName)
	if err != nil {
		return nil, err
	}

	owner := &entity.Player{ID: playerID, Name: name}

	for range maxCodeAttempts {
		that.rngMu.Lock()
		code := pkg.GenerateRoomCode(that.rng)
		deck := entity.NewShuffledDeck(that.rng)
		that.rngMu.Unlock()

		room := entity.NewRoom(code, owner, deck, that.rules)
		room.SetClock(that.now)

		// The room is shared once stored; read it before.
		result := &JoinResult{
			Code:    code,
			Player:  owner.Public(),
			Players: room.PublicPlayers(),
		}

		err = that.roomRepo.Create(ctx, room)
		if errors.Is(err, repository.ErrRoomCodeTaken) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create room: %w", err)
		}

		that.logger.Info("room created", "roomCode", code, "playerID", playerID)

		return result, nil
	}

	return nil, ErrNoFreeRoomCode
}

func (that *RoomManager) JoinRoom(ctx context.Context, code, playerID, playerName string) (*JoinResult, error) {
	name, err := normalizeName(playerName)
	if err != nil {
		return nil, err
	}

	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	if _, ok := room.Player(playerID); ok {
		return nil, fmt.Errorf("%w: already in room %s", apperror.ErrPlayerInRoom, code)
	}

	player := &entity.Player{ID: playerID, Name: name}
	if err = room.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("failed to join room %s: %w", code, err)
	}

	that.logger.Info("player joined", "roomCode", code, "playerID", playerID, "players", len(room.Players))

	return &JoinResult{
		Code:    code,
		Player:  player.Public(),
		Players: room.PublicPlayers(),
	}, nil
}

func (that *RoomManager) SetTeamMode(ctx context.Context, code, playerID string, enabled bool) (*SettingsResult, error) {
	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	if err = room.SetTeamMode(playerID, enabled); err != nil {
		return nil, fmt.Errorf("failed to set team mode: %w", err)
	}

	return &SettingsResult{
		TeamMode: room.TeamMode,
		Players:  room.PublicPlayers(),
	}, nil
}

func (that *RoomManager) StartGame(ctx context.Context, code, playerID string) (*StartResult, error) {
	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	if err = room.Start(playerID); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	hands := make(map[string][]entity.Card, len(room.Players))
	for _, player := range room.Players {
		hands[player.ID] = player.HandCopy()
	}

	that.logger.Info("game started", "roomCode", code, "players", len(room.Players), "teamMode", room.TeamMode)

	return &StartResult{
		Snapshot: snapshotOf(room),
		Hands:    hands,
	}, nil
}

func (that *RoomManager) PlayCard(ctx context.Context, code, playerID string, card entity.Card, row, col int) (*PlayResult, error) {
	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	outcome, err := room.ApplyMove(playerID, card, row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to play card: %w", err)
	}

	player, _ := room.Player(playerID)

	if outcome.Winner != nil {
		that.logger.Info("game won", "roomCode", code, "playerID", playerID, "teamMode", room.TeamMode)
	}

	return &PlayResult{
		Snapshot: snapshotOf(room),
		Outcome:  *outcome,
		Hand:     player.HandCopy(),
	}, nil
}

// LeaveRoom removes the player; the room is deleted when nobody is left.
func (that *RoomManager) LeaveRoom(ctx context.Context, code, playerID string) (*LeaveResult, error) {
	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	departure, err := room.RemovePlayer(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to leave room: %w", err)
	}

	result := &LeaveResult{
		Code:             code,
		Player:           departure.Player.Public(),
		Players:          room.PublicPlayers(),
		GameStarted:      room.GameStarted,
		CurrentTurnIndex: room.CurrentTurnIndex,
		RoomDeleted:      departure.Empty,
	}

	if departure.NewAdmin != nil {
		admin := departure.NewAdmin.Public()
		result.NewAdmin = &admin
	}

	if departure.Empty {
		if err = that.roomRepo.DeleteByCode(ctx, code); err != nil {
			that.logger.Error("failed to delete empty room", "roomCode", code, "error", err)
		}
		that.logger.Info("room deleted", "roomCode", code)
	}

	return result, nil
}

func (that *RoomManager) RoomSummary(ctx context.Context, code string) (*RoomSummary, error) {
	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	return &RoomSummary{
		Code:        room.Code,
		PlayerCount: len(room.Players),
		MaxPlayers:  room.Rules().MaxPlayers,
		GameStarted: room.GameStarted,
		TeamMode:    room.TeamMode,
	}, nil
}

// Snapshot returns the public state of a room.
func (that *RoomManager) Snapshot(ctx context.Context, code string) (*RoomSnapshot, error) {
	room, err := that.lockRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	defer room.Unlock()

	snapshot := snapshotOf(room)

	return &snapshot, nil
}

// lockRoom returns the room locked. A room closed while we waited for its lock is reported as not found.
func (that *RoomManager) lockRoom(ctx context.Context, code string) (*entity.Room, error) {
	room, err := that.roomRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if errors.Is(err, repository.ErrRoomNotFound) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	room.Lock()
	if room.Closed {
		room.Unlock()
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, code)
	}

	return room, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ErrPlayerNameRequired
	}

	return name, nil
}
