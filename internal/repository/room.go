package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/rocketscienceinc/sequence-backend/internal/entity"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomCodeTaken = errors.New("room code already taken")
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByCode(ctx context.Context, code string) (*entity.Room, error)
	DeleteByCode(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) bool
	Count(ctx context.Context) int
}

// memRoom keeps rooms for the lifetime of the process. The map lock only guards
// membership; each room serializes its own actions.
type memRoom struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func NewRoomRepository() RoomRepository {
	return &memRoom{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *memRoom) Create(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[room.Code]; ok {
		return ErrRoomCodeTaken
	}

	that.rooms[room.Code] = room

	return nil
}

func (that *memRoom) GetByCode(_ context.Context, code string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room, nil
}

func (that *memRoom) DeleteByCode(_ context.Context, code string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[code]; !ok {
		return ErrRoomNotFound
	}

	delete(that.rooms, code)

	return nil
}

func (that *memRoom) Exists(_ context.Context, code string) bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.rooms[code]

	return ok
}

func (that *memRoom) Count(_ context.Context) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
