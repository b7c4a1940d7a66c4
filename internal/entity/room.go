package entity

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/sequence-backend/internal/apperror"
)

const (
	DefaultHandSize       = 7
	DefaultMaxPlayers     = 12
	DefaultMinPlayers     = 2
	DefaultSequencesToWin = 2
)

// Rules are the per-room limits fixed at creation.
type Rules struct {
	HandSize       int
	MaxPlayers     int
	MinPlayers     int
	SequencesToWin int
}

func DefaultRules() Rules {
	return Rules{
		HandSize:       DefaultHandSize,
		MaxPlayers:     DefaultMaxPlayers,
		MinPlayers:     DefaultMinPlayers,
		SequencesToWin: DefaultSequencesToWin,
	}
}

type SequenceRecord struct {
	Color     string    `json:"color"`
	Timestamp time.Time `json:"timestamp"`
}

type Winner struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Team       *int   `json:"team"`
	TeamMode   bool   `json:"teamMode"`
}

// Room is one match. It is not safe for concurrent use: callers hold Lock
// for the whole validate-mutate-evaluate sequence of an action.
type Room struct {
	mu sync.Mutex

	Code             string
	Players          []*Player
	Board            Board
	Deck             *Deck
	GameStarted      bool
	CurrentTurnIndex int
	TeamMode         bool
	Sequences        []SequenceRecord
	Winner           *Winner

	// Closed is set once the last player leaves; a closed room accepts no actions.
	Closed bool

	rules Rules
	now   func() time.Time
}

func NewRoom(code string, owner *Player, deck *Deck, rules Rules) *Room {
	owner.IsAdmin = true
	owner.Color = ColorForSeat(0)
	owner.Team = nil

	return &Room{
		Code:    code,
		Players: []*Player{owner},
		Board:   NewBoard(),
		Deck:    deck,
		rules:   rules,
		now:     time.Now,
	}
}

func (that *Room) Lock() {
	that.mu.Lock()
}

func (that *Room) Unlock() {
	that.mu.Unlock()
}

// SetClock replaces the time source used for sequence records.
func (that *Room) SetClock(now func() time.Time) {
	that.now = now
}

func (that *Room) Rules() Rules {
	return that.rules
}

func (that *Room) Player(id string) (*Player, bool) {
	i := that.playerIndex(id)
	if i < 0 {
		return nil, false
	}

	return that.Players[i], true
}

func (that *Room) CurrentPlayer() *Player {
	if len(that.Players) == 0 {
		return nil
	}

	return that.Players[that.CurrentTurnIndex]
}

func (that *Room) Admin() *Player {
	for _, player := range that.Players {
		if player.IsAdmin {
			return player
		}
	}

	return nil
}

// AddPlayer appends a non-admin player with the next palette color.
func (that *Room) AddPlayer(player *Player) error {
	switch {
	case that.Closed:
		return apperror.ErrRoomNotFound
	case that.GameStarted:
		return apperror.ErrGameAlreadyStarted
	case len(that.Players) >= that.rules.MaxPlayers:
		return fmt.Errorf("%w (max %d players)", apperror.ErrRoomFull, that.rules.MaxPlayers)
	}

	player.IsAdmin = false
	player.Color = ColorForSeat(len(that.Players))
	player.Team = nil
	that.Players = append(that.Players, player)

	if that.TeamMode {
		AssignTeams(that.Players, true)
	}

	return nil
}

// Departure describes the post-conditions of RemovePlayer.
type Departure struct {
	Player   *Player
	NewAdmin *Player
	Empty    bool
}

// RemovePlayer drops the player, keeps the turn pointing at the same next player,
// hands admin to the first remaining player and closes the room when it empties.
func (that *Room) RemovePlayer(id string) (*Departure, error) {
	i := that.playerIndex(id)
	if i < 0 {
		return nil, apperror.ErrPlayerNotInRoom
	}

	removed := that.Players[i]
	that.Players = append(that.Players[:i], that.Players[i+1:]...)

	departure := &Departure{Player: removed}

	if len(that.Players) == 0 {
		that.CurrentTurnIndex = 0
		that.Closed = true
		departure.Empty = true

		return departure, nil
	}

	if i < that.CurrentTurnIndex {
		that.CurrentTurnIndex--
	}
	if that.CurrentTurnIndex >= len(that.Players) {
		that.CurrentTurnIndex = 0
	}

	if removed.IsAdmin {
		removed.IsAdmin = false
		that.Players[0].IsAdmin = true
		departure.NewAdmin = that.Players[0]
	}

	if that.TeamMode && !that.GameStarted {
		AssignTeams(that.Players, true)
	}

	return departure, nil
}

// SetTeamMode is an admin-only lobby setting.
func (that *Room) SetTeamMode(playerID string, enabled bool) error {
	if err := that.requireAdmin(playerID); err != nil {
		return err
	}

	if that.GameStarted {
		return apperror.ErrGameAlreadyStarted
	}

	that.TeamMode = enabled
	AssignTeams(that.Players, enabled)

	return nil
}

// Start deals the hands and hands the first turn to the first player.
func (that *Room) Start(playerID string) error {
	if err := that.requireAdmin(playerID); err != nil {
		return err
	}

	if that.GameStarted {
		return apperror.ErrGameAlreadyStarted
	}

	if len(that.Players) < that.rules.MinPlayers {
		return fmt.Errorf("%w: need at least %d players", apperror.ErrNotEnoughPlayers, that.rules.MinPlayers)
	}

	that.GameStarted = true
	that.CurrentTurnIndex = 0
	that.Deal(that.rules.HandSize)

	return nil
}

// Deal gives every player up to perPlayer fresh cards. It stops early when the deck runs out.
func (that *Room) Deal(perPlayer int) {
	for _, player := range that.Players {
		player.Hand = make([]Card, 0, perPlayer)

		for range perPlayer {
			card, ok := that.Deck.Draw()
			if !ok {
				break
			}
			player.Hand = append(player.Hand, card)
		}
	}
}

func (that *Room) PublicPlayers() []PublicPlayer {
	players := make([]PublicPlayer, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, player.Public())
	}

	return players
}

func (that *Room) SequencesCopy() []SequenceRecord {
	return append([]SequenceRecord{}, that.Sequences...)
}

func (that *Room) requireAdmin(playerID string) error {
	player, ok := that.Player(playerID)
	if !ok {
		return apperror.ErrPlayerNotInRoom
	}

	if !player.IsAdmin {
		return apperror.ErrNotAdmin
	}

	return nil
}

func (that *Room) playerIndex(id string) int {
	for i, player := range that.Players {
		if player.ID == id {
			return i
		}
	}

	return -1
}
