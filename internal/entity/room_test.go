package entity

import (
	"testing"

	"github.com/rocketscienceinc/sequence-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom(t *testing.T, names ...string) *Room {
	t.Helper()

	room := NewRoom("ABC123", &Player{ID: names[0], Name: names[0]}, NewShuffledDeck(newTestRand()), DefaultRules())
	for _, name := range names[1:] {
		require.NoError(t, room.AddPlayer(&Player{ID: name, Name: name}))
	}

	return room
}

func assertRoomInvariants(t *testing.T, room *Room) {
	t.Helper()

	if len(room.Players) == 0 {
		return
	}

	assert.GreaterOrEqual(t, room.CurrentTurnIndex, 0)
	assert.Less(t, room.CurrentTurnIndex, len(room.Players))

	admins := 0
	for _, player := range room.Players {
		if player.IsAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestRoom_AddPlayer(t *testing.T) {
	t.Run("Joiners get the next palette color", func(t *testing.T) {
		// When: three players are in a room
		room := newTestRoom(t, "alice", "bob", "carol")

		// Then: only the owner is admin and colors follow join order
		assert.True(t, room.Players[0].IsAdmin)
		assert.False(t, room.Players[1].IsAdmin)
		assert.Equal(t, []string{"red", "blue", "green"}, []string{room.Players[0].Color, room.Players[1].Color, room.Players[2].Color})
		assertRoomInvariants(t, room)
	})

	t.Run("Room is full at twelve players", func(t *testing.T) {
		// Given: a full room
		names := []string{"p0", "p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11"}
		room := newTestRoom(t, names...)

		// When: a thirteenth player joins
		err := room.AddPlayer(&Player{ID: "p12"})

		// Then: the join is rejected
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Len(t, room.Players, 12)
		assert.Equal(t, "blue", room.Players[7].Color)
	})

	t.Run("No joins after the game started", func(t *testing.T) {
		// Given: a started game
		room := newTestRoom(t, "alice", "bob")
		require.NoError(t, room.Start("alice"))

		// When: someone joins
		err := room.AddPlayer(&Player{ID: "carol"})

		// Then: the join is rejected
		require.ErrorIs(t, err, apperror.ErrGameAlreadyStarted)
	})

	t.Run("Joining in team mode places the player in a team", func(t *testing.T) {
		// Given: a lobby in team mode
		room := newTestRoom(t, "alice", "bob", "carol")
		require.NoError(t, room.SetTeamMode("alice", true))

		// When: a fourth player joins
		require.NoError(t, room.AddPlayer(&Player{ID: "dave"}))

		// Then: the newcomer is in team 1
		require.NotNil(t, room.Players[3].Team)
		assert.Equal(t, 1, *room.Players[3].Team)
		assert.Equal(t, "blue", room.Players[3].Color)
	})
}

func TestRoom_RemovePlayer(t *testing.T) {
	t.Run("Admin leaving hands admin to the first remaining player", func(t *testing.T) {
		// Given: a room of three
		room := newTestRoom(t, "alice", "bob", "carol")

		// When: the admin leaves
		departure, err := room.RemovePlayer("alice")

		// Then: bob becomes admin
		require.NoError(t, err)
		require.NotNil(t, departure.NewAdmin)
		assert.Equal(t, "bob", departure.NewAdmin.ID)
		assert.False(t, departure.Empty)
		assertRoomInvariants(t, room)
	})

	t.Run("Non-admin leaving keeps the admin", func(t *testing.T) {
		room := newTestRoom(t, "alice", "bob")

		departure, err := room.RemovePlayer("bob")

		require.NoError(t, err)
		assert.Nil(t, departure.NewAdmin)
		assertRoomInvariants(t, room)
	})

	t.Run("Last player leaving closes the room", func(t *testing.T) {
		room := newTestRoom(t, "alice")

		departure, err := room.RemovePlayer("alice")

		require.NoError(t, err)
		assert.True(t, departure.Empty)
		assert.True(t, room.Closed)
		assert.Empty(t, room.Players)
	})

	t.Run("Turn stays with the same player when someone earlier leaves", func(t *testing.T) {
		// Given: a started game where it is carol's turn
		room := newTestRoom(t, "alice", "bob", "carol")
		require.NoError(t, room.Start("alice"))
		room.CurrentTurnIndex = 2

		// When: alice leaves
		_, err := room.RemovePlayer("alice")
		require.NoError(t, err)

		// Then: it is still carol's turn
		assert.Equal(t, "carol", room.CurrentPlayer().ID)
		assertRoomInvariants(t, room)
	})

	t.Run("Current player leaving at the end wraps the turn", func(t *testing.T) {
		room := newTestRoom(t, "alice", "bob", "carol")
		require.NoError(t, room.Start("alice"))
		room.CurrentTurnIndex = 2

		_, err := room.RemovePlayer("carol")
		require.NoError(t, err)

		assert.Equal(t, 0, room.CurrentTurnIndex)
		assertRoomInvariants(t, room)
	})

	t.Run("Unknown player", func(t *testing.T) {
		room := newTestRoom(t, "alice")

		_, err := room.RemovePlayer("mallory")

		require.ErrorIs(t, err, apperror.ErrPlayerNotInRoom)
	})
}

func TestRoom_SetTeamMode(t *testing.T) {
	t.Run("Only admin may toggle", func(t *testing.T) {
		room := newTestRoom(t, "alice", "bob")

		err := room.SetTeamMode("bob", true)

		require.ErrorIs(t, err, apperror.ErrNotAdmin)
		assert.False(t, room.TeamMode)
	})

	t.Run("Toggling off restores individual colors", func(t *testing.T) {
		// Given: four players in team mode
		room := newTestRoom(t, "alice", "bob", "carol", "dave")
		require.NoError(t, room.SetTeamMode("alice", true))
		assert.Equal(t, "red", room.Players[2].Color)

		// When: team mode is switched off
		require.NoError(t, room.SetTeamMode("alice", false))

		// Then: every player has their own color again
		assert.Equal(t, "green", room.Players[2].Color)
		assert.Nil(t, room.Players[2].Team)
	})
}

func TestRoom_Start(t *testing.T) {
	t.Run("Deals seven cards each and conserves the deck", func(t *testing.T) {
		// Given: a lobby of three
		room := newTestRoom(t, "alice", "bob", "carol")

		// When: the admin starts the game
		require.NoError(t, room.Start("alice"))

		// Then: every hand has seven cards and no card is lost or duplicated
		counts := make(map[Card]int)
		for _, player := range room.Players {
			assert.Len(t, player.Hand, DefaultHandSize)
			for _, card := range player.Hand {
				counts[card]++
			}
		}
		for _, card := range room.Deck.Cards() {
			counts[card]++
		}

		total := 0
		for _, count := range counts {
			assert.Equal(t, 2, count)
			total += count
		}
		assert.Equal(t, 104, total)
		assert.True(t, room.GameStarted)
		assert.Equal(t, 0, room.CurrentTurnIndex)
	})

	t.Run("Needs two players", func(t *testing.T) {
		room := newTestRoom(t, "alice")

		err := room.Start("alice")

		require.ErrorIs(t, err, apperror.ErrNotEnoughPlayers)
		assert.False(t, room.GameStarted)
	})

	t.Run("Only admin may start", func(t *testing.T) {
		room := newTestRoom(t, "alice", "bob")

		err := room.Start("bob")

		require.ErrorIs(t, err, apperror.ErrNotAdmin)
	})

	t.Run("Cannot start twice", func(t *testing.T) {
		room := newTestRoom(t, "alice", "bob")
		require.NoError(t, room.Start("alice"))

		err := room.Start("alice")

		require.ErrorIs(t, err, apperror.ErrGameAlreadyStarted)
	})
}

func TestRoom_Deal(t *testing.T) {
	// Given: a deck too small for a full deal
	room := newTestRoom(t, "alice", "bob")
	room.Deck = NewDeck("A♠", "2♠", "3♠", "4♠", "5♠", "6♠", "7♠", "8♠", "9♠")

	// When: dealing seven each
	room.Deal(7)

	// Then: dealing stops early without error
	assert.Len(t, room.Players[0].Hand, 7)
	assert.Len(t, room.Players[1].Hand, 2)
	assert.Zero(t, room.Deck.Len())
}
