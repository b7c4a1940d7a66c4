package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamColorsFor(t *testing.T) {
	t.Run("Individual play counts only the player's color", func(t *testing.T) {
		assert.Equal(t, []string{"green"}, TeamColorsFor("green", false))
	})

	t.Run("Team play counts the whole pair", func(t *testing.T) {
		assert.Equal(t, []string{"red", "green"}, TeamColorsFor("green", true))
		assert.Equal(t, []string{"blue", "yellow"}, TeamColorsFor("blue", true))
		assert.Equal(t, []string{"purple", "orange"}, TeamColorsFor("orange", true))
	})
}

func TestTeamCount(t *testing.T) {
	assert.Equal(t, 1, TeamCount(2))
	assert.Equal(t, 2, TeamCount(3))
	assert.Equal(t, 2, TeamCount(4))
	assert.Equal(t, 3, TeamCount(6))
	assert.Equal(t, 3, TeamCount(12))
}

func TestAssignTeams(t *testing.T) {
	newPlayers := func(n int) []*Player {
		players := make([]*Player, 0, n)
		for range n {
			players = append(players, &Player{})
		}
		return players
	}

	t.Run("Four players form two teams by join order", func(t *testing.T) {
		// Given: four players
		players := newPlayers(4)

		// When: team mode is applied
		AssignTeams(players, true)

		// Then: seats alternate between team 0 and team 1
		for i, player := range players {
			require.NotNil(t, player.Team)
			assert.Equal(t, i%2, *player.Team)
			assert.Equal(t, TeamColors[i%2][0], player.Color)
		}
	})

	t.Run("Disabling team mode restores palette colors", func(t *testing.T) {
		// Given: players already in teams
		players := newPlayers(7)
		AssignTeams(players, true)

		// When: team mode is turned off
		AssignTeams(players, false)

		// Then: colors follow the palette, wrapping past six players
		for i, player := range players {
			assert.Nil(t, player.Team)
			assert.Equal(t, Colors[i%len(Colors)], player.Color)
		}
		assert.Equal(t, "red", players[6].Color)
	})
}
