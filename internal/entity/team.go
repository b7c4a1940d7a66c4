package entity

const MaxTeams = 3

var (
	// Colors is the palette handed out by join order when team mode is off.
	Colors = []string{"red", "blue", "green", "yellow", "purple", "orange"}

	// TeamColors partitions the palette into fixed two-color teams.
	TeamColors = [MaxTeams][2]string{
		{"red", "green"},
		{"blue", "yellow"},
		{"purple", "orange"},
	}
)

// ColorForSeat returns the palette color of the player at join position seat.
func ColorForSeat(seat int) string {
	return Colors[seat%len(Colors)]
}

// TeamColorsFor returns the colors counted as the player's own.
func TeamColorsFor(playerColor string, teamMode bool) []string {
	if !teamMode {
		return []string{playerColor}
	}

	for _, team := range TeamColors {
		for _, color := range team {
			if color == playerColor {
				return team[:]
			}
		}
	}

	return []string{playerColor}
}

// TeamCount is the number of teams formed by playerCount players in team mode.
func TeamCount(playerCount int) int {
	return min(MaxTeams, (playerCount+1)/2)
}

// AssignTeams recolors players by join order. In team mode each player joins team
// index mod TeamCount and takes that team's first color; otherwise teams are cleared.
func AssignTeams(players []*Player, teamMode bool) {
	if !teamMode {
		for i, player := range players {
			player.Team = nil
			player.Color = ColorForSeat(i)
		}

		return
	}

	teams := TeamCount(len(players))
	for i, player := range players {
		team := i % teams
		player.Team = &team
		player.Color = TeamColors[team][0]
	}
}
