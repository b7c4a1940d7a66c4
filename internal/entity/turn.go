package entity

import "slices"

// finishTurn records any sequence completed by a placement, declares a winner once
// the acting team holds enough sequences, and otherwise passes the turn on.
func (that *Room) finishTurn(player *Player, outcome *MoveOutcome) {
	if outcome.Kind == MovePlace {
		that.evaluateSequences(player, outcome)
	}

	if outcome.Winner != nil {
		return
	}

	that.CurrentTurnIndex = (that.CurrentTurnIndex + 1) % len(that.Players)
}

func (that *Room) evaluateSequences(player *Player, outcome *MoveOutcome) {
	teamColors := TeamColorsFor(player.Color, that.TeamMode)

	for _, color := range teamColors {
		if !HasSequenceThrough(&that.Board, outcome.Row, outcome.Col, color) {
			continue
		}

		record := SequenceRecord{Color: color, Timestamp: that.now()}
		that.Sequences = append(that.Sequences, record)
		outcome.Sequences = append(outcome.Sequences, record)

		if that.TeamSequenceCount(teamColors) >= that.rules.SequencesToWin {
			that.Winner = &Winner{
				PlayerID:   player.ID,
				PlayerName: player.Name,
				Team:       player.Public().Team,
				TeamMode:   that.TeamMode,
			}
			outcome.Winner = that.Winner

			return
		}
	}
}

// TeamSequenceCount counts recorded sequences whose color belongs to colors.
func (that *Room) TeamSequenceCount(colors []string) int {
	count := 0

	for _, record := range that.Sequences {
		if slices.Contains(colors, record.Color) {
			count++
		}
	}

	return count
}
