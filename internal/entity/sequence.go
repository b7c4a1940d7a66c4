package entity

// SequenceLength is the run length that completes a sequence.
const SequenceLength = 5

var sequenceAxes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal ↘
	{1, -1}, // diagonal ↙
}

// HasSequenceThrough reports whether a run of SequenceLength cells passes through (row, col)
// along any axis. Cells count when they hold color or are corners; (row, col) itself always counts.
func HasSequenceThrough(board *Board, row, col int, color string) bool {
	for _, axis := range sequenceAxes {
		dr, dc := axis[0], axis[1]

		count := 1 + runLength(board, row, col, dr, dc, color) + runLength(board, row, col, -dr, -dc, color)
		if count >= SequenceLength {
			return true
		}
	}

	return false
}

func runLength(board *Board, row, col, dr, dc int, color string) int {
	length := 0

	for r, c := row+dr, col+dc; InBounds(r, c); r, c = r+dr, c+dc {
		cell := board[r][c]
		if cell.Chip != color && !cell.IsCorner {
			break
		}
		length++
	}

	return length
}
