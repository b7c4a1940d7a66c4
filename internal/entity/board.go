package entity

const (
	BoardSize = 10

	// CornerMark is printed on the four wild corner cells.
	CornerMark Card = "*"

	NoChip = ""
)

// BoardLayout is the fixed card-to-cell mapping shared by every room.
var BoardLayout = [BoardSize][BoardSize]Card{
	{"*", "2♠", "3♠", "4♠", "5♠", "6♠", "7♠", "8♠", "9♠", "*"},
	{"6♣", "5♣", "4♣", "3♣", "2♣", "A♥", "K♥", "Q♥", "10♥", "10♠"},
	{"7♣", "A♠", "2♦", "3♦", "4♦", "5♦", "6♦", "7♦", "9♥", "Q♠"},
	{"8♣", "K♠", "6♣", "5♣", "4♣", "3♣", "2♣", "8♦", "8♥", "K♠"},
	{"9♣", "Q♠", "7♣", "6♥", "5♥", "4♥", "A♣", "9♦", "7♥", "A♠"},
	{"10♣", "10♠", "8♣", "7♥", "2♥", "3♥", "K♣", "10♦", "6♥", "2♦"},
	{"Q♣", "9♠", "9♣", "8♥", "9♥", "10♥", "Q♣", "Q♦", "5♥", "3♦"},
	{"K♣", "8♠", "10♣", "Q♣", "K♣", "A♣", "K♦", "K♦", "4♥", "4♦"},
	{"A♣", "7♠", "6♠", "5♠", "4♠", "3♠", "2♠", "A♦", "3♥", "5♦"},
	{"*", "A♦", "K♦", "Q♦", "10♦", "9♦", "8♦", "7♦", "6♦", "*"},
}

type Cell struct {
	Card     Card   `json:"card"`
	Chip     string `json:"chip"`
	IsCorner bool   `json:"isCorner"`
}

// Board is a value type: assigning it copies every cell.
type Board [BoardSize][BoardSize]Cell

func NewBoard() Board {
	var board Board

	for row := range BoardSize {
		for col := range BoardSize {
			card := BoardLayout[row][col]
			board[row][col] = Cell{
				Card:     card,
				Chip:     NoChip,
				IsCorner: card == CornerMark,
			}
		}
	}

	return board
}

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// ChipCount returns the number of cells holding a chip.
func (that *Board) ChipCount() int {
	count := 0

	for row := range that {
		for col := range that[row] {
			if that[row][col].Chip != NoChip {
				count++
			}
		}
	}

	return count
}
