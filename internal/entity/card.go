package entity

import "strings"

// Card is a playing card token such as "10♥" or "J♠".
type Card string

var (
	Suits  = []string{"♠", "♥", "♦", "♣"}
	Values = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
)

const (
	// TwoEyedJacks may be placed on any open cell.
	TwoEyedHearts   Card = "J♥"
	TwoEyedDiamonds Card = "J♦"

	// OneEyedJacks remove an opponent's chip.
	OneEyedSpades Card = "J♠"
	OneEyedClubs  Card = "J♣"
)

func (that Card) IsJack() bool {
	return strings.HasPrefix(string(that), "J")
}

func (that Card) IsTwoEyedJack() bool {
	return that == TwoEyedHearts || that == TwoEyedDiamonds
}

// IsOneEyedJack treats every jack that is not two-eyed as one-eyed.
func (that Card) IsOneEyedJack() bool {
	return that.IsJack() && !that.IsTwoEyedJack()
}
