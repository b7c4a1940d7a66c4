package entity

import "math/rand/v2"

// DecksInPlay is the number of standard 52-card decks combined into one draw pile.
const DecksInPlay = 2

// Deck is the shared draw pile of one room. Cards are drawn from the end.
type Deck struct {
	cards []Card
}

// NewShuffledDeck builds the double deck and shuffles it with rng.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, DecksInPlay*len(Suits)*len(Values))

	for range DecksInPlay {
		for _, suit := range Suits {
			for _, value := range Values {
				cards = append(cards, Card(value+suit))
			}
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// NewDeck returns a deck holding cards in the given order; the last card is drawn first.
func NewDeck(cards ...Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// Draw removes and returns the last card. ok is false when the deck is empty.
func (that *Deck) Draw() (Card, bool) {
	if len(that.cards) == 0 {
		return "", false
	}

	last := len(that.cards) - 1
	card := that.cards[last]
	that.cards = that.cards[:last]

	return card, true
}

func (that *Deck) Len() int {
	return len(that.cards)
}

func (that *Deck) Cards() []Card {
	return append([]Card(nil), that.cards...)
}
