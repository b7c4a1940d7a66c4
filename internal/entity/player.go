package entity

type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	IsAdmin bool   `json:"isAdmin"`
	Hand    []Card `json:"-"`
	Team    *int   `json:"team"`
}

// PublicPlayer is what other room members may see about a player.
type PublicPlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsAdmin   bool   `json:"isAdmin"`
	Team      *int   `json:"team"`
	CardCount int    `json:"cardCount"`
}

func (that *Player) Public() PublicPlayer {
	public := PublicPlayer{
		ID:        that.ID,
		Name:      that.Name,
		Color:     that.Color,
		IsAdmin:   that.IsAdmin,
		CardCount: len(that.Hand),
	}

	if that.Team != nil {
		team := *that.Team
		public.Team = &team
	}

	return public
}

func (that *Player) HandCopy() []Card {
	return append([]Card{}, that.Hand...)
}

func (that *Player) HasCard(card Card) bool {
	return that.cardIndex(card) >= 0
}

// RemoveCard removes one copy of card from the hand.
func (that *Player) RemoveCard(card Card) bool {
	i := that.cardIndex(card)
	if i < 0 {
		return false
	}

	that.Hand = append(that.Hand[:i], that.Hand[i+1:]...)

	return true
}

func (that *Player) cardIndex(card Card) int {
	for i, c := range that.Hand {
		if c == card {
			return i
		}
	}

	return -1
}
