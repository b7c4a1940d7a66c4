package entity

import (
	"fmt"

	"github.com/rocketscienceinc/sequence-backend/internal/apperror"
)

const (
	MovePlace  = "place"
	MoveRemove = "remove"
)

// MoveOutcome is the result of an accepted play.
type MoveOutcome struct {
	PlayerID  string           `json:"playerId"`
	Card      Card             `json:"card"`
	Row       int              `json:"row"`
	Col       int              `json:"col"`
	Kind      string           `json:"kind"`
	Drew      bool             `json:"drew"`
	Sequences []SequenceRecord `json:"sequences,omitempty"`
	Winner    *Winner          `json:"winner"`
}

// ApplyMove validates and performs one play of card at (row, col) by playerID.
// A rejected move leaves the room untouched.
func (that *Room) ApplyMove(playerID string, card Card, row, col int) (*MoveOutcome, error) {
	switch {
	case that.Closed:
		return nil, apperror.ErrRoomNotFound
	case !that.GameStarted:
		return nil, apperror.ErrGameNotStarted
	case that.Winner != nil:
		return nil, apperror.ErrGameFinished
	}

	player := that.CurrentPlayer()
	if player == nil || player.ID != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	if !player.HasCard(card) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCardNotInHand, card)
	}

	if !InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, row, col)
	}

	kind, err := that.Board.validate(player.Color, card, row, col)
	if err != nil {
		return nil, err
	}

	cell := &that.Board[row][col]
	if kind == MoveRemove {
		cell.Chip = NoChip
	} else {
		cell.Chip = player.Color
	}

	player.RemoveCard(card)
	drawn, drew := that.Deck.Draw()
	if drew {
		player.Hand = append(player.Hand, drawn)
	}

	outcome := &MoveOutcome{
		PlayerID: player.ID,
		Card:     card,
		Row:      row,
		Col:      col,
		Kind:     kind,
		Drew:     drew,
	}

	that.finishTurn(player, outcome)

	return outcome, nil
}

// validate decides whether color may play card at (row, col) and what the play does.
func (that *Board) validate(color string, card Card, row, col int) (string, error) {
	cell := that[row][col]

	switch {
	case card.IsTwoEyedJack():
		if cell.IsCorner || cell.Chip != NoChip {
			return "", apperror.ErrInvalidPlacement
		}

		return MovePlace, nil

	case card.IsOneEyedJack():
		if cell.IsCorner || cell.Chip == NoChip || cell.Chip == color {
			return "", apperror.ErrInvalidRemoval
		}

		return MoveRemove, nil

	default:
		if cell.Card != card {
			return "", apperror.ErrCardPositionMismatch
		}

		if cell.IsCorner || cell.Chip != NoChip {
			return "", apperror.ErrPositionOccupied
		}

		return MovePlace, nil
	}
}
