package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return ErrMalformedMessage
	}

	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	return nil
}

func roomCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrMissingRoomCode
	}

	return code, nil
}

func (that *Server) handleCreateRoom(ctx context.Context, c *client, msg *Message) error {
	var req CreateRoomRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	result, err := that.rooms.CreateRoom(ctx, c.id, req.PlayerName)
	if err != nil {
		return err
	}

	that.join(c, result.Code)

	if err = that.send(c, EventRoomCreated, RoomCreatedPayload{RoomCode: result.Code, Player: result.Player}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	that.mirrorEvent(ctx, result.Code, EventPlayersUpdated, PlayersPayload{Players: result.Players})

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, c *client, msg *Message) error {
	var req JoinRoomRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	code, err := roomCode(req.RoomCode)
	if err != nil {
		return err
	}

	result, err := that.rooms.JoinRoom(ctx, code, c.id, req.PlayerName)
	if err != nil {
		return err
	}

	that.join(c, result.Code)

	if err = that.send(c, EventRoomJoined, RoomJoinedPayload{
		RoomCode: result.Code,
		Player:   result.Player,
		Players:  result.Players,
	}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	that.broadcast(ctx, result.Code, EventPlayersUpdated, PlayersPayload{Players: result.Players}, c)

	return nil
}

func (that *Server) handleToggleTeamMode(ctx context.Context, c *client, msg *Message) error {
	var req ToggleTeamModeRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	code, err := roomCode(req.RoomCode)
	if err != nil {
		return err
	}

	result, err := that.rooms.SetTeamMode(ctx, code, c.id, req.TeamMode)
	if err != nil {
		return err
	}

	that.broadcast(ctx, code, EventGameSettingsUpdated, SettingsPayload{
		TeamMode: result.TeamMode,
		Players:  result.Players,
	}, nil)

	return nil
}

// handleStartGame sends every player the board together with their own hand only.
func (that *Server) handleStartGame(ctx context.Context, c *client, msg *Message) error {
	var req RoomRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	code, err := roomCode(req.RoomCode)
	if err != nil {
		return err
	}

	result, err := that.rooms.StartGame(ctx, code, c.id)
	if err != nil {
		return err
	}

	public := GameStartedPayload{
		Board:            result.Snapshot.Board,
		CurrentTurnIndex: result.Snapshot.CurrentTurnIndex,
		Players:          result.Snapshot.Players,
		TeamMode:         result.Snapshot.TeamMode,
	}

	for _, player := range result.Snapshot.Players {
		member, ok := that.clientByID(player.ID)
		if !ok {
			continue
		}

		private := public
		private.Hand = result.Hands[player.ID]

		if err = that.send(member, EventGameStarted, private); err != nil {
			that.logger.Warn("failed to send game start", "connID", member.id, "error", err)
		}
	}

	that.mirrorEvent(ctx, code, EventGameStarted, public)

	return nil
}

func (that *Server) handlePlayCard(ctx context.Context, c *client, msg *Message) error {
	var req PlayCardRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	code, err := roomCode(req.RoomCode)
	if err != nil {
		return err
	}

	if req.Row == nil || req.Col == nil {
		return ErrMissingCell
	}

	result, err := that.rooms.PlayCard(ctx, code, c.id, req.Card, *req.Row, *req.Col)
	if err != nil {
		return err
	}

	if err = that.send(c, EventHandUpdated, HandPayload{Hand: result.Hand}); err != nil {
		that.logger.Warn("failed to send hand", "connID", c.id, "error", err)
	}

	that.broadcast(ctx, code, EventGameUpdated, GameUpdatedPayload{
		Board:            result.Snapshot.Board,
		CurrentTurnIndex: result.Snapshot.CurrentTurnIndex,
		Sequences:        result.Snapshot.Sequences,
		Winner:           result.Snapshot.Winner,
	}, nil)

	return nil
}

func (that *Server) handleLeaveRoom(ctx context.Context, c *client, msg *Message) error {
	var req RoomRequest
	if err := decode(msg, &req); err != nil {
		return err
	}

	code, err := roomCode(req.RoomCode)
	if err != nil {
		return err
	}

	return that.leave(ctx, c, code)
}

// leave removes the player from the room and tells the remaining members. During a
// game every departure resends the seat order with the turn index, since seats shift.
func (that *Server) leave(ctx context.Context, c *client, code string) error {
	result, err := that.rooms.LeaveRoom(ctx, code, c.id)

	that.part(c, code)

	if err != nil {
		return err
	}

	if result.RoomDeleted {
		if that.mirror != nil {
			if err = that.mirror.Forget(ctx, code); err != nil {
				that.logger.Warn("failed to forget room", "roomCode", code, "error", err)
			}
		}
		return nil
	}

	that.broadcast(ctx, code, EventPlayerLeft, PlayerLeftPayload{
		PlayerID:   result.Player.ID,
		PlayerName: result.Player.Name,
	}, nil)

	switch {
	case result.GameStarted:
		turn := result.CurrentTurnIndex
		that.broadcast(ctx, code, EventPlayersUpdated, PlayersPayload{
			Players:          result.Players,
			CurrentTurnIndex: &turn,
		}, nil)
	case result.NewAdmin != nil:
		that.broadcast(ctx, code, EventPlayersUpdated, PlayersPayload{Players: result.Players}, nil)
	}

	return nil
}
