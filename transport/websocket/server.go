package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/sequence-backend/internal/entity"
	"github.com/rocketscienceinc/sequence-backend/internal/pkg"
	"github.com/rocketscienceinc/sequence-backend/internal/usecase"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 4096
)

type roomManager interface {
	CreateRoom(ctx context.Context, playerID, playerName string) (*usecase.JoinResult, error)
	JoinRoom(ctx context.Context, code, playerID, playerName string) (*usecase.JoinResult, error)
	SetTeamMode(ctx context.Context, code, playerID string, enabled bool) (*usecase.SettingsResult, error)
	StartGame(ctx context.Context, code, playerID string) (*usecase.StartResult, error)
	PlayCard(ctx context.Context, code, playerID string, card entity.Card, row, col int) (*usecase.PlayResult, error)
	LeaveRoom(ctx context.Context, code, playerID string) (*usecase.LeaveResult, error)
}

// eventMirror receives a copy of every room broadcast.
type eventMirror interface {
	Publish(ctx context.Context, roomCode, event string, payload any) error
	Forget(ctx context.Context, roomCode string) error
}

type handlerFunc func(ctx context.Context, client *client, message *Message) error

type Server struct {
	logger   *slog.Logger
	rooms    roomManager
	mirror   eventMirror
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
	members map[string]map[string]*client

	handlers map[string]handlerFunc
}

// client is one websocket connection; its id is the player id in every room it joins.
type client struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex
	rooms   map[string]struct{}
}

func New(logger *slog.Logger, rooms roomManager) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		rooms:  rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		clients:  make(map[string]*client),
		members:  make(map[string]map[string]*client),
		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionCreateRoom] = server.handleCreateRoom
	server.handlers[ActionJoinRoom] = server.handleJoinRoom
	server.handlers[ActionToggleTeamMode] = server.handleToggleTeamMode
	server.handlers[ActionStartGame] = server.handleStartGame
	server.handlers[ActionPlayCard] = server.handlePlayCard
	server.handlers[ActionLeaveRoom] = server.handleLeaveRoom

	return server
}

// WithMirror sets the sink that receives a copy of every room broadcast.
func (that *Server) WithMirror(mirror eventMirror) *Server {
	that.mirror = mirror
	return that
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until the peer goes away.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)

	c := &client{
		id:    pkg.GenerateConnectionID(),
		conn:  conn,
		rooms: make(map[string]struct{}),
	}

	that.mu.Lock()
	that.clients[c.id] = c
	that.mu.Unlock()

	log.Info("WebSocket connection established", "connID", c.id)

	defer func() {
		that.disconnect(ctx, c)
		_ = conn.Close()
	}()

	that.handleMessages(ctx, c)
}

// handleMessages - processes messages from the client until the connection fails.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "connID", c.id)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			that.sendError(c, ErrMalformedMessage)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			that.sendError(c, fmt.Errorf("%w: %s", ErrUnknownAction, message.Action))
			continue
		}

		if err = handler(ctx, c, &message); err != nil {
			log.Info("action rejected", "action", message.Action, "error", err)
			that.sendError(c, err)
		}
	}
}

// disconnect removes the connection's player from every room it was in.
func (that *Server) disconnect(ctx context.Context, c *client) {
	that.mu.Lock()
	delete(that.clients, c.id)
	codes := make([]string, 0, len(c.rooms))
	for code := range c.rooms {
		codes = append(codes, code)
	}
	that.mu.Unlock()

	for _, code := range codes {
		if err := that.leave(ctx, c, code); err != nil {
			that.logger.Warn("failed to remove disconnected player", "connID", c.id, "roomCode", code, "error", err)
		}
	}

	that.logger.Info("WebSocket connection closed", "connID", c.id)
}

func (that *Server) join(c *client, code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.members[code]; !ok {
		that.members[code] = make(map[string]*client)
	}
	that.members[code][c.id] = c
	c.rooms[code] = struct{}{}
}

func (that *Server) part(c *client, code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(c.rooms, code)
	if members, ok := that.members[code]; ok {
		delete(members, c.id)
		if len(members) == 0 {
			delete(that.members, code)
		}
	}
}

func (that *Server) roomClients(code string) []*client {
	that.mu.RLock()
	defer that.mu.RUnlock()

	out := make([]*client, 0, len(that.members[code]))
	for _, c := range that.members[code] {
		out = append(out, c)
	}

	return out
}

func (that *Server) clientByID(id string) (*client, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	c, ok := that.clients[id]

	return c, ok
}

// broadcast sends the event to every connection in the room except skip, then mirrors it.
func (that *Server) broadcast(ctx context.Context, code, event string, payload any, skip *client) {
	for _, c := range that.roomClients(code) {
		if c == skip {
			continue
		}
		if err := that.send(c, event, payload); err != nil {
			that.logger.Warn("failed to send message", "connID", c.id, "event", event, "error", err)
		}
	}

	that.mirrorEvent(ctx, code, event, payload)
}

func (that *Server) mirrorEvent(ctx context.Context, code, event string, payload any) {
	if that.mirror == nil {
		return
	}

	if err := that.mirror.Publish(ctx, code, event, payload); err != nil {
		that.logger.Warn("failed to mirror event", "roomCode", code, "event", event, "error", err)
	}
}

func (that *Server) send(c *client, event string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err = c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = c.conn.WriteJSON(Message{Action: event, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(c *client, err error) {
	if sendErr := that.send(c, EventError, ErrorPayload{Message: publicMessage(err)}); sendErr != nil {
		that.logger.Warn("failed to send error", "connID", c.id, "error", sendErr)
	}
}
