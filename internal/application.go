package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/sequence-backend/internal/config"
	"github.com/rocketscienceinc/sequence-backend/internal/entity"
	"github.com/rocketscienceinc/sequence-backend/internal/repository"
	"github.com/rocketscienceinc/sequence-backend/internal/transport/redis"
	"github.com/rocketscienceinc/sequence-backend/internal/usecase"
	"github.com/rocketscienceinc/sequence-backend/transport/rest"
	"github.com/rocketscienceinc/sequence-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

const redisPingTimeout = 5 * time.Second

// RunApp - runs the application until a signal arrives or a server fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	rules := RulesFromConfig(conf.Game)
	seed := uint64(time.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	roomRepo := repository.NewRoomRepository()
	roomManager := usecase.NewRoomManager(logger, roomRepo, rules, rng)
	wsServer := websocket.New(logger, roomManager)

	if conf.Redis.Enabled {
		publisher, err := newPublisher(ctx, conf.Redis)
		if err != nil {
			return err
		}

		defer func() {
			if err = publisher.Close(); err != nil {
				log.Error("could not close redis publisher", "error", err)
			}
		}()

		wsServer.WithMirror(publisher)
		log.Info("Mirroring room events to redis", "addr", conf.Redis.GetRedisAddr())
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, roomManager, conf.PublicURL)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RulesFromConfig fills unset values with the standard rules.
func RulesFromConfig(game config.Game) entity.Rules {
	rules := entity.DefaultRules()

	if game.HandSize > 0 {
		rules.HandSize = game.HandSize
	}
	if game.MaxPlayers > 0 {
		rules.MaxPlayers = game.MaxPlayers
	}
	if game.MinPlayers > 0 {
		rules.MinPlayers = game.MinPlayers
	}
	if game.SequencesToWin > 0 {
		rules.SequencesToWin = game.SequencesToWin
	}

	return rules
}

func newPublisher(ctx context.Context, conf config.Redis) (*redis.Publisher, error) {
	if conf.Host == "" || conf.Port == "" {
		return nil, ErrAddrNotFound
	}

	publisher := redis.New(conf.GetRedisAddr())

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := publisher.Ping(pingCtx); err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return publisher, nil
}
