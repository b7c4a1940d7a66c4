package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/sequence-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type roomReader interface {
	RoomSummary(ctx context.Context, code string) (*usecase.RoomSummary, error)
}

type Server struct {
	logger    *slog.Logger
	rooms     roomReader
	publicURL string
}

func New(logger *slog.Logger, rooms roomReader, publicURL string) *Server {
	return &Server{
		logger:    logger.With("component", "rest"),
		rooms:     rooms,
		publicURL: publicURL,
	}
}

func (that *Server) Router() http.Handler {
	router := httprouter.New()

	router.GET("/ping", pingHandler)
	router.GET("/rooms/:code", that.roomHandler)
	router.GET("/rooms/:code/qr", that.qrHandler)

	return router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
