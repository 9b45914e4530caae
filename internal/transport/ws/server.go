package ws

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/board-games/internal/config"
	"github.com/kiryu-dev/board-games/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type server struct {
	srv      *http.Server
	cfg      config.ServerConfig
	games    domain.GameUseCase
	hub      domain.HubUseCase
	clients  *registry
	upgrader websocket.Upgrader
	validate *validator.Validate
	logger   *zap.Logger
}

func New(cfg config.ServerConfig, games domain.GameUseCase, hub domain.HubUseCase,
	clients *registry, logger *zap.Logger) *server {
	s := &server{
		cfg:     cfg,
		games:   games,
		hub:     hub,
		clients: clients,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.New(),
		logger:   logger,
	}
	s.srv = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

// Shutdown stops accepting requests and waits for the handlers in flight.
// Hijacked websocket connections aren't tracked by http.Server, so they're
// closed here.
func (s *server) Shutdown(ctx context.Context) error {
	s.clients.closeAll()
	return s.srv.Shutdown(ctx)
}

func (s *server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthCheck)
	mux.HandleFunc("POST /api/{kind}/games", s.createGame)
	mux.HandleFunc("GET /api/{kind}/games/{id}", s.getGame)
	mux.HandleFunc("POST /api/{kind}/games/{id}/actions", s.applyAction)
	mux.HandleFunc("POST /api/{kind}/games/{id}/computer", s.computerMove)
	mux.HandleFunc("GET /ws", s.serveWs)
	if s.cfg.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return mux
}
