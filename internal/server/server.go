package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-paper-agent/internal/agent"
	"github.com/rxtech-lab/argo-paper-agent/internal/logger"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

const (
	// maxTickBodyBytes bounds the size of an on-tick request body.
	maxTickBodyBytes = 1 << 20
	apiPrefix        = "/api/agent"
)

// Server exposes one agent over HTTP and streams its decisions over websocket.
type Server struct {
	agent      *agent.Agent
	hub        *Hub
	version    string
	router     *mux.Router
	httpServer *http.Server
	listener   net.Listener
	logger     *logger.Logger
}

// NewServer creates the HTTP surface of ag and subscribes the stream hub to its decisions.
func NewServer(ag *agent.Agent, hub *Hub, version string, log *logger.Logger) *Server {
	s := &Server{
		agent:      ag,
		hub:        hub,
		version:    version,
		router:     nil,
		httpServer: nil,
		listener:   nil,
		logger:     log,
	}

	ag.AddListener(func(decision types.BotDecision) {
		data, err := json.Marshal(decision)
		if err != nil {
			log.Error("Failed to marshal decision for stream", zap.Error(err))

			return
		}

		hub.Broadcast(data)
	})

	s.router = s.routes()

	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware(s.logger))

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// flat routes: a method mismatch inside a mux subrouter answers 404 instead of 405
	router.HandleFunc(apiPrefix+"/on-tick", s.handleOnTick).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/state", s.handleState).Methods(http.MethodGet)
	router.HandleFunc(apiPrefix+"/trades", s.handleTrades).Methods(http.MethodGet)
	router.HandleFunc(apiPrefix+"/reset", s.handleReset).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/stats", s.handleStats).Methods(http.MethodGet)
	router.Handle(apiPrefix+"/stream", s.hub).Methods(http.MethodGet)

	return router
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts serving on address in the background.
// If address is empty or ":0", a random available port is used.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to listen on %s", address)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.logger.Info("Agent server listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Stop drains in-flight requests and closes every stream client.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}
