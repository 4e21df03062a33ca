package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ptcgsim/ptcg-server-go/internal/config"
)

// Server exposes the hub over an HTTP listener: /ws for the WebSocket
// protocol and /healthz for probes.
type Server struct {
	cfg      config.ServerConfig
	hub      *Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// NewServer builds the HTTP layer on an existing hub.
func NewServer(cfg config.ServerConfig, hub *Hub, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		cfg:    cfg,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if cfg.AllowAllOrigins {
		s.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", s.serveHealth)
	s.httpSrv = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.httpSrv.Handler }

// ListenAndServe blocks until the listener fails or Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("websocket server listening", zap.String("address", s.cfg.Address))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed",
			zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	client := newClient(s.hub, conn, s.cfg.SendBuffer, s.cfg.WriteTimeout, s.cfg.PongTimeout)
	s.hub.addClient(client)

	go client.writePump()
	go client.readPump()
}

func (s *Server) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
}
