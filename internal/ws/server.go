package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"movetrack/internal/broadcast"
)

// Server upgrades viewer connections and attaches them to the hub.
type Server struct {
	hub          *broadcast.Hub
	logger       *zap.Logger
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
}

// NewServer builds ws server.
func NewServer(hub *broadcast.Hub, writeTimeout time.Duration, logger *zap.Logger) *Server {
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &Server{
		hub:          hub,
		logger:       logger,
		writeTimeout: writeTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleGPS is the HTTP handler for /ws/gps. A viewer subscribes to one
// operator key and receives that operator's live readings until it
// disconnects.
func (s *Server) HandleGPS(w http.ResponseWriter, r *http.Request) {
	operatorKey := r.URL.Query().Get("operator_id")
	if operatorKey == "" {
		http.Error(w, "operator_id is required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := s.hub.Subscribe(operatorKey)
	viewer := newViewer(conn, sub, s.hub, s.writeTimeout, s.logger)
	go viewer.start()

	s.logger.Info("viewer connected", zap.String("operator_key", operatorKey))
}
