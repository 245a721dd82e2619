package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"movetrack/internal/broadcast"
)

const (
	pingInterval = 30 * time.Second
	pongTimeout  = 60 * time.Second
)

// viewer pumps one subscriber's feed onto a websocket connection. The
// read pump exists only to process control frames and notice the close.
type viewer struct {
	conn         *websocket.Conn
	sub          *broadcast.Subscriber
	hub          *broadcast.Hub
	writeTimeout time.Duration
	logger       *zap.Logger
	closeOnce    sync.Once
}

func newViewer(conn *websocket.Conn, sub *broadcast.Subscriber, hub *broadcast.Hub, writeTimeout time.Duration, logger *zap.Logger) *viewer {
	return &viewer{
		conn:         conn,
		sub:          sub,
		hub:          hub,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

func (v *viewer) start() {
	go v.writePump()
	v.readPump()
}

func (v *viewer) readPump() {
	defer v.cleanup()
	v.conn.SetReadLimit(1024)
	v.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	v.conn.SetPongHandler(func(string) error {
		v.conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			v.logger.Info("viewer disconnected",
				zap.String("operator_key", v.sub.Key()),
				zap.Error(err))
			return
		}
	}
}

func (v *viewer) writePump() {
	defer v.cleanup()
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-v.sub.Messages():
			if !ok {
				_ = v.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := v.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := v.write(websocket.PingMessage, []byte("ping")); err != nil {
				return
			}
		}
	}
}

func (v *viewer) write(messageType int, data []byte) error {
	v.conn.SetWriteDeadline(time.Now().Add(v.writeTimeout))
	return v.conn.WriteMessage(messageType, data)
}

func (v *viewer) cleanup() {
	v.closeOnce.Do(func() {
		v.hub.Unsubscribe(v.sub)
		_ = v.conn.Close()
	})
}
