package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taskboard/backend/realtime"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// RealtimeController upgrades websocket connections and relays task
// change events from the hub to each connected client.
type RealtimeController struct {
	hub      *realtime.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewRealtimeController creates a new realtime controller
func NewRealtimeController(hub *realtime.Hub, logger *zap.Logger) *RealtimeController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RealtimeController{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the CORS layer; the
			// websocket endpoint accepts any origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws
func (rc *RealtimeController) Serve(c *gin.Context) {
	conn, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rc.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	events, unsubscribe := rc.hub.Subscribe()
	done := make(chan struct{})

	go rc.writePump(conn, events, done)
	rc.readPump(conn)

	// The read pump returned, so the client is gone. Tear down the
	// subscription and stop the write pump.
	unsubscribe()
	close(done)
	conn.Close()
}

// writePump forwards hub events to the connection and keeps it alive
// with periodic pings. It exits when the subscription channel closes or
// the session is done.
func (rc *RealtimeController) writePump(conn *websocket.Conn, events <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				// Force the read pump to return so the session tears down.
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

// readPump consumes and discards client frames so close and pong
// control messages are processed. It returns when the connection drops.
func (rc *RealtimeController) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				rc.logger.Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}
	}
}
