package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
)

const (
	writeTimeout = time.Second
	// events buffered per client before it is considered too slow
	sendBufferSize = 64
)

// Handler streams watch reports to websocket clients. It is a Reporter so
// it can sit next to the console printer in a MultiReporter.
type Handler struct {
	logger   outbound.Logger
	upgrader websocket.Upgrader
	clients  map[string]*websocketConnection
	mu       sync.RWMutex
}

// websocketConnection is one connected client. Only its writePump writes to
// conn once it is registered.
type websocketConnection struct {
	id        string
	conn      *websocket.Conn
	send      chan any
	closeOnce sync.Once
}

func NewHandler(logger outbound.Logger) *Handler {
	return &Handler{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[string]*websocketConnection),
	}
}

var _ outbound.Reporter = (*Handler)(nil)

// ServeHTTP upgrades the request and registers the client.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Error upgrading to WebSocket", "error", err)
		return
	}

	client := &websocketConnection{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan any, sendBufferSize),
	}

	if err := client.writeJSON(map[string]string{
		"type":     "connected",
		"clientId": client.id,
	}); err != nil {
		conn.Close()
		return
	}

	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()

	h.logger.Debug("WebSocket client connected", "client_id", client.id, "remote", r.RemoteAddr)

	go h.writePump(client)
	go h.handleSession(client)
}

// ClientCount returns the number of connected clients
func (h *Handler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Handler) handleSession(client *websocketConnection) {
	defer h.drop(client)

	for {
		messageType, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket error", "client_id", client.id, "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		var message map[string]any
		if err := json.Unmarshal(data, &message); err != nil {
			continue
		}
		if message["type"] == "ping" {
			h.enqueue(client, map[string]string{"type": "pong"})
		}
	}
}

// writePump owns every write to the connection after registration. It sends
// a close frame and closes the connection once send is closed.
func (h *Handler) writePump(client *websocketConnection) {
	for v := range client.send {
		if err := client.writeJSON(v); err != nil {
			h.logger.Debug("WebSocket write failed", "client_id", client.id, "error", err)
			// unblocks the read loop, which drops the client
			client.conn.Close()
			for range client.send {
			}
			return
		}
	}

	client.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	client.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Server shutting down"))
	client.conn.Close()
}

// drop unregisters the client and stops its writer. Safe to call more than once.
func (h *Handler) drop(client *websocketConnection) {
	h.mu.Lock()
	_, ok := h.clients[client.id]
	delete(h.clients, client.id)
	client.stop()
	h.mu.Unlock()

	if ok {
		h.logger.Debug("WebSocket client disconnected", "client_id", client.id)
	}
}

func (h *Handler) OnStart()                      { h.broadcast(model.ReportStart, "") }
func (h *Handler) OnCommandAbout(command string) { h.broadcast(model.ReportCommand, command) }
func (h *Handler) OnSuccess(output string)       { h.broadcast(model.ReportSuccess, output) }
func (h *Handler) OnError(output string)         { h.broadcast(model.ReportError, output) }
func (h *Handler) OnSeparator()                  { h.broadcast(model.ReportSeparator, "") }

// broadcast queues one event for every client without waiting on the
// network. A client whose queue is full is dropped.
func (h *Handler) broadcast(kind model.ReportKind, message string) {
	event := model.ReportEvent{
		ID:      uuid.New().String(),
		Kind:    kind,
		Message: message,
		Time:    time.Now(),
	}

	var slow []*websocketConnection

	// send is only closed under the write lock
	h.mu.RLock()
	for _, c := range h.clients {
		select {
		case c.send <- event:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Debug("Dropping slow WebSocket client", "client_id", c.id)
		h.drop(c)
	}
}

// enqueue queues v for a still registered client
func (h *Handler) enqueue(client *websocketConnection, v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.clients[client.id] != client {
		return
	}
	select {
	case client.send <- v:
	default:
	}
}

// Cleanup closes every connection.
func (h *Handler) Cleanup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		delete(h.clients, id)
		c.stop()
	}
}

func (c *websocketConnection) stop() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *websocketConnection) writeJSON(v any) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(v)
}
