package ws

import (
	"encoding/json"
	"sync"

	"creativemastery/internal/metrics"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Session message types
const (
	MsgResultsUpdate  MessageType = "results_update"
	MsgInsightsUpdate MessageType = "insights_update"
	MsgSessionClosed  MessageType = "session_closed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans session updates out to every connection watching that session
type Hub struct {
	// sessionID -> connections
	sessions map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	done       chan struct{}
	closeOnce  sync.Once
	stopped    chan struct{}

	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast.
// Disconnect closes the session's connections instead of sending.
// A non-nil To limits delivery to that one connection.
type BroadcastMessage struct {
	SessionID  string
	Message    *Message
	Disconnect bool
	To         *Connection
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(m *metrics.Metrics, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		sessions:   make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		metrics:    m,
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.sessions[conn.SessionID] == nil {
				h.sessions[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.sessions[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			h.metrics.IncConnections()
			h.logger.Debug("session subscriber connected", zap.String("sessionId", conn.SessionID))

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			if msg.Disconnect {
				h.mu.Lock()
				for conn := range h.sessions[msg.SessionID] {
					h.remove(conn)
				}
				h.mu.Unlock()
				continue
			}
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Warn("failed to encode message", zap.Error(err))
				continue
			}
			h.mu.RLock()
			for conn := range h.sessions[msg.SessionID] {
				if msg.To != nil && msg.To != conn {
					continue
				}
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.sessions {
				for conn := range conns {
					h.remove(conn)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove closes a registered connection; callers hold mu
func (h *Hub) remove(conn *Connection) {
	conns, ok := h.sessions[conn.SessionID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.sessions, conn.SessionID)
	}
	close(conn.Send)
	h.metrics.DecConnections()
	h.logger.Debug("session subscriber disconnected", zap.String("sessionId", conn.SessionID))
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Count returns the number of connections watching a session
func (h *Hub) Count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// BroadcastToSession sends a message to every subscriber of a session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	msg, err := newMessage(MessageType(msgType), payload)
	if err != nil {
		h.logger.Warn("failed to encode payload", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Message: msg}:
	case <-h.done:
	}
}

// SendTo queues a message for one registered connection.
// It is dropped if the connection has already gone.
func (h *Hub) SendTo(conn *Connection, msgType MessageType, payload interface{}) {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		h.logger.Warn("failed to encode payload", zap.String("type", string(msgType)), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &BroadcastMessage{SessionID: conn.SessionID, Message: msg, To: conn}:
	case <-h.done:
	}
}

// DisconnectSession closes every connection of a session (implements service.Broadcaster).
// Messages already queued for the session are delivered first.
func (h *Hub) DisconnectSession(sessionID string) {
	select {
	case h.broadcast <- &BroadcastMessage{SessionID: sessionID, Disconnect: true}:
	case <-h.done:
	}
}

// Close stops the hub and closes all connections
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.stopped
}

func newMessage(t MessageType, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: t, Payload: data}, nil
}
