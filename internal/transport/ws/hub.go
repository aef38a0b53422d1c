package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgSubscribed        MessageType = "subscribed"
	MsgResponseSubmitted MessageType = "response_submitted"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one subscriber of a survey's feed
type Connection struct {
	SurveyID string
	UserID   string
	Send     chan []byte
}

// NewConnection creates a subscriber with a buffered send queue
func NewConnection(surveyID, userID string) *Connection {
	return &Connection{
		SurveyID: surveyID,
		UserID:   userID,
		Send:     make(chan []byte, 256),
	}
}

type broadcastMessage struct {
	surveyID string
	data     []byte
}

// Hub fans survey events out to subscribed connections
type Hub struct {
	// survey -> subscribers
	subscribers map[string]map[*Connection]struct{}
	mu          sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
	done       chan struct{}
	closeOnce  sync.Once

	log *zap.Logger
}

// NewHub creates a WebSocket hub and starts its loop
func NewHub(log *zap.Logger) *Hub {
	h := &Hub{
		subscribers: make(map[string]map[*Connection]struct{}),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan *broadcastMessage, 256),
		done:        make(chan struct{}),
		log:         log,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.subscribers[conn.SurveyID] == nil {
				h.subscribers[conn.SurveyID] = make(map[*Connection]struct{})
			}
			h.subscribers[conn.SurveyID][conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("subscriber connected", zap.String("surveyId", conn.SurveyID), zap.String("userId", conn.UserID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if subs, ok := h.subscribers[conn.SurveyID]; ok {
				if _, ok := subs[conn]; ok {
					delete(subs, conn)
					close(conn.Send)
					if len(subs) == 0 {
						delete(h.subscribers, conn.SurveyID)
					}
					h.log.Debug("subscriber disconnected", zap.String("surveyId", conn.SurveyID), zap.String("userId", conn.UserID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.subscribers[msg.surveyID] {
				select {
				case conn.Send <- msg.data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, subs := range h.subscribers {
				for conn := range subs {
					close(conn.Send)
				}
			}
			h.subscribers = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection. It reports false once the hub is closed.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Subscribers returns the number of live subscribers of a survey
func (h *Hub) Subscribers(surveyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[surveyID])
}

// Publish sends an event to every subscriber of surveyID (implements service.Broadcaster)
func (h *Hub) Publish(surveyID string, msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		h.log.Error("failed to encode event", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &broadcastMessage{surveyID: surveyID, data: data}:
	case <-h.done:
	default:
		h.log.Warn("broadcast queue full, event dropped", zap.String("surveyId", surveyID))
	}
}

// Close stops the hub and closes every subscriber queue
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: body})
}
