package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgLeaderboardUpdate MessageType = "leaderboard_update"
	MsgError             MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one watcher's WebSocket connection
type Connection struct {
	QuizID   string
	Username string
	Send     chan []byte
}

// BroadcastMessage is a message fanned out to a quiz's watchers
type BroadcastMessage struct {
	QuizID  string
	Message *Message
}

// Hub fans live leaderboard updates out to the admins watching each quiz
type Hub struct {
	watchers map[string]map[*Connection]bool // quizID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.QuizID] == nil {
				h.watchers[conn.QuizID] = make(map[*Connection]bool)
			}
			h.watchers[conn.QuizID][conn] = true
			h.mu.Unlock()
			log.Printf("%s watching quiz %s", conn.Username, conn.QuizID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.QuizID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.watchers, conn.QuizID)
				}
				log.Printf("%s stopped watching quiz %s", conn.Username, conn.QuizID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.watchers[msg.QuizID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastLeaderboard pushes fresh standings to a quiz's watchers
// (implements service.Broadcaster)
func (h *Hub) BroadcastLeaderboard(quizID string, entries []model.LeaderboardEntry) {
	payload, _ := json.Marshal(map[string]interface{}{"leaderboard": entries})
	h.broadcast <- &BroadcastMessage{
		QuizID: quizID,
		Message: &Message{
			Type:    MsgLeaderboardUpdate,
			Payload: payload,
		},
	}
}
