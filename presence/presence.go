// Package presence broadcasts a live visitor count to the map page. Visitors
// are anonymous; a connection is a visitor.
package presence

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	clients      = make(map[*websocket.Conn]time.Time)
	clientsMutex sync.RWMutex
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is sent to connected clients
type Message struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Load starts the broadcaster that periodically sends visitor counts
func Load() {
	go broadcaster()
}

func broadcaster() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		broadcastCount()
	}
}

func broadcastCount() {
	clientsMutex.RLock()
	count := len(clients)
	conns := make([]*websocket.Conn, 0, count)
	for conn := range clients {
		conns = append(conns, conn)
	}
	clientsMutex.RUnlock()

	msg := Message{Type: "presence", Count: count}
	b, _ := json.Marshal(msg)

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			conn.Close()
			remove(conn)
		}
	}
}

func remove(conn *websocket.Conn) {
	clientsMutex.Lock()
	delete(clients, conn)
	clientsMutex.Unlock()
}

// Count returns the number of connected visitors
func Count() int {
	clientsMutex.RLock()
	defer clientsMutex.RUnlock()
	return len(clients)
}

// Handler handles WebSocket connections for presence
func Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientsMutex.Lock()
	clients[conn] = time.Now()
	clientsMutex.Unlock()

	// read loop exists only to notice the close
	go func() {
		defer func() {
			remove(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
