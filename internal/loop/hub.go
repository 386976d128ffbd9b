package loop

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// EventType identifies a hub event.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the hub to a connected game.
type Event struct {
	Type EventType
}

// Handle is one game's registration with the hub.
type Handle struct {
	ID       int
	Username string
	EventsCh chan Event
}

// Hub tracks the games running on a multi-user server. Games never share play
// state; the hub only counts them and tells them when the server goes down.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
	logger  *log.Logger
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[int]*Handle),
		nextID:  1,
		logger:  logger,
	}
}

// Register adds a game and returns its handle.
func (h *Hub) Register(username string) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle := &Handle{
		ID:       h.nextID,
		Username: username,
		EventsCh: make(chan Event, 4),
	}
	h.nextID++
	h.clients[handle.ID] = handle
	h.logger.Info("player joined", "id", handle.ID, "user", username, "players", len(h.clients))
	return handle
}

// Unregister removes a game. Unknown ids are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.clients[id]
	if !ok {
		return
	}
	delete(h.clients, id)
	h.logger.Info("player left", "id", id, "user", handle.Username, "players", len(h.clients))
}

// Players returns the number of registered games.
func (h *Hub) Players() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies every game that the server is going down and waits for them
// to unregister, up to timeout. It reports whether all games left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.RLock()
	for _, handle := range h.clients {
		select {
		case handle.EventsCh <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	h.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(hubPollInterval)
	defer ticker.Stop()

	for {
		if h.Players() == 0 {
			return true
		}
		select {
		case <-deadline:
			h.logger.Warn("shutdown timed out", "players", h.Players())
			return false
		case <-ticker.C:
		}
	}
}
