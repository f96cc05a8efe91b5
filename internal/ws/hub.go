package ws

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

type delivery struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans events out to the websocket clients of one user at a time.
// All membership changes run on the Run goroutine.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex

	// stopMu orders Register against shutdown so no client is queued after closeAll drains.
	stopMu  sync.Mutex
	stopped bool

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub traffic until ctx is cancelled, then closes every client.
// Run must be called at most once.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.stopMu.Lock()
			h.stopped = true
			h.stopMu.Unlock()
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(set)
			h.mutex.Unlock()
			h.logger.Printf("WS connected | user_id=%s user_clients=%d", client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case d := <-h.deliver:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[d.userID]))
			for c := range h.clients[d.userID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- d.payload:
				default:
					h.remove(client)
				}
			}
			h.logger.Printf("WS delivered | user_id=%s clients=%d", d.userID, len(targets))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set := h.clients[client.userID]
	_, ok := set[client]
	if ok {
		delete(set, client)
		close(client.send)
		if len(set) == 0 {
			delete(h.clients, client.userID)
		}
	}
	h.mutex.Unlock()
	if ok {
		h.logger.Printf("WS disconnected | user_id=%s", client.userID)
	}
}

// closeAll closes every registered client, including ones still queued for
// registration when Run stopped.
func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for userID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, userID)
	}
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

// Register adds client to the hub. Once Run has stopped, the client is closed
// straight away instead.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.stopMu.Lock()
	defer h.stopMu.Unlock()
	if h.stopped {
		close(client.send)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister is a no-op once Run has stopped; closeAll has released every client.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues payload for every connection of userID. It never blocks; a full
// queue drops the message.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.deliver <- delivery{userID: userID, payload: payload}:
	default:
		h.logger.Printf("WS delivery dropped | user_id=%s reason=buffer_full", userID)
	}
}

func (h *Hub) ClientCount(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
