package ws

import (
	"encoding/json"
	"sync"
)

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// printerEvent is an internal struct for routing events to printer rooms
type printerEvent struct {
	Printer string
	Event   Event
}

// Hub maintains the set of active clients and broadcasts kitchen events
// to them. Clients sit in the room of one printer; the empty room gets
// every event.
type Hub struct {
	// Registered clients by printer name
	rooms map[string]map[*Client]bool

	// Inbound messages from clients (register/unregister)
	register   chan *Client
	unregister chan *Client

	// Outbound messages to broadcast
	broadcast chan *printerEvent

	// Mutex for thread-safe room access
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *printerEvent, 256),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.printer] == nil {
				h.rooms[client.printer] = make(map[*Client]bool)
			}
			h.rooms[client.printer][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.printer]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					// Clean up empty rooms
					if len(clients) == 0 {
						delete(h.rooms, client.printer)
					}
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			// Marshal event to JSON once
			message, err := json.Marshal(event.Event)
			if err != nil {
				continue
			}

			h.mu.Lock()
			if event.Printer == "" {
				// Firehose events reach every room
				for room := range h.rooms {
					h.deliver(room, message)
				}
			} else {
				h.deliver(event.Printer, message)
				// Watchers of everything get targeted events too
				h.deliver("", message)
			}
			h.mu.Unlock()
		}
	}
}

// deliver pushes a marshalled message to one room. Caller holds h.mu.
func (h *Hub) deliver(room string, message []byte) {
	for client := range h.rooms[room] {
		select {
		case client.send <- message:
		default:
			// Client's send buffer is full, close and unregister
			close(client.send)
			delete(h.rooms[room], client)
			if len(h.rooms[room]) == 0 {
				delete(h.rooms, room)
			}
		}
	}
}

// Notify queues an event for the given printer's room. An empty printer
// name addresses every listener. Satisfies the order service's notifier.
func (h *Hub) Notify(printer, event string, payload interface{}) {
	h.broadcast <- &printerEvent{
		Printer: printer,
		Event:   Event{Type: event, Payload: payload},
	}
}
