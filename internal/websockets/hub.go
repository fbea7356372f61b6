package websockets

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/ladelta/bakery-service/internal/models"
)

// Event types broadcast to dashboard clients.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// Event is the message pushed to dashboard clients when an order changes.
type Event struct {
	Type  string        `json:"type"`
	Order *models.Order `json:"order,omitempty"`
}

// Hub fans order events out to connected dashboard clients.
type Hub struct {
	clients map[*Client]bool

	register chan *Client

	unregister chan *Client

	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// BroadcastEvent pushes an order event to every connected client.
func (h *Hub) BroadcastEvent(eventType string, order *models.Order) {
	msg, err := json.Marshal(Event{Type: eventType, Order: order})
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal order event")
		return
	}
	h.broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
