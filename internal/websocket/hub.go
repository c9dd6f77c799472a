package websocket

import (
	"context"
	gosync "sync"

	"kurazhelp-be/internal/pkg/logger"
	"kurazhelp-be/internal/sync"

	"github.com/google/uuid"
)

// Hub tracks live connections and binds each one to a document sync session.
type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu gosync.RWMutex

	controller *sync.Controller
	logger     logger.ILogger
}

func NewHub(controller *sync.Controller, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		controller: controller,
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

			// Attach performs the initial load and pushes the first snapshot.
			h.controller.Attach(context.Background(), client.Session)

		case client := <-h.unregister:
			// Detach before closing Send: once detached the controller can
			// no longer push a snapshot through this client's sink.
			h.controller.Detach(client.Session)

			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						client.closeSend()
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}
