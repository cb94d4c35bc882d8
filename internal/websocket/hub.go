package websocket

import (
	"encoding/json"
	"sync"

	"github.com/ibumus/warung-backend/internal/app/model"
	"github.com/ibumus/warung-backend/pkg/logger"
)

// Client is one websocket session. A user with several devices has
// several clients under the same user ID.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Role   model.UserRole
	Send   chan []byte
}

// outbound is a message routed by the hub to a set of users or a role.
type outbound struct {
	userIDs []uint
	role    model.UserRole
	message []byte
}

// Hub manages websocket sessions and routes order and notification
// events to users and to the admin back office.
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	send       chan *outbound

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		send:       make(chan *outbound, 1024),
	}
}

// Run processes register, unregister and send requests. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"role":           client.Role,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			// A session can be unregistered twice (read pump shutdown
			// racing a full-buffer drop); only close Send on the first.
			removed := false
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					} else {
						removed = true
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
			}
			if removed {
				close(client.Send)
			}
			h.mu.Unlock()
			if removed {
				logger.Info("WebSocket client unregistered", map[string]interface{}{
					"user_id": client.UserID,
				})
			}

		case msg := <-h.send:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg *outbound) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	targets := make([]*Client, 0)
	if msg.role != "" {
		for _, clientList := range h.clients {
			for _, client := range clientList {
				if client.Role == msg.role {
					targets = append(targets, client)
				}
			}
		}
	}
	for _, userID := range msg.userIDs {
		if clientList, ok := h.clients[userID]; ok {
			for _, client := range clientList {
				if msg.role != "" && client.Role == msg.role {
					continue // already targeted via role
				}
				targets = append(targets, client)
			}
		}
	}

	for _, client := range targets {
		select {
		case client.Send <- msg.message:
		default:
			// Send buffer full, drop the session asynchronously.
			go h.Unregister(client)
			logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
				"user_id": client.UserID,
			})
		}
	}
}

func (h *Hub) enqueue(msg *outbound) {
	select {
	case h.send <- msg:
	default:
		// Losing a push is acceptable, clients reconcile via the API.
		logger.Warn("WebSocket send channel full, message dropped", nil)
	}
}

// SendToUser pushes a message to every session of one user.
func (h *Hub) SendToUser(userID uint, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal websocket message", err, nil)
		return err
	}
	h.enqueue(&outbound{userIDs: []uint{userID}, message: data})
	return nil
}

// SendToAdmins pushes a message to every connected admin session.
func (h *Hub) SendToAdmins(message interface{}) error {
	return h.SendToRole(model.RoleAdmin, message)
}

// SendToRole pushes a message to every connected session with the role.
func (h *Hub) SendToRole(role model.UserRole, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal websocket message", err, nil)
		return err
	}
	h.enqueue(&outbound{role: role, message: data})
	return nil
}

// SendToUserAndAdmins pushes a message to the user's sessions and to all
// admin sessions, without duplicating admins that are also the user.
func (h *Hub) SendToUserAndAdmins(userID uint, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal websocket message", err, nil)
		return err
	}
	h.enqueue(&outbound{userIDs: []uint{userID}, role: model.RoleAdmin, message: data})
	return nil
}

// Register registers a client session.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client session.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsUserOnline reports whether the user has at least one open session.
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// OnlineSessionCount returns the number of open sessions across all users.
func (h *Hub) OnlineSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clientList := range h.clients {
		total += len(clientList)
	}
	return total
}
