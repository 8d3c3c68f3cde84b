package server

import (
	"encoding/json"
	"net/http"

	"vesting-estimator/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			// Send the current snapshot on connect
			s.stateMutex.RLock()
			if s.latestState != nil {
				client.send <- s.latestState
			}
			s.stateMutex.RUnlock()

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}

		case message := <-s.broadcast:
			s.stateMutex.Lock()
			s.latestState = message
			s.stateMutex.Unlock()

			for client := range s.clients {
				select {
				case client.send <- message:
				default:
					// Client too slow, disconnect to keep the Hub from blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// UpdateLatest replaces the held snapshot without pushing to clients.
func (s *APIServer) UpdateLatest(data *models.MLatestData) {
	if data == nil {
		return
	}

	s.stateMutex.Lock()
	s.latestState = data
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Broadcast queues a refreshed snapshot for the Hub to store and push out.
func (s *APIServer) Broadcast(data *models.MLatestData) {
	if data == nil {
		return
	}
	s.broadcast <- data
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered so the Hub loop never blocks on one client
		send: make(chan interface{}, 256),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// HandleClientMessage answers subscribe commands with a snapshot scoped to
// the requested role.
func (s *APIServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MSubscribeCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	if cmd.Command != "subscribe" {
		return
	}

	s.stateMutex.RLock()
	response := s.roleViewResponse(cmd.Role)
	s.stateMutex.RUnlock()

	select {
	case client.send <- response:
	default:
		// Client buffer full; the Hub loop prunes it on the next broadcast
	}
}

// -----------------------------------------------------------------------------
// Response Filtering
// -----------------------------------------------------------------------------

func (s *APIServer) roleViewResponse(roleID string) *models.MLatestData {
	calculations := s.latestState.Calculations
	if roleID != "" {
		calculations = make(map[string]models.MTokenCalculation, 1)
		if calc, ok := s.latestState.Calculations[roleID]; ok {
			calculations[roleID] = calc
		}
	}

	return &models.MLatestData{
		Type:         "INITIAL",
		CurrentPrice: s.latestState.CurrentPrice,
		Series:       s.latestState.Series,
		Calculations: calculations,
		SourceName:   s.latestState.SourceName,
		Fallback:     s.latestState.Fallback,
		Timestamp:    s.latestState.Timestamp,
	}
}
