package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/propstack/lease-rate-api/internal/api/dto"
	"github.com/propstack/lease-rate-api/internal/service/pubsub"
	"github.com/propstack/lease-rate-api/pkg/logger"
)

const (
	websocketReadBufferSize        = 1024
	websocketWriteBufferSize       = 1024
	websocketSendChannelBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  websocketReadBufferSize,
	WriteBufferSize: websocketWriteBufferSize,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Client struct {
	conn    *websocket.Conn
	leaseID string
	send    chan []byte
}

// WebSocketHandler streams applied rate changes to console clients watching a
// lease. Fan-out runs through Redis pub/sub so changes applied by other API
// instances or the increase worker reach every watcher.
type WebSocketHandler struct {
	clients      map[*Client]bool
	register     chan *Client
	unregister   chan *Client
	mutex        sync.RWMutex
	logger       *logger.Logger
	pubsub       *pubsub.RedisPubSub
	ctx          context.Context
	cancel       context.CancelFunc
	leaseClients map[string]int // Count of clients per lease
}

func NewWebSocketHandler(logger *logger.Logger, pubsub *pubsub.RedisPubSub) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		clients:      make(map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		logger:       logger,
		pubsub:       pubsub,
		ctx:          ctx,
		cancel:       cancel,
		leaseClients: make(map[string]int),
	}
}

// HandleWebSocket upgrades the connection and scopes the client to the lease
// named in the path.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	leaseID := c.Param("id")
	if leaseID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Lease ID is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &Client{
		conn:    conn,
		leaseID: leaseID,
		send:    make(chan []byte, websocketSendChannelBufferSize),
	}
	h.register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) Start() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.leaseClients[client.leaseID]++

			// Subscribe to the lease's channel if this is the first client
			if h.leaseClients[client.leaseID] == 1 {
				if err := h.pubsub.Subscribe(h.ctx, client.leaseID, h.handlePubSubMessage); err != nil {
					h.logger.Errorf("Failed to subscribe to lease %s: %v", client.leaseID, err)
				}
			}
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)

				h.leaseClients[client.leaseID]--

				// Unsubscribe if no more clients for this lease
				if h.leaseClients[client.leaseID] == 0 {
					h.pubsub.Unsubscribe(client.leaseID)
					delete(h.leaseClients, client.leaseID)
				}
			}
			h.mutex.Unlock()

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *WebSocketHandler) Stop() {
	h.cancel()
	h.pubsub.Close()
}

// handlePubSubMessage fans a rate change received from Redis out to the
// clients watching its lease
func (h *WebSocketHandler) handlePubSubMessage(entry *dto.RateHistoryResponse) {
	message, err := json.Marshal(entry)
	if err != nil {
		h.logger.Errorf("Error marshaling rate change: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		if client.leaseID == entry.LeaseID {
			select {
			case client.send <- message:
			default: // If the channel is full, close the channel and remove the client
				close(client.send)
				delete(h.clients, client)
				h.leaseClients[client.leaseID]--

				if h.leaseClients[client.leaseID] == 0 {
					h.pubsub.Unsubscribe(client.leaseID)
					delete(h.leaseClients, client.leaseID)
				}
			}
		}
	}
}

func (h *WebSocketHandler) writePump(client *Client) {
	defer func() {
		client.conn.Close()
	}()

	for message := range client.send {
		w, err := client.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	// Channel was closed, send close message
	client.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *Client) {
	defer func() {
		h.unregister <- client
		client.conn.Close()
	}()

	for {
		messageType, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnf("Unexpected close error for lease %s client: %v", client.leaseID, err)
			} else {
				h.logger.Warnf("Read error for lease %s client: %v", client.leaseID, err)
			}
			break
		}

		// Handle any actual messages from client (though we don't expect any)
		if messageType == websocket.TextMessage || messageType == websocket.BinaryMessage {
			h.logger.Infof("Received message from lease %s client: %s", client.leaseID, string(message))
		}
	}
}

// BroadcastRateChange publishes an applied change to the lease's channel so
// every instance's watchers see it. Implements service.RateChangeBroadcaster.
func (h *WebSocketHandler) BroadcastRateChange(leaseID string, entry *dto.RateHistoryResponse) {
	if err := h.pubsub.Publish(h.ctx, leaseID, entry); err != nil {
		h.logger.Errorf("Failed to publish rate change: %v", err)
	}
}
