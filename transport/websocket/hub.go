package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Handler consumes inbound client traffic: one parsed payload per message
// and exactly one Disconnected call per lost connection. The service
// implements it.
type Handler interface {
	HandleMessage(c service.Conn, payload []byte)
	Disconnected(c service.Conn)
}

// Hub owns the WebSocket side of the server: it upgrades requests, tracks
// open clients, and closes their send queues when they go away. Room
// membership and fanout live in the service's registry, not here.
type Hub struct {
	handler Handler

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	clients map[*Client]bool
}

// NewHub creates a hub that feeds inbound traffic to handler.
func NewHub(handler Handler) *Hub {
	return &Hub{
		handler:    handler,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				client.close()
				log.Printf("client unregistered (%d connected)", len(h.clients))
			}
		}
	}
}

// ServeWS handles WebSocket requests from clients. The connection starts
// unbound; it joins a room by sending a JOIN_ROOM message.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}
