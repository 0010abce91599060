package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderEvent is pushed to subscribed admin dashboards whenever an order is
// created or changes status.
type OrderEvent struct {
	Type    string  `json:"type"` // order_created | status_changed
	OrderID uint    `json:"order_id"`
	Status  string  `json:"status"`
	Total   float64 `json:"total"`
}

// OrderFeed fans order events out to every connected client.
type OrderFeed struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewOrderFeed() *OrderFeed {
	return &OrderFeed{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan OrderEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (f *OrderFeed) Run() {
	for {
		select {
		case conn := <-f.register:
			f.mu.Lock()
			f.clients[conn] = true
			f.mu.Unlock()

		case conn := <-f.unregister:
			f.mu.Lock()
			if _, ok := f.clients[conn]; ok {
				delete(f.clients, conn)
				conn.Close()
			}
			f.mu.Unlock()

		case ev := <-f.broadcast:
			f.mu.Lock()
			for conn := range f.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(f.clients, conn)
				}
			}
			f.mu.Unlock()
		}
	}
}

// Publish is safe to call from any goroutine and never blocks request
// handling; events are dropped if the feed is saturated.
func (f *OrderFeed) Publish(ev OrderEvent) {
	if f == nil {
		return
	}
	select {
	case f.broadcast <- ev:
	default:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders (admin only, enforced by middleware)
func (f *OrderFeed) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	f.register <- conn

	go func() {
		defer func() { f.unregister <- conn }()
		for {
			// clients only listen; reads just detect disconnects
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
