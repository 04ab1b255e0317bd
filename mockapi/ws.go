package mockapi

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderFeed pushes created orders and status changes to connected admin
// consoles over websocket.
type OrderFeed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewOrderFeed creates an empty feed.
func NewOrderFeed() *OrderFeed {
	return &OrderFeed{clients: make(map[*websocket.Conn]bool)}
}

// Handler upgrades GET /ws/orders connections and keeps them registered
// until the peer goes away.
func (f *OrderFeed) Handler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			f.mu.Lock()
			delete(f.clients, conn)
			f.mu.Unlock()
			break
		}
	}
}

// BroadcastOrder sends the order to every connected client. Dead
// connections are dropped on the next read, not here.
func (f *OrderFeed) BroadcastOrder(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		_ = client.WriteMessage(websocket.TextMessage, data)
	}
}
