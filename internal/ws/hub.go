package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/sirupsen/logrus"
)

// StockEvent is pushed to dashboard clients after a purchase is created or
// cancelled.
type StockEvent struct {
	Type       string    `json:"type"` // "pembelian_created" or "pembelian_cancelled"
	ProdukID   uint      `json:"produk_id"`
	NamaProduk string    `json:"nama_produk"`
	Jumlah     int       `json:"jumlah"`
	StokBaru   int       `json:"stok_baru"`
	Tanggal    time.Time `json:"tanggal"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	log   *logrus.Logger
	mutex sync.Mutex
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 16),
		log:        log,
	}
}

// BroadcastStockEvent marshals and queues the event without blocking the
// purchase flow when no dashboard is listening.
func (h *Hub) BroadcastStockEvent(event StockEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Warn("marshal stock event")
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("stock event dropped, broadcast queue full")
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Debug("dashboard client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
