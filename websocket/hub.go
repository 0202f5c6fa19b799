package websocket

import (
	"context"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Hub рассылает события всем подключённым админским клиентам
type Hub struct {
	// Зарегистрированные клиенты
	clients map[*Client]bool

	// Исходящие сообщения для всех клиентов
	broadcast chan []byte

	// Регистрация клиента
	register chan *Client

	// Отмена регистрации клиента
	unregister chan *Client

	// Разрешённые Origin для браузерных подключений
	origins []string

	// Закрывается, когда Run завершился
	done chan struct{}

	count atomic.Int32
}

// NewHub создает новый Hub
func NewHub(allowedOrigins ...string) *Hub {
	return &Hub{
		origins:    allowedOrigins,
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		done:       make(chan struct{}),
	}
}

// Run обслуживает хаб до отмены ctx
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.count.Store(0)
			return
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int32(len(h.clients)))
			log.Printf("Клиент подключился. Всего клиентов: %d", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.count.Store(int32(len(h.clients)))
				log.Printf("Клиент отключился. Всего клиентов: %d", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// медленный клиент, отключаем
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.count.Store(int32(len(h.clients)))
		}
	}
}

// Clients — сколько клиентов сейчас подключено
func (h *Hub) Clients() int { return int(h.count.Load()) }

// Broadcast отправляет сообщение всем подключенным клиентам.
// Не блокирует: при переполненной очереди сообщение отбрасывается.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		log.Warn("Очередь WebSocket переполнена, событие отброшено")
	}
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
