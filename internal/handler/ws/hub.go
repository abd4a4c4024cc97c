// Package ws fans booking events out to connected admin WebSocket clients.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"venue-booking/internal/domain/booking"
	resdto "venue-booking/internal/handler/dto/response"
	"venue-booking/internal/usecase/queries"
	"venue-booking/internal/usecase/shared"
)

const sendBuffer = 16

type Event struct {
	Type      string                  `json:"type"`
	BookingID string                  `json:"bookingId"`
	Booking   *resdto.BookingResponse `json:"booking,omitempty"`
}

type Client struct {
	id   uint64
	send chan []byte
}

// Send yields encoded events until the client is unregistered.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// Hub implements shared.EventPublisher. A client whose queue is full misses the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]*Client
	nextID  uint64
	locale  booking.Locale
	logger  *slog.Logger
}

var _ shared.EventPublisher = (*Hub)(nil)

func NewHub(locale booking.Locale, logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[uint64]*Client),
		locale:  locale,
		logger:  logger,
	}
}

func (h *Hub) Register() *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	c := &Client{id: h.nextID, send: make(chan []byte, sendBuffer)}
	h.clients[c.id] = c
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

func (h *Hub) Publish(_ context.Context, event shared.BookingEvent) {
	msg := Event{
		Type:      string(event.Type),
		BookingID: event.BookingID,
	}
	if event.Booking != nil {
		view, err := resdto.FromBookingView(queries.NewBookingView(event.Booking, h.locale))
		if err != nil {
			h.logger.Error("failed to map booking event", slog.String("booking_id", event.BookingID), slog.String("error", err.Error()))
			return
		}
		msg.Booking = view
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode booking event", slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping booking event for slow client", slog.Uint64("client", c.id))
		}
	}
}

// Close drops every client; their send channels are closed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}
