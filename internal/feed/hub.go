// Package feed fans freshly created flexes out to live websocket viewers.
package feed

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Item is the wire shape pushed to subscribers.
type Item struct {
	FlexID      string           `json:"flex_id"`
	DisplayName string           `json:"display_name"`
	AvatarEmoji string           `json:"avatar_emoji,omitempty"`
	Ticker      string           `json:"ticker"`
	Position    string           `json:"position"`
	Instrument  string           `json:"instrument"`
	PnLPercent  decimal.Decimal  `json:"pnl_percent"`
	PnLAmount   *decimal.Decimal `json:"pnl_amount,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Hub struct {
	mu      sync.RWMutex
	subs    map[uint64]chan Item
	nextID  uint64
	bufSize int
	closed  bool
}

func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 16
	}
	return &Hub{
		subs:    map[uint64]chan Item{},
		bufSize: bufSize,
	}
}

// Subscribe returns a receive channel and a cancel func. The channel is
// closed by cancel or by Close.
func (h *Hub) Subscribe() (<-chan Item, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Item, h.bufSize)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish never blocks: a subscriber whose buffer is full misses the item.
func (h *Hub) Publish(item Item) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- item:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
