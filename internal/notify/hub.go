// Package notify implements the in-process change notification feed.
//
// Events are "something changed" signals, never data: subscribers are
// expected to refetch authoritative state. The hub is the seam a real
// push transport would plug into; the transport itself is out of scope.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Collection identifies a store collection that can change.
type Collection string

const (
	CollectionAccounts            Collection = "accounts"
	CollectionCategories          Collection = "categories"
	CollectionTransactions        Collection = "transactions"
	CollectionAccountTransactions Collection = "account_transactions"
)

// Op is the kind of change or channel event.
type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"

	// Connectivity events for the notification channel itself.
	OpConnected    Op = "connected"
	OpDisconnected Op = "disconnected"
)

// Event is a change signal. It carries identifiers for scoping only;
// subscribers must never treat it as authoritative data.
type Event struct {
	Collection Collection
	Op         Op
	LedgerID   uuid.UUID
	RowID      uuid.UUID
}

// Connectivity reports whether the event is a channel state change
// rather than a data change.
func (e Event) Connectivity() bool {
	return e.Op == OpConnected || e.Op == OpDisconnected
}

type subscriber struct {
	collection Collection
	ledgerID   uuid.UUID
	c          chan Event
}

// Subscription is a handle for one subscriber. Close releases it.
type Subscription struct {
	C <-chan Event

	id  uint64
	hub *Hub
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s.id)
}

// Hub fans change signals out to subscribers.
type Hub struct {
	mu        sync.Mutex
	subs      map[uint64]*subscriber
	nextID    uint64
	connected bool
}

// NewHub returns a hub in the connected state.
func NewHub() *Hub {
	return &Hub{
		subs:      make(map[uint64]*subscriber),
		connected: true,
	}
}

// Subscribe registers for change signals on a collection. A Nil
// ledgerID subscribes to the collection across all ledgers. The
// subscription also receives connectivity events.
//
// The channel is buffered and sends never block: when a subscriber is
// slow, additional signals are dropped. A dropped signal is harmless
// since any retained signal already means "refetch". Connectivity
// events are never dropped; they displace a queued data signal when
// the buffer is full.
func (h *Hub) Subscribe(collection Collection, ledgerID uuid.UUID) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &subscriber{
		collection: collection,
		ledgerID:   ledgerID,
		c:          make(chan Event, 16),
	}
	h.subs[h.nextID] = sub

	return &Subscription{
		C:   sub.c,
		id:  h.nextID,
		hub: h,
	}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		close(sub.c)
		delete(h.subs, id)
	}
}

// Publish delivers a change signal to all matching subscribers.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if sub.collection != event.Collection {
			continue
		}

		if sub.ledgerID != uuid.Nil && sub.ledgerID != event.LedgerID {
			continue
		}

		select {
		case sub.c <- event:
		default:
		}
	}
}

// SetConnected updates the channel connectivity state. A state change
// is fanned out to every subscriber regardless of collection.
func (h *Hub) SetConnected(connected bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.connected == connected {
		return
	}
	h.connected = connected

	op := OpDisconnected
	if connected {
		op = OpConnected
	}

	for _, sub := range h.subs {
		select {
		case sub.c <- Event{Op: op}:
		default:
			// Connectivity state changes are never dropped: displace one
			// queued data signal to make room. The displaced signal is
			// covered by the refetch the state change triggers.
			select {
			case <-sub.c:
			default:
			}
			sub.c <- Event{Op: op}
		}
	}
}

// Connected reports the current channel connectivity state.
func (h *Hub) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.connected
}
