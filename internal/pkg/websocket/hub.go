package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Calendar event types
const (
	EventSessionAdmitted     = "session.admitted"
	EventSessionDeleted      = "session.deleted"
	EventEnrollmentAdmitted  = "enrollment.admitted"
	EventEnrollmentWithdrawn = "enrollment.withdrawn"
	EventCourseUpdated       = "course.updated"
	EventCourseReadiness     = "course.readiness"
)

// broadcastBuffer bounds how many events may wait for the hub loop
const broadcastBuffer = 256

// Event is a calendar change pushed to subscribed clients
type Event struct {
	Type      string      `json:"type"`
	Topics    []string    `json:"topics"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub maintains the set of active clients and fans calendar events out to
// the clients subscribed to one of the event's topics.
type Hub struct {
	// Registered clients with their subscribed topics
	clients map[*Client]map[string]bool

	// Events waiting to be delivered
	broadcast chan *Event

	register   chan *Client
	unregister chan *Client

	// Topic changes requested by clients
	subscriptions chan subscription

	mu sync.RWMutex

	listenersMu sync.RWMutex
	listeners   []chan *Event

	logger zerolog.Logger
}

// subscription is a client command on its way to the hub loop. reply is
// delivered only while the client is still registered.
type subscription struct {
	client *Client
	topic  string
	add    bool
	apply  bool
	reply  []byte
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:       make(map[*Client]map[string]bool),
		broadcast:     make(chan *Event, broadcastBuffer),
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		subscriptions: make(chan subscription),
		logger:        logger,
	}
}

// Run handles registrations, subscriptions and broadcasts until ctx is done.
// Remaining clients are disconnected on return.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case sub := <-h.subscriptions:
			h.applySubscription(sub)

		case event := <-h.broadcast:
			h.broadcastEvent(event)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.removeLocked(client)
			}
			h.mu.Unlock()
			h.logger.Info().Msg("Calendar hub stopped")
			return
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topics := make(map[string]bool, len(client.topics))
	for _, t := range client.topics {
		topics[t] = true
	}
	h.clients[client] = topics

	h.logger.Info().
		Strs("topics", client.topics).
		Int("clientCount", len(h.clients)).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		h.removeLocked(client)
		h.logger.Info().
			Int("clientCount", len(h.clients)).
			Msg("Client unregistered")
	}
}

// removeLocked drops client and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	delete(h.clients, client)
	close(client.send)
}

func (h *Hub) applySubscription(sub subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	topics, ok := h.clients[sub.client]
	if !ok {
		return
	}
	if sub.apply {
		if sub.add {
			topics[sub.topic] = true
		} else {
			delete(topics, sub.topic)
		}
	}
	if sub.reply != nil {
		select {
		case sub.client.send <- sub.reply:
		default:
		}
	}
}

// broadcastEvent delivers event to every interested client. A client whose
// send buffer is full is disconnected.
func (h *Hub) broadcastEvent(event *Event) {
	h.notifyListeners(event)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("type", event.Type).
			Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for client, topics := range h.clients {
		if !interested(topics, event.Topics) {
			continue
		}
		select {
		case client.send <- data:
			delivered++
		default:
			h.removeLocked(client)
			h.logger.Warn().Msg("Dropped slow client")
		}
	}

	h.logger.Debug().
		Str("type", event.Type).
		Strs("topics", event.Topics).
		Int("delivered", delivered).
		Msg("Event broadcasted")
}

func interested(subscribed map[string]bool, topics []string) bool {
	if subscribed[TopicAll] {
		return true
	}
	for _, t := range topics {
		if subscribed[t] {
			return true
		}
	}
	return false
}

func (h *Hub) notifyListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// Publish queues an event for broadcast. It never blocks the caller: when the
// queue is full the event is dropped and logged.
func (h *Hub) Publish(eventType string, payload interface{}, topics ...string) {
	event := &Event{
		Type:      eventType,
		Topics:    topics,
		Payload:   payload,
		Timestamp: time.Now(),
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("type", eventType).Msg("Event queue full, dropping event")
	}
}

// ClientsCount returns the number of connected clients
func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// addListener registers a channel that receives every broadcast event
func (h *Hub) addListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, listener)
}

// removeListener removes a listener from the hub
func (h *Hub) removeListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
