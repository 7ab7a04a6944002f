// Package ws implements the realtime gateway: chat rooms with persisted
// history plus a fire-and-forget relay of appointment status changes to
// every connected client.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Marxcruz/hospital-api/internal/model"
	appointmentsvc "github.com/Marxcruz/hospital-api/internal/service/appointment"
	chatsvc "github.com/Marxcruz/hospital-api/internal/service/chat"
	"github.com/Marxcruz/hospital-api/pkg/messaging"
	"github.com/Marxcruz/hospital-api/pkg/metrics"
)

// Event names on the wire.
const (
	EventJoinRoom      = "join_room"
	EventSendMessage   = "send_message"
	EventReceiveMsg    = "receive_message"
	EventHistory       = "message_history"
	EventUserJoined    = "user_joined"
	EventUserLeft      = "user_left"
	EventTyping        = "typing"
	EventStopTyping    = "stop_typing"
	EventStatusUpdated = "appointment_status_updated"
)

// Envelope is the frame exchanged with clients.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Conn abstracts a websocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents a single connection.
type Client struct {
	ID   string
	Send chan []byte
	conn Conn
}

// Hub tracks connected clients and their room memberships. All mutation
// happens behind the mutex; session state lives in the SessionStore.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	all   map[*Client]struct{}

	sessions SessionStore
	chat     *chatsvc.Service
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewHub(sessions SessionStore, chat *chatsvc.Service, m *metrics.Metrics, logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		all:      make(map[*Client]struct{}),
		sessions: sessions,
		chat:     chat,
		metrics:  m,
		logger:   logger,
	}
}

// Register adds a newly upgraded connection.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[client] = struct{}{}
	h.metrics.WSConnections.Inc()
}

// Unregister removes a client from its room and the hub, closes its send
// channel, and notifies the room.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.all[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.all, client)

	sess, hadSession := h.sessions.Get(client.ID)
	if hadSession {
		if members, ok := h.rooms[sess.Room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, sess.Room)
			}
		}
	}
	close(client.Send)
	h.mu.Unlock()

	h.sessions.Delete(client.ID)
	h.metrics.WSConnections.Dec()

	if hadSession {
		h.broadcastRoom(sess.Room, Envelope{Event: EventUserLeft, Data: mustJSON(map[string]string{
			"username": sess.Username,
			"room":     sess.Room,
		})}, nil)
	}
}

// HandleMessage dispatches one inbound frame from a client.
func (h *Hub) HandleMessage(ctx context.Context, client *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return // malformed frames are dropped
	}
	h.metrics.WSMessages.WithLabelValues(env.Event).Inc()

	switch env.Event {
	case EventJoinRoom:
		h.handleJoin(ctx, client, env.Data)
	case EventSendMessage:
		h.handleSend(ctx, client, env.Data)
	case EventTyping, EventStopTyping:
		h.relayTyping(client, env.Event)
	case EventStatusUpdated:
		// Unauthenticated, unvalidated UI refresh hint: re-broadcast the
		// payload verbatim to every connected client. The REST API stays
		// the source of truth for appointment state.
		h.BroadcastAll(Envelope{Event: EventStatusUpdated, Data: env.Data})
		h.metrics.StatusEventsRelayed.Inc()
	}
}

type joinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

func (h *Hub) handleJoin(ctx context.Context, client *Client, data []byte) {
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		return
	}

	h.mu.Lock()
	// Leave the previous room when re-joining.
	prev, hadPrev := h.sessions.Get(client.ID)
	if hadPrev {
		if members, ok := h.rooms[prev.Room]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, prev.Room)
			}
		}
	}
	if h.rooms[p.Room] == nil {
		h.rooms[p.Room] = make(map[*Client]struct{})
	}
	h.rooms[p.Room][client] = struct{}{}
	h.mu.Unlock()

	h.sessions.Set(client.ID, Session{Username: p.Username, Room: p.Room})

	// The members left behind need the departure, same as on disconnect.
	if hadPrev && prev.Room != p.Room {
		h.broadcastRoom(prev.Room, Envelope{Event: EventUserLeft, Data: mustJSON(map[string]string{
			"username": prev.Username,
			"room":     prev.Room,
		})}, nil)
	}

	history, err := h.chat.History(ctx, p.Room)
	if err != nil {
		h.logger.Warn().Err(err).Str("room", p.Room).Msg("history load failed")
		history = []*model.ChatMessage{}
	}
	h.send(client, Envelope{Event: EventHistory, Data: mustJSON(history)})

	h.broadcastRoom(p.Room, Envelope{Event: EventUserJoined, Data: mustJSON(map[string]string{
		"username": p.Username,
		"room":     p.Room,
	})}, client)
}

type sendPayload struct {
	Message string `json:"message"`
	IsAI    bool   `json:"isAI"`
	IsError bool   `json:"isError"`
}

func (h *Hub) handleSend(ctx context.Context, client *Client, data []byte) {
	sess, ok := h.sessions.Get(client.ID)
	if !ok {
		return // must join_room first
	}

	var p sendPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Message == "" {
		return
	}

	msg, err := h.chat.Append(ctx, &model.CreateChatMessageRequest{
		Username: sess.Username,
		Message:  p.Message,
		Room:     sess.Room,
		IsAI:     p.IsAI,
		IsError:  p.IsError,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("room", sess.Room).Msg("chat persist failed")
		return
	}

	h.broadcastRoom(sess.Room, Envelope{Event: EventReceiveMsg, Data: mustJSON(msg)}, nil)
}

func (h *Hub) relayTyping(client *Client, event string) {
	sess, ok := h.sessions.Get(client.ID)
	if !ok {
		return
	}
	h.broadcastRoom(sess.Room, Envelope{Event: event, Data: mustJSON(map[string]string{
		"username": sess.Username,
	})}, client)
}

// broadcastRoom fans an envelope out to a room, optionally skipping one
// client (typically the sender).
func (h *Hub) broadcastRoom(room string, env Envelope, skip *Client) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error().Err(err).Msg("envelope marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		if client == skip {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// BroadcastAll sends an envelope to every connected client regardless of room.
func (h *Hub) BroadcastAll(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error().Err(err).Msg("envelope marshal failed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.all {
		select {
		case client.Send <- data:
		default:
		}
	}
}

func (h *Hub) send(client *Client, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients in a room.
func (h *Hub) RoomCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// RelayStatusEvents consumes status events from the broker and re-broadcasts
// them to all clients, so REST-triggered changes reach every instance's
// websocket clients. Runs until ctx is cancelled.
func (h *Hub) RelayStatusEvents(ctx context.Context, broker messaging.Broker) error {
	events, err := broker.Subscribe(ctx, appointmentsvc.StatusChannel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-events:
			if !ok {
				return nil
			}
			h.BroadcastAll(Envelope{Event: EventStatusUpdated, Data: payload})
			h.metrics.StatusEventsRelayed.Inc()
		}
	}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
