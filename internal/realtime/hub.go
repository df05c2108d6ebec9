package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cynq/cynq-backend/internal/pkg/logger"
)

const (
	EventSessionUpdated    = "session.updated"
	EventEcosystemImported = "ecosystem.imported"
)

type SSEMessage struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Data    any    `json:"data,omitempty"`
}

type SSEClient struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Channels map[string]bool
	Outbound chan SSEMessage
	done     chan struct{}
}

// Hub fans events out to subscribed SSE clients. Channels are plain
// strings; the app uses the owner's user id as the channel name.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*SSEClient]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "RealtimeHub"),
		subscriptions: make(map[string]map[*SSEClient]bool),
	}
}

func (h *Hub) NewClient(userID uuid.UUID) *SSEClient {
	return &SSEClient{
		ID:       uuid.New(),
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan SSEMessage, 16),
		done:     make(chan struct{}),
	}
}

func (h *Hub) AddChannel(client *SSEClient, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	client.Channels[channel] = true

	clients, exists := h.subscriptions[channel]
	if !exists {
		clients = make(map[*SSEClient]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true

	h.log.Debug("sse client subscribed", "client_id", client.ID.String(), "channel", channel)
}

func (h *Hub) RemoveClient(client *SSEClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range client.Channels {
		if subMap, ok := h.subscriptions[ch]; ok {
			delete(subMap, client)
			if len(subMap) == 0 {
				delete(h.subscriptions, ch)
			}
		}
	}
	client.Channels = make(map[string]bool)
}

func (h *Hub) CloseClient(client *SSEClient) {
	close(client.done)
	h.RemoveClient(client)
	close(client.Outbound)
}

func (h *Hub) Broadcast(msg SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.Channel == "" {
		return
	}
	clients, ok := h.subscriptions[msg.Channel]
	if !ok {
		return
	}
	for c := range clients {
		select {
		case c.Outbound <- msg:
		default:
			h.log.Warn("dropping sse message, outbound buffer full", "client_id", c.ID.String())
		}
	}
}

// Publish satisfies the services event publisher boundary with a local
// broadcast.
func (h *Hub) Publish(channel, event string, payload any) {
	h.Broadcast(SSEMessage{Channel: channel, Event: event, Data: payload})
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *SSEClient) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Debug("sse client context done", "client_id", client.ID.String())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg := <-client.Outbound:
			jsonBytes, err := json.Marshal(msg)
			if err != nil {
				h.log.Warn("failed to marshal sse message", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: message\n")
			fmt.Fprintf(w, "data: %s\n\n", string(jsonBytes))
			flusher.Flush()
		}
	}
}
