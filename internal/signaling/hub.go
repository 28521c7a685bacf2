package signaling

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tanmayvb/conclave/internal/metrics"
)

// Options tune the cleanup scheduler.
type Options struct {
	// GraceDelay is how long an emptied room survives before the
	// deferred cleanup re-checks it.
	GraceDelay time.Duration

	// SweepInterval is how often the idle sweep runs.
	SweepInterval time.Duration

	// IdleThreshold is the age past which an empty room is swept.
	IdleThreshold time.Duration
}

func (o *Options) withDefaults() {
	if o.GraceDelay <= 0 {
		o.GraceDelay = 10 * time.Second
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = 5 * time.Minute
	}
	if o.IdleThreshold <= 0 {
		o.IdleThreshold = time.Hour
	}
}

// Hub is the central brain of the signaling server. It owns the room
// registry, the connection index and the topic table, and mutates them
// only from the single goroutine running Run. Every inbound event is a
// channel send into that loop, so handlers never interleave.
type Hub struct {
	log      *slog.Logger
	opts     Options
	registry *Registry
	topics   *Topics

	// clients indexes every registered connection by id, in and out
	// of rooms, for directed delivery.
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	events     chan *Message

	// cleanup carries room ids whose grace delay has elapsed.
	cleanup chan string

	// snapshots serves read-only room lookups from the HTTP side.
	snapshots chan snapshotRequest

	// done is closed when Run returns, releasing timer goroutines.
	done chan struct{}
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger, opts Options) *Hub {
	opts.withDefaults()
	return &Hub{
		log:        log,
		opts:       opts,
		registry:   NewRegistry(),
		topics:     NewTopics(),
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *Message),
		cleanup:    make(chan string),
		snapshots:  make(chan snapshotRequest),
		done:       make(chan struct{}),
	}
}

// Register hands a new connection to the hub loop. A no-op once the
// hub has stopped.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Run starts the hub's main processing loop. All room and index state
// is touched exclusively from here.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	sweep := time.NewTicker(h.opts.SweepInterval)
	defer sweep.Stop()

	for {
		select {
		case client := <-h.register:
			h.clients[client.ID] = client
			h.log.Debug("client registered", "conn", client.ID)

		case client := <-h.unregister:
			h.handleDisconnect(client)

		case message := <-h.events:
			h.dispatch(message)

		case roomID := <-h.cleanup:
			h.destroyIfEmpty(roomID)

		case <-sweep.C:
			h.sweepIdleRooms(time.Now())

		case req := <-h.snapshots:
			req.reply <- h.snapshot(req.roomID)

		case <-ctx.Done():
			return
		}
	}
}

// dispatch routes one inbound event to its handler. Each handler is an
// isolated failure domain: a panic is converted into a generic failure
// reply for the sender and never reaches other connections.
func (h *Hub) dispatch(m *Message) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("handler panic", "type", m.Type, "conn", m.client.ID, "panic", r)
			m.client.trySend(errorReply(m.Type, ErrInternal))
		}
	}()

	switch m.Type {
	case EvCreateRoom:
		h.handleCreateRoom(m)
	case EvJoinRoom:
		h.handleJoinRoom(m)
	case EvLeaveRoom:
		h.handleLeaveRoom(m)
	case EvOffer, EvAnswer, EvICECandidate:
		h.handleSignal(m)
	case EvToggleAudio:
		h.handleToggle(m, EvAudioToggled)
	case EvToggleVideo:
		h.handleToggle(m, EvVideoToggled)
	case EvStartScreen:
		h.handleScreenShare(m, true)
	case EvStopScreen:
		h.handleScreenShare(m, false)
	case EvChatMessage:
		h.handleChatMessage(m)
	case EvLockRoom:
		h.handleLockRoom(m)
	case EvUnlockRoom:
		h.handleUnlockRoom(m)
	case EvKickUser:
		h.handleKickUser(m)
	case EvPing:
		m.client.trySend(newMessage(EvPong, pongReply{Timestamp: time.Now().UnixMilli()}))
	default:
		h.log.Warn("unknown message type", "type", m.Type, "conn", m.client.ID)
	}
}

// decode unmarshals an event payload. Handlers treat a decode failure
// like any other validation error.
func decode[T any](m *Message) (T, error) {
	var v T
	if len(m.Payload) == 0 {
		return v, ErrInternal
	}
	if err := json.Unmarshal(m.Payload, &v); err != nil {
		return v, err
	}
	return v, nil
}

// RoomSnapshot is a read-only view of a room served to the HTTP API.
type RoomSnapshot struct {
	ID           string    `json:"roomId"`
	IsLocked     bool      `json:"isLocked"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

type snapshotRequest struct {
	roomID string
	reply  chan *RoomSnapshot
}

func (h *Hub) snapshot(roomID string) *RoomSnapshot {
	room, ok := h.registry.Room(roomID)
	if !ok {
		return nil
	}
	return &RoomSnapshot{
		ID:           room.ID,
		IsLocked:     room.IsLocked,
		Participants: room.Size(),
		CreatedAt:    room.CreatedAt,
	}
}

// Snapshot fetches a room view through the hub loop so the read is
// consistent with in-flight events. Returns nil for unknown rooms or
// when the hub has stopped.
func (h *Hub) Snapshot(roomID string) *RoomSnapshot {
	req := snapshotRequest{roomID: roomID, reply: make(chan *RoomSnapshot, 1)}
	select {
	case h.snapshots <- req:
		return <-req.reply
	case <-h.done:
		return nil
	}
}

// trackRoomMetrics refreshes the active-rooms gauge after a mutation.
func (h *Hub) trackRoomMetrics() {
	metrics.ActiveRooms.Set(float64(h.registry.Size()))
}
