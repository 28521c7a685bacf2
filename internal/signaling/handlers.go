package signaling

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tanmayvb/conclave/internal/metrics"
)

func newUserID() string {
	return "user_" + uuid.NewString()
}

// handleCreateRoom creates a room with the caller as host and joins
// them immediately.
func (h *Hub) handleCreateRoom(m *Message) {
	req, err := decode[createRoomRequest](m)
	if err != nil || strings.TrimSpace(req.UserName) == "" {
		m.client.trySend(errorReply(EvCreateRoom, ErrNameRequired))
		return
	}

	userID := newUserID()
	room, err := h.registry.CreateRoom(userID)
	if err != nil {
		h.log.Error("room id generation failed", "err", err)
		m.client.trySend(errorReply(EvCreateRoom, ErrIDExhausted))
		return
	}

	// A connection hosts at most one room at a time; creating a new
	// one vacates the old one first.
	h.leaveCurrent(m.client)

	host := &Participant{
		UserID:       userID,
		ConnectionID: m.client.ID,
		UserName:     req.UserName,
		IsVideoOn:    true,
		IsAudioOn:    true,
		IsHost:       true,
	}
	h.registry.JoinRoom(room.ID, host)
	h.topics.Subscribe(m.client, room.ID)

	metrics.RoomsCreated.Inc()
	h.trackRoomMetrics()
	h.log.Info("room created", "room", room.ID, "host", req.UserName)

	m.client.trySend(newMessage(EvCreateRoom, roomReply{
		Success:      true,
		RoomID:       room.ID,
		UserID:       userID,
		UserName:     req.UserName,
		IsHost:       true,
		Participants: []*Participant{host},
	}))
}

// handleJoinRoom admits a caller into an existing room: checks the
// shared secret on locked rooms, notifies existing members, answers the
// caller with the pre-join roster, then announces the newcomer.
func (h *Hub) handleJoinRoom(m *Message) {
	req, err := decode[joinRoomRequest](m)
	if err != nil {
		m.client.trySend(errorReply(EvJoinRoom, ErrRoomNotFound))
		return
	}

	room, ok := h.registry.Room(req.RoomID)
	if !ok {
		m.client.trySend(errorReply(EvJoinRoom, ErrRoomNotFound))
		return
	}

	// Shared secret is compared as-is; rooms are ephemeral and
	// low-trust by contract.
	if room.IsLocked && room.Password != req.Password {
		m.client.trySend(errorReply(EvJoinRoom, ErrWrongPassword))
		return
	}

	// If the caller was in another room, remove them from it first.
	// Only after the join has passed validation, so a rejected join
	// does not cost the caller its current room.
	h.leaveCurrent(m.client)

	userID := newUserID()
	existing := room.Participants()

	p := &Participant{
		UserID:       userID,
		ConnectionID: m.client.ID,
		UserName:     req.UserName,
		IsVideoOn:    true,
		IsAudioOn:    true,
	}
	h.registry.JoinRoom(room.ID, p)
	h.topics.Subscribe(m.client, room.ID)

	h.log.Info("user joined", "room", room.ID, "user", req.UserName)

	// Individual heads-up to each pre-existing member, so they can
	// prepare peer connections before the roster broadcast lands.
	for _, member := range existing {
		if target, ok := h.clients[member.ConnectionID]; ok {
			target.trySend(newMessage(EvUserJoining, userJoiningNotice{
				UserID:       userID,
				UserName:     req.UserName,
				ConnectionID: m.client.ID,
			}))
		}
	}

	m.client.trySend(newMessage(EvJoinRoom, roomReply{
		Success:      true,
		RoomID:       room.ID,
		UserID:       userID,
		IsHost:       false,
		Participants: existing,
	}))

	h.topics.Publish(room.ID, newMessage(EvUserJoined, userJoinedNotice{
		UserID:       userID,
		UserName:     req.UserName,
		ConnectionID: m.client.ID,
		IsVideoOn:    true,
		IsAudioOn:    true,
	}), m.client)
}

// leaveCurrent pulls a connection out of whatever room it is in:
// registry, both indexes and the delivery group in lockstep, then the
// departure broadcast and the deferred cleanup. Every path that vacates
// a room goes through here, so a connection can never be indexed to one
// room while still present in another's participant map.
func (h *Hub) leaveCurrent(c *Client) bool {
	roomID, p, ok := h.registry.LeaveRoom(c.ID)
	if !ok {
		return false
	}
	h.topics.Unsubscribe(c, roomID)

	var userID string
	if p != nil {
		userID = p.UserID
	}
	h.log.Info("user left", "room", roomID, "user", userID)

	h.topics.Publish(roomID, newMessage(EvUserLeft, userLeftNotice{UserID: userID}), nil)
	h.scheduleCleanup(roomID)
	return true
}

// handleLeaveRoom removes the caller from its room and tells the
// remaining members. The connection itself stays registered.
func (h *Hub) handleLeaveRoom(m *Message) {
	h.leaveCurrent(m.client)
}

// handleDisconnect treats an abrupt close exactly like an explicit
// leave, then forgets the connection.
func (h *Hub) handleDisconnect(c *Client) {
	h.leaveCurrent(c)

	h.topics.Drop(c)
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		close(c.send)
	}
}
