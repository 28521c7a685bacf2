package signaling

import (
	"github.com/tanmayvb/conclave/internal/metrics"
)

// Host controls fail silently on bad authorization: an unauthorized
// caller gets no reply at all, so probing host-only operations reveals
// nothing about the room.

// handleLockRoom sets the room's lock state and shared secret. Only the
// room's host may lock.
func (h *Hub) handleLockRoom(m *Message) {
	req, err := decode[lockRoomRequest](m)
	if err != nil {
		return
	}

	room, ok := h.actingHost(m.client, req.RoomID)
	if !ok {
		return
	}

	room.IsLocked = true
	room.Password = req.Password
	h.log.Info("room locked", "room", room.ID)

	h.topics.Publish(room.ID, newMessage(EvRoomLocked, roomLockedNotice{IsLocked: true}), nil)
}

// handleUnlockRoom clears the lock state and secret.
func (h *Hub) handleUnlockRoom(m *Message) {
	req, err := decode[unlockRoomRequest](m)
	if err != nil {
		return
	}

	room, ok := h.actingHost(m.client, req.RoomID)
	if !ok {
		return
	}

	room.IsLocked = false
	room.Password = ""
	h.log.Info("room unlocked", "room", room.ID)

	h.topics.Publish(room.ID, newMessage(EvRoomLocked, roomLockedNotice{IsLocked: false}), nil)
}

// handleKickUser removes a participant on the host's order: the target
// is pulled out of the room, the indexes and the delivery group, told
// why, and the remaining room sees a normal departure.
func (h *Hub) handleKickUser(m *Message) {
	req, err := decode[kickUserRequest](m)
	if err != nil {
		return
	}

	room, ok := h.registry.Room(req.RoomID)
	if !ok {
		return
	}
	actor, ok := h.registry.IdentityOf(m.client.ID)
	if !ok || !actor.IsHost || actor.UserID == req.TargetUserID {
		return
	}

	target, ok := room.byUserID(req.TargetUserID)
	if !ok {
		return
	}

	h.registry.LeaveRoom(target.ConnectionID)
	if conn, ok := h.clients[target.ConnectionID]; ok {
		h.topics.Unsubscribe(conn, room.ID)
		conn.trySend(newMessage(EvKicked, kickedNotice{Reason: "Removed by host"}))
	}

	metrics.UsersKicked.Inc()
	h.log.Info("user kicked", "room", room.ID, "target", req.TargetUserID)

	h.topics.Publish(room.ID, newMessage(EvUserLeft, userLeftNotice{UserID: req.TargetUserID}), nil)
	h.scheduleCleanup(room.ID)
}

// actingHost resolves the room and verifies the caller's cached
// identity is the room's host.
func (h *Hub) actingHost(c *Client, roomID string) (*Room, bool) {
	room, ok := h.registry.Room(roomID)
	if !ok {
		return nil, false
	}
	identity, ok := h.registry.IdentityOf(c.ID)
	if !ok || identity.UserID != room.HostUserID {
		return nil, false
	}
	return room, true
}
