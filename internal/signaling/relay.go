package signaling

import (
	"time"

	"github.com/google/uuid"

	"github.com/tanmayvb/conclave/internal/metrics"
)

// handleSignal forwards a negotiation message (offer, answer or ICE
// candidate) to exactly the target connection. The payload is opaque.
// Delivery is fire-and-forget: a vanished target drops the message.
func (h *Hub) handleSignal(m *Message) {
	req, err := decode[signalRequest](m)
	if err != nil {
		return
	}

	target, ok := h.clients[req.To]
	if !ok {
		h.log.Debug("signal target gone", "type", m.Type, "to", req.To)
		return
	}

	// The source identity is stamped server-side so it cannot be
	// spoofed by the sender.
	target.trySend(newMessage(m.Type, signalRelay{
		From:    m.client.ID,
		Payload: req.Payload,
	}))
	metrics.SignalsRelayed.Inc()
}

// handleToggle flips a participant's audio or video flag and tells the
// rest of the room. The event is a no-op unless the acting connection
// is currently a member of the named room.
func (h *Hub) handleToggle(m *Message, notice string) {
	req, err := decode[toggleRequest](m)
	if err != nil {
		return
	}

	p, ok := h.memberOf(m.client, req.RoomID)
	if !ok {
		return
	}

	switch notice {
	case EvAudioToggled:
		p.IsAudioOn = req.State
	case EvVideoToggled:
		p.IsVideoOn = req.State
	}

	h.topics.Publish(canonicalID(req.RoomID), newMessage(notice, toggleNotice{
		UserID: p.UserID,
		State:  req.State,
	}), m.client)
}

// handleScreenShare updates the screen-share flag and notifies the
// other members. The started notice carries the sharer's connection id
// so viewers can bind the incoming track.
func (h *Hub) handleScreenShare(m *Message, started bool) {
	req, err := decode[screenShareRequest](m)
	if err != nil {
		return
	}

	p, ok := h.memberOf(m.client, req.RoomID)
	if !ok {
		return
	}
	p.IsScreenSharing = started

	notice := screenShareNotice{UserID: p.UserID}
	typ := EvScreenShareStopped
	if started {
		typ = EvScreenShareStarted
		notice.ConnectionID = m.client.ID
	}
	h.topics.Publish(canonicalID(req.RoomID), newMessage(typ, notice), m.client)
}

// handleChatMessage fans a chat line out to the entire room, sender
// included. Room state is untouched; each message gets a fresh id and a
// UTC timestamp.
func (h *Hub) handleChatMessage(m *Message) {
	req, err := decode[chatRequest](m)
	if err != nil {
		return
	}

	h.topics.Publish(canonicalID(req.RoomID), newMessage(EvNewChatMessage, chatNotice{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		Message:   req.Message,
		Timestamp: time.Now().UTC(),
		Type:      "text",
	}), nil)
	metrics.ChatMessages.Inc()
}

// memberOf checks, through the connection index, that the client is a
// participant of the named room, and returns its live participant entry.
func (h *Hub) memberOf(c *Client, roomID string) (*Participant, bool) {
	room, ok := h.registry.RoomOf(c.ID)
	if !ok || room.ID != canonicalID(roomID) {
		return nil, false
	}
	return room.participant(c.ID)
}
