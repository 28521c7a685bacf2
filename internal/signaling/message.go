package signaling

import (
	"encoding/json"
	"time"
)

// Client-to-server event names. Each inbound message names exactly one
// of these in its Type field.
const (
	EvCreateRoom   = "create-room"
	EvJoinRoom     = "join-room"
	EvLeaveRoom    = "leave-room"
	EvOffer        = "webrtc-offer"
	EvAnswer       = "webrtc-answer"
	EvICECandidate = "webrtc-ice-candidate"
	EvToggleAudio  = "toggle-audio"
	EvToggleVideo  = "toggle-video"
	EvStartScreen  = "start-screen-share"
	EvStopScreen   = "stop-screen-share"
	EvChatMessage  = "send-chat-message"
	EvLockRoom     = "lock-room"
	EvUnlockRoom   = "unlock-room"
	EvKickUser     = "kick-user"
	EvPing         = "ping"
)

// Server-to-client event names for broadcasts and direct notices.
// Synchronous replies reuse the request's event name.
const (
	EvUserJoining        = "user-joining"
	EvUserJoined         = "user-joined"
	EvUserLeft           = "user-left"
	EvAudioToggled       = "user-audio-toggled"
	EvVideoToggled       = "user-video-toggled"
	EvScreenShareStarted = "screen-share-started"
	EvScreenShareStopped = "screen-share-stopped"
	EvNewChatMessage     = "new-chat-message"
	EvRoomLocked         = "room-locked"
	EvKicked             = "kicked"
	EvPong               = "pong"
)

// Message is the wire envelope for all C2S (Client to Server)
// and S2C (Server to Client) websocket messages.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// client is the connection the message arrived on. Attached by the
	// read pump, never sent over JSON.
	client *Client
}

// newMessage builds an outbound envelope, marshalling v into the payload.
func newMessage(typ string, v any) *Message {
	b, _ := json.Marshal(v)
	return &Message{Type: typ, Payload: b}
}

// --- request payloads ---

type createRoomRequest struct {
	UserName string `json:"userName"`
}

type joinRoomRequest struct {
	RoomID   string `json:"roomId"`
	UserName string `json:"userName"`
	Password string `json:"password,omitempty"`
}

type leaveRoomRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// signalRequest is the shared shape of the three WebRTC negotiation
// messages. The payload is opaque to the relay.
type signalRequest struct {
	To      string          `json:"to"`
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type toggleRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	State  bool   `json:"state"`
}

type screenShareRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type chatRequest struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Message  string `json:"message"`
}

type lockRoomRequest struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password"`
}

type unlockRoomRequest struct {
	RoomID string `json:"roomId"`
}

type kickUserRequest struct {
	RoomID       string `json:"roomId"`
	TargetUserID string `json:"targetUserId"`
}

// --- reply and broadcast payloads ---

// roomReply answers create-room and join-room.
type roomReply struct {
	Success      bool           `json:"success"`
	RoomID       string         `json:"roomId,omitempty"`
	UserID       string         `json:"userId,omitempty"`
	UserName     string         `json:"userName,omitempty"`
	IsHost       bool           `json:"isHost"`
	Participants []*Participant `json:"participants,omitempty"`
	Error        string         `json:"error,omitempty"`
}

// signalRelay is what the target of a negotiation message receives:
// the untouched payload plus the source connection identity.
type signalRelay struct {
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

type userJoiningNotice struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	ConnectionID string `json:"connectionId"`
}

type userJoinedNotice struct {
	UserID       string `json:"userId"`
	UserName     string `json:"userName"`
	ConnectionID string `json:"connectionId"`
	IsVideoOn    bool   `json:"isVideoOn"`
	IsAudioOn    bool   `json:"isAudioOn"`
}

type userLeftNotice struct {
	UserID string `json:"userId"`
}

type toggleNotice struct {
	UserID string `json:"userId"`
	State  bool   `json:"state"`
}

type screenShareNotice struct {
	UserID       string `json:"userId"`
	ConnectionID string `json:"connectionId,omitempty"`
}

type chatNotice struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
}

type roomLockedNotice struct {
	IsLocked bool `json:"isLocked"`
}

type kickedNotice struct {
	Reason string `json:"reason"`
}

type pongReply struct {
	Timestamp int64 `json:"timestamp"`
}

// errorReply answers a request that failed, reusing the request's type.
func errorReply(typ string, err error) *Message {
	return newMessage(typ, roomReply{Success: false, Error: err.Error()})
}
