package signaling

import "errors"

// Error vocabulary surfaced through reply payloads. The strings are part
// of the client contract, so they stay human-readable.
var (
	ErrNameRequired  = errors.New("Username is required")
	ErrRoomNotFound  = errors.New("Room not found")
	ErrWrongPassword = errors.New("Incorrect password")
	ErrIDExhausted   = errors.New("Failed to create room")
	ErrInternal      = errors.New("Internal server error")
)
