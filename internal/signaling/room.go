package signaling

import "time"

// Participant is a connection's identity and media state within a room.
type Participant struct {
	UserID          string `json:"userId"`
	ConnectionID    string `json:"connectionId"`
	UserName        string `json:"userName"`
	IsVideoOn       bool   `json:"isVideoOn"`
	IsAudioOn       bool   `json:"isAudioOn"`
	IsScreenSharing bool   `json:"isScreenSharing"`
	IsHost          bool   `json:"isHost"`
}

// Room is a named session with bounded membership, lock state and an
// optional shared secret. Participants are keyed by connection id and
// kept in join order for display.
type Room struct {
	ID         string
	HostUserID string
	CreatedAt  time.Time
	IsLocked   bool
	Password   string

	participants map[string]*Participant
	order        []string // connection ids, insertion order
}

func newRoom(id, hostUserID string) *Room {
	return &Room{
		ID:           id,
		HostUserID:   hostUserID,
		CreatedAt:    time.Now(),
		participants: make(map[string]*Participant),
	}
}

// add inserts a participant, keeping join order.
func (r *Room) add(p *Participant) {
	if _, ok := r.participants[p.ConnectionID]; !ok {
		r.order = append(r.order, p.ConnectionID)
	}
	r.participants[p.ConnectionID] = p
}

// remove deletes the participant for a connection id, if present.
func (r *Room) remove(connID string) *Participant {
	p, ok := r.participants[connID]
	if !ok {
		return nil
	}
	delete(r.participants, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p
}

// participant returns the entry for a connection id.
func (r *Room) participant(connID string) (*Participant, bool) {
	p, ok := r.participants[connID]
	return p, ok
}

// byUserID finds a participant by userId.
func (r *Room) byUserID(userID string) (*Participant, bool) {
	for _, p := range r.participants {
		if p.UserID == userID {
			return p, true
		}
	}
	return nil, false
}

// Participants returns the members in join order.
func (r *Room) Participants() []*Participant {
	out := make([]*Participant, 0, len(r.order))
	for _, connID := range r.order {
		if p, ok := r.participants[connID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Size is the current participant count.
func (r *Room) Size() int {
	return len(r.participants)
}
