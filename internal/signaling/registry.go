package signaling

import "strings"

// Registry owns all live rooms plus the reverse mapping from a
// connection to its current room and cached identity. It is not safe
// for concurrent use; the hub loop is its only caller.
type Registry struct {
	rooms    map[string]*Room
	connRoom map[string]string       // connection id -> room id
	connUser map[string]*Participant // connection id -> identity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		connRoom: make(map[string]string),
		connUser: make(map[string]*Participant),
	}
}

// canonicalID uppercases a room code. Applied at every read/write
// boundary so lookups are case-insensitive.
func canonicalID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// CreateRoom generates a fresh room id and registers an empty room for
// the given host. The registry is left untouched if no unique id could
// be produced.
func (g *Registry) CreateRoom(hostUserID string) (*Room, error) {
	id, err := g.newRoomID()
	if err != nil {
		return nil, err
	}
	room := newRoom(id, hostUserID)
	g.rooms[id] = room
	return room, nil
}

// Room looks up a room by id, case-insensitively.
func (g *Registry) Room(id string) (*Room, bool) {
	room, ok := g.rooms[canonicalID(id)]
	return room, ok
}

// JoinRoom inserts a participant into the room and both reverse
// indexes. Nothing is mutated when the room does not exist.
func (g *Registry) JoinRoom(id string, p *Participant) (*Room, error) {
	room, ok := g.Room(id)
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.add(p)
	g.connRoom[p.ConnectionID] = room.ID
	g.connUser[p.ConnectionID] = p
	return room, nil
}

// LeaveRoom resolves the connection's room through the reverse index
// and removes the participant from the room and both indexes. It
// returns the vacated room id, or false if the connection was not in
// any room.
func (g *Registry) LeaveRoom(connID string) (string, *Participant, bool) {
	roomID, ok := g.connRoom[connID]
	if !ok {
		return "", nil, false
	}
	delete(g.connRoom, connID)
	p := g.connUser[connID]
	delete(g.connUser, connID)
	if room, ok := g.rooms[roomID]; ok {
		if removed := room.remove(connID); removed != nil {
			p = removed
		}
	}
	return roomID, p, true
}

// Participants returns the members of a room in join order, or nil for
// an unknown room.
func (g *Registry) Participants(id string) []*Participant {
	room, ok := g.Room(id)
	if !ok {
		return nil
	}
	return room.Participants()
}

// RoomOf resolves the room a connection currently belongs to.
func (g *Registry) RoomOf(connID string) (*Room, bool) {
	roomID, ok := g.connRoom[connID]
	if !ok {
		return nil, false
	}
	room, ok := g.rooms[roomID]
	return room, ok
}

// IdentityOf returns the cached participant identity for a connection.
func (g *Registry) IdentityOf(connID string) (*Participant, bool) {
	p, ok := g.connUser[connID]
	return p, ok
}

// Delete removes a room. Reverse-index entries are untouched: a room is
// only deleted once empty.
func (g *Registry) Delete(id string) {
	delete(g.rooms, canonicalID(id))
}

// Rooms exposes the live room map for the sweep. Callers must not
// retain the map across events.
func (g *Registry) Rooms() map[string]*Room {
	return g.rooms
}

// Size is the number of live rooms.
func (g *Registry) Size() int {
	return len(g.rooms)
}
