package signaling

import (
	"crypto/rand"
	"math/big"
)

const (
	// roomIDAlphabet is the 36-symbol set room codes draw from.
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// roomIDLength is the code length. 36^6 combinations keeps the
	// collision rate negligible at the supported room counts.
	roomIDLength = 6

	// maxIDAttempts bounds the retry loop on collision. Hitting it
	// means the id space is effectively full.
	maxIDAttempts = 50
)

// newRoomID generates a room code that does not collide with any live
// room, retrying on collision up to maxIDAttempts times.
func (g *Registry) newRoomID() (string, error) {
	buf := make([]byte, roomIDLength)
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		for i := range buf {
			buf[i] = roomIDAlphabet[randomIndex(len(roomIDAlphabet))]
		}
		id := string(buf)
		if _, taken := g.rooms[id]; !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}

// randomIndex returns a cryptographically secure random index for a slice of given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand failing means the process is beyond saving.
		panic(err)
	}
	return int(n.Int64())
}
