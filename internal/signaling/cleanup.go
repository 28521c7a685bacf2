package signaling

import (
	"time"

	"github.com/tanmayvb/conclave/internal/metrics"
)

// scheduleCleanup arms a deferred check for a room that just lost a
// participant. Only the room id crosses into the timer; emptiness is
// re-evaluated against live state inside the hub loop at fire time, so
// a leave-then-rejoin within the grace window keeps the room alive.
func (h *Hub) scheduleCleanup(roomID string) {
	time.AfterFunc(h.opts.GraceDelay, func() {
		select {
		case h.cleanup <- roomID:
		case <-h.done:
		}
	})
}

// destroyIfEmpty deletes a room whose grace delay elapsed, if and only
// if it is still empty now.
func (h *Hub) destroyIfEmpty(roomID string) {
	room, ok := h.registry.Room(roomID)
	if !ok || room.Size() > 0 {
		return
	}
	h.registry.Delete(roomID)
	metrics.RoomsDestroyed.Inc()
	h.trackRoomMetrics()
	h.log.Info("room cleaned up", "room", roomID)
}

// sweepIdleRooms removes rooms past the idle threshold that hold no
// participants. A populated room is retained regardless of age.
func (h *Hub) sweepIdleRooms(now time.Time) {
	var swept int
	for id, room := range h.registry.Rooms() {
		if now.Sub(room.CreatedAt) > h.opts.IdleThreshold && room.Size() == 0 {
			h.registry.Delete(id)
			metrics.RoomsDestroyed.Inc()
			swept++
		}
	}
	if swept > 0 {
		h.trackRoomMetrics()
		h.log.Info("swept idle rooms", "count", swept)
	}
}
