package signaling

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSignalRelayIsDirected(t *testing.T) {
	h := newTestHub(t)
	a := newTestClient(h, "conn-a")
	b := newTestClient(h, "conn-b")
	c := newTestClient(h, "conn-c")

	send(h, a, EvOffer, signalRequest{To: b.ID, Payload: json.RawMessage(`{"sdp":"for-b"}`)})
	send(h, a, EvICECandidate, signalRequest{To: c.ID, Payload: json.RawMessage(`{"candidate":"for-c"}`)})

	offer := recvAs[signalRelay](t, b, EvOffer)
	if offer.From != a.ID {
		t.Errorf("offer.from = %s, want %s", offer.From, a.ID)
	}
	if string(offer.Payload) != `{"sdp":"for-b"}` {
		t.Errorf("offer payload altered: %s", offer.Payload)
	}
	if len(b.send) != 0 {
		t.Fatal("b received a message meant for c")
	}

	cand := recvAs[signalRelay](t, c, EvICECandidate)
	if string(cand.Payload) != `{"candidate":"for-c"}` {
		t.Errorf("candidate payload altered: %s", cand.Payload)
	}
	if len(c.send) != 0 {
		t.Fatal("c received a message meant for b")
	}
	if len(a.send) != 0 {
		t.Fatal("sender received its own signal")
	}
}

func TestSignalRelayStampsSource(t *testing.T) {
	h := newTestHub(t)
	a := newTestClient(h, "conn-a")
	b := newTestClient(h, "conn-b")

	// A client lying about its identity is corrected server-side.
	send(h, a, EvAnswer, signalRequest{To: b.ID, From: "someone-else", Payload: json.RawMessage(`{}`)})

	answer := recvAs[signalRelay](t, b, EvAnswer)
	if answer.From != a.ID {
		t.Errorf("from = %s, want the real sender %s", answer.From, a.ID)
	}
}

func TestSignalToVanishedTargetIsDropped(t *testing.T) {
	h := newTestHub(t)
	a := newTestClient(h, "conn-a")

	send(h, a, EvOffer, signalRequest{To: "conn-gone", Payload: json.RawMessage(`{}`)})
	if len(a.send) != 0 {
		t.Fatal("sender got a reply for a dropped signal")
	}
}

func TestToggleAudioUpdatesFlagAndNotifiesOthers(t *testing.T) {
	h := newTestHub(t)
	host := newTestClient(h, "conn-host")
	guest := newTestClient(h, "conn-guest")

	created := mustCreateRoom(t, h, host, "Alice")
	joined := mustJoinRoom(t, h, guest, created.RoomID, "Bob", "")
	drain(host)

	send(h, guest, EvToggleAudio, toggleRequest{RoomID: created.RoomID, UserID: joined.UserID, State: false})

	notice := recvAs[toggleNotice](t, host, EvAudioToggled)
	if notice.UserID != joined.UserID || notice.State {
		t.Errorf("notice = %+v", notice)
	}
	if len(guest.send) != 0 {
		t.Fatal("toggler received its own notice")
	}

	room, _ := h.registry.Room(created.RoomID)
	p, _ := room.participant(guest.ID)
	if p.IsAudioOn {
		t.Error("participant flag not updated")
	}
}

func TestToggleFromNonMemberIsNoOp(t *testing.T) {
	h := newTestHub(t)
	host := newTestClient(h, "conn-host")
	outsider := newTestClient(h, "conn-outsider")

	created := mustCreateRoom(t, h, host, "Alice")
	drain(host)

	send(h, outsider, EvToggleVideo, toggleRequest{RoomID: created.RoomID, UserID: "whoever", State: false})

	if len(host.send) != 0 {
		t.Fatal("non-member toggle reached the room")
	}
	if p := h.registry.Participants(created.RoomID)[0]; !p.IsVideoOn {
		t.Fatal("room state mutated by non-member")
	}
}

func TestScreenShareLifecycle(t *testing.T) {
	h := newTestHub(t)
	host := newTestClient(h, "conn-host")
	guest := newTestClient(h, "conn-guest")

	created := mustCreateRoom(t, h, host, "Alice")
	joined := mustJoinRoom(t, h, guest, created.RoomID, "Bob", "")
	drain(host)

	send(h, guest, EvStartScreen, screenShareRequest{RoomID: created.RoomID, UserID: joined.UserID})
	started := recvAs[screenShareNotice](t, host, EvScreenShareStarted)
	if started.UserID != joined.UserID || started.ConnectionID != guest.ID {
		t.Errorf("started = %+v", started)
	}

	room, _ := h.registry.Room(created.RoomID)
	p, _ := room.participant(guest.ID)
	if !p.IsScreenSharing {
		t.Fatal("flag not set on start")
	}

	send(h, guest, EvStopScreen, screenShareRequest{RoomID: created.RoomID, UserID: joined.UserID})
	stopped := recvAs[screenShareNotice](t, host, EvScreenShareStopped)
	if stopped.ConnectionID != "" {
		t.Error("stopped notice should not carry a connection id")
	}
	if p.IsScreenSharing {
		t.Fatal("flag not cleared on stop")
	}
}

func TestChatReachesWholeRoomIncludingSender(t *testing.T) {
	h := newTestHub(t)
	host := newTestClient(h, "conn-host")
	guest := newTestClient(h, "conn-guest")

	created := mustCreateRoom(t, h, host, "Alice")
	joined := mustJoinRoom(t, h, guest, created.RoomID, "Bob", "")
	drain(host)

	before := time.Now().Add(-time.Second)
	send(h, guest, EvChatMessage, chatRequest{
		RoomID:   created.RoomID,
		UserID:   joined.UserID,
		UserName: "Bob",
		Message:  "hi",
	})

	hostCopy := recvAs[chatNotice](t, host, EvNewChatMessage)
	senderCopy := recvAs[chatNotice](t, guest, EvNewChatMessage)

	if hostCopy.ID == "" || hostCopy.ID != senderCopy.ID {
		t.Errorf("message ids differ: %q vs %q", hostCopy.ID, senderCopy.ID)
	}
	if hostCopy.Message != "hi" || hostCopy.Type != "text" {
		t.Errorf("notice = %+v", hostCopy)
	}
	if hostCopy.Timestamp.Before(before) {
		t.Errorf("timestamp %v too old", hostCopy.Timestamp)
	}
	if loc := hostCopy.Timestamp.Location(); loc != time.UTC {
		t.Errorf("timestamp not UTC: %v", loc)
	}
}

func TestChatMessagesGetDistinctIDs(t *testing.T) {
	h := newTestHub(t)
	host := newTestClient(h, "conn-host")
	created := mustCreateRoom(t, h, host, "Alice")

	send(h, host, EvChatMessage, chatRequest{RoomID: created.RoomID, Message: "one"})
	send(h, host, EvChatMessage, chatRequest{RoomID: created.RoomID, Message: "two"})

	first := recvAs[chatNotice](t, host, EvNewChatMessage)
	second := recvAs[chatNotice](t, host, EvNewChatMessage)
	if first.ID == second.ID {
		t.Fatalf("both messages share id %s", first.ID)
	}
}
