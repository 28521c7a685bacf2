package signaling

import "testing"

func testClientNoHub(id string, buf int) *Client {
	return &Client{ID: id, send: make(chan *Message, buf)}
}

func TestTopicsPublishExcluding(t *testing.T) {
	topics := NewTopics()
	a := testClientNoHub("a", 4)
	b := testClientNoHub("b", 4)
	topics.Subscribe(a, "ROOM01")
	topics.Subscribe(b, "ROOM01")

	topics.Publish("ROOM01", newMessage("ev", nil), a)

	if len(a.send) != 0 {
		t.Fatal("excluded client received the message")
	}
	if len(b.send) != 1 {
		t.Fatalf("subscriber got %d messages, want 1", len(b.send))
	}
}

func TestTopicsUnsubscribeAndDrop(t *testing.T) {
	topics := NewTopics()
	a := testClientNoHub("a", 4)
	b := testClientNoHub("b", 4)
	topics.Subscribe(a, "R1")
	topics.Subscribe(a, "R2")
	topics.Subscribe(b, "R1")

	topics.Unsubscribe(a, "R1")
	topics.Publish("R1", newMessage("ev", nil), nil)
	if len(a.send) != 0 {
		t.Fatal("unsubscribed client still receives")
	}
	if len(b.send) != 1 {
		t.Fatal("remaining subscriber missed the message")
	}

	topics.Drop(a)
	topics.Publish("R2", newMessage("ev", nil), nil)
	if len(a.send) != 0 {
		t.Fatal("dropped client still receives")
	}
}

func TestTopicsPublishSkipsFullBuffers(t *testing.T) {
	topics := NewTopics()
	slow := testClientNoHub("slow", 1)
	fast := testClientNoHub("fast", 4)
	topics.Subscribe(slow, "R")
	topics.Subscribe(fast, "R")

	// Fill the slow client's buffer; further publishes must not block.
	slow.trySend(newMessage("filler", nil))
	topics.Publish("R", newMessage("ev", nil), nil)

	if len(fast.send) != 1 {
		t.Fatal("healthy subscriber was starved by a slow one")
	}
	if len(slow.send) != 1 {
		t.Fatal("full buffer grew")
	}
}
