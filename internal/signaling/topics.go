package signaling

// Topics is the group-delivery collaborator: a plain mapping from topic
// (room id) to subscribed connections. Membership truth stays with the
// registry; topics only route outbound traffic. Like the registry it is
// owned by the hub loop and needs no locking.
type Topics struct {
	subs map[string]map[*Client]struct{}
}

// NewTopics creates an empty subscription table.
func NewTopics() *Topics {
	return &Topics{subs: make(map[string]map[*Client]struct{})}
}

// Subscribe adds a connection to a topic.
func (t *Topics) Subscribe(c *Client, topic string) {
	set, ok := t.subs[topic]
	if !ok {
		set = make(map[*Client]struct{})
		t.subs[topic] = set
	}
	set[c] = struct{}{}
}

// Unsubscribe removes a connection from a topic, dropping the topic
// once its last subscriber is gone.
func (t *Topics) Unsubscribe(c *Client, topic string) {
	set, ok := t.subs[topic]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(t.subs, topic)
	}
}

// Drop removes a connection from every topic it is subscribed to.
func (t *Topics) Drop(c *Client) {
	for topic, set := range t.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(t.subs, topic)
		}
	}
}

// Publish sends a message to every subscriber of a topic, optionally
// excluding one connection. Delivery is best-effort: subscribers with a
// full send buffer are skipped rather than blocking the hub loop.
func (t *Topics) Publish(topic string, msg *Message, except *Client) {
	for c := range t.subs[topic] {
		if c == except {
			continue
		}
		c.trySend(msg)
	}
}
