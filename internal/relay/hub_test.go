package relay

import (
	"testing"
)

func newTestClient(hub *Hub, sendBuffer int) *Client {
	return NewClient(hub, nil, sendBuffer)
}

func drain(c *Client) [][]byte {
	var out [][]byte
	for {
		select {
		case payload := <-c.send:
			out = append(out, payload)
		default:
			return out
		}
	}
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	hub := NewHub()
	sender := newTestClient(hub, 4)
	member := newTestClient(hub, 4)
	outsider := newTestClient(hub, 4)

	hub.Join(sender, "support")
	hub.Join(member, "support")
	hub.Join(outsider, "sales")

	delivered := hub.Broadcast("support", sender, []byte("hello"))
	if delivered != 1 {
		t.Fatalf("delivered %d, want 1", delivered)
	}
	if got := drain(member); len(got) != 1 || string(got[0]) != "hello" {
		t.Errorf("member received %v", got)
	}
	if got := drain(outsider); len(got) != 0 {
		t.Errorf("outsider received %d messages", len(got))
	}
}

func TestBroadcastNeverEchoesSender(t *testing.T) {
	hub := NewHub()
	sender := newTestClient(hub, 4)
	hub.Join(sender, "support")

	if delivered := hub.Broadcast("support", sender, []byte("hello")); delivered != 0 {
		t.Fatalf("delivered %d to a room containing only the sender", delivered)
	}
	if got := drain(sender); len(got) != 0 {
		t.Errorf("sender received its own message")
	}
}

func TestBroadcastUnknownRoom(t *testing.T) {
	hub := NewHub()
	sender := newTestClient(hub, 4)
	if delivered := hub.Broadcast("nowhere", sender, []byte("hello")); delivered != 0 {
		t.Errorf("delivered %d to an empty room", delivered)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub, 4)
	hub.Join(c, "support")
	hub.Join(c, "support")
	if size := hub.RoomSize("support"); size != 1 {
		t.Errorf("room size %d after double join, want 1", size)
	}

	hub.Join(c, "")
	if size := hub.RoomSize(""); size != 0 {
		t.Errorf("empty room name accepted, size %d", size)
	}
}

func TestLeaveDetachesFromAllRooms(t *testing.T) {
	hub := NewHub()
	c := newTestClient(hub, 4)
	other := newTestClient(hub, 4)
	hub.Join(c, "support")
	hub.Join(c, "sales")
	hub.Join(other, "support")

	hub.Leave(c)

	if size := hub.RoomSize("support"); size != 1 {
		t.Errorf("support size %d after leave, want 1", size)
	}
	// Rooms with no remaining members are dropped entirely.
	if size := hub.RoomSize("sales"); size != 0 {
		t.Errorf("sales size %d after leave, want 0", size)
	}
	if len(c.rooms) != 0 {
		t.Errorf("client still tracks %d rooms", len(c.rooms))
	}

	// Broadcasts no longer reach the departed client.
	hub.Broadcast("support", other, []byte("hello"))
	if got := drain(c); len(got) != 0 {
		t.Errorf("departed client received %d messages", len(got))
	}
}

func TestSlowClientIsSkippedNotBlocked(t *testing.T) {
	hub := NewHub()
	sender := newTestClient(hub, 1)
	slow := newTestClient(hub, 1)
	fast := newTestClient(hub, 4)
	hub.Join(sender, "support")
	hub.Join(slow, "support")
	hub.Join(fast, "support")

	// First message fills the slow client's single-slot buffer.
	if delivered := hub.Broadcast("support", sender, []byte("one")); delivered != 2 {
		t.Fatalf("first broadcast delivered %d, want 2", delivered)
	}
	// Second message skips the slow client but still reaches the fast one.
	if delivered := hub.Broadcast("support", sender, []byte("two")); delivered != 1 {
		t.Fatalf("second broadcast delivered %d, want 1", delivered)
	}
	if got := drain(slow); len(got) != 1 {
		t.Errorf("slow client has %d queued messages, want 1", len(got))
	}
	if got := drain(fast); len(got) != 2 {
		t.Errorf("fast client has %d queued messages, want 2", len(got))
	}
}
