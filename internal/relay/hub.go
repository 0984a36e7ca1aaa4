// Package relay implements the chat room relay: a best-effort fan-out
// of messages to websocket clients joined to the same room. Membership
// lives in memory for the lifetime of the relay process; nothing is
// persisted or replayed.
package relay

import (
	"sync"
)

// Hub owns the room membership mapping. It is the only holder of
// relay state.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Client]struct{})}
}

// Join adds the client to a room. Joining a room twice is a no-op.
func (h *Hub) Join(c *Client, room string) {
	if room == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	c.rooms[room] = struct{}{}
}

// Leave removes the client from every room it joined, dropping rooms
// that become empty.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room := range c.rooms {
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.rooms = make(map[string]struct{})
}

// Broadcast delivers payload to every member of room except the
// sender. Clients whose send buffer is full are skipped; delivery is
// at most once. Returns the number of clients the payload was queued
// for.
func (h *Hub) Broadcast(room string, from *Client, payload []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for member := range h.rooms[room] {
		if member == from {
			continue
		}
		if member.deliver(payload) {
			delivered++
		}
	}
	return delivered
}

// RoomSize reports the current member count of a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
