package membership

import (
	"hash/fnv"
	"sync"
)

const shardCount = 32

type room struct {
	order []string
	index map[string]int
}

type shard struct {
	rooms map[string]*room
	mu    sync.RWMutex
}

// Table is the authoritative room membership state: room id -> ordered set of
// connection ids, plus a reverse index for disconnect cleanup. Mutations on
// one room are serialized by its shard lock; unrelated rooms do not contend.
type Table struct {
	shards [shardCount]*shard

	// connRooms tracks which rooms each connection has joined.
	connRooms map[string]map[string]struct{}
	connMu    sync.RWMutex
}

func NewTable() *Table {
	t := &Table{
		connRooms: make(map[string]map[string]struct{}),
	}
	for i := range t.shards {
		t.shards[i] = &shard{rooms: make(map[string]*room)}
	}

	return t
}

func (t *Table) shardOf(roomID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(roomID))

	return t.shards[h.Sum32()%shardCount]
}

// Join adds the connection to the room and returns the current member list.
// Joining twice has no additional effect but still returns the list.
func (t *Table) Join(roomID, connID string) []string {
	s := t.shardOf(roomID)
	s.mu.Lock()
	r, ok := s.rooms[roomID]
	if !ok {
		r = &room{index: make(map[string]int)}
		s.rooms[roomID] = r
	}
	if _, ok := r.index[connID]; !ok {
		r.index[connID] = len(r.order)
		r.order = append(r.order, connID)
	}
	members := snapshot(r.order)
	s.mu.Unlock()

	t.connMu.Lock()
	rooms, ok := t.connRooms[connID]
	if !ok {
		rooms = make(map[string]struct{})
		t.connRooms[connID] = rooms
	}
	rooms[roomID] = struct{}{}
	t.connMu.Unlock()

	return members
}

// Leave removes the connection from the room and returns the remaining member
// list. Removing a connection that is not present is a no-op, not an error.
func (t *Table) Leave(roomID, connID string) []string {
	s := t.shardOf(roomID)
	s.mu.Lock()
	var members []string
	if r, ok := s.rooms[roomID]; ok {
		if i, present := r.index[connID]; present {
			r.order = append(r.order[:i], r.order[i+1:]...)
			delete(r.index, connID)
			for j := i; j < len(r.order); j++ {
				r.index[r.order[j]] = j
			}
		}
		if len(r.order) == 0 {
			delete(s.rooms, roomID)
		} else {
			members = snapshot(r.order)
		}
	}
	s.mu.Unlock()

	t.connMu.Lock()
	if rooms, ok := t.connRooms[connID]; ok {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(t.connRooms, connID)
		}
	}
	t.connMu.Unlock()

	return members
}

// MembersOf returns a copy of the room's current member list in join order.
func (t *Table) MembersOf(roomID string) []string {
	s := t.shardOf(roomID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return nil
	}

	return snapshot(r.order)
}

func (t *Table) IsMember(roomID, connID string) bool {
	s := t.shardOf(roomID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[roomID]
	if !ok {
		return false
	}
	_, present := r.index[connID]

	return present
}

// RoomsOf returns the rooms the connection currently belongs to.
func (t *Table) RoomsOf(connID string) []string {
	t.connMu.RLock()
	defer t.connMu.RUnlock()

	rooms, ok := t.connRooms[connID]
	if !ok {
		return nil
	}

	result := make([]string, 0, len(rooms))
	for roomID := range rooms {
		result = append(result, roomID)
	}

	return result
}

func snapshot(order []string) []string {
	cp := make([]string, len(order))
	copy(cp, order)

	return cp
}
