package membership

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_JoinIdempotent(t *testing.T) {
	table := NewTable()

	first := table.Join("movie-night", "conn-a")
	second := table.Join("movie-night", "conn-a")

	assert.Equal(t, []string{"conn-a"}, first)
	assert.Equal(t, first, second, "joining twice must not change the member set")
	assert.Equal(t, []string{"conn-a"}, table.MembersOf("movie-night"))
}

func TestTable_JoinOrderPreserved(t *testing.T) {
	table := NewTable()

	table.Join("r", "a")
	table.Join("r", "b")
	table.Join("r", "c")

	assert.Equal(t, []string{"a", "b", "c"}, table.MembersOf("r"))

	table.Leave("r", "b")
	assert.Equal(t, []string{"a", "c"}, table.MembersOf("r"))

	table.Join("r", "b")
	assert.Equal(t, []string{"a", "c", "b"}, table.MembersOf("r"))
}

func TestTable_LeaveAbsentIsNoop(t *testing.T) {
	table := NewTable()
	table.Join("r", "a")

	remaining := table.Leave("r", "never-joined")
	assert.Equal(t, []string{"a"}, remaining)

	remaining = table.Leave("unknown-room", "a")
	assert.Empty(t, remaining)
	assert.Equal(t, []string{"a"}, table.MembersOf("r"))
}

func TestTable_EmptyRoomRemoved(t *testing.T) {
	table := NewTable()
	table.Join("r", "a")

	remaining := table.Leave("r", "a")
	assert.Empty(t, remaining)
	assert.Empty(t, table.MembersOf("r"))
	assert.False(t, table.IsMember("r", "a"))
}

func TestTable_SnapshotIsolation(t *testing.T) {
	table := NewTable()
	table.Join("r", "a")
	table.Join("r", "b")

	snapshot := table.MembersOf("r")
	snapshot[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, table.MembersOf("r"), "returned slice must be a copy")
}

func TestTable_RoomsOf(t *testing.T) {
	table := NewTable()
	table.Join("r1", "a")
	table.Join("r2", "a")
	table.Join("r1", "b")

	assert.ElementsMatch(t, []string{"r1", "r2"}, table.RoomsOf("a"))
	assert.ElementsMatch(t, []string{"r1"}, table.RoomsOf("b"))

	table.Leave("r1", "a")
	assert.ElementsMatch(t, []string{"r2"}, table.RoomsOf("a"))

	table.Leave("r2", "a")
	assert.Empty(t, table.RoomsOf("a"))
}

func TestTable_ConcurrentJoins(t *testing.T) {
	table := NewTable()

	const joins = 100
	var wg sync.WaitGroup
	for i := 0; i < joins; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			table.Join("room-x", fmt.Sprintf("conn-%d", i))
		}(i)
		go func(i int) {
			defer wg.Done()
			table.Join("room-y", fmt.Sprintf("conn-%d", i))
		}(i)
	}
	wg.Wait()

	require.Len(t, table.MembersOf("room-x"), joins, "no member may be dropped by concurrent joins")
	require.Len(t, table.MembersOf("room-y"), joins)
}

func TestTable_ConcurrentJoinLeave(t *testing.T) {
	table := NewTable()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := fmt.Sprintf("conn-%d", i)
			table.Join("r", connID)
			table.Leave("r", connID)
		}(i)
	}
	wg.Wait()

	assert.Empty(t, table.MembersOf("r"))
	for i := 0; i < 50; i++ {
		assert.Empty(t, table.RoomsOf(fmt.Sprintf("conn-%d", i)))
	}
}
