package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumit-Saurabh98/SyncWatch/internal/membership"
	"github.com/Sumit-Saurabh98/SyncWatch/internal/registry/inmemory"
)

type mockSender struct {
	received [][]byte
	sendErr  error
	mu       sync.Mutex
}

func (m *mockSender) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.received = append(m.received, data)
	return nil
}

func (m *mockSender) getReceived() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.received
}

func setup(t *testing.T) (*Dispatcher, *membership.Table, *inmemory.Repo) {
	t.Helper()
	table := membership.NewTable()
	reg := inmemory.NewRepo(slog.Default())
	return New(table, reg, slog.Default()), table, reg
}

func TestDispatcher_Broadcast(t *testing.T) {
	d, table, reg := setup(t)

	a := &mockSender{}
	b := &mockSender{}
	require.NoError(t, reg.Register("conn-a", "user-a", a))
	require.NoError(t, reg.Register("conn-b", "user-b", b))
	table.Join("r", "conn-a")
	table.Join("r", "conn-b")

	delivered := d.Broadcast(context.Background(), "r", &Event{Type: "NEW_MESSAGE", Payload: "hi"}, "")

	assert.Equal(t, 2, delivered)
	require.Len(t, a.getReceived(), 1)
	require.Len(t, b.getReceived(), 1)

	var frame struct {
		Type    string `json:"type"`
		Payload string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(a.getReceived()[0], &frame))
	assert.Equal(t, "NEW_MESSAGE", frame.Type)
	assert.Equal(t, "hi", frame.Payload)
}

func TestDispatcher_ExcludesOrigin(t *testing.T) {
	d, table, reg := setup(t)

	a := &mockSender{}
	b := &mockSender{}
	require.NoError(t, reg.Register("conn-a", "user-a", a))
	require.NoError(t, reg.Register("conn-b", "user-b", b))
	table.Join("r", "conn-a")
	table.Join("r", "conn-b")

	delivered := d.Broadcast(context.Background(), "r", &Event{Type: "PLAYER_STATE_UPDATED"}, "conn-a")

	assert.Equal(t, 1, delivered)
	assert.Empty(t, a.getReceived(), "origin must not receive its own event")
	assert.Len(t, b.getReceived(), 1)
}

func TestDispatcher_NoCrossRoomDelivery(t *testing.T) {
	d, table, reg := setup(t)

	a := &mockSender{}
	b := &mockSender{}
	require.NoError(t, reg.Register("conn-a", "user-a", a))
	require.NoError(t, reg.Register("conn-b", "user-b", b))
	table.Join("r1", "conn-a")
	table.Join("r2", "conn-b")

	delivered := d.Broadcast(context.Background(), "r1", &Event{Type: "NEW_MESSAGE"}, "")

	assert.Equal(t, 1, delivered)
	assert.Empty(t, b.getReceived())
}

func TestDispatcher_PartialFailure(t *testing.T) {
	d, table, reg := setup(t)

	failing := &mockSender{sendErr: errors.New("queue full")}
	ok := &mockSender{}
	require.NoError(t, reg.Register("conn-fail", "user-1", failing))
	require.NoError(t, reg.Register("conn-ok", "user-2", ok))
	table.Join("r", "conn-fail")
	table.Join("r", "conn-ok")

	delivered := d.Broadcast(context.Background(), "r", &Event{Type: "NEW_MESSAGE"}, "")

	assert.Equal(t, 1, delivered, "one failing recipient must not abort the fan-out")
	assert.Len(t, ok.getReceived(), 1)
}

func TestDispatcher_MembershipLookedUpAtDispatchTime(t *testing.T) {
	d, table, reg := setup(t)

	a := &mockSender{}
	b := &mockSender{}
	require.NoError(t, reg.Register("conn-a", "user-a", a))
	require.NoError(t, reg.Register("conn-b", "user-b", b))
	table.Join("r", "conn-a")
	table.Join("r", "conn-b")

	// b leaves before dispatch: it must not be reached even though it was a
	// member when the event was conceived
	table.Leave("r", "conn-b")

	delivered := d.Broadcast(context.Background(), "r", &Event{Type: "NEW_MESSAGE"}, "")

	assert.Equal(t, 1, delivered)
	assert.Empty(t, b.getReceived())
}

func TestDispatcher_SkipsUnregisteredConnection(t *testing.T) {
	d, table, reg := setup(t)

	a := &mockSender{}
	require.NoError(t, reg.Register("conn-a", "user-a", a))
	table.Join("r", "conn-a")
	// conn-gone is in the room but its registry entry is already removed
	table.Join("r", "conn-gone")

	delivered := d.Broadcast(context.Background(), "r", &Event{Type: "NEW_MESSAGE"}, "")

	assert.Equal(t, 1, delivered)
	assert.Len(t, a.getReceived(), 1)
}
