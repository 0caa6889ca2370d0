package realtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	written  []interface{}
	writeErr error
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestPublishReachesEverySubscriber(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}
	hub.Register(a, RoleAddress("psychologist"))
	hub.Register(b, RoleAddress("psychologist"))

	require.NoError(t, hub.Publish(RoleAddress("psychologist"), "hello"))
	require.Len(t, a.written, 1)
	require.Len(t, b.written, 1)
}

func TestPublishToEmptyAddressIsNoOp(t *testing.T) {
	hub := NewHub()
	require.NoError(t, hub.Publish(UserAddress("nobody"), "hello"))
}

func TestPublishScopedToAddress(t *testing.T) {
	hub := NewHub()
	a := &fakeConn{}
	b := &fakeConn{}
	hub.Register(a, UserAddress("alpha"))
	hub.Register(b, UserAddress("beta"))

	require.NoError(t, hub.Publish(UserAddress("alpha"), "hello"))
	require.Len(t, a.written, 1)
	require.Empty(t, b.written)
}

func TestConnectionSubscribesToMultipleAddresses(t *testing.T) {
	hub := NewHub()
	c := &fakeConn{}
	hub.Register(c, UserAddress("alpha"), RoleAddress("director"), VillageAddress("antsirabe"))

	require.NoError(t, hub.Publish(RoleAddress("director"), 1))
	require.NoError(t, hub.Publish(VillageAddress("antsirabe"), 2))
	require.Len(t, c.written, 2)
}

func TestFailedWriteEvictsConnection(t *testing.T) {
	hub := NewHub()
	dead := &fakeConn{writeErr: errors.New("broken pipe")}
	live := &fakeConn{}
	hub.Register(dead, RoleAddress("director"), UserAddress("dead"))
	hub.Register(live, RoleAddress("director"))

	require.NoError(t, hub.Publish(RoleAddress("director"), "hello"))
	require.True(t, dead.closed)
	require.Len(t, live.written, 1)

	// Eviction covers every address the connection held.
	require.Equal(t, 0, hub.Subscribers(UserAddress("dead")))
	require.Equal(t, 1, hub.Subscribers(RoleAddress("director")))
}

func TestUnregisterClosesAndRemoves(t *testing.T) {
	hub := NewHub()
	c := &fakeConn{}
	hub.Register(c, UserAddress("alpha"))

	hub.Unregister(c)
	require.True(t, c.closed)
	require.Equal(t, 0, hub.Subscribers(UserAddress("alpha")))

	require.NoError(t, hub.Publish(UserAddress("alpha"), "hello"))
	require.Empty(t, c.written)
}

func TestAddressHelpers(t *testing.T) {
	require.Equal(t, "user:1", UserAddress("1"))
	require.Equal(t, "role:admin", RoleAddress("admin"))
	require.Equal(t, "village:antsirabe", VillageAddress("antsirabe"))
}
