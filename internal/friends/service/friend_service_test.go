package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/the3dsandwich/csci3100-grp31/internal/friends/domain"
)

type edgeKey struct {
	owner, other string
}

// fakeGraphStore keeps the mirrored friend graph in maps. Update runs the
// whole callback under one mutex, which is all the atomicity the service's
// contract asks for.
type fakeGraphStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	sent     map[edgeKey]domain.Edge
	received map[edgeKey]domain.Edge
	friends  map[edgeKey]domain.Edge
}

func newFakeGraphStore(uids ...string) *fakeGraphStore {
	f := &fakeGraphStore{
		profiles: make(map[string]domain.Profile),
		sent:     make(map[edgeKey]domain.Edge),
		received: make(map[edgeKey]domain.Edge),
		friends:  make(map[edgeKey]domain.Edge),
	}
	for _, uid := range uids {
		f.profiles[uid] = domain.Profile{UID: uid, Username: "name-" + uid}
	}
	return f
}

type fakeTx struct {
	store *fakeGraphStore
}

func (f *fakeGraphStore) Update(_ context.Context, fn func(tx domain.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(&fakeTx{store: f})
}

func (f *fakeGraphStore) Friends(_ context.Context, uid string) ([]domain.Edge, error) {
	return f.list(f.friends, uid), nil
}

func (f *fakeGraphStore) Sent(_ context.Context, uid string) ([]domain.Edge, error) {
	return f.list(f.sent, uid), nil
}

func (f *fakeGraphStore) Received(_ context.Context, uid string) ([]domain.Edge, error) {
	return f.list(f.received, uid), nil
}

func (f *fakeGraphStore) list(m map[edgeKey]domain.Edge, uid string) []domain.Edge {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Edge, 0)
	for k, e := range m {
		if k.owner == uid {
			out = append(out, e)
		}
	}
	return out
}

func (t *fakeTx) Profile(uid string) (*domain.Profile, error) {
	p, ok := t.store.profiles[uid]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func lookup(m map[edgeKey]domain.Edge, owner, other string) (*domain.Edge, error) {
	e, ok := m[edgeKey{owner, other}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (t *fakeTx) SentRequest(owner, target string) (*domain.Edge, error) {
	return lookup(t.store.sent, owner, target)
}

func (t *fakeTx) ReceivedRequest(owner, sender string) (*domain.Edge, error) {
	return lookup(t.store.received, owner, sender)
}

func (t *fakeTx) Friend(owner, other string) (*domain.Edge, error) {
	return lookup(t.store.friends, owner, other)
}

func (t *fakeTx) PutSentRequest(owner, target string, e domain.Edge) error {
	t.store.sent[edgeKey{owner, target}] = e
	return nil
}

func (t *fakeTx) PutReceivedRequest(owner, sender string, e domain.Edge) error {
	t.store.received[edgeKey{owner, sender}] = e
	return nil
}

func (t *fakeTx) PutFriend(owner, other string, e domain.Edge) error {
	t.store.friends[edgeKey{owner, other}] = e
	return nil
}

func (t *fakeTx) DeleteSentRequest(owner, target string) error {
	delete(t.store.sent, edgeKey{owner, target})
	return nil
}

func (t *fakeTx) DeleteReceivedRequest(owner, sender string) error {
	delete(t.store.received, edgeKey{owner, sender})
	return nil
}

func (t *fakeTx) DeleteFriend(owner, other string) error {
	delete(t.store.friends, edgeKey{owner, other})
	return nil
}

func friendFixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func setupFriendService(uids ...string) (*FriendService, *fakeGraphStore) {
	store := newFakeGraphStore(uids...)
	svc := NewFriendService(store)
	svc.Now = friendFixedNow
	return svc, store
}

func TestFriendService_SendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("writes both mirrors with one timestamp", func(t *testing.T) {
		svc, store := setupFriendService("a", "b")

		require.NoError(t, svc.SendRequest(ctx, "a", "b"))

		sent, ok := store.sent[edgeKey{"a", "b"}]
		require.True(t, ok)
		assert.Equal(t, "b", sent.UID)
		assert.Equal(t, "name-b", sent.Username)

		received, ok := store.received[edgeKey{"b", "a"}]
		require.True(t, ok)
		assert.Equal(t, "a", received.UID)
		assert.Equal(t, "name-a", received.Username)

		assert.Equal(t, sent.Time, received.Time)
	})

	t.Run("self request", func(t *testing.T) {
		svc, _ := setupFriendService("a")
		assert.ErrorIs(t, svc.SendRequest(ctx, "a", "a"), domain.ErrSelfRequest)
	})

	t.Run("duplicate request", func(t *testing.T) {
		svc, _ := setupFriendService("a", "b")
		require.NoError(t, svc.SendRequest(ctx, "a", "b"))
		assert.ErrorIs(t, svc.SendRequest(ctx, "a", "b"), domain.ErrRequestExists)
	})

	t.Run("already friends", func(t *testing.T) {
		svc, _ := setupFriendService("a", "b")
		require.NoError(t, svc.SendRequest(ctx, "a", "b"))
		require.NoError(t, svc.AcceptRequest(ctx, "b", "a"))
		assert.ErrorIs(t, svc.SendRequest(ctx, "a", "b"), domain.ErrAlreadyFriends)
	})

	t.Run("unknown target", func(t *testing.T) {
		svc, _ := setupFriendService("a")
		assert.ErrorIs(t, svc.SendRequest(ctx, "a", "ghost"), domain.ErrUserNotFound)
	})
}

func TestFriendService_AcceptRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("turns the request into a symmetric friendship", func(t *testing.T) {
		svc, store := setupFriendService("a", "b")
		require.NoError(t, svc.SendRequest(ctx, "a", "b"))

		require.NoError(t, svc.AcceptRequest(ctx, "b", "a"))

		// Requests gone on both sides.
		assert.Empty(t, store.sent)
		assert.Empty(t, store.received)

		// Friend edges present on both sides, each naming the counterpart.
		ab, ok := store.friends[edgeKey{"a", "b"}]
		require.True(t, ok)
		assert.Equal(t, "b", ab.UID)

		ba, ok := store.friends[edgeKey{"b", "a"}]
		require.True(t, ok)
		assert.Equal(t, "a", ba.UID)
	})

	t.Run("nothing pending", func(t *testing.T) {
		svc, _ := setupFriendService("a", "b")
		assert.ErrorIs(t, svc.AcceptRequest(ctx, "b", "a"), domain.ErrNoRequest)
	})

	t.Run("repairs a stale half-edge", func(t *testing.T) {
		svc, store := setupFriendService("a", "b")

		// Only the receiver's mirror exists, as after a historical partial write.
		store.received[edgeKey{"b", "a"}] = domain.Edge{UID: "a", Username: "name-a", Time: friendFixedNow()}

		require.NoError(t, svc.AcceptRequest(ctx, "b", "a"))

		assert.Empty(t, store.received)
		_, ok := store.friends[edgeKey{"b", "a"}]
		assert.True(t, ok)
		// The sender's side never had a request, so only the present mirror
		// produced a friend edge.
		_, ok = store.friends[edgeKey{"a", "b"}]
		assert.False(t, ok)
	})

	t.Run("self accept", func(t *testing.T) {
		svc, _ := setupFriendService("a")
		assert.ErrorIs(t, svc.AcceptRequest(ctx, "a", "a"), domain.ErrSelfRequest)
	})
}

func TestFriendService_WithdrawRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("removes both mirrors", func(t *testing.T) {
		svc, store := setupFriendService("a", "b")
		require.NoError(t, svc.SendRequest(ctx, "a", "b"))

		require.NoError(t, svc.WithdrawRequest(ctx, "a", "b"))
		assert.Empty(t, store.sent)
		assert.Empty(t, store.received)
	})

	t.Run("withdrawing an absent request is a no-op", func(t *testing.T) {
		svc, _ := setupFriendService("a", "b")
		assert.NoError(t, svc.WithdrawRequest(ctx, "a", "b"))
	})
}

func TestFriendService_Unfriend(t *testing.T) {
	ctx := context.Background()

	t.Run("removes both friend edges", func(t *testing.T) {
		svc, store := setupFriendService("a", "b")
		require.NoError(t, svc.SendRequest(ctx, "a", "b"))
		require.NoError(t, svc.AcceptRequest(ctx, "b", "a"))

		require.NoError(t, svc.Unfriend(ctx, "a", "b"))
		assert.Empty(t, store.friends)
	})

	t.Run("unfriending a non-friend is a no-op", func(t *testing.T) {
		svc, _ := setupFriendService("a", "b")
		assert.NoError(t, svc.Unfriend(ctx, "a", "b"))
	})
}

func TestFriendService_Overview(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFriendService("a", "b", "c", "d")

	// a is friends with b, has sent to c, and has received from d.
	require.NoError(t, svc.SendRequest(ctx, "a", "b"))
	require.NoError(t, svc.AcceptRequest(ctx, "b", "a"))
	require.NoError(t, svc.SendRequest(ctx, "a", "c"))
	require.NoError(t, svc.SendRequest(ctx, "d", "a"))

	ov, err := svc.Overview(ctx, "a")
	require.NoError(t, err)

	require.Len(t, ov.Friends, 1)
	assert.Equal(t, "b", ov.Friends[0].UID)
	require.Len(t, ov.Sent, 1)
	assert.Equal(t, "c", ov.Sent[0].UID)
	require.Len(t, ov.Received, 1)
	assert.Equal(t, "d", ov.Received[0].UID)
}
