package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"messagely/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T, usernames ...string) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for _, u := range usernames {
		require.NoError(t, store.Users().Create(context.Background(), &model.User{Username: u, FirstName: u + "-first", JoinAt: time.Now()}))
	}
	return store
}

func TestMemoryUsers_CreateDuplicate(t *testing.T) {
	store := seedMemory(t, "alice")

	err := store.Users().Create(context.Background(), &model.User{Username: "alice", FirstName: "Other"})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	u, _ := store.Users().FindByUsername(context.Background(), "alice")
	assert.Equal(t, "alice-first", u.FirstName)
}

func TestMemoryUsers_ConcurrentCreate(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Users().Create(context.Background(), &model.User{Username: "alice"}); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestMemoryUsers_FindAllOrdered(t *testing.T) {
	store := seedMemory(t, "carol", "alice", "bob")

	users, err := store.Users().FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Equal(t, "carol", users[2].Username)
}

func TestMemoryUsers_UpdateLastLogin(t *testing.T) {
	store := seedMemory(t, "alice")
	at := time.Now()

	require.NoError(t, store.Users().UpdateLastLogin(context.Background(), "alice", at))
	u, _ := store.Users().FindByUsername(context.Background(), "alice")
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, at, *u.LastLoginAt)

	assert.ErrorIs(t, store.Users().UpdateLastLogin(context.Background(), "ghost", at), ErrUnknownUser)
}

func TestMemoryMessages_Lifecycle(t *testing.T) {
	store := seedMemory(t, "alice", "bob")
	ctx := context.Background()
	msg := &model.Message{FromUsername: "alice", ToUsername: "bob", Body: "hello", SentAt: time.Now()}

	require.NoError(t, store.Messages().Create(ctx, msg))
	assert.Equal(t, int64(1), msg.ID)

	detail, err := store.Messages().FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.ReadAt)
	assert.Equal(t, "alice-first", detail.FromUser.FirstName)

	first := time.Now()
	receipt, err := store.Messages().MarkRead(ctx, msg.ID, first)
	require.NoError(t, err)
	assert.Equal(t, first, receipt.ReadAt)

	again, err := store.Messages().MarkRead(ctx, msg.ID, first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, again.ReadAt, "second mark-read keeps the original timestamp")

	missing, err := store.Messages().MarkRead(ctx, 999, first)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryMessages_CreateUnknownRecipient(t *testing.T) {
	store := seedMemory(t, "alice")

	err := store.Messages().Create(context.Background(), &model.Message{FromUsername: "alice", ToUsername: "ghost", Body: "hi"})

	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestMemoryMessages_FromTo(t *testing.T) {
	store := seedMemory(t, "alice", "bob", "carol")
	ctx := context.Background()
	base := time.Now()

	for i, m := range []model.Message{
		{FromUsername: "alice", ToUsername: "bob", Body: "1", SentAt: base},
		{FromUsername: "bob", ToUsername: "alice", Body: "2", SentAt: base.Add(time.Second)},
		{FromUsername: "alice", ToUsername: "bob", Body: "3", SentAt: base.Add(2 * time.Second)},
		{FromUsername: "carol", ToUsername: "bob", Body: "4", SentAt: base.Add(3 * time.Second)},
	} {
		m := m
		require.NoError(t, store.Messages().Create(ctx, &m), "message %d", i)
	}

	from, err := store.Messages().FindFrom(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, from, 2)
	assert.Equal(t, "1", from[0].Body)
	assert.Equal(t, "3", from[1].Body)
	for _, m := range from {
		assert.Equal(t, "bob", m.ToUser.Username)
	}

	to, err := store.Messages().FindTo(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, to, 3)
	assert.Equal(t, "carol", to[2].FromUser.Username)

	none, err := store.Messages().FindTo(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
