package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"placewise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(maxHistory int) *MemoryContextStore {
	return NewMemoryContextStore(30*time.Minute, maxHistory)
}

func TestMemoryContextStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(50)

	t.Run("get before create", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("create then get", func(t *testing.T) {
		created, err := store.Create(ctx, "s1", "u1")
		require.NoError(t, err)
		assert.Equal(t, "s1", created.SessionID)
		assert.Equal(t, "u1", created.UserID)
		assert.NotNil(t, created.ConversationHistory)
		assert.NotNil(t, created.DisplayedPOIs)

		got, err := store.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, created.SessionID, got.SessionID)
	})

	t.Run("update mutates and persists", func(t *testing.T) {
		_, err := store.Create(ctx, "s2", "")
		require.NoError(t, err)

		updated, err := store.Update(ctx, "s2", func(sc *models.SessionContext) {
			sc.LastQuery = "restaurants"
			sc.ConversationTurn++
			sc.DisplayedPOIs = append(sc.DisplayedPOIs, "poi-1")
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.ConversationTurn)

		got, err := store.Get(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, "restaurants", got.LastQuery)
		assert.Equal(t, []string{"poi-1"}, got.DisplayedPOIs)
	})

	t.Run("update creates missing session", func(t *testing.T) {
		sc, err := store.Update(ctx, "fresh", func(sc *models.SessionContext) {
			sc.LastQuery = "beaches"
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", sc.SessionID)
		assert.Equal(t, "beaches", sc.LastQuery)
	})

	t.Run("returned context is a copy", func(t *testing.T) {
		_, err := store.Create(ctx, "s3", "")
		require.NoError(t, err)
		first, err := store.Get(ctx, "s3")
		require.NoError(t, err)
		first.LastQuery = "mutated locally"

		second, err := store.Get(ctx, "s3")
		require.NoError(t, err)
		assert.Empty(t, second.LastQuery)
	})

	t.Run("clear removes the session", func(t *testing.T) {
		_, err := store.Create(ctx, "s4", "")
		require.NoError(t, err)
		require.NoError(t, store.Clear(ctx, "s4"))
		_, err = store.Get(ctx, "s4")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		assert.NoError(t, store.Clear(ctx, "never-existed"))
	})

	t.Run("touch missing session errors", func(t *testing.T) {
		assert.ErrorIs(t, store.Touch(ctx, "missing"), ErrSessionNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestMemoryContextStoreCaps(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(3)
	_, err := store.Create(ctx, "capped", "")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := store.Update(ctx, "capped", func(sc *models.SessionContext) {
			sc.ConversationHistory = append(sc.ConversationHistory, models.ConversationTurn{
				Query: fmt.Sprintf("query %d", i),
			})
			sc.DisplayedPOIs = append(sc.DisplayedPOIs, fmt.Sprintf("poi-%d", i))
		})
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, "capped")
	require.NoError(t, err)

	// Oldest entries evicted first.
	require.Len(t, got.ConversationHistory, 3)
	assert.Equal(t, "query 2", got.ConversationHistory[0].Query)
	assert.Equal(t, "query 4", got.ConversationHistory[2].Query)
	assert.Equal(t, []string{"poi-2", "poi-3", "poi-4"}, got.DisplayedPOIs)
}

func TestMemoryContextStoreConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(0)
	_, err := store.Create(ctx, "busy", "")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, "busy", func(sc *models.SessionContext) {
				sc.ConversationTurn++
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, 20, got.ConversationTurn)
}

func TestMemoryContextStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryContextStore(10*time.Millisecond, 0)
	_, err := store.Create(ctx, "ephemeral", "")
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	_, err = store.Get(ctx, "ephemeral")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
