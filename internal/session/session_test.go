package session

import (
	"context"
	"testing"
	"time"

	"klinik-sentosa-server/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testUser() *models.User {
	u := &models.User{Email: "admin@klinik.test"}
	u.ID = "user-1"
	return u
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client)
}

func TestManager_Lifecycle(t *testing.T) {
	_, redisStore := setupTestRedis(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := NewManager(store, "test-secret", time.Hour, zap.NewNop())

			token, acquired, err := m.Acquire(ctx, testUser())
			require.NoError(t, err)
			require.NotEmpty(t, token)
			assert.Equal(t, "user-1", acquired.UserID)

			resolved, err := m.Resolve(ctx, token)
			require.NoError(t, err)
			assert.Equal(t, acquired.ID, resolved.ID)
			assert.Equal(t, "admin@klinik.test", resolved.Email)
			assert.WithinDuration(t, acquired.ExpiresAt, resolved.ExpiresAt, time.Second)

			require.NoError(t, m.Invalidate(ctx, resolved))
			_, err = m.Resolve(ctx, token)
			assert.ErrorIs(t, err, ErrSessionNotFound)

			// Second sign-out is a no-op.
			assert.NoError(t, m.Invalidate(ctx, resolved))
		})
	}
}

func TestManager_ResolveRejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	issuer := NewManager(store, "other-secret", time.Hour, zap.NewNop())
	verifier := NewManager(store, "test-secret", time.Hour, zap.NewNop())

	token, _, err := issuer.Acquire(ctx, testUser())
	require.NoError(t, err)

	_, err = verifier.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ResolveRejectsExpiredToken(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), "test-secret", time.Hour, zap.NewNop())
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Acquire(ctx, testUser())
	require.NoError(t, err)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRedisStore_SetsTTL(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	s := &Session{ID: "sess-1", UserID: "user-1"}
	require.NoError(t, store.Save(ctx, s, 30*time.Minute))

	assert.True(t, mr.Exists(KeyPrefix+"sess-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL(KeyPrefix+"sess-1"))

	mr.FastForward(31 * time.Minute)
	_, err := store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "sess-1"}, time.Minute))
	_, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_SaveSweepsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, &Session{ID: "abandoned"}, time.Minute))
	require.NoError(t, store.Save(ctx, &Session{ID: "long-lived"}, time.Hour))

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, &Session{ID: "fresh"}, time.Minute))

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.NotContains(t, store.sessions, "abandoned")
	assert.Contains(t, store.sessions, "long-lived")
	assert.Contains(t, store.sessions, "fresh")
}
