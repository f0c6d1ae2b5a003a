package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PrismCRM/internal/domain"
)

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	store := NewRedisStore(client)
	ctx := context.Background()

	session := &domain.Session{
		Token:     "token-1",
		User:      domain.User{Username: "admin", Role: domain.DefaultRole},
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, session))

		got, err := store.Get(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "admin", got.User.Username)
		assert.Equal(t, domain.DefaultRole, got.User.Role)
		assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

		assert.True(t, s.Exists("session:token-1"))
		assert.Greater(t, s.TTL("session:token-1"), 59*time.Minute)
	})

	t.Run("KeyExpires", func(t *testing.T) {
		s.FastForward(2 * time.Hour)

		_, err := store.Get(ctx, "token-1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, session))
		require.NoError(t, store.Delete(ctx, "token-1"))

		_, err := store.Get(ctx, "token-1")
		assert.ErrorIs(t, err, ErrSessionNotFound)

		// повторное удаление не ошибка
		assert.NoError(t, store.Delete(ctx, "token-1"))
	})

	t.Run("RejectExpired", func(t *testing.T) {
		expired := *session
		expired.ExpiresAt = time.Now().Add(-time.Minute)

		err := store.Save(ctx, &expired)
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("CorruptedValue", func(t *testing.T) {
		require.NoError(t, s.Set("session:broken", "not-json"))

		_, err := store.Get(ctx, "broken")
		assert.ErrorIs(t, err, ErrStorage)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}
