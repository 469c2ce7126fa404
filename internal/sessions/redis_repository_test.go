package sessions

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_CreateGetDelete(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:session:")

	ctx := context.Background()
	s := &Session{
		Token:     "t1",
		UID:       "uid-1",
		Anonymous: true,
		ExpiresAt: time.Now().UTC().Add(5 * time.Second),
	}

	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByToken(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, s.UID, got.UID)
	require.True(t, got.Anonymous)

	// test deletion
	require.NoError(t, repo.DeleteByToken(ctx, "t1"))
	got2, err := repo.GetByToken(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:session:")

	ctx := context.Background()
	s := &Session{
		Token:     "t2",
		UID:       "uid-2",
		ExpiresAt: time.Now().UTC().Add(1 * time.Second),
	}

	require.NoError(t, repo.Create(ctx, s))

	// miniredis honours TTLs via FastForward instead of wall-clock waiting
	m.FastForward(2 * time.Second)

	got, err := repo.GetByToken(ctx, "t2")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestServiceValidateAndRevoke(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	require.NoError(t, svc.CreateSession(ctx, "tok", "uid-3", "a@b.com", false, time.Minute))

	sess, err := svc.Validate(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "uid-3", sess.UID)

	require.NoError(t, svc.Revoke(ctx, "tok"))
	sess, err = svc.Validate(ctx, "tok")
	require.NoError(t, err)
	require.Nil(t, sess)
}
