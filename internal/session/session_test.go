package session

import (
	"crypto/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func randomDek(t *testing.T) []byte {
	t.Helper()
	dek := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(dek)
	require.NoError(t, err)
	return dek
}

func TestSession_UnlockLock(t *testing.T) {
	t.Run("new session is locked", func(t *testing.T) {
		s := New()
		assert.True(t, s.IsLocked())
	})

	t.Run("unlock makes the DEK resident", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))
		assert.False(t, s.IsLocked())
	})

	t.Run("unlock rejects invalid key sizes", func(t *testing.T) {
		s := New()
		assert.ErrorIs(t, s.Unlock(make([]byte, 16)), cryptoDomain.ErrInvalidKeySize)
		assert.True(t, s.IsLocked())
	})

	t.Run("unlock copies the key", func(t *testing.T) {
		s := New()
		dek := randomDek(t)
		require.NoError(t, s.Unlock(dek))

		// Caller zeroes its copy; the session copy must stay usable.
		cryptoDomain.Zero(dek)

		err := s.WithDEK(func(resident []byte) error {
			assert.NotEqual(t, make([]byte, cryptoDomain.KeySize), resident)
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("lock clears the DEK and the cache", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		id := uuid.Must(uuid.NewV7())
		require.True(t, s.StorePlaintext(id, s.Generation(), 1, []byte("cached")))
		assert.Equal(t, 1, s.CacheLen())

		s.Lock()
		assert.True(t, s.IsLocked())
		assert.Equal(t, 0, s.CacheLen())
	})
}

func TestSession_WithDEK(t *testing.T) {
	t.Run("locked session returns ErrSessionLocked", func(t *testing.T) {
		s := New()
		err := s.WithDEK(func([]byte) error { return nil })
		assert.ErrorIs(t, err, ErrSessionLocked)
	})

	t.Run("unlocked session exposes the key", func(t *testing.T) {
		s := New()
		dek := randomDek(t)
		require.NoError(t, s.Unlock(dek))

		var seen []byte
		err := s.WithDEK(func(resident []byte) error {
			seen = make([]byte, len(resident))
			copy(seen, resident)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, dek, seen)
	})
}

func TestSession_Cache(t *testing.T) {
	t.Run("get on locked session fails", func(t *testing.T) {
		s := New()
		_, _, err := s.CachedPlaintext(uuid.Must(uuid.NewV7()), 1)
		assert.ErrorIs(t, err, ErrSessionLocked)
	})

	t.Run("store and retrieve", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		id := uuid.Must(uuid.NewV7())
		require.True(t, s.StorePlaintext(id, s.Generation(), 1, []byte("Hello")))

		plaintext, ok, err := s.CachedPlaintext(id, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("Hello"), plaintext)
	})

	t.Run("returned plaintext is a copy", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		id := uuid.Must(uuid.NewV7())
		require.True(t, s.StorePlaintext(id, s.Generation(), 1, []byte("Hello")))

		first, ok, err := s.CachedPlaintext(id, 1)
		require.NoError(t, err)
		require.True(t, ok)
		first[0] = 'X'

		second, ok, err := s.CachedPlaintext(id, 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("Hello"), second)
	})

	t.Run("stale generation store is discarded", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		id := uuid.Must(uuid.NewV7())
		staleGen := s.Generation()

		// Logout and a fresh login happen while a decrypt is in flight.
		s.Lock()
		require.NoError(t, s.Unlock(randomDek(t)))

		assert.False(t, s.StorePlaintext(id, staleGen, 1, []byte("stale")))
		_, ok, err := s.CachedPlaintext(id, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store on locked session is discarded", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))
		gen := s.Generation()
		s.Lock()

		id := uuid.Must(uuid.NewV7())
		assert.False(t, s.StorePlaintext(id, gen, 1, []byte("late")))
	})

	t.Run("invalidate removes one entry", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		id1 := uuid.Must(uuid.NewV7())
		id2 := uuid.Must(uuid.NewV7())
		require.True(t, s.StorePlaintext(id1, s.Generation(), 1, []byte("one")))
		require.True(t, s.StorePlaintext(id2, s.Generation(), 1, []byte("two")))

		s.Invalidate(id1)

		_, ok, err := s.CachedPlaintext(id1, 1)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = s.CachedPlaintext(id2, 1)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("invalidateAll flushes everything", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		for i := 0; i < 5; i++ {
			require.True(t, s.StorePlaintext(uuid.Must(uuid.NewV7()), s.Generation(), 1, []byte("x")))
		}
		assert.Equal(t, 5, s.CacheLen())

		s.InvalidateAll()
		assert.Equal(t, 0, s.CacheLen())
	})

	t.Run("rotation flushes the cache", func(t *testing.T) {
		s := New()
		require.NoError(t, s.Unlock(randomDek(t)))

		id := uuid.Must(uuid.NewV7())
		require.True(t, s.StorePlaintext(id, s.Generation(), 1, []byte("before rotation")))

		// Rotation unwraps under the new KEK and re-unlocks, even when the
		// DEK bytes are unchanged.
		require.NoError(t, s.Unlock(randomDek(t)))

		_, ok, err := s.CachedPlaintext(id, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New()
	require.NoError(t, s.Unlock(randomDek(t)))

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 16)
	for i := range ids {
		ids[i] = uuid.Must(uuid.NewV7())
	}

	// Readers, writers, and a locker race; the session must stay coherent
	// and no reader may observe a cleared key.
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				gen := s.Generation()
				s.StorePlaintext(ids[i%len(ids)], gen, 1, []byte("payload"))
				_, _, _ = s.CachedPlaintext(ids[(i+j)%len(ids)], 1)

				err := s.WithDEK(func(dek []byte) error {
					assert.Len(t, dek, cryptoDomain.KeySize)
					assert.NotEqual(t, make([]byte, cryptoDomain.KeySize), dek)
					return nil
				})
				if err != nil {
					assert.ErrorIs(t, err, ErrSessionLocked)
				}
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			s.Lock()
			_ = s.Unlock(randomDek(t))
		}
	}()

	wg.Wait()
}
