// Package session provides the client-side session context that exclusively
// owns the unwrapped Data Encryption Key and the decrypted-note cache.
//
// A session is created locked, unlocked at login with the unwrapped DEK, and
// locked again at logout, timeout, or passphrase rotation. Locking zeroes the
// key material in place and synchronously flushes the cache: both are security
// boundaries, not memory-management conveniences, so invalidation is
// deterministic and completes before Lock returns.
package session

import (
	"sync"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
	"github.com/allisson/notevault/internal/errors"
)

// ErrSessionLocked indicates an operation required a resident DEK but the
// session is locked (logged out, timed out, or never unlocked).
var ErrSessionLocked = errors.Wrap(errors.ErrUnauthorized, "session locked")

// Session owns the resident DEK and the plaintext cache for one unlocked
// vault session. All methods are safe for concurrent use: DEK readers share a
// read lock, while Unlock/Lock take the write lock so no reader can observe a
// key mid-clear.
//
// Every Unlock and Lock bumps an internal generation counter. Cache entries
// and in-flight decrypt results are tagged with the generation they were
// produced under; anything tagged with a stale generation is discarded, so a
// decrypt that completes after logout can never repopulate the cache with
// material tied to a cleared key.
type Session struct {
	mu         sync.RWMutex
	dek        []byte
	generation uint64
	cache      *plaintextCache
}

// New creates a locked session with an empty cache.
func New() *Session {
	return &Session{
		cache: newPlaintextCache(),
	}
}

// Unlock makes the DEK resident and starts a new generation.
//
// The session keeps its own copy of the key; the caller should zero its copy
// after the call. Unlocking an already-unlocked session replaces the DEK
// (passphrase rotation with an unchanged DEK still flushes the cache, because
// trust changed even if the key bytes did not).
func (s *Session) Unlock(dek []byte) error {
	if len(dek) != cryptoDomain.KeySize {
		return cryptoDomain.ErrInvalidKeySize
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dek != nil {
		cryptoDomain.Zero(s.dek)
	}
	s.dek = make([]byte, cryptoDomain.KeySize)
	copy(s.dek, dek)
	s.generation++
	s.cache.removeAll()
	return nil
}

// Lock clears the DEK and flushes the cache.
//
// The key bytes are overwritten before the reference is dropped. The flush is
// complete before Lock returns: no subsequent read can observe cached
// plaintext tied to the cleared key.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dek != nil {
		cryptoDomain.Zero(s.dek)
		s.dek = nil
	}
	s.generation++
	s.cache.removeAll()
}

// IsLocked reports whether the session has no resident DEK.
func (s *Session) IsLocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dek == nil
}

// Generation returns the current generation counter. Callers performing work
// outside the session lock (e.g. decrypting) capture the generation first and
// pass it back to StorePlaintext, which discards results from old generations.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// WithDEK runs fn with read access to the resident DEK, returning
// ErrSessionLocked if the session is locked. The key must not be retained or
// mutated by fn; the read lock is held for the duration of the call, which
// also excludes a concurrent Lock from clearing the key mid-operation.
func (s *Session) WithDEK(fn func(dek []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dek == nil {
		return ErrSessionLocked
	}
	return fn(s.dek)
}

// CachedPlaintext returns a copy of the cached plaintext for the note id, if
// present, produced under the current generation, and decrypted from the given
// note version. A version mismatch means the note changed since the entry was
// cached, so the caller must decrypt again. Returns ErrSessionLocked when the
// session is locked: a locked session must never serve stale data.
func (s *Session) CachedPlaintext(id uuid.UUID, version uint) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dek == nil {
		return nil, false, ErrSessionLocked
	}

	plaintext, ok := s.cache.get(id, s.generation, version)
	return plaintext, ok, nil
}

// StorePlaintext caches plaintext for a note id and version if the supplied
// generation is still current and the session is unlocked. Results produced
// under an older generation (a decrypt that raced a logout or rotation) are
// discarded. Reports whether the entry was stored.
func (s *Session) StorePlaintext(id uuid.UUID, generation uint64, version uint, plaintext []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dek == nil || generation != s.generation {
		return false
	}

	s.cache.put(id, s.generation, version, plaintext)
	return true
}

// Invalidate removes a single note's cache entry, zeroing the stored bytes.
func (s *Session) Invalidate(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.remove(id)
}

// InvalidateAll removes every cache entry, zeroing the stored bytes.
func (s *Session) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.removeAll()
}

// CacheLen returns the number of cached entries.
func (s *Session) CacheLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.len()
}
