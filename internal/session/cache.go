package session

import (
	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/notevault/internal/crypto/domain"
)

// cacheEntry pairs cached plaintext with the session generation it was
// decrypted under and the note version it was decrypted from.
type cacheEntry struct {
	plaintext  []byte
	generation uint64
	version    uint
}

// plaintextCache maps note ids to decrypted plaintext. It has no locking of
// its own: the owning Session serializes all access under its mutex. Entries
// are zeroed before removal so dropped plaintext does not linger in memory
// waiting for the garbage collector.
type plaintextCache struct {
	entries map[uuid.UUID]cacheEntry
}

func newPlaintextCache() *plaintextCache {
	return &plaintextCache{
		entries: make(map[uuid.UUID]cacheEntry),
	}
}

// get returns a copy of the cached plaintext if present, produced under the
// given generation, and decrypted from the given note version. Copies keep
// callers isolated from later zeroing.
func (c *plaintextCache) get(id uuid.UUID, generation uint64, version uint) ([]byte, bool) {
	entry, ok := c.entries[id]
	if !ok || entry.generation != generation || entry.version != version {
		return nil, false
	}

	plaintext := make([]byte, len(entry.plaintext))
	copy(plaintext, entry.plaintext)
	return plaintext, true
}

// put stores a copy of the plaintext tagged with the generation and note
// version, replacing (and zeroing) any previous entry for the id.
func (c *plaintextCache) put(id uuid.UUID, generation uint64, version uint, plaintext []byte) {
	if prev, ok := c.entries[id]; ok {
		cryptoDomain.Zero(prev.plaintext)
	}

	stored := make([]byte, len(plaintext))
	copy(stored, plaintext)
	c.entries[id] = cacheEntry{plaintext: stored, generation: generation, version: version}
}

// remove zeroes and deletes a single entry.
func (c *plaintextCache) remove(id uuid.UUID) {
	if entry, ok := c.entries[id]; ok {
		cryptoDomain.Zero(entry.plaintext)
		delete(c.entries, id)
	}
}

// removeAll zeroes and deletes every entry.
func (c *plaintextCache) removeAll() {
	for id, entry := range c.entries {
		cryptoDomain.Zero(entry.plaintext)
		delete(c.entries, id)
	}
}

func (c *plaintextCache) len() int {
	return len(c.entries)
}
