package sid

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
)

const counterModulus = 0xFFFFFF

// Counter hands out wrap-around values that disambiguate identifiers minted
// within the same second by the same process. It is safe for concurrent use;
// ordering across callers is unspecified but every call returns a distinct
// value until the counter wraps.
type Counter struct {
	mu    sync.Mutex
	value uint32
}

// NewCounter returns a counter seeded with a random starting value so that
// identifiers minted right after a restart do not collide with those of the
// previous process. The seed guards against collisions, not attackers; a
// failed read leaves it at zero.
func NewCounter() *Counter {
	var seed [4]byte
	_, _ = rand.Read(seed[:])
	return &Counter{value: binary.BigEndian.Uint32(seed[:]) % counterModulus}
}

// Next returns the next counter value, wrapping to zero at 0xFFFFFF.
func (c *Counter) Next() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = (c.value + 1) % counterModulus
	return c.value
}
