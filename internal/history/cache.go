package history

import "time"

// DefaultTTL is how long a computed profile stays fresh.
const DefaultTTL = 5 * time.Minute

// Cache holds a single computed StyleProfile with a time-to-live. The tool
// is single-threaded, so freshness is a plain timestamp comparison rather
// than a lock; the slot is overwritten wholesale on recompute and TTL expiry
// is the only invalidation. The clock is injectable so tests can control
// time.
type Cache struct {
	// TTL is the freshness window. Zero means DefaultTTL.
	TTL time.Duration

	// Now supplies the current time. Nil means time.Now.
	Now func() time.Time

	profile StyleProfile
	builtAt time.Time
	valid   bool
}

// Profile returns the cached profile, recomputing it via fetch only when the
// slot is empty or older than the TTL. fetch supplies recent commit
// subjects, most recent first.
func (c *Cache) Profile(fetch func() []string) StyleProfile {
	ttl := c.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	t := now()
	if c.valid && t.Sub(c.builtAt) < ttl {
		return c.profile
	}

	c.profile = BuildProfile(fetch())
	c.builtAt = t
	c.valid = true
	return c.profile
}
