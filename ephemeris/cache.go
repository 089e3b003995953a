package ephemeris

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/echoflaresat/orrery/vectors"
)

// Cache memoizes frames by Julian Date, keeping the most recently used.
// It is safe for concurrent use.
type Cache struct {
	p     Positioner
	cache *lru.Cache // jd -> []vectors.Vec3
}

// NewCache returns a cache of at most size frames in front of p.
func NewCache(p Positioner, size int) (*Cache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("%w: cache size %d: %w", ErrInvalidRequest, size, err)
	}
	return &Cache{p: p, cache: cache}, nil
}

// At returns the frame at jd. The returned slice is shared with the cache
// and must not be modified.
func (c *Cache) At(jd float64) (Frame, error) {
	if v, ok := c.cache.Get(jd); ok {
		return Frame{JD: jd, Positions: v.([]vectors.Vec3)}, nil
	}
	pos, err := c.p.PositionsAt(jd)
	if err != nil {
		return Frame{}, err
	}
	c.cache.Add(jd, pos)
	return Frame{JD: jd, Positions: pos}, nil
}

// Len returns the number of cached frames.
func (c *Cache) Len() int { return c.cache.Len() }
