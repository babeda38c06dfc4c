// Package idutil derives stable identifiers of signal detections and their
// hypotheses from legacy CSS keys.
package idutil

import (
	"strconv"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// IDs maps legacy keys to identifiers. The same key always gives the same
// id.
type IDs interface {
	// SignalDetectionIDFromArid returns the id of the signal detection of
	// an arrival.
	SignalDetectionIDFromArid(arid int64) uuid.UUID

	// HypothesisIDFromAridAndStage returns the id of an arrival based
	// hypothesis of a stage.
	HypothesisIDFromAridAndStage(arid int64, stage string) uuid.UUID

	// HypothesisIDFromAridOridAndStage returns the id of an association
	// based hypothesis of a stage.
	HypothesisIDFromAridOridAndStage(arid, orid int64, stage string) uuid.UUID
}

// Cache memoises ids. Ids are UUID v5 of their keys, so an expired entry
// comes back unchanged. It is safe for concurrent use.
type Cache struct {
	ids   *cache.Cache
	group singleflight.Group
}

// New creates a Cache that keeps ids for ttl.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	cleanup := 2 * ttl
	if ttl == cache.NoExpiration {
		cleanup = 0
	}
	return &Cache{ids: cache.New(ttl, cleanup)}
}

func (c *Cache) SignalDetectionIDFromArid(arid int64) uuid.UUID {
	return c.get(SignalDetectionKey(arid))
}

func (c *Cache) HypothesisIDFromAridAndStage(arid int64, stage string) uuid.UUID {
	return c.get(HypothesisKey(arid, stage))
}

func (c *Cache) HypothesisIDFromAridOridAndStage(
	arid, orid int64,
	stage string,
) uuid.UUID {
	return c.get(AssocHypothesisKey(arid, orid, stage))
}

// Len returns the number of cached ids.
func (c *Cache) Len() int {
	return c.ids.ItemCount()
}

// Flush removes all cached ids.
func (c *Cache) Flush() {
	c.ids.Flush()
}

func (c *Cache) get(key string) uuid.UUID {
	if v, ok := c.ids.Get(key); ok {
		return v.(uuid.UUID)
	}
	v, _, _ := c.group.Do(key, func() (any, error) {
		id := gnuuid.New(key)
		c.ids.Set(key, id, cache.DefaultExpiration)
		return id, nil
	})
	return v.(uuid.UUID)
}

// SignalDetectionKey is the cache key of a signal detection id.
func SignalDetectionKey(arid int64) string {
	return "sd:" + strconv.FormatInt(arid, 10)
}

// HypothesisKey is the cache key of an arrival based hypothesis id.
func HypothesisKey(arid int64, stage string) string {
	return "sdh:" + strconv.FormatInt(arid, 10) + ":" + stage
}

// AssocHypothesisKey is the cache key of an association based hypothesis
// id.
func AssocHypothesisKey(arid, orid int64, stage string) string {
	return "sdh:" + strconv.FormatInt(arid, 10) + ":" +
		strconv.FormatInt(orid, 10) + ":" + stage
}
