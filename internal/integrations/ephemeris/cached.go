package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/kundli-service/internal/metrics"
	"github.com/Dan9191/kundli-service/internal/models"
)

// Store is a persistent second cache level keyed like the memory cache.
// Provider answers for a fixed instant never change, so entries never expire.
type Store interface {
	GetSample(ctx context.Context, key string) ([]byte, bool, error)
	PutSample(ctx context.Context, key string, payload []byte) error
}

// CachedProvider memoizes provider answers in memory and, optionally, in a Store
type CachedProvider struct {
	next    Provider
	mem     *lru.Cache[string, any]
	store   Store
	log     *logrus.Logger
	metrics *metrics.Collector
}

// NewCachedProvider wraps next with an LRU of size entries. store may be nil.
func NewCachedProvider(next Provider, size int, store Store, log *logrus.Logger, m *metrics.Collector) (*CachedProvider, error) {
	mem, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create ephemeris cache: %w", err)
	}
	return &CachedProvider{next: next, mem: mem, store: store, log: log, metrics: m}, nil
}

// lookup answers from memory, then the store, then the wrapped provider.
// Errors are never cached; store failures only degrade to a provider call.
func lookup[T any](ctx context.Context, c *CachedProvider, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.mem.Get(key); ok {
		if t, ok := v.(T); ok {
			c.metrics.ObserveCache("memory", true)
			return t, nil
		}
	}
	c.metrics.ObserveCache("memory", false)

	if c.store != nil {
		payload, found, err := c.store.GetSample(ctx, key)
		switch {
		case err != nil:
			c.log.WithError(err).WithField("key", key).Warn("Ephemeris store lookup failed")
		case found:
			var t T
			if err := json.Unmarshal(payload, &t); err == nil {
				c.metrics.ObserveCache("store", true)
				c.mem.Add(key, t)
				return t, nil
			}
			c.log.WithField("key", key).Warn("Discarding undecodable ephemeris store entry")
		}
		c.metrics.ObserveCache("store", false)
	}

	t, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	c.mem.Add(key, t)

	if c.store != nil {
		payload, err := json.Marshal(t)
		if err == nil {
			err = c.store.PutSample(ctx, key, payload)
		}
		if err != nil {
			c.log.WithError(err).WithField("key", key).Warn("Failed to persist ephemeris sample")
		}
	}
	return t, nil
}

func instantKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func locationKey(loc models.Location) string {
	return strconv.FormatFloat(loc.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(loc.Longitude, 'f', -1, 64)
}

// Position implements Provider
func (c *CachedProvider) Position(ctx context.Context, instant time.Time, body string) (models.RawSample, error) {
	key := "position|" + instantKey(instant) + "|" + body
	return lookup(ctx, c, key, func() (models.RawSample, error) {
		return c.next.Position(ctx, instant, body)
	})
}

// Ayanamsa implements Provider
func (c *CachedProvider) Ayanamsa(ctx context.Context, instant time.Time) (float64, error) {
	key := "ayanamsa|" + instantKey(instant)
	return lookup(ctx, c, key, func() (float64, error) {
		return c.next.Ayanamsa(ctx, instant)
	})
}

// Houses implements Provider
func (c *CachedProvider) Houses(ctx context.Context, instant time.Time, loc models.Location, system models.HouseSystem) (models.HouseCusps, error) {
	key := "houses|" + instantKey(instant) + "|" + locationKey(loc) + "|" + string(system)
	return lookup(ctx, c, key, func() (models.HouseCusps, error) {
		return c.next.Houses(ctx, instant, loc, system)
	})
}

// RiseSet implements Provider
func (c *CachedProvider) RiseSet(ctx context.Context, date time.Time, loc models.Location) (models.RiseSet, error) {
	key := "riseset|" + date.Format("2006-01-02") + "|" + date.Location().String() + "|" + locationKey(loc)
	return lookup(ctx, c, key, func() (models.RiseSet, error) {
		return c.next.RiseSet(ctx, date, loc)
	})
}
