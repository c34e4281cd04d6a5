package openweather

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Anand123098sitare/Weather-Insights/internal/domain"
	"github.com/Anand123098sitare/Weather-Insights/internal/observability"
)

// CachedProvider wraps a WeatherProvider with per-endpoint in-memory LRU
// caches. Entries expire after the configured TTL so the service never
// serves stale readings.
type CachedProvider struct {
	inner    domain.WeatherProvider
	clock    clockwork.Clock
	ttl      time.Duration
	metrics  *observability.Metrics
	weather  *lruCache[domain.CurrentConditions]
	forecast *lruCache[[]domain.ForecastPeriod]
	air      *lruCache[domain.AQIReading]
}

// NewCachedProvider creates a cache decorator around a weather provider.
func NewCachedProvider(inner domain.WeatherProvider, maxEntries int, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:    inner,
		clock:    clockwork.NewRealClock(),
		ttl:      ttl,
		metrics:  metrics,
		weather:  newLRUCache[domain.CurrentConditions](maxEntries),
		forecast: newLRUCache[[]domain.ForecastPeriod](maxEntries),
		air:      newLRUCache[domain.AQIReading](maxEntries),
	}
}

func (c *CachedProvider) CurrentWeather(ctx context.Context, city string) (domain.CurrentConditions, error) {
	now := c.clock.Now()
	if v, ok := c.weather.get(cityKey(city), now); ok {
		c.observeLookup("weather", true)
		return v, nil
	}
	c.observeLookup("weather", false)
	v, err := c.inner.CurrentWeather(ctx, city)
	if err != nil {
		return v, err
	}
	c.weather.put(cityKey(city), v, now.Add(c.ttl))
	return v, nil
}

func (c *CachedProvider) Forecast(ctx context.Context, city string, days int) ([]domain.ForecastPeriod, error) {
	key := fmt.Sprintf("%s|%d", cityKey(city), days)
	now := c.clock.Now()
	if v, ok := c.forecast.get(key, now); ok {
		c.observeLookup("forecast", true)
		return v, nil
	}
	c.observeLookup("forecast", false)
	v, err := c.inner.Forecast(ctx, city, days)
	if err != nil {
		return v, err
	}
	c.forecast.put(key, v, now.Add(c.ttl))
	return v, nil
}

func (c *CachedProvider) AirQuality(ctx context.Context, city string) (domain.AQIReading, error) {
	now := c.clock.Now()
	if v, ok := c.air.get(cityKey(city), now); ok {
		c.observeLookup("air_quality", true)
		return v, nil
	}
	c.observeLookup("air_quality", false)
	v, err := c.inner.AirQuality(ctx, city)
	if err != nil {
		return v, err
	}
	c.air.put(cityKey(city), v, now.Add(c.ttl))
	return v, nil
}

func (c *CachedProvider) observeLookup(call string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.metrics.ProviderCache.WithLabelValues(call, result).Inc()
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// lruCache is a simple thread-safe LRU cache with per-entry expiry.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *entry[V]
	next      *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string, now time.Time) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache[V]) remove(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
