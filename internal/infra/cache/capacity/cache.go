package capacity

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/pkg/latest"
)

// Cache кэш списков вместимости по локации с ограничением размера и TTL
type Cache struct {
	lru      *expirable.LRU[string, []capacityapi.Capacity]
	recorder Recorder
}

// NewCache создает кэш на size локаций; записи живут ttl
func NewCache(size int, ttl time.Duration, recorder Recorder) *Cache {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Cache{
		lru:      expirable.NewLRU[string, []capacityapi.Capacity](size, nil, ttl),
		recorder: recorder,
	}
}

// Get возвращает копию закэшированного списка
func (c *Cache) Get(locationID string) ([]capacityapi.Capacity, bool) {
	list, ok := c.lru.Get(locationID)
	c.recorder.RecordCacheResult(ok)
	if !ok {
		return nil, false
	}
	return append([]capacityapi.Capacity(nil), list...), true
}

// Set сохраняет копию списка
func (c *Cache) Set(locationID string, list []capacityapi.Capacity) {
	c.lru.Add(locationID, append([]capacityapi.Capacity{}, list...))
}

// Invalidate удаляет список локации
func (c *Cache) Invalidate(locationID string) {
	c.lru.Remove(locationID)
}

// Purge очищает кэш
func (c *Cache) Purge() {
	c.lru.Purge()
}

// CachedLister читает списки вместимости через кэш.
// При nil-кэше работает как прозрачная обертка.
// Загрузка, начатая до Invalidate, в кэш не попадает.
type CachedLister struct {
	source      Lister
	cache       *Cache
	mu          sync.Mutex
	generations *latest.Tracker
	logger      Logger
}

// NewCachedLister создает новый экземпляр кэширующего источника
func NewCachedLister(source Lister, cache *Cache, logger Logger) *CachedLister {
	return &CachedLister{
		source:      source,
		cache:       cache,
		generations: latest.NewTracker(),
		logger:      logger,
	}
}

// ListCapacities возвращает список из кэша или загружает его
func (l *CachedLister) ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error) {
	if l.cache == nil {
		return l.source.ListCapacities(ctx, locationID)
	}

	if list, ok := l.cache.Get(locationID); ok {
		return list, nil
	}

	ticket := l.generations.Current(locationID)
	list, err := l.source.ListCapacities(ctx, locationID)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.generations.IsLatest(ticket) {
		l.logger.Info("Capacity cache: stale list for location=%s not stored", locationID)
		return list, nil
	}
	l.cache.Set(locationID, list)
	return list, nil
}

// Invalidate сбрасывает кэш локации; загрузки, начатые раньше, больше не сохраняются
func (l *CachedLister) Invalidate(locationID string) {
	if l.cache == nil {
		return
	}

	l.mu.Lock()
	l.generations.Begin(locationID)
	l.cache.Invalidate(locationID)
	l.mu.Unlock()

	l.logger.Info("Capacity cache invalidated: location=%s", locationID)
}

// Refresh сбрасывает кэш локации и загружает список заново
func (l *CachedLister) Refresh(ctx context.Context, locationID string) ([]capacityapi.Capacity, error) {
	l.Invalidate(locationID)
	return l.ListCapacities(ctx, locationID)
}
