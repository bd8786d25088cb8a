package capacity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CapacityService/internal/integrations/capacityapi"
	"github.com/m04kA/SMC-CapacityService/pkg/logger"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListCapacities(ctx context.Context, locationID string) ([]capacityapi.Capacity, error) {
	args := m.Called(ctx, locationID)
	list, _ := args.Get(0).([]capacityapi.Capacity)
	return list, args.Error(1)
}

type hitRecorder struct {
	hits, misses int
}

func (r *hitRecorder) RecordCacheResult(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func Test_CachedLister_cachesPerLocation(t *testing.T) {
	source := &mockLister{}
	source.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{{ID: "a"}}, nil).Once()

	rec := &hitRecorder{}
	lister := NewCachedLister(source, NewCache(10, time.Minute, rec), logger.NewNop())

	first, err := lister.ListCapacities(context.Background(), "loc-1")
	require.NoError(t, err)
	second, err := lister.ListCapacities(context.Background(), "loc-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
	source.AssertExpectations(t)
}

func Test_CachedLister_refreshRefetches(t *testing.T) {
	source := &mockLister{}
	source.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{{ID: "a"}}, nil).Once()
	source.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{{ID: "a"}, {ID: "b"}}, nil).Once()

	lister := NewCachedLister(source, NewCache(10, time.Minute, nil), logger.NewNop())

	_, err := lister.ListCapacities(context.Background(), "loc-1")
	require.NoError(t, err)

	fresh, err := lister.Refresh(context.Background(), "loc-1")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
	source.AssertExpectations(t)
}

func Test_CachedLister_errorsAreNotCached(t *testing.T) {
	source := &mockLister{}
	source.On("ListCapacities", mock.Anything, "loc-1").
		Return(nil, errors.New("backend down")).Once()
	source.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{}, nil).Once()

	lister := NewCachedLister(source, NewCache(10, time.Minute, nil), logger.NewNop())

	_, err := lister.ListCapacities(context.Background(), "loc-1")
	assert.Error(t, err)

	list, err := lister.ListCapacities(context.Background(), "loc-1")
	require.NoError(t, err)
	assert.Empty(t, list)
	source.AssertExpectations(t)
}

func Test_CachedLister_withoutCache(t *testing.T) {
	source := &mockLister{}
	source.On("ListCapacities", mock.Anything, "loc-1").
		Return([]capacityapi.Capacity{{ID: "a"}}, nil).Twice()

	lister := NewCachedLister(source, nil, logger.NewNop())

	for i := 0; i < 2; i++ {
		_, err := lister.ListCapacities(context.Background(), "loc-1")
		require.NoError(t, err)
	}
	lister.Invalidate("loc-1")
	source.AssertExpectations(t)
}

// gatedLister отдает старый список на первый запрос только после release
type gatedLister struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (g *gatedLister) ListCapacities(_ context.Context, _ string) ([]capacityapi.Capacity, error) {
	g.mu.Lock()
	g.calls++
	call := g.calls
	g.mu.Unlock()

	if call == 1 {
		close(g.started)
		<-g.release
		return []capacityapi.Capacity{{ID: "old"}}, nil
	}
	return []capacityapi.Capacity{{ID: "new"}}, nil
}

func Test_CachedLister_slowReadDoesNotOverwriteRefresh(t *testing.T) {
	source := &gatedLister{started: make(chan struct{}), release: make(chan struct{})}
	cache := NewCache(10, time.Minute, nil)
	lister := NewCachedLister(source, cache, logger.NewNop())

	slow := make(chan []capacityapi.Capacity)
	go func() {
		list, _ := lister.ListCapacities(context.Background(), "loc-1")
		slow <- list
	}()
	<-source.started

	fresh, err := lister.Refresh(context.Background(), "loc-1")
	require.NoError(t, err)
	require.Equal(t, "new", fresh[0].ID)

	close(source.release)
	stale := <-slow
	assert.Equal(t, "old", stale[0].ID)

	cached, ok := cache.Get("loc-1")
	require.True(t, ok)
	assert.Equal(t, "new", cached[0].ID)

	list, err := lister.ListCapacities(context.Background(), "loc-1")
	require.NoError(t, err)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, 2, source.calls)
}

func Test_Cache_returnsCopies(t *testing.T) {
	c := NewCache(10, time.Minute, nil)
	c.Set("loc-1", []capacityapi.Capacity{{ID: "a"}})

	got, ok := c.Get("loc-1")
	require.True(t, ok)
	got[0].ID = "mutated"

	again, _ := c.Get("loc-1")
	assert.Equal(t, "a", again[0].ID)

	c.Purge()
	_, ok = c.Get("loc-1")
	assert.False(t, ok)
}
