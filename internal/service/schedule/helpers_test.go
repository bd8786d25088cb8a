package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
	"github.com/m04kA/SMC-CapacityService/pkg/clock"
	"github.com/m04kA/SMC-CapacityService/pkg/logger"
)

type countingRecorder struct {
	mu    sync.Mutex
	kinds map[string]int
}

func (r *countingRecorder) RecordAnomaly(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.kinds == nil {
		r.kinds = map[string]int{}
	}
	r.kinds[kind]++
}

func newTestService(t *testing.T) (*Service, *clock.Clock, *countingRecorder) {
	t.Helper()
	clk, err := clock.New("Asia/Ho_Chi_Minh")
	require.NoError(t, err)
	rec := &countingRecorder{}
	return NewService(clk, domain.DefaultCatalog, logger.NewNop(), rec), clk, rec
}

// slotAt строит слот на конкретную дату с интервалом [start, end)
func slotAt(clk *clock.Clock, id string, date time.Time, ts domain.TimeSlot, start, end int) domain.CapacitySlot {
	y, m, d := date.Date()
	return domain.CapacitySlot{
		ID:            id,
		LocationID:    "loc-1",
		DayOfWeek:     int(date.Weekday()),
		TimeSlot:      ts,
		EffectiveDate: clk.Date(y, m, d, start, 0, 0),
		ExpiryDate:    clk.Date(y, m, d, end, 0, 0),
		TotalCapacity: 5,
		IsActive:      true,
	}
}
