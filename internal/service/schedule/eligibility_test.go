package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CapacityService/internal/domain"
)

func Test_Service_Eligibility_pastExclusion(t *testing.T) {
	svc, clk, _ := newTestService(t)
	now := clk.Date(2024, 6, 10, 9, 30, 0)
	week := svc.BuildWeek(now)

	monday := clk.Date(2024, 6, 10, 0, 0, 0)
	tuesday := clk.Date(2024, 6, 11, 0, 0, 0)
	grid := svc.Resolve([]domain.CapacitySlot{
		slotAt(clk, "mon-9", monday, domain.Morning, 9, 10),
		slotAt(clk, "mon-10", monday, domain.Morning, 10, 11),
		slotAt(clk, "tue-7", tuesday, domain.Morning, 7, 8),
		slotAt(clk, "tue-20", tuesday, domain.Evening, 20, 21),
	}, week)

	tests := []struct {
		name       string
		day        int
		timeSlot   domain.TimeSlot
		bucket     domain.HourBucket
		want       bool
		wantReason domain.CellReason
	}{
		{name: "today already started", day: 1, timeSlot: domain.Morning, bucket: domain.NewHourBucket(9, 10), want: false, wantReason: domain.ReasonPast},
		{name: "today later", day: 1, timeSlot: domain.Morning, bucket: domain.NewHourBucket(10, 11), want: true},
		{name: "tomorrow early", day: 2, timeSlot: domain.Morning, bucket: domain.NewHourBucket(7, 8), want: true},
		{name: "tomorrow evening", day: 2, timeSlot: domain.Evening, bucket: domain.NewHourBucket(20, 21), want: true},
		{name: "empty cell", day: 3, timeSlot: domain.Morning, bucket: domain.NewHourBucket(7, 8), want: false, wantReason: domain.ReasonUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := grid.Cell(tt.day, tt.timeSlot, tt.bucket)
			got, reason := svc.Eligibility(cell, now)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.want, svc.IsSelectable(cell, now))
		})
	}
}

func Test_Service_Eligibility_exactlyNowIsPast(t *testing.T) {
	svc, clk, _ := newTestService(t)
	now := clk.Date(2024, 6, 10, 9, 0, 0)
	grid := svc.Resolve([]domain.CapacitySlot{
		slotAt(clk, "mon-9", clk.Date(2024, 6, 10, 0, 0, 0), domain.Morning, 9, 10),
	}, svc.BuildWeek(now))

	ok, reason := svc.Eligibility(grid.Cell(1, domain.Morning, domain.NewHourBucket(9, 10)), now)
	assert.False(t, ok)
	assert.Equal(t, domain.ReasonPast, reason)
}

func Test_Service_Eligibility_reasons(t *testing.T) {
	svc, clk, _ := newTestService(t)
	now := clk.Date(2024, 6, 9, 12, 0, 0)
	wednesday := clk.Date(2024, 6, 12, 0, 0, 0)

	inactive := slotAt(clk, "inactive", wednesday, domain.Morning, 7, 8)
	inactive.IsActive = false
	full := slotAt(clk, "full", wednesday, domain.Morning, 8, 9)
	full.TotalCapacity = 0

	grid := svc.Resolve([]domain.CapacitySlot{inactive, full}, svc.BuildWeek(now))

	ok, reason := svc.Eligibility(grid.Cell(3, domain.Morning, domain.NewHourBucket(7, 8)), now)
	assert.False(t, ok)
	assert.Equal(t, domain.ReasonInactive, reason)

	ok, reason = svc.Eligibility(grid.Cell(3, domain.Morning, domain.NewHourBucket(8, 9)), now)
	assert.False(t, ok)
	assert.Equal(t, domain.ReasonUnavailable, reason)
}

func Test_Service_Eligibility_mismatchIsUnavailable(t *testing.T) {
	svc, clk, _ := newTestService(t)
	now := clk.Date(2024, 6, 9, 12, 0, 0)
	slot := slotAt(clk, "wed", clk.Date(2024, 6, 12, 0, 0, 0), domain.Morning, 7, 8)

	// ячейка другого дня, в которую подложен чужой слот
	cell := domain.Cell{
		DayOfWeek: 4,
		Date:      clk.Date(2024, 6, 13, 0, 0, 0),
		InWeek:    true,
		TimeSlot:  domain.Morning,
		Bucket:    domain.NewHourBucket(7, 8),
		Slot:      &slot,
	}

	ok, reason := svc.Eligibility(cell, now)
	assert.False(t, ok)
	assert.Equal(t, domain.ReasonUnavailable, reason)
}
