package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseTimeSlot(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeSlot
		wantErr bool
	}{
		{input: "Morning", want: Morning},
		{input: "afternoon", want: Afternoon},
		{input: " EVENING ", want: Evening},
		{input: "Night", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeSlot(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTimeSlot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_DefaultCatalog(t *testing.T) {
	c := DefaultCatalog

	assert.Equal(t, DefaultCatalogVersion, c.Version())
	assert.Equal(t, []TimeSlot{Morning, Afternoon, Evening}, c.TimeSlots())
	assert.Len(t, c.HourBuckets(Morning), 4)
	assert.Len(t, c.HourBuckets(Afternoon), 5)
	assert.Len(t, c.HourBuckets(Evening), 3)

	b, ok := c.Lookup(Morning, HourKey{Start: 9, End: 10})
	require.True(t, ok)
	assert.Equal(t, "9-10", b.Label)

	_, ok = c.Lookup(Morning, HourKey{Start: 13, End: 14})
	assert.False(t, ok)

	ts, ok := c.TimeSlotOf(HourKey{Start: 19, End: 20})
	require.True(t, ok)
	assert.Equal(t, Evening, ts)
}

func Test_Catalog_HourBucketsIsACopy(t *testing.T) {
	buckets := DefaultCatalog.HourBuckets(Morning)
	buckets[0].Label = "changed"

	assert.Equal(t, "7-8", DefaultCatalog.HourBuckets(Morning)[0].Label)
}

func Test_HourKey(t *testing.T) {
	assert.True(t, HourKey{Start: 9, End: 10}.IsValid())
	assert.False(t, HourKey{Start: 10, End: 10}.IsValid())
	assert.False(t, HourKey{Start: 23, End: 1}.IsValid())
	assert.Equal(t, "18-19", HourKey{Start: 18, End: 19}.String())
}
