package synth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisevaishu/ordersynth/pkg/catalog"
)

func TestDateRange(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		first string
		last  string
	}{
		{"mid year", time.Date(2026, time.July, 10, 23, 59, 0, 0, time.UTC), "2025-07-10", "2026-07-09"},
		{"first of month", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), "2025-03-01", "2026-02-28"},
		{"leap year", time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC), "2023-03-02", "2024-02-29"},
		{"new year", time.Date(2027, time.January, 1, 8, 0, 0, 0, time.UTC), "2026-01-01", "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DateRange(tt.now)
			assert.Equal(t, tt.first, d.First.Format(DateLayout))
			assert.Equal(t, tt.last, d.Last.Format(DateLayout))
			assert.Equal(t, tt.last, d.Day(0))
			assert.Equal(t, tt.first, d.Day(MaxDaysAgo-MinDaysAgo))
		})
	}
}

func TestDateRangeUsesLocalCalendarDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// Already the 2nd in Tokyo while still the 1st in UTC.
	now := time.Date(2026, time.May, 2, 3, 0, 0, 0, tokyo)

	d := DateRange(now)
	assert.Equal(t, "2026-05-01", d.Last.Format(DateLayout))
}

func TestDatesContains(t *testing.T) {
	d := DateRange(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, d.Contains("2025-03-15"))
	assert.True(t, d.Contains("2026-03-14"))
	assert.True(t, d.Contains("2025-11-30"))
	assert.False(t, d.Contains("2025-03-14"))
	assert.False(t, d.Contains("2026-03-15"))
	assert.False(t, d.Contains("15/03/2026"))
}

func TestSynthesizerDatesReachBothEnds(t *testing.T) {
	s := seeded(t, 99)
	window := DateRange(fixedNow)
	first := window.First.Format(DateLayout)
	last := window.Last.Format(DateLayout)

	seen := map[string]bool{}
	for i := 0; i < 20000; i++ {
		o, err := s.Next()
		require.NoError(t, err)
		seen[o.OrderDate] = true
	}

	assert.True(t, seen[first], "oldest date %s never sampled", first)
	assert.True(t, seen[last], "newest date %s never sampled", last)
	assert.Len(t, seen, MaxDaysAgo-MinDaysAgo+1)
}

func TestSynthesizerSeedDeterminism(t *testing.T) {
	a := seeded(t, 5)
	b := seeded(t, 5)

	for i := 0; i < 50; i++ {
		oa, err := a.Next()
		require.NoError(t, err)
		ob, err := b.Next()
		require.NoError(t, err)
		assert.Equal(t, oa.Fields(nil), ob.Fields(nil))
	}
}

func TestSynthesizerRejectsInvalidCatalog(t *testing.T) {
	_, err := NewSynthesizer(WithCatalog(&catalog.Catalog{}))
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestOrderFields(t *testing.T) {
	s := seeded(t, 11)
	o, err := s.Next()
	require.NoError(t, err)

	buf := make([]string, 0, len(Header))
	fields := o.Fields(buf)
	require.Len(t, fields, len(Header))
	assert.Equal(t, o.OrderID, fields[0])
	assert.Equal(t, o.Country, fields[7])
	assert.Equal(t, o.City, fields[8])
	assert.Regexp(t, moneyRe, fields[5])
	assert.Regexp(t, moneyRe, fields[6])
}
