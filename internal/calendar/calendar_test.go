package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleDatesLengthAndOrder(t *testing.T) {
	refs := []time.Time{
		time.Date(2024, time.February, 17, 13, 45, 0, 0, time.UTC),
		time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 30, 23, 59, 0, 0, time.UTC),
		time.Date(2024, time.July, 4, 8, 0, 0, 0, time.Local),
		time.Date(2024, time.December, 31, 12, 0, 0, 0, time.UTC),
	}
	for _, ref := range refs {
		dates := VisibleDates(ref)
		want := DaysIn(ref.Year(), ref.Month(), ref.Location()) + NextMonthDays
		require.Len(t, dates, want, ref.String())

		assert.Equal(t, 1, dates[0].Day())
		assert.Equal(t, ref.Month(), dates[0].Month())
		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]), "not ascending at %d for %s", i, ref)
		}
	}
}

func TestVisibleDatesDecemberRollsOver(t *testing.T) {
	dates := VisibleDates(time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC))
	require.Len(t, dates, 31+15)

	last := dates[len(dates)-1]
	assert.Equal(t, 2025, last.Year())
	assert.Equal(t, time.January, last.Month())
	assert.Equal(t, 15, last.Day())
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), dates[30])
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February, time.UTC))
	assert.Equal(t, 28, DaysIn(2023, time.February, time.UTC))
	assert.Equal(t, 31, DaysIn(2024, time.December, time.UTC))
	assert.Equal(t, 30, DaysIn(2024, time.November, time.UTC))
}

func TestDayBoundaries(t *testing.T) {
	ref := time.Date(2024, 3, 10, 15, 4, 5, 6, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), StartOfDay(ref))
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999000000, time.UTC), EndOfDay(ref))
}

func TestSameDay(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC), day))
	assert.True(t, SameDay(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), day))
	assert.False(t, SameDay(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), day))
	assert.False(t, SameDay(time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC), day))

	// compared in the selected day's location
	east := time.FixedZone("east", 9*60*60)
	assert.True(t, SameDay(time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC), time.Date(2024, 3, 10, 0, 0, 0, 0, east)))
}

func TestRangeCachesPerMonth(t *testing.T) {
	var r Range
	first := r.Dates(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	cached := r.dates

	again := r.Dates(time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, first, again)
	assert.Same(t, &cached[0], &r.dates[0])

	next := r.Dates(time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC))
	assert.Len(t, next, 30+15)
	assert.Equal(t, time.April, next[0].Month())
}

func TestIndex(t *testing.T) {
	dates := VisibleDates(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 9, Index(dates, time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, Index(dates, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, Index(dates, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)))
}
