package hours_test

import (
	"testing"
	"time"

	"overcooked-storefront/cart-svc/internal/hours"

	"github.com/stretchr/testify/assert"
)

func TestSchedule_IsOpen(t *testing.T) {
	schedule := hours.DefaultSchedule(time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday before opening", time.Date(2025, 5, 5, 10, 59, 0, 0, time.UTC), false},
		{"monday at opening", time.Date(2025, 5, 5, 11, 0, 0, 0, time.UTC), true},
		{"monday last minute", time.Date(2025, 5, 5, 21, 59, 0, 0, time.UTC), true},
		{"monday at closing", time.Date(2025, 5, 5, 22, 0, 0, 0, time.UTC), false},
		{"saturday late", time.Date(2025, 5, 10, 22, 30, 0, 0, time.UTC), true},
		{"sunday evening", time.Date(2025, 5, 11, 21, 0, 0, 0, time.UTC), false},
		{"sunday morning", time.Date(2025, 5, 11, 10, 0, 0, 0, time.UTC), true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, schedule.IsOpen(testCase.at))
		})
	}
}

func TestSchedule_UsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	schedule := hours.DefaultSchedule(loc)

	// 13:30 UTC on a Monday is 10:30 in BRT.
	assert.False(t, schedule.IsOpen(time.Date(2025, 5, 5, 13, 30, 0, 0, time.UTC)))
	assert.Equal(t, hours.StatusOpen, schedule.Status(time.Date(2025, 5, 5, 14, 0, 0, 0, time.UTC)))
}

func TestSchedule_MissingDayIsClosed(t *testing.T) {
	schedule := hours.Schedule{Days: map[time.Weekday]hours.Window{}}
	assert.Equal(t, hours.StatusClosed, schedule.Status(time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)))
}

func TestSchedule_Timetable(t *testing.T) {
	table := hours.DefaultSchedule(time.UTC).Timetable()

	assert.Len(t, table, 7)
	assert.Equal(t, "11:00 - 22:00", table["Segunda-feira"])
	assert.Equal(t, "10:00 - 23:00", table["Sábado"])
	assert.Equal(t, "10:00 - 21:00", table["Domingo"])
}
