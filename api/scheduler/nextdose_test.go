package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDose(t *testing.T) {
	// fixed reference instant: 2025-05-20 09:00:00 local
	now := time.Date(2025, 5, 20, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name         string
		timings      []string
		now          time.Time
		expectNil    bool
		expectedDay  int
		expectedTime string
	}{
		{
			name:         "picks first future timing today",
			timings:      []string{"08:00", "20:00"},
			now:          now,
			expectedDay:  20,
			expectedTime: "20:00",
		},
		{
			name:         "all timings passed wraps earliest to tomorrow",
			timings:      []string{"06:00", "08:00"},
			now:          now,
			expectedDay:  21,
			expectedTime: "06:00",
		},
		{
			name:         "unsorted timings are ordered before selection",
			timings:      []string{"22:00", "10:00"},
			now:          now,
			expectedDay:  20,
			expectedTime: "10:00",
		},
		{
			name:         "single timing wraps to next day",
			timings:      []string{"07:30"},
			now:          now,
			expectedDay:  21,
			expectedTime: "07:30",
		},
		{
			name:         "timing at the current instant is not future",
			timings:      []string{"09:00", "21:00"},
			now:          now,
			expectedDay:  20,
			expectedTime: "21:00",
		},
		{
			name:      "empty timings yield no dose",
			timings:   []string{},
			now:       now,
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, nextTime, err := NextDose(tt.timings, tt.now)
			assert.NoError(t, err)

			if tt.expectNil {
				assert.Nil(t, next)
				assert.Empty(t, nextTime)
				return
			}

			assert.NotNil(t, next)
			assert.Equal(t, tt.expectedDay, next.Day())
			assert.Equal(t, tt.expectedTime, nextTime)
			assert.Equal(t, tt.expectedTime, FormatDoseTime(*next))
		})
	}
}

func TestNextDoseDeterministic(t *testing.T) {
	now := time.Date(2025, 5, 20, 9, 0, 0, 0, time.Local)
	timings := []string{"08:00", "14:00", "20:00"}

	first, firstTime, err := NextDose(timings, now)
	assert.NoError(t, err)
	second, secondTime, err := NextDose(timings, now)
	assert.NoError(t, err)

	assert.True(t, first.Equal(*second))
	assert.Equal(t, firstTime, secondTime)
}

func TestNextDoseInvalidTiming(t *testing.T) {
	now := time.Date(2025, 5, 20, 9, 0, 0, 0, time.Local)

	next, nextTime, err := NextDose([]string{"08:00", "25:99"}, now)
	assert.Error(t, err)
	assert.Nil(t, next)
	assert.Empty(t, nextTime)
}

func TestValidateTimings(t *testing.T) {
	assert.NoError(t, ValidateTimings(nil))
	assert.NoError(t, ValidateTimings([]string{"00:00", "23:59"}))
	assert.Error(t, ValidateTimings([]string{"8am"}))
	assert.Error(t, ValidateTimings([]string{"08:00", "24:00"}))
}

func TestFormatDoseTime(t *testing.T) {
	assert.Equal(t, "06:05", FormatDoseTime(time.Date(2025, 5, 20, 6, 5, 0, 0, time.Local)))
	assert.Equal(t, "23:59", FormatDoseTime(time.Date(2025, 5, 20, 23, 59, 30, 0, time.Local)))
}
