package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesOfDay(t *testing.T) {
	t.Run("Valid Clock", func(t *testing.T) {
		minutes, err := MinutesOfDay("09:30")

		assert.NoError(t, err)
		assert.Equal(t, 570, minutes)
	})

	t.Run("Midnight", func(t *testing.T) {
		minutes, err := MinutesOfDay("00:00")

		assert.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("Invalid Clock", func(t *testing.T) {
		_, err := MinutesOfDay("9h30")

		assert.Error(t, err)
	})
}

func TestClockFromMinutes(t *testing.T) {
	assert.Equal(t, "09:30", ClockFromMinutes(570))
	assert.Equal(t, "00:05", ClockFromMinutes(5))
	assert.Equal(t, "23:59", ClockFromMinutes(1439))
}

func TestGenerateSlotTimes(t *testing.T) {
	t.Run("Even Window", func(t *testing.T) {
		slots, err := GenerateSlotTimes("09:00", "11:00", 30)

		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
	})

	t.Run("Last Slot Must Fit", func(t *testing.T) {
		slots, err := GenerateSlotTimes("09:00", "10:45", 30)

		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slots, "a slot ending past the window should not be emitted")
	})

	t.Run("Zero Duration Falls Back To Thirty", func(t *testing.T) {
		slots, err := GenerateSlotTimes("09:00", "10:00", 0)

		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30"}, slots)
	})

	t.Run("Empty Window", func(t *testing.T) {
		slots, err := GenerateSlotTimes("09:00", "09:00", 30)

		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Invalid Start", func(t *testing.T) {
		_, err := GenerateSlotTimes("nine", "10:00", 30)

		assert.Error(t, err)
	})
}

func TestCombineDateAndClock(t *testing.T) {
	t.Run("Valid Combination", func(t *testing.T) {
		date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

		combined, err := CombineDateAndClock(date, "14:30", time.UTC)

		assert.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 10, 14, 30, 0, 0, time.UTC), combined)
	})

	t.Run("Invalid Clock", func(t *testing.T) {
		date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)

		_, err := CombineDateAndClock(date, "25:61", time.UTC)

		assert.Error(t, err)
	})
}
