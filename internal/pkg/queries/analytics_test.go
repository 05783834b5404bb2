package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyticsQueries_BucketOnCreationDate(t *testing.T) {
	// The dashboard reports booking activity inside the window, so every
	// appointment aggregate windows on when the booking was created, not
	// on when the visit happens.
	queries := []string{
		CountAppointmentsByStatusQuery,
		DailyTrendsQuery,
		CountAppointmentsByPriorityQuery,
	}
	for _, query := range queries {
		assert.Contains(t, query, "created_at::date >= $1")
		assert.NotContains(t, query, "appointment_date")
	}
	assert.Contains(t, TopDoctorsQuery, "a.created_at::date >= $1")
	assert.Contains(t, DailyTrendsQuery, "GROUP BY created_at::date")
}
