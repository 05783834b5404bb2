package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUpcomingAppointmentsQuery_StatusSet(t *testing.T) {
	// The upcoming view shows confirmed visits only; requests the
	// doctor has not acted on yet stay out of it.
	assert.Contains(t, FindUpcomingAppointmentsQuery, "a.status IN ('approved', 'scheduled')")
	assert.NotContains(t, FindUpcomingAppointmentsQuery, "'pending'")
}
