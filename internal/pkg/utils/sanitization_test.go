package utils

import (
	"mediport-service/internal/pkg/dto/requests"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRegisterPatientRequest(t *testing.T) {
	t.Run("Username And Email Lowercased", func(t *testing.T) {
		request := &requests.RegisterPatientRequest{
			Username: "  JaneDoe  ",
			Email:    "  JANE@EXAMPLE.COM  ",
			Password: " secretpass ",
			Phone:    " 555-0100 ",
		}

		SanitizeRegisterPatientRequest(request)

		assert.Equal(t, "janedoe", request.Username, "username should be lowercase and trimmed")
		assert.Equal(t, "jane@example.com", request.Email, "email should be lowercase and trimmed")
		assert.Equal(t, "secretpass", request.Password)
		assert.Equal(t, "555-0100", request.Phone)
	})

	t.Run("Already Clean Input Untouched", func(t *testing.T) {
		request := &requests.RegisterPatientRequest{
			Username: "janedoe",
			Email:    "jane@example.com",
			Password: "secretpass",
		}

		SanitizeRegisterPatientRequest(request)

		assert.Equal(t, "janedoe", request.Username)
		assert.Equal(t, "jane@example.com", request.Email)
	})
}

func TestSanitizeLoginRequest(t *testing.T) {
	request := &requests.LoginRequest{
		Username: "  JaneDoe ",
		Password: " secretpass ",
	}

	SanitizeLoginRequest(request)

	assert.Equal(t, "janedoe", request.Username)
	assert.Equal(t, "secretpass", request.Password)
}

func TestSanitizeCreateAppointmentRequest(t *testing.T) {
	t.Run("Priority Lowercased", func(t *testing.T) {
		request := &requests.CreateAppointmentRequest{
			DoctorID: " 6f1e0b55-8a5a-4f40-9c1e-0a2b3c4d5e6f ",
			Date:     " 2026-09-10 ",
			Time:     " 09:00 ",
			Reason:   "  annual checkup  ",
			Priority: " HIGH ",
		}

		SanitizeCreateAppointmentRequest(request)

		assert.Equal(t, "6f1e0b55-8a5a-4f40-9c1e-0a2b3c4d5e6f", request.DoctorID)
		assert.Equal(t, "2026-09-10", request.Date)
		assert.Equal(t, "09:00", request.Time)
		assert.Equal(t, "annual checkup", request.Reason)
		assert.Equal(t, "high", request.Priority, "priority should be lowercase and trimmed")
	})

	t.Run("Empty Priority Stays Empty", func(t *testing.T) {
		request := &requests.CreateAppointmentRequest{
			DoctorID: "6f1e0b55-8a5a-4f40-9c1e-0a2b3c4d5e6f",
			Date:     "2026-09-10",
			Time:     "09:00",
		}

		SanitizeCreateAppointmentRequest(request)

		assert.Equal(t, "", request.Priority)
	})
}

func TestSanitizeCreateReviewRequest(t *testing.T) {
	request := &requests.CreateReviewRequest{
		Title:   "  Great visit  ",
		Comment: "  Very thorough and kind.  ",
	}

	SanitizeCreateReviewRequest(request)

	assert.Equal(t, "Great visit", request.Title)
	assert.Equal(t, "Very thorough and kind.", request.Comment)
}
