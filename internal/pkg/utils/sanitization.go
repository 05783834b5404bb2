package utils

import (
	"mediport-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeRegisterPatientRequest(input *requests.RegisterPatientRequest) {
	input.Username = strings.TrimSpace(strings.ToLower(input.Username))
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Password = strings.TrimSpace(input.Password)
	input.Phone = strings.TrimSpace(input.Phone)
}

func SanitizeRegisterDoctorRequest(input *requests.RegisterDoctorRequest) {
	input.Username = strings.TrimSpace(strings.ToLower(input.Username))
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Password = strings.TrimSpace(input.Password)
	input.PasswordConfirm = strings.TrimSpace(input.PasswordConfirm)
	input.FullName = strings.TrimSpace(input.FullName)
	input.Specialization = strings.TrimSpace(input.Specialization)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Description = strings.TrimSpace(input.Description)
	input.Affiliation = strings.TrimSpace(input.Affiliation)
	input.LicenseNumber = strings.TrimSpace(input.LicenseNumber)
}

func SanitizeLoginRequest(input *requests.LoginRequest) {
	input.Username = strings.TrimSpace(strings.ToLower(input.Username))
	input.Password = strings.TrimSpace(input.Password)
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointmentRequest) {
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Reason = strings.TrimSpace(input.Reason)
	input.Priority = strings.TrimSpace(strings.ToLower(input.Priority))
}

func SanitizeCreateReviewRequest(input *requests.CreateReviewRequest) {
	input.Title = strings.TrimSpace(input.Title)
	input.Comment = strings.TrimSpace(input.Comment)
}
