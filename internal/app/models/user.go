package models

import "time"

type User struct {
	ID                 string
	Username           string
	Email              string
	Password           string
	Role               string
	Phone              string
	DateOfBirth        *time.Time
	Address            string
	ProfilePictureName string
	EmailNotifications bool
	SMSNotifications   bool
	EmailVerified      bool
	IsActive           bool
	TimeModel
}

func (u *User) IsPatient() bool {
	return u.Role == "patient"
}

func (u *User) IsDoctor() bool {
	return u.Role == "doctor"
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
