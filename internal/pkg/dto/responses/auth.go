package responses

import "time"

type Register struct {
	UserID string `json:"user_id"`
}

type Login struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
