package tokenmanager

import (
	"fmt"
	"mediport-service/internal/app/config"
	"mediport-service/internal/pkg/exceptions"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenManager signs and verifies the short-lived HS256 tokens embedded in
// account activation links.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(cfg *config.InternalConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWT.Secret),
		ttl:    time.Duration(cfg.JWT.ActivationTokenExpTimeInHours) * time.Hour,
	}
}

func (m *TokenManager) CreateActivationToken(userID string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     userID,
		"purpose": "activation",
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return signed, nil
}

// ParseActivationToken returns the user ID the token was issued for.
func (m *TokenManager) ParseActivationToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", exceptions.ErrActivationTokenInvalid(err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", exceptions.ErrActivationTokenInvalid(nil)
	}
	if purpose, _ := claims["purpose"].(string); purpose != "activation" {
		return "", exceptions.ErrActivationTokenInvalid(nil)
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", exceptions.ErrActivationTokenInvalid(nil)
	}
	return userID, nil
}
