package session

import (
	"context"
	"fmt"
	"mediport-service/internal/app/contracts"
	"mediport-service/internal/app/models"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	SessionTTL      time.Duration
}

func NewSessionService(redisRepository contracts.RedisRepository, sessionTTLInHours int) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		SessionTTL:      time.Duration(sessionTTLInHours) * time.Hour,
	}
}

// CreateSession stores the session in redis keyed by an opaque token and
// returns the token. The token doubles as the bearer credential.
func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	token := uuid.NewString()
	session.SessionID = token
	session.ExpiresAt = time.Now().Add(svc.SessionTTL)

	key := fmt.Sprintf(constvars.SessionRedisKeyFormat, token)
	err := svc.RedisRepository.Set(ctx, key, session, svc.SessionTTL)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (svc *sessionService) GetSession(ctx context.Context, token string) (string, error) {
	key := fmt.Sprintf(constvars.SessionRedisKeyFormat, token)
	sessionData, err := svc.RedisRepository.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return sessionData, nil
}

func (svc *sessionService) ParseSession(sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) DestroySession(ctx context.Context, token string) error {
	key := fmt.Sprintf(constvars.SessionRedisKeyFormat, token)
	return svc.RedisRepository.Delete(ctx, key)
}
