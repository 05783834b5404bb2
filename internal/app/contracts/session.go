package contracts

import (
	"context"
	"mediport-service/internal/app/models"
)

type SessionService interface {
	CreateSession(ctx context.Context, session *models.Session) (string, error)
	GetSession(ctx context.Context, token string) (string, error)
	ParseSession(sessionData string) (*models.Session, error)
	DestroySession(ctx context.Context, token string) error
}
