package contracts

import (
	"context"
	"mediport-service/internal/pkg/dto/requests"
	"mediport-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatientRequest) (*responses.Register, error)
	RegisterDoctor(ctx context.Context, request *requests.RegisterDoctorRequest) (*responses.Register, error)
	ActivateAccount(ctx context.Context, token string) error
	Login(ctx context.Context, request *requests.LoginRequest) (*responses.Login, error)
	Logout(ctx context.Context, sessionData string) error
}
