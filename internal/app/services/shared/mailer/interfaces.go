package mailer

import (
	"context"
	"mediport-service/internal/pkg/dto/requests"
)

type MailerService interface {
	// SendEmail enqueues the payload on the mail queue for async delivery.
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
	// DeliverEmail pushes the payload straight through SMTP.
	DeliverEmail(request *requests.EmailPayload) error
	ValidateEmail(email string) bool
}
