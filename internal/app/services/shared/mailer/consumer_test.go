package mailer

import (
	"context"
	"testing"

	"mediport-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type fakeAcknowledger struct {
	acks     int
	requeues []bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acks++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.requeues = append(f.requeues, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return nil
}

type MockDeadLetterPublisher struct {
	mock.Mock
}

func (m *MockDeadLetterPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type MockMailerService struct {
	mock.Mock
}

func (m *MockMailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMailerService) DeliverEmail(request *requests.EmailPayload) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockMailerService) ValidateEmail(email string) bool {
	args := m.Called(email)
	return args.Bool(0)
}

func newTestConsumer(pub *MockDeadLetterPublisher, svc *MockMailerService) *Consumer {
	return &Consumer{
		pub:   pub,
		svc:   svc,
		log:   zap.NewNop(),
		queue: "mailer_queue",
		dlq:   "mailer_queue_dlq",
	}
}

func emailDelivery(ack amqp.Acknowledger, redelivered bool) amqp.Delivery {
	body, _ := json.Marshal(&requests.EmailPayload{To: "jane@example.com", Subject: "hello"})
	return amqp.Delivery{Acknowledger: ack, Body: body, Redelivered: redelivered}
}

func TestConsumerHandle_FirstFailureRequeues(t *testing.T) {
	pub := new(MockDeadLetterPublisher)
	svc := new(MockMailerService)
	consumer := newTestConsumer(pub, svc)

	svc.On("DeliverEmail", mock.Anything).Return(assert.AnError)

	ack := &fakeAcknowledger{}
	consumer.handle(emailDelivery(ack, false))

	assert.Equal(t, []bool{true}, ack.requeues, "a first delivery failure should requeue")
	assert.Zero(t, ack.acks)
	pub.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConsumerHandle_SecondFailureGoesToDeadLetterQueue(t *testing.T) {
	pub := new(MockDeadLetterPublisher)
	svc := new(MockMailerService)
	consumer := newTestConsumer(pub, svc)

	svc.On("DeliverEmail", mock.Anything).Return(assert.AnError)
	pub.On("PublishWithContext", mock.Anything, "", "mailer_queue_dlq", false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		return msg.DeliveryMode == amqp.Persistent && len(msg.Body) > 0
	})).Return(nil)

	ack := &fakeAcknowledger{}
	consumer.handle(emailDelivery(ack, true))

	assert.Equal(t, 1, ack.acks, "a redelivered failure should be acked off the main queue")
	assert.Empty(t, ack.requeues)
	pub.AssertExpectations(t)
}

func TestConsumerHandle_MalformedMessageGoesToDeadLetterQueue(t *testing.T) {
	pub := new(MockDeadLetterPublisher)
	svc := new(MockMailerService)
	consumer := newTestConsumer(pub, svc)

	pub.On("PublishWithContext", mock.Anything, "", "mailer_queue_dlq", false, false, mock.Anything).Return(nil)

	ack := &fakeAcknowledger{}
	consumer.handle(amqp.Delivery{Acknowledger: ack, Body: []byte("not json")})

	assert.Equal(t, 1, ack.acks)
	svc.AssertNotCalled(t, "DeliverEmail", mock.Anything)
	pub.AssertExpectations(t)
}

func TestConsumerHandle_SuccessAcks(t *testing.T) {
	pub := new(MockDeadLetterPublisher)
	svc := new(MockMailerService)
	consumer := newTestConsumer(pub, svc)

	svc.On("DeliverEmail", mock.MatchedBy(func(payload *requests.EmailPayload) bool {
		return payload.To == "jane@example.com"
	})).Return(nil)

	ack := &fakeAcknowledger{}
	consumer.handle(emailDelivery(ack, false))

	assert.Equal(t, 1, ack.acks)
	assert.Empty(t, ack.requeues)
	pub.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
