package mailer

import (
	"context"
	"mediport-service/internal/app/drivers/mailer"
	"mediport-service/internal/pkg/constvars"
	"mediport-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// deadLetterPublisher is the slice of the amqp channel the consumer needs
// to park messages on the dead-letter queue.
type deadLetterPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Consumer drains the mail queue and pushes each payload through SMTP.
// Malformed messages go straight to the dead-letter queue; delivery
// failures are requeued once by the broker and parked on the dead-letter
// queue after that, so a broken mailbox cannot wedge the queue.
type Consumer struct {
	ch     *amqp.Channel
	pub    deadLetterPublisher
	client *mailer.SMTPClient
	svc    MailerService
	log    *zap.Logger
	queue  string
	dlq    string
}

func NewConsumer(conn *amqp.Connection, client *mailer.SMTPClient, svc MailerService, log *zap.Logger, queue string, prefetch int) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	dlq := queue + "_dlq"
	_, err = ch.QueueDeclare(dlq, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	return &Consumer{
		ch:     ch,
		pub:    ch,
		client: client,
		svc:    svc,
		log:    log,
		queue:  queue,
		dlq:    dlq,
	}, nil
}

// Run blocks consuming deliveries until ctx is cancelled or the channel
// closes.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.log.Info("mailer.Consumer started", zap.String(constvars.LoggingQueueKey, c.queue))

	for {
		select {
		case <-ctx.Done():
			c.log.Info("mailer.Consumer stopping", zap.String(constvars.LoggingQueueKey, c.queue))
			return c.ch.Close()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			c.handle(d)
		}
	}
}

func (c *Consumer) handle(d amqp.Delivery) {
	var payload requests.EmailPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		c.log.Error("mailer.Consumer dead-lettering malformed message",
			zap.String(constvars.LoggingQueueKey, c.queue),
			zap.Error(err),
		)
		_ = d.Ack(false)
		c.deadLetter(d.Body)
		return
	}

	if err := c.svc.DeliverEmail(&payload); err != nil {
		c.log.Error("mailer.Consumer failed to deliver email",
			zap.String(constvars.LoggingQueueKey, c.queue),
			zap.String(constvars.LoggingEmailKey, payload.To),
			zap.Error(err),
		)
		if !d.Redelivered {
			_ = d.Nack(false, true)
			return
		}
		_ = d.Ack(false)
		c.deadLetter(d.Body)
		return
	}

	c.log.Info("mailer.Consumer delivered email",
		zap.String(constvars.LoggingQueueKey, c.queue),
		zap.String(constvars.LoggingEmailKey, payload.To),
	)
	_ = d.Ack(false)
}

func (c *Consumer) deadLetter(body []byte) {
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := c.pub.PublishWithContext(context.Background(), "", c.dlq, false, false, msg); err != nil {
		c.log.Error("mailer.Consumer failed to dead-letter message",
			zap.String(constvars.LoggingQueueKey, c.dlq),
			zap.Error(err),
		)
	}
}
