package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const decidedQueue = "reservation.decided"

// AMQPPublisher publica eventos de decisão no RabbitMQ. A publicação é
// best-effort: erros são logados e retornados, mas o chamador nunca deve
// abortar a requisição por causa deles.
type AMQPPublisher struct {
	url string
	log *zap.Logger
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &AMQPPublisher{url: url, log: log}
}

func (p *AMQPPublisher) PublishReservationDecided(
	ctx context.Context,
	ev ReservationDecidedEvent,
) error {

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Garante a fila (idempotente). Durable para sobreviver a restart do
	// broker.
	if _, err := ch.QueueDeclare(
		decidedQueue, // name
		true,         // durable
		false,        // autoDelete
		false,        // exclusive
		false,        // noWait
		nil,          // args
	); err != nil {
		p.log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",           // default exchange
		decidedQueue, // routing key = nome da fila
		false,        // mandatory
		false,        // immediate
		pub,
	); err != nil {
		p.log.Warn("rabbitmq: publish failed", zap.Error(err))
		return err
	}

	return nil
}

var _ Publisher = (*AMQPPublisher)(nil)
