package events

import (
	"encoding/json"
	"time"

	"github.com/mouakos/ecommerce-api/config"
	amqp "github.com/rabbitmq/amqp091-go"
)

type OrderEvent struct {
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	EventType   string    `json:"eventType"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Publisher fans order lifecycle events out to RabbitMQ.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     *config.Config
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	p := &Publisher{conn: conn, channel: ch, cfg: cfg}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *Publisher) setup() error {
	if err := p.channel.ExchangeDeclare(
		p.cfg.OrderExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := p.channel.QueueDeclare(
		p.cfg.OrderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return p.channel.QueueBind(
		p.cfg.OrderQueue,
		"order.*",
		p.cfg.OrderExchange,
		false,
		nil,
	)
}

func (p *Publisher) PublishOrderEvent(orderID uint, orderNumber string, eventType string) error {
	body, err := json.Marshal(OrderEvent{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		EventType:   eventType,
		OccurredAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	return p.channel.Publish(
		p.cfg.OrderExchange,
		eventType,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			ContentType:  "application/json",
			Body:         body,
		},
	)
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
