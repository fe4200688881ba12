package events

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "psychometrics.events"

// Publisher sends events to a durable topic exchange, using the event type as
// routing key. With an empty URI it is disabled and Emit is a no-op.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	enabled  bool
}

func NewPublisher(uri, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if uri == "" {
		log.Println("events: AMQP URI is empty, publishing disabled")
		return &Publisher{exchange: exchange}, nil
	}

	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	log.Printf("events: publishing to exchange %s", exchange)
	return &Publisher{conn: conn, channel: ch, exchange: exchange, enabled: true}, nil
}

func (p *Publisher) Enabled() bool { return p.enabled }

func (p *Publisher) Emit(ctx context.Context, e Event) error {
	if !p.enabled {
		return nil
	}
	err := p.channel.PublishWithContext(ctx, p.exchange, e.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID,
		Timestamp:    time.Unix(e.CreatedAt, 0),
		Type:         e.Type,
		Body:         e.Data,
		Headers:      amqp.Table{"key": e.Key},
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	return p.conn.Close()
}
