// Package rabbitmq relays order events to a RabbitMQ fanout exchange.
package rabbitmq

import (
	"context"
	"strings"
	"time"

	"posrelay/internal/adapters/out/eventbus"
	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "orders_fanout"

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher implements eventbus.Sender over one AMQP channel.
type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// Dial connects, opens a channel and declares a durable fanout exchange.
func Dial(url, exchange string) (*Publisher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errs.NewValueIsRequiredError("AMQP_URL")
	}
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p := newPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange}
}

func (p *Publisher) Exchange() string {
	return p.exchange
}

// Send publishes a persistent JSON message. The routing key is the event
// name; fanout exchanges ignore it but bindings on other exchange types can use it.
func (p *Publisher) Send(ctx context.Context, msg eventbus.Message) error {
	return p.ch.PublishWithContext(ctx, p.exchange, msg.Kind.String(), false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		Type:          msg.Kind.String(),
		MessageId:     kernel.NewUUID().String(),
		CorrelationId: string(msg.Key),
		Timestamp:     time.Now().UTC(),
		Body:          msg.Body,
	})
}

func (p *Publisher) Close() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
