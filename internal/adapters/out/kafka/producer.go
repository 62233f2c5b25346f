// Package kafka relays order events to a Kafka topic with segmentio/kafka-go.
// Messages are keyed by order id so every change of one order lands on the
// same partition and keeps its order.
package kafka

import (
	"context"
	"strings"
	"time"

	"posrelay/internal/adapters/out/eventbus"
	"posrelay/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const eventHeader = "event"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer implements eventbus.Sender.
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer creates a producer for a comma separated broker list.
func NewProducer(brokers string, topic string) (*Producer, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, errs.NewValueIsRequiredError("KAFKA_HOST")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC")
	}

	return newProducer(&kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		Async:                  false,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, topic), nil
}

func newProducer(writer messageWriter, topic string) *Producer {
	return &Producer{writer: writer, topic: topic}
}

func (p *Producer) Topic() string {
	return p.topic
}

func (p *Producer) Send(ctx context.Context, msg eventbus.Message) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   msg.Key,
		Value: msg.Body,
		Headers: []kafka.Header{
			{Key: eventHeader, Value: []byte(msg.Kind.String())},
		},
		Time: time.Now().UTC(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

func splitBrokers(brokers string) []string {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	return addrs
}
