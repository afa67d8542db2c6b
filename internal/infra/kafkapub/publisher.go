// Package kafkapub публикует события оплаты в Kafka для внешних потребителей.
package kafkapub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

const (
	SchemaVersion = "v1"
	writeTimeout  = 10 * time.Second
)

type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event — то, что уходит в топик.
type Event struct {
	Schema     string           `json:"schema"`
	Settlement meter.Settlement `json:"settlement"`
}

type Publisher struct {
	writer messageWriter
	topic  string
}

func New(cfg Config) (*Publisher, error) {
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("kafkapub: topic must not be empty")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafkapub: at least one broker is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: false,
	}
	return newWithWriter(w, cfg.Topic), nil
}

func newWithWriter(w messageWriter, topic string) *Publisher {
	return &Publisher{writer: w, topic: topic}
}

func (p *Publisher) Name() string { return "kafka" }

// OnSettlement — ключ сообщения по карте, чтобы оплаты одной карты шли в одну партицию.
func (p *Publisher) OnSettlement(ctx context.Context, s meter.Settlement) error {
	value, err := json.Marshal(Event{Schema: SchemaVersion, Settlement: s})
	if err != nil {
		return fmt.Errorf("marshal settlement: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(s.CardID),
		Value: value,
		Time:  s.At,
		Headers: []kafka.Header{
			{Key: "schema", Value: []byte(SchemaVersion)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
