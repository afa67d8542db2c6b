// Package mqttsrc — альтернативный транспорт: строки контроллера приходят через MQTT-брокер.
package mqttsrc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Spok95/smartcounter/internal/ingest"
)

const (
	connectTimeout = 10 * time.Second
	bufferSize     = 128
	qos            = 1
)

type Config struct {
	Broker   string
	Topic    string
	ClientID string
}

// Source реализует ingest.Source. Порядок строк сохраняется: paho доставляет
// сообщения одной горутиной (OrderMatters), буфер не переупорядочивает.
type Source struct {
	client mqtt.Client
	topic  string
	log    *slog.Logger
	lines  chan string
	done   chan struct{}
	once   sync.Once
}

var _ ingest.Source = (*Source)(nil)

func newSource(topic string, log *slog.Logger) *Source {
	return &Source{
		topic: topic,
		log:   log.With("component", "mqtt"),
		lines: make(chan string, bufferSize),
		done:  make(chan struct{}),
	}
}

func Dial(cfg Config, log *slog.Logger) (*Source, error) {
	if cfg.Broker == "" || cfg.Topic == "" {
		return nil, errors.New("mqttsrc: broker and topic are required")
	}
	s := newSource(cfg.Topic, log)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetOrderMatters(true).
		SetConnectTimeout(connectTimeout)
	// после переподключения подписку надо восстановить
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		tok := c.Subscribe(s.topic, qos, func(_ mqtt.Client, m mqtt.Message) {
			s.handle(m.Payload())
		})
		if tok.WaitTimeout(connectTimeout) && tok.Error() != nil {
			s.log.Error("subscribe failed", "topic", s.topic, "err", tok.Error())
		}
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		s.log.Warn("connection lost", "err", err)
	})

	s.client = mqtt.NewClient(opts)
	tok := s.client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("mqttsrc: connect to %s timed out", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqttsrc: connect to %s: %w", cfg.Broker, err)
	}
	s.log.Info("subscribed", "broker", cfg.Broker, "topic", cfg.Topic)
	return s, nil
}

// handle режет payload на строки: контроллер может прислать пачку через \n.
func (s *Source) handle(payload []byte) {
	for _, line := range strings.Split(strings.ReplaceAll(string(payload), "\r\n", "\n"), "\n") {
		select {
		case s.lines <- line:
		case <-s.done:
			return
		}
	}
}

func (s *Source) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
		return "", ingest.ErrSourceClosed
	case line := <-s.lines:
		return line, nil
	}
}

func (s *Source) Close() error {
	s.once.Do(func() {
		close(s.done)
		if s.client != nil {
			s.client.Unsubscribe(s.topic).WaitTimeout(time.Second)
			s.client.Disconnect(250)
		}
	})
	return nil
}
