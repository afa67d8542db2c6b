// Package hooks доставляет события оплаты внешним получателям
// (журнал, Kafka, Telegram) вне цикла чтения.
package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/infra/metrics"
)

const (
	DefaultQueueSize = 64
	drainTimeout     = 5 * time.Second
)

type Hook interface {
	Name() string
	OnSettlement(ctx context.Context, s meter.Settlement) error
}

type funcHook struct {
	name string
	fn   func(context.Context, meter.Settlement) error
}

func (h funcHook) Name() string { return h.name }
func (h funcHook) OnSettlement(ctx context.Context, s meter.Settlement) error {
	return h.fn(ctx, s)
}

// Func оборачивает функцию в Hook.
func Func(name string, fn func(context.Context, meter.Settlement) error) Hook {
	return funcHook{name: name, fn: fn}
}

type Dispatcher struct {
	log   *slog.Logger
	hooks []Hook
	queue chan meter.Settlement
}

func NewDispatcher(log *slog.Logger, queueSize int, hooks ...Hook) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		log:   log.With("component", "hooks"),
		hooks: hooks,
		queue: make(chan meter.Settlement, queueSize),
	}
}

// Enqueue не блокирует: при полной очереди событие отбрасывается.
func (d *Dispatcher) Enqueue(s meter.Settlement) bool {
	select {
	case d.queue <- s:
		return true
	default:
		for _, h := range d.hooks {
			metrics.ObserveHook(h.Name(), metrics.HookDropped)
		}
		d.log.Warn("settlement dropped, hook queue full", "card_id", s.CardID, "total", s.Total)
		return false
	}
}

// Run доставляет события до отмены ctx, затем дочищает очередь.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return nil
		case s := <-d.queue:
			d.deliver(ctx, s)
		}
	}
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case s := <-d.queue:
			d.deliver(ctx, s)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, s meter.Settlement) {
	for _, h := range d.hooks {
		if err := d.call(ctx, h, s); err != nil {
			metrics.ObserveHook(h.Name(), metrics.HookError)
			d.log.Error("settlement hook failed", "hook", h.Name(), "card_id", s.CardID, "err", err)
			continue
		}
		metrics.ObserveHook(h.Name(), metrics.HookOK)
	}
}

func (d *Dispatcher) call(ctx context.Context, h Hook, s meter.Settlement) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook %s panicked: %v", h.Name(), r)
		}
	}()
	return h.OnSettlement(ctx, s)
}
