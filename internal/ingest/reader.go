package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/infra/metrics"
)

// SettlementSink получает срез счёта после оплаты. Не должен блокировать.
type SettlementSink func(meter.Settlement)

// Reader — единственный писатель леджера: транспорт -> парсер -> Apply.
type Reader struct {
	src    Source
	parser meter.Parser
	ledger *meter.Ledger
	sink   SettlementSink
	log    *slog.Logger
}

func NewReader(src Source, parser meter.Parser, ledger *meter.Ledger, sink SettlementSink, log *slog.Logger) *Reader {
	if sink == nil {
		sink = func(meter.Settlement) {}
	}
	return &Reader{
		src:    src,
		parser: parser,
		ledger: ledger,
		sink:   sink,
		log:    log.With("component", "reader"),
	}
}

// Run читает до отмены ctx или конца транспорта. Ошибки разбора не прерывают цикл.
func (r *Reader) Run(ctx context.Context) error {
	r.log.Info("reader started")
	defer func() { _ = r.src.Close() }()

	for {
		line, err := r.src.Next(ctx)
		if errors.Is(err, ErrLineTooLong) {
			metrics.ObserveLine(metrics.LineMalformed)
			r.log.Warn("oversized line skipped", "limit", MaxLineLength)
			continue
		}
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				r.log.Info("reader stopped")
				return nil
			case errors.Is(err, io.EOF):
				r.log.Info("transport closed")
				return nil
			}
			return err
		}
		r.HandleLine(line)
	}
}

// HandleLine обрабатывает одну строку синхронно (onLine).
func (r *Reader) HandleLine(line string) {
	reading, err := r.parser.Parse(line)
	if err != nil {
		if errors.Is(err, meter.ErrEmpty) {
			metrics.ObserveLine(metrics.LineEmpty)
			r.log.Debug("empty line skipped")
			return
		}
		metrics.ObserveLine(metrics.LineMalformed)
		r.log.Warn("malformed line skipped", "line", line, "err", err)
		return
	}
	metrics.ObserveLine(metrics.LineOK)

	s, settled := r.ledger.Apply(reading)
	if settled {
		metrics.ObserveSettlement(s)
		r.log.Info("bill settled",
			"card_id", s.CardID,
			"total", s.Total,
			"light", s.Cost.Light,
			"gas", s.Cost.Gas,
			"water", s.Cost.Water,
		)
		r.sink(s)
	}
	metrics.SetAccrued(r.ledger.Snapshot().Cost)
}
