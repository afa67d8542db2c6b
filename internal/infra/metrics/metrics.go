// Package metrics — счётчики Prometheus, отдаются через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

const (
	LineOK        = "ok"
	LineEmpty     = "empty"
	LineMalformed = "malformed"

	HookOK      = "ok"
	HookError   = "error"
	HookDropped = "dropped"
)

var (
	linesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "smartcounter_lines_total",
		Help: "Lines received from the transport by parse result.",
	}, []string{"result"})

	settlementsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "smartcounter_settlements_total",
		Help: "Bills settled by RFID tag or PAYMENT line.",
	})

	settledAmount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "smartcounter_settled_amount_total",
		Help: "Sum of settled bill totals.",
	})

	accruedCost = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "smartcounter_accrued_cost",
		Help: "Open bill per resource since the last payment.",
	}, []string{"resource"})

	hookEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "smartcounter_hook_events_total",
		Help: "Settlement hook deliveries by hook and result.",
	}, []string{"hook", "result"})
)

func init() {
	prometheus.MustRegister(linesTotal, settlementsTotal, settledAmount, accruedCost, hookEvents)
}

func ObserveLine(result string) {
	linesTotal.WithLabelValues(result).Inc()
}

func ObserveSettlement(s meter.Settlement) {
	settlementsTotal.Inc()
	// счётчик не принимает отрицательных приращений
	if s.Total > 0 {
		settledAmount.Add(s.Total)
	}
}

func SetAccrued(c meter.Amounts) {
	for _, res := range meter.Resources {
		accruedCost.WithLabelValues(string(res)).Set(c.Get(res))
	}
}

func ObserveHook(hook, result string) {
	hookEvents.WithLabelValues(hook, result).Inc()
}
