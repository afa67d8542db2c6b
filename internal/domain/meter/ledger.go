package meter

import (
	"sync"
	"time"
)

// Ledger — открытый счёт с последней оплаты. Пишет в него только Apply,
// остальные читают копию через Snapshot.
type Ledger struct {
	mu     sync.RWMutex
	tariff Tariff
	now    func() time.Time

	raw         RawValues
	cost        Amounts
	usage       Amounts
	lastCard    string
	lastPayment *time.Time
}

type Option func(*Ledger)

// WithClock подменяет источник времени оплаты (тесты).
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(t Tariff, opts ...Option) *Ledger {
	if t == nil {
		t = DefaultTariff()
	}
	l := &Ledger{tariff: t, now: time.Now, lastCard: NoCard}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Apply применяет одну строку: запоминает сырые значения, начисляет по открытым
// гейтам по ставке текущей ступени и, если приложена карта, обнуляет счёт.
// Начисление всегда идёт до обнуления.
func (l *Ledger) Apply(r Reading) (Settlement, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lastCard = r.CardID
	if r.Kind == KindSample {
		l.raw = RawValues{Light: r.Light, Gas: r.Gas, Water: r.Water}

		for _, res := range Resources {
			sch, ok := l.tariff[res]
			if !ok {
				continue
			}
			raw := r.Value(res)
			if !sch.Gate.Open(raw) {
				continue
			}
			unit := Unit(raw)
			rate := sch.RateFor(l.cost.Get(res))
			l.cost.add(res, unit*rate)
			l.usage.add(res, unit)
		}
	}

	if !r.HasCard() {
		return Settlement{}, false
	}

	at := l.now()
	s := Settlement{
		CardID: r.CardID,
		Cost:   l.cost,
		Usage:  l.usage,
		Total:  l.cost.Total(),
		At:     at,
	}
	l.cost = Amounts{}
	l.usage = Amounts{}
	l.lastPayment = &at
	return s, true
}

func (l *Ledger) Snapshot() View {
	l.mu.RLock()
	defer l.mu.RUnlock()

	v := View{
		Raw:        l.raw,
		Cost:       l.cost,
		Usage:      l.usage,
		Total:      l.cost.Total(),
		LastCardID: l.lastCard,
	}
	if l.lastPayment != nil {
		at := *l.lastPayment
		v.LastPayment = &at
	}
	return v
}
