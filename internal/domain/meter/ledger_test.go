package meter

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLedger_WorkedExample(t *testing.T) {
	l := NewLedger(DefaultTariff())

	r, err := Parse("250;400;500;NONE")
	require.NoError(t, err)
	_, settled := l.Apply(r)
	assert.False(t, settled)

	v := l.Snapshot()
	assert.InDelta(t, 250.0/1023*0.084, v.Cost.Light, eps)
	assert.InDelta(t, 400.0/1023*0.125, v.Cost.Gas, eps)
	assert.InDelta(t, 500.0/1023*1.0, v.Cost.Water, eps)
	assert.InDelta(t, 0.0205, v.Cost.Light, 1e-4)
	assert.InDelta(t, 0.0489, v.Cost.Gas, 1e-4)
	assert.InDelta(t, 0.4888, v.Cost.Water, 1e-4)
	assert.InDelta(t, 0.558, v.Total, 1e-3)
	assert.Equal(t, RawValues{Light: 250, Gas: 400, Water: 500}, v.Raw)
	assert.Equal(t, NoCard, v.LastCardID)
	assert.Nil(t, v.LastPayment)
}

func TestLedger_ClosedGatesDoNotAccrue(t *testing.T) {
	l := NewLedger(DefaultTariff())

	// свет: гейт инверсный, 300 и выше — закрыт; газ/вода: до порога включительно — закрыт
	for _, r := range []Reading{
		{Light: 300, Gas: 350, Water: 400, CardID: NoCard},
		{Light: 1023, Gas: 0, Water: 0, CardID: NoCard},
		{Light: 301, Gas: 349, Water: 399, CardID: NoCard},
	} {
		_, settled := l.Apply(r)
		require.False(t, settled)
		v := l.Snapshot()
		assert.Equal(t, Amounts{}, v.Cost)
		assert.Equal(t, Amounts{}, v.Usage)
		assert.Equal(t, RawValues{Light: r.Light, Gas: r.Gas, Water: r.Water}, v.Raw)
	}
}

func TestLedger_GatesAreIndependent(t *testing.T) {
	l := NewLedger(DefaultTariff())
	l.Apply(Reading{Light: 1000, Gas: 1000, Water: 0, CardID: NoCard})

	v := l.Snapshot()
	assert.Zero(t, v.Cost.Light)
	assert.InDelta(t, 1000.0/1023*0.125, v.Cost.Gas, eps)
	assert.Zero(t, v.Cost.Water)
	assert.InDelta(t, 1000.0/1023, v.Usage.Gas, eps)
}

func TestLedger_TierUsesPreUpdateValue(t *testing.T) {
	l := NewLedger(DefaultTariff())
	l.cost.Light = 199.99

	l.Apply(Reading{Light: 51, Gas: 0, Water: 0, CardID: NoCard})
	want := 199.99 + 51.0/1023*0.084
	got := l.Snapshot().Cost.Light
	assert.InDelta(t, want, got, eps)
	assert.Greater(t, got, 199.99)

	// уже выше 200 — следующая порция по второй ступени
	l.cost.Light = 200.5
	l.Apply(Reading{Light: 51, Gas: 0, Water: 0, CardID: NoCard})
	assert.InDelta(t, 200.5+51.0/1023*0.10, l.Snapshot().Cost.Light, eps)
}

func TestLedger_GasTopTier(t *testing.T) {
	l := NewLedger(DefaultTariff())
	l.cost.Gas = 2200.01
	l.Apply(Reading{Light: 500, Gas: 1023, Water: 0, CardID: NoCard})
	assert.InDelta(t, 2200.01+0.30, l.Snapshot().Cost.Gas, eps)
}

func TestLedger_SettlementAccruesThenResets(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l := NewLedger(DefaultTariff(), WithClock(fixedClock(at)))

	l.Apply(Reading{Light: 100, Gas: 500, Water: 600, CardID: NoCard})
	before := l.Snapshot()

	s, settled := l.Apply(Reading{Light: 100, Gas: 500, Water: 600, CardID: "CAFE01"})
	require.True(t, settled)

	// оплата включает начисление по той же строке
	assert.InDelta(t, 2*before.Cost.Light, s.Cost.Light, eps)
	assert.InDelta(t, 2*before.Cost.Gas, s.Cost.Gas, eps)
	assert.InDelta(t, 2*before.Cost.Water, s.Cost.Water, eps)
	assert.InDelta(t, s.Cost.Total(), s.Total, eps)
	assert.InDelta(t, 2*before.Usage.Water, s.Usage.Water, eps)
	assert.Equal(t, "CAFE01", s.CardID)
	assert.Equal(t, at, s.At)

	v := l.Snapshot()
	assert.Equal(t, Amounts{}, v.Cost)
	assert.Equal(t, Amounts{}, v.Usage)
	assert.Zero(t, v.Total)
	require.NotNil(t, v.LastPayment)
	assert.Equal(t, at, *v.LastPayment)
	assert.Equal(t, "CAFE01", v.LastCardID)
	assert.True(t, v.CardPresent())
	assert.Equal(t, RawValues{Light: 100, Gas: 500, Water: 600}, v.Raw)
}

func TestLedger_PaymentLine(t *testing.T) {
	at := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	l := NewLedger(DefaultTariff(), WithClock(fixedClock(at)))
	l.Apply(Reading{Light: 10, Gas: 900, Water: 900, CardID: NoCard})
	before := l.Snapshot()

	r, err := Parse("PAYMENT")
	require.NoError(t, err)
	s, settled := l.Apply(r)
	require.True(t, settled)

	// без нового начисления и без затирания сырых значений
	assert.Equal(t, before.Cost, s.Cost)
	v := l.Snapshot()
	assert.Equal(t, before.Raw, v.Raw)
	assert.Equal(t, Amounts{}, v.Cost)
	assert.Equal(t, PaymentLine, v.LastCardID)
	require.NotNil(t, v.LastPayment)
	assert.Equal(t, at, *v.LastPayment)
}

func TestLedger_SettlementOnEmptyLedger(t *testing.T) {
	l := NewLedger(nil)
	s, settled := l.Apply(Reading{Light: 1000, Gas: 0, Water: 0, CardID: "X"})
	require.True(t, settled)
	assert.Zero(t, s.Total)
}

func TestLedger_EmptyCardFieldSettles(t *testing.T) {
	l := NewLedger(DefaultTariff())
	first, err := Parse("100;900;900;NONE")
	require.NoError(t, err)
	l.Apply(first)
	open := l.Snapshot().Total

	r, err := Parse("100;900;900;")
	require.NoError(t, err)
	s, settled := l.Apply(r)
	require.True(t, settled)
	assert.Equal(t, "", s.CardID)
	assert.InDelta(t, 2*open, s.Total, eps)

	v := l.Snapshot()
	assert.Zero(t, v.Total)
	assert.Equal(t, "", v.LastCardID)
	assert.True(t, v.CardPresent())
	assert.NotNil(t, v.LastPayment)
}

func TestLedger_MonotonicWithoutCard(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	l := NewLedger(DefaultTariff())
	prev := l.Snapshot()

	for i := 0; i < 5000; i++ {
		l.Apply(Reading{
			Light:  rng.IntN(1024),
			Gas:    rng.IntN(1024),
			Water:  rng.IntN(1024),
			CardID: NoCard,
		})
		cur := l.Snapshot()
		for _, res := range Resources {
			require.GreaterOrEqual(t, cur.Cost.Get(res), prev.Cost.Get(res), "resource %s step %d", res, i)
		}
		prev = cur
	}
	assert.Nil(t, prev.LastPayment)
}

func TestLedger_NegativeRawIsNotClamped(t *testing.T) {
	l := NewLedger(DefaultTariff())
	l.Apply(Reading{Light: -1023, Gas: 0, Water: 0, CardID: NoCard})
	assert.InDelta(t, -0.084, l.Snapshot().Cost.Light, eps)
}

func TestLedger_SnapshotIsCopy(t *testing.T) {
	l := NewLedger(DefaultTariff(), WithClock(fixedClock(time.Unix(100, 0))))
	l.Apply(Reading{Kind: KindPayment, CardID: PaymentLine})

	v := l.Snapshot()
	*v.LastPayment = time.Unix(0, 0)
	assert.Equal(t, time.Unix(100, 0), *l.Snapshot().LastPayment)
}

func TestLedger_ConcurrentSnapshotsAreConsistent(t *testing.T) {
	l := NewLedger(DefaultTariff())
	const n = 2000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			card := NoCard
			if i%10 == 9 {
				card = "CARD"
			}
			l.Apply(Reading{Light: 100, Gas: 900, Water: 900, CardID: card})
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				v := l.Snapshot()
				// итог всегда сумма трёх полей одного и того же состояния
				if !assert.InDelta(t, v.Cost.Total(), v.Total, eps) {
					return
				}
				if v.Cost.Light == 0 && (v.Cost.Gas != 0 || v.Cost.Water != 0) {
					t.Errorf("mixed pre/post reset snapshot: %+v", v.Cost)
					return
				}
			}
		}()
	}
	wg.Wait()
}
