package kafkapub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_OnSettlement(t *testing.T) {
	w := &fakeWriter{}
	p := newWithWriter(w, "settlements")
	at := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

	err := p.OnSettlement(context.Background(), meter.Settlement{
		CardID: "CAFE",
		Cost:   meter.Amounts{Light: 1, Gas: 2, Water: 3},
		Total:  6,
		At:     at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	m := w.msgs[0]
	assert.Equal(t, []byte("CAFE"), m.Key)
	assert.Equal(t, at, m.Time)

	var ev Event
	require.NoError(t, json.Unmarshal(m.Value, &ev))
	assert.Equal(t, SchemaVersion, ev.Schema)
	assert.Equal(t, 6.0, ev.Settlement.Total)
	assert.Equal(t, 2.0, ev.Settlement.Cost.Gas)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	p := newWithWriter(&fakeWriter{err: errors.New("leader not available")}, "settlements")
	err := p.OnSettlement(context.Background(), meter.Settlement{CardID: "X"})
	assert.ErrorContains(t, err, "write settlements")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err)
	_, err = New(Config{Topic: "t"})
	assert.Error(t, err)

	p, err := New(Config{Brokers: []string{"localhost:9092"}, Topic: "t"})
	require.NoError(t, err)
	assert.Equal(t, "kafka", p.Name())
	require.NoError(t, p.Close())
}
