package mqttsrc

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/smartcounter/internal/ingest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSource_SplitsPayloadInOrder(t *testing.T) {
	s := newSource("t", discardLogger())
	s.handle([]byte("1;2;3;NONE\r\n4;5;6;NONE"))
	s.handle([]byte("PAYMENT"))

	ctx := context.Background()
	for _, want := range []string{"1;2;3;NONE", "4;5;6;NONE", "PAYMENT"} {
		got, err := s.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSource_NextHonoursContext(t *testing.T) {
	s := newSource("t", discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSource_Close(t *testing.T) {
	s := newSource("t", discardLogger())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Next(context.Background())
	assert.ErrorIs(t, err, ingest.ErrSourceClosed)

	// после закрытия handle не блокируется
	done := make(chan struct{})
	go func() {
		for i := 0; i < bufferSize+10; i++ {
			s.handle([]byte("x"))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handle blocked after Close")
	}
}

func TestDial_RequiresBrokerAndTopic(t *testing.T) {
	_, err := Dial(Config{Topic: "t"}, discardLogger())
	assert.Error(t, err)
}
