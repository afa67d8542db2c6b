package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

func TestReplay_PrintsSnapshotAndSettlements(t *testing.T) {
	capture := strings.Join([]string{
		"250;400;500;NONE",
		"garbage",
		"",
		"250;400;500;A1B2C3",
		"100;100;100;NONE",
	}, "\n")

	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := replay(context.Background(), io.NopCloser(strings.NewReader(capture)), meter.FormatAuto, &out, log)
	require.NoError(t, err)

	var res replayResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))

	require.Len(t, res.Settlements, 1)
	s := res.Settlements[0]
	assert.Equal(t, "A1B2C3", s.CardID)
	assert.InDelta(t, 2*0.5582, s.Total, 1e-3)

	assert.Equal(t, 100, res.Snapshot.Raw.Light)
	assert.Equal(t, "NONE", res.Snapshot.LastCardID)
	assert.InDelta(t, 100.0/1023*0.084, res.Snapshot.Cost.Light, 1e-9)
	assert.Zero(t, res.Snapshot.Cost.Gas)
	assert.Zero(t, res.Snapshot.Cost.Water)
	assert.NotNil(t, res.Snapshot.LastPayment)
}

func TestReplay_EmptyCapture(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, replay(context.Background(), io.NopCloser(strings.NewReader("")), meter.FormatAuto, &out, log))
	assert.Contains(t, out.String(), `"settlements": []`)
}
