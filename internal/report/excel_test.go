package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/domain/payments"
)

func TestBuild(t *testing.T) {
	paid := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	v := meter.View{
		Raw:         meter.RawValues{Light: 250, Gas: 400, Water: 500},
		Cost:        meter.Amounts{Light: 0.020528, Gas: 0.048876, Water: 0.488759},
		Usage:       meter.Amounts{Light: 0.2444, Gas: 0.3910, Water: 0.4888},
		Total:       0.558163,
		LastCardID:  meter.NoCard,
		LastPayment: &paid,
	}
	pays := []payments.Payment{
		payments.FromSettlement(meter.Settlement{CardID: "CAFE", Cost: meter.Amounts{Light: 1, Gas: 2, Water: 3}, Total: 6, At: paid}),
	}

	data, err := Build(v, pays, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetStatus, SheetPayments}, f.GetSheetList())

	rows, err := f.GetRows(SheetStatus)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"resource", "raw_value", "usage_since_payment", "cost"}, rows[0])
	assert.Equal(t, "light", rows[1][0])
	assert.Equal(t, "250", rows[1][1])
	assert.Equal(t, "0.0205", rows[1][3])
	assert.Equal(t, "water", rows[3][0])
	assert.Equal(t, "total", rows[4][0])
	assert.Equal(t, "0.5582", rows[4][3])
	assert.Equal(t, []string{"last_card_id", "NONE"}, rows[5])
	assert.Equal(t, []string{"last_payment", "2024-06-01 09:00:00"}, rows[6])

	prow, err := f.GetRows(SheetPayments)
	require.NoError(t, err)
	require.Len(t, prow, 2)
	assert.Equal(t, pays[0].ID.String(), prow[1][0])
	assert.Equal(t, "CAFE", prow[1][2])
	assert.Equal(t, "6", prow[1][6])
}

func TestBuild_NoPaymentYet(t *testing.T) {
	data, err := Build(meter.View{LastCardID: meter.NoCard}, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetStatus)
	require.NoError(t, err)
	assert.Equal(t, []string{"last_payment"}, rows[6])

	prow, err := f.GetRows(SheetPayments)
	require.NoError(t, err)
	assert.Len(t, prow, 1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "smartcounter_20240601_090000.xlsx", FileName(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)))
}
