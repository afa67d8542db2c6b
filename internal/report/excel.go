package report

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/domain/payments"
)

const (
	SheetStatus   = "Status"
	SheetPayments = "Payments"
	TimeLayout    = "2006-01-02 15:04:05"
)

// FileName — имя файла отчёта по времени формирования.
func FileName(now time.Time) string {
	return fmt.Sprintf("smartcounter_%s.xlsx", now.Format("20060102_150405"))
}

// Build собирает xlsx: лист Status (текущий счёт) и лист Payments (журнал).
func Build(v meter.View, pays []payments.Payment, tz *time.Location) ([]byte, error) {
	if tz == nil {
		tz = time.UTC
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetStatus); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeStatus(f, v, tz); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(SheetPayments); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	if err := writePayments(f, pays, tz); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeStatus(f *excelize.File, v meter.View, tz *time.Location) error {
	header := []interface{}{"resource", "raw_value", "usage_since_payment", "cost"}
	if err := f.SetSheetRow(SheetStatus, "A1", &header); err != nil {
		return fmt.Errorf("status header: %w", err)
	}

	row := 2
	for _, res := range meter.Resources {
		line := []interface{}{
			string(res),
			v.Raw.Get(res),
			round(v.Usage.Get(res)),
			round(v.Cost.Get(res)),
		}
		if err := setRow(f, SheetStatus, row, line); err != nil {
			return err
		}
		row++
	}

	paid := []interface{}{"last_payment"}
	if v.LastPayment != nil {
		paid = append(paid, v.LastPayment.In(tz).Format(TimeLayout))
	}
	footer := [][]interface{}{
		{"total", nil, nil, round(v.Total)},
		{"last_card_id", v.LastCardID},
		paid,
	}
	for _, line := range footer {
		if err := setRow(f, SheetStatus, row, line); err != nil {
			return err
		}
		row++
	}
	return nil
}

func writePayments(f *excelize.File, pays []payments.Payment, tz *time.Location) error {
	header := []interface{}{"id", "paid_at", "card_id", "light_cost", "gas_cost", "water_cost", "total"}
	if err := f.SetSheetRow(SheetPayments, "A1", &header); err != nil {
		return fmt.Errorf("payments header: %w", err)
	}
	for i, p := range pays {
		line := []interface{}{
			p.ID.String(),
			p.PaidAt.In(tz).Format(TimeLayout),
			p.CardID,
			round(p.Cost.Light),
			round(p.Cost.Gas),
			round(p.Cost.Water),
			round(p.Total),
		}
		if err := setRow(f, SheetPayments, i+2, line); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("%s cell: %w", sheet, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

// round — 4 знака, в Excel дальше не нужно.
func round(v float64) float64 {
	return math.Round(v*10000) / 10000
}
