package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/smartcounter/internal/domain/meter"
)

// Payment — квитанция об оплате. Это журнал, а не состояние леджера:
// после перезапуска счёт всё равно начинается с нуля.
type Payment struct {
	ID     uuid.UUID     `json:"id"`
	CardID string        `json:"card_id"`
	Cost   meter.Amounts `json:"cost"`
	Usage  meter.Amounts `json:"usage"`
	Total  float64       `json:"total"`
	PaidAt time.Time     `json:"paid_at"`
}

func FromSettlement(s meter.Settlement) Payment {
	return Payment{
		ID:     uuid.New(),
		CardID: s.CardID,
		Cost:   s.Cost,
		Usage:  s.Usage,
		Total:  s.Total,
		PaidAt: s.At,
	}
}
