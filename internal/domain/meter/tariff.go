package meter

import (
	"fmt"
	"strings"
)

// ADCMax — разрешение АЦП контроллера, на него нормируются сырые значения.
const ADCMax = 1023.0

const (
	LightThreshold = 300
	GasThreshold   = 350
	WaterThreshold = 400
)

// Gate решает, есть ли начисление по ресурсу в этом цикле.
// Для света датчик подключён инверсно: меньше значение — больше расход.
type Gate struct {
	Threshold int
	Inverted  bool
}

func (g Gate) Open(raw int) bool {
	if g.Inverted {
		return raw < g.Threshold
	}
	return raw > g.Threshold
}

// Tier — ступень тарифа: действует, пока накопленная сумма <= Max (nil — без верхней границы).
type Tier struct {
	Max  *float64
	Rate float64
}

func (t Tier) String() string {
	rng := "∞"
	if t.Max != nil {
		rng = fmt.Sprintf("%g", *t.Max)
	}
	return fmt.Sprintf("[..%s] rate=%g", rng, t.Rate)
}

type Schedule struct {
	Gate  Gate
	Tiers []Tier
}

// RateFor выбирает ставку по накопленной сумме ДО текущего начисления.
func (s Schedule) RateFor(accumulated float64) float64 {
	for _, t := range s.Tiers {
		if t.Max == nil || accumulated <= *t.Max {
			return t.Rate
		}
	}
	if n := len(s.Tiers); n > 0 {
		return s.Tiers[n-1].Rate
	}
	return 0
}

func (s Schedule) String() string {
	parts := make([]string, 0, len(s.Tiers))
	for _, t := range s.Tiers {
		parts = append(parts, t.String())
	}
	op := ">"
	if s.Gate.Inverted {
		op = "<"
	}
	return fmt.Sprintf("gate %s%d, %s", op, s.Gate.Threshold, strings.Join(parts, " "))
}

// Tariff не меняется во время работы процесса.
type Tariff map[Resource]Schedule

func upTo(v float64) *float64 { return &v }

func DefaultTariff() Tariff {
	return Tariff{
		Light: {
			Gate: Gate{Threshold: LightThreshold, Inverted: true},
			Tiers: []Tier{
				{Max: upTo(200), Rate: 0.084},
				{Max: upTo(300), Rate: 0.10},
				{Rate: 0.15},
			},
		},
		Gas: {
			Gate: Gate{Threshold: GasThreshold},
			Tiers: []Tier{
				{Max: upTo(1200), Rate: 0.125},
				{Max: upTo(2200), Rate: 0.20},
				{Rate: 0.30},
			},
		},
		Water: {
			Gate:  Gate{Threshold: WaterThreshold},
			Tiers: []Tier{{Rate: 1.0}},
		},
	}
}

// Unit нормирует сырое значение. Значения вне [0, 1023] не обрезаются.
func Unit(raw int) float64 {
	return float64(raw) / ADCMax
}
