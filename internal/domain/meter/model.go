package meter

import "time"

// NoCard — значение поля карты, когда RFID-метка не приложена.
const NoCard = "NONE"

// PaymentLine — строка-триггер оплаты без показаний.
const PaymentLine = "PAYMENT"

type Resource string

const (
	Light Resource = "light"
	Gas   Resource = "gas"
	Water Resource = "water"
)

// Resources в порядке вывода (панель, бот, отчёты).
var Resources = []Resource{Light, Gas, Water}

type Kind int

const (
	KindSample  Kind = iota // обычные показания датчиков
	KindPayment             // голая строка PAYMENT
)

// Reading — одна разобранная строка от контроллера.
type Reading struct {
	Kind   Kind
	Light  int
	Gas    int
	Water  int
	CardID string
}

func (r Reading) Value(res Resource) int {
	switch res {
	case Light:
		return r.Light
	case Gas:
		return r.Gas
	case Water:
		return r.Water
	}
	return 0
}

// HasCard — приложена ли метка (или пришёл PAYMENT). Любое значение кроме NONE,
// в том числе пустое, считается меткой.
func (r Reading) HasCard() bool {
	return r.Kind == KindPayment || r.CardID != NoCard
}

// Amounts — значения по трём ресурсам.
type Amounts struct {
	Light float64 `json:"light"`
	Gas   float64 `json:"gas"`
	Water float64 `json:"water"`
}

func (a Amounts) Get(res Resource) float64 {
	switch res {
	case Light:
		return a.Light
	case Gas:
		return a.Gas
	case Water:
		return a.Water
	}
	return 0
}

func (a *Amounts) add(res Resource, v float64) {
	switch res {
	case Light:
		a.Light += v
	case Gas:
		a.Gas += v
	case Water:
		a.Water += v
	}
}

func (a Amounts) Total() float64 { return a.Light + a.Gas + a.Water }

type RawValues struct {
	Light int `json:"light"`
	Gas   int `json:"gas"`
	Water int `json:"water"`
}

func (v RawValues) Get(res Resource) int {
	switch res {
	case Light:
		return v.Light
	case Gas:
		return v.Gas
	case Water:
		return v.Water
	}
	return 0
}

// Settlement — срез счёта на момент оплаты (до обнуления).
type Settlement struct {
	CardID string    `json:"card_id"`
	Cost   Amounts   `json:"cost"`
	Usage  Amounts   `json:"usage"`
	Total  float64   `json:"total"`
	At     time.Time `json:"at"`
}

// View — неизменяемая копия леджера для панели, бота и HTTP.
type View struct {
	Raw         RawValues  `json:"raw"`
	Cost        Amounts    `json:"cost"`
	Usage       Amounts    `json:"usage"`
	Total       float64    `json:"total"`
	LastCardID  string     `json:"last_card_id"`
	LastPayment *time.Time `json:"last_payment,omitempty"`
}

// CardPresent — было ли в последней строке что-то кроме NONE.
func (v View) CardPresent() bool {
	return v.LastCardID != NoCard
}
