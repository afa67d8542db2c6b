package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/domain/payments"
	"github.com/Spok95/smartcounter/internal/i18n"
)

const timeLayout = "2006-01-02 15:04:05"

func paymentInfo(lang i18n.Language, v meter.View, tz *time.Location) string {
	if v.LastPayment == nil {
		return i18n.T(lang, "no_payment")
	}
	return v.LastPayment.In(tz).Format(timeLayout)
}

func formatResource(lang i18n.Language, v meter.View, res meter.Resource, tz *time.Location) string {
	return fmt.Sprintf("%s:\n%s: %d\n%s: %.2f\n%s: %.2f ₼\n%s: %s",
		i18n.T(lang, string(res)),
		i18n.T(lang, "value"), v.Raw.Get(res),
		i18n.T(lang, "usage"), v.Usage.Get(res),
		i18n.T(lang, "cost"), v.Cost.Get(res),
		i18n.T(lang, "last_payment"), paymentInfo(lang, v, tz),
	)
}

func formatStatusAll(lang i18n.Language, v meter.View, tz *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:\n", i18n.T(lang, "full_status"))
	for _, res := range meter.Resources {
		fmt.Fprintf(&sb, "%s: %d | %s: %.2f | %s: %.2f ₼\n",
			i18n.T(lang, string(res)), v.Raw.Get(res),
			i18n.T(lang, "usage"), v.Usage.Get(res),
			i18n.T(lang, "cost"), v.Cost.Get(res),
		)
	}
	fmt.Fprintf(&sb, "%s: %.2f ₼\n", i18n.T(lang, "total_cost"), v.Total)
	fmt.Fprintf(&sb, "%s: %s", i18n.T(lang, "last_payment"), paymentInfo(lang, v, tz))
	return sb.String()
}

func formatPayments(lang i18n.Language, list []payments.Payment, tz *time.Location) string {
	if len(list) == 0 {
		return i18n.T(lang, "no_payments")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:", i18n.T(lang, "payments"))
	for _, p := range list {
		fmt.Fprintf(&sb, "\n%s — %s — %.2f ₼", p.PaidAt.In(tz).Format(timeLayout), p.CardID, p.Total)
	}
	return sb.String()
}

func formatReceipt(lang i18n.Language, s meter.Settlement, tz *time.Location) string {
	return fmt.Sprintf("%s\n%s: %.2f ₼ | %s: %.2f ₼ | %s: %.2f ₼\n%s",
		i18n.Tf(lang, "receipt", s.CardID, s.Total),
		i18n.T(lang, "light"), s.Cost.Light,
		i18n.T(lang, "gas"), s.Cost.Gas,
		i18n.T(lang, "water"), s.Cost.Water,
		s.At.In(tz).Format(timeLayout),
	)
}
