package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/smartcounter/internal/domain/payments"
	"github.com/Spok95/smartcounter/internal/i18n"
	"github.com/Spok95/smartcounter/internal/report"
)

// sendReport выгружает текущий счёт и журнал оплат в Excel.
func (b *Bot) sendReport(ctx context.Context, chatID int64, lang i18n.Language) {
	view := b.ledger.Snapshot()
	list, err := b.journal.Recent(ctx, payments.MaxLimit)
	if err != nil {
		b.log.Error("list payments failed", "err", err)
		list = nil
	}

	data, err := report.Build(view, list, b.tz)
	if err != nil {
		b.log.Error("build report failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, "report_failed")))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.FileName(b.now().In(b.tz)),
		Bytes: data,
	})
	doc.Caption = i18n.T(lang, "report_caption")
	b.send(doc)
}
