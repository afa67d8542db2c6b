package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/smartcounter/internal/dialog"
	"github.com/Spok95/smartcounter/internal/domain/meter"
	"github.com/Spok95/smartcounter/internal/domain/payments"
	"github.com/Spok95/smartcounter/internal/i18n"
)

const recentPayments = 10

type Snapshotter interface {
	Snapshot() meter.View
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api       *tgbotapi.BotAPI
	out       sender
	log       *slog.Logger
	ledger    Snapshotter
	journal   payments.Store
	prefs     dialog.Store
	adminChat int64
	tz        *time.Location
	now       func() time.Time
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	ledger Snapshotter, journal payments.Store, prefs dialog.Store,
	adminChatID int64, tz *time.Location) *Bot {

	if tz == nil {
		tz = time.UTC
	}
	return &Bot{
		api: api, out: api, log: log.With("component", "bot"),
		ledger: ledger, journal: journal, prefs: prefs,
		adminChat: adminChatID, tz: tz, now: time.Now,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.log.Info("bot started", "username", b.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message != nil {
				b.onMessage(ctx, upd.Message)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.out.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// onMessage — паника в обработчике не должна уронить процесс со считывателем.
func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("message handler panicked", "chat_id", msg.Chat.ID, "panic", fmt.Sprint(r))
		}
	}()

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) lang(ctx context.Context, chatID int64) i18n.Language {
	it, err := b.prefs.Get(ctx, chatID)
	if err != nil || it == nil {
		if err != nil {
			b.log.Warn("load chat language failed", "chat_id", chatID, "err", err)
		}
		return i18n.LangEN
	}
	return it.Lang
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.lang(ctx, chatID)

	switch msg.Command() {
	case "start":
		m := tgbotapi.NewMessage(chatID, i18n.T(lang, "welcome"))
		m.ReplyMarkup = languageKeyboard()
		b.send(m)

	case "help":
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, "help")))

	case "light":
		b.send(tgbotapi.NewMessage(chatID, formatResource(lang, b.ledger.Snapshot(), meter.Light, b.tz)))
	case "gas":
		b.send(tgbotapi.NewMessage(chatID, formatResource(lang, b.ledger.Snapshot(), meter.Gas, b.tz)))
	case "water":
		b.send(tgbotapi.NewMessage(chatID, formatResource(lang, b.ledger.Snapshot(), meter.Water, b.tz)))
	case "status_all":
		b.send(tgbotapi.NewMessage(chatID, formatStatusAll(lang, b.ledger.Snapshot(), b.tz)))

	case "payments":
		list, err := b.journal.Recent(ctx, recentPayments)
		if err != nil {
			b.log.Error("list payments failed", "err", err)
			b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, "payments_failed")))
			return
		}
		b.send(tgbotapi.NewMessage(chatID, formatPayments(lang, list, b.tz)))

	case "report":
		b.sendReport(ctx, chatID, lang)

	default:
		b.send(tgbotapi.NewMessage(chatID, i18n.T(lang, "unknown_command")))
	}
}

// handleText — свободный текст: только выбор языка с клавиатуры.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang, ok := i18n.ByName(msg.Text)
	if !ok {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(b.lang(ctx, chatID), "invalid_selection")))
		return
	}
	if err := b.prefs.Set(ctx, chatID, lang); err != nil {
		b.log.Error("save chat language failed", "chat_id", chatID, "err", err)
	}
	m := tgbotapi.NewMessage(chatID, i18n.T(lang, "start")+"\n"+i18n.T(lang, "commands"))
	m.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	b.send(m)
}

func (b *Bot) Name() string { return "telegram" }

// OnSettlement отправляет квитанцию в админский чат, если он задан.
func (b *Bot) OnSettlement(ctx context.Context, s meter.Settlement) error {
	if b.adminChat == 0 {
		return nil
	}
	lang := b.lang(ctx, b.adminChat)
	if _, err := b.out.Send(tgbotapi.NewMessage(b.adminChat, formatReceipt(lang, s, b.tz))); err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	return nil
}
