package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/smartcounter/internal/i18n"
)

// languageKeyboard — выбор языка по два в ряд, скрывается после нажатия.
func languageKeyboard() tgbotapi.ReplyKeyboardMarkup {
	langs := i18n.Languages()
	rows := [][]tgbotapi.KeyboardButton{}
	for i := 0; i < len(langs); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(langs[i].Name())}
		if i+1 < len(langs) {
			row = append(row, tgbotapi.NewKeyboardButton(langs[i+1].Name()))
		}
		rows = append(rows, row)
	}
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Keyboard:        rows,
	}
}
