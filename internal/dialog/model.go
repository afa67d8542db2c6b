package dialog

import "github.com/Spok95/smartcounter/internal/i18n"

// Item — настройки чата. Пока только язык.
type Item struct {
	ChatID int64
	Lang   i18n.Language
}
