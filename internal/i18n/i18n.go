package i18n

import "fmt"

// Language represents a supported bot locale.
type Language string

const (
	LangEN Language = "en"
	LangRU Language = "ru"
	LangAZ Language = "az"
	LangTR Language = "tr"
)

var names = map[Language]string{
	LangEN: "English",
	LangRU: "Russian",
	LangAZ: "Azerbaijani",
	LangTR: "Turkish",
}

var dicts = map[Language]map[string]string{
	LangEN: en,
	LangRU: ru,
	LangAZ: az,
	LangTR: tr,
}

// Languages returns locales in keyboard order.
func Languages() []Language {
	return []Language{LangEN, LangRU, LangAZ, LangTR}
}

// Name is the label shown on the language keyboard.
func (l Language) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	return names[LangEN]
}

// ByName resolves a keyboard label back to a locale.
func ByName(name string) (Language, bool) {
	for l, n := range names {
		if n == name {
			return l, true
		}
	}
	return "", false
}

// Parse accepts a stored code; unknown values fall back to English.
func Parse(code string) Language {
	if _, ok := dicts[Language(code)]; ok {
		return Language(code)
	}
	return LangEN
}

// T returns the translated string for the given key.
// Missing keys fall back to English, then to the key itself.
func T(lang Language, key string) string {
	if d, ok := dicts[lang]; ok {
		if v, ok := d[key]; ok {
			return v
		}
	}
	if v, ok := en[key]; ok {
		return v
	}
	return key
}

// Tf returns a formatted translated string.
func Tf(lang Language, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}
