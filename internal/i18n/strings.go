package i18n

var en = map[string]string{
	"welcome":           "Welcome! Select your language:",
	"start":             "Welcome to SmartCounterBot! Select a language:",
	"commands":          "Commands: /light /gas /water /status_all /payments /report",
	"help":              "Commands:\n/light — light meter\n/gas — gas meter\n/water — water meter\n/status_all — full status\n/payments — recent payments\n/report — Excel report\n/start — choose language",
	"invalid_selection": "Invalid selection. Choose language from keyboard.",
	"unknown_command":   "Unknown command. Type /help",
	"light":             "Light",
	"gas":               "Gas",
	"water":             "Water",
	"value":             "Value",
	"usage":             "Usage since last payment",
	"cost":              "Cost",
	"last_payment":      "Last payment",
	"no_payment":        "No payment yet",
	"full_status":       "Full Status",
	"total_cost":        "Total cost",
	"payments":          "Recent payments",
	"no_payments":       "No payments recorded.",
	"report_caption":    "Smart counter report",
	"report_failed":     "Could not build the report.",
	"payments_failed":   "Could not load payments.",
	"receipt":           "Payment received (card %s): %.2f ₼",
	"rfid":              "RFID",
	"rfid_none":         "Not detected",
}

var ru = map[string]string{
	"welcome":           "Добро пожаловать! Выберите язык:",
	"start":             "Добро пожаловать в SmartCounterBot! Выберите язык:",
	"commands":          "Команды: /light /gas /water /status_all /payments /report",
	"help":              "Команды:\n/light — свет\n/gas — газ\n/water — вода\n/status_all — общий статус\n/payments — последние оплаты\n/report — отчёт Excel\n/start — выбор языка",
	"invalid_selection": "Неверный выбор. Выберите язык на клавиатуре.",
	"unknown_command":   "Не знаю такую команду. Наберите /help",
	"light":             "Свет",
	"gas":               "Газ",
	"water":             "Вода",
	"value":             "Значение",
	"usage":             "Использовано с последней оплаты",
	"cost":              "Стоимость",
	"last_payment":      "Последняя оплата",
	"no_payment":        "Оплат ещё не было",
	"full_status":       "Общий статус",
	"total_cost":        "Общая стоимость",
	"payments":          "Последние оплаты",
	"no_payments":       "Оплат нет.",
	"report_caption":    "Отчёт счётчика",
	"report_failed":     "Не удалось сформировать отчёт.",
	"payments_failed":   "Не удалось загрузить оплаты.",
	"receipt":           "Оплата получена (карта %s): %.2f ₼",
	"rfid_none":         "Не обнаружена",
}

var az = map[string]string{
	"welcome":           "Xoş gəlmisiniz! Dili seçin:",
	"start":             "SmartCounterBot-a xoş gəlmisiniz! Zəhmət olmasa dili seçin:",
	"commands":          "Əmrlər: /light /gas /water /status_all /payments /report",
	"invalid_selection": "Yanlış seçim. Dili klaviaturadan seçin.",
	"unknown_command":   "Naməlum əmr. /help yazın",
	"light":             "İşıq",
	"gas":               "Qaz",
	"water":             "Su",
	"value":             "Dəyər",
	"usage":             "Son ödənişdən bəri istifadə",
	"cost":              "Qiymət",
	"last_payment":      "Son ödəniş",
	"no_payment":        "Hələ ödəniş yoxdur",
	"full_status":       "Ümumi vəziyyət",
	"total_cost":        "Ümumi məbləğ",
	"payments":          "Son ödənişlər",
	"no_payments":       "Ödəniş qeydə alınmayıb.",
	"rfid_none":         "Aşkar edilmədi",
}

var tr = map[string]string{
	"welcome":           "Hoş geldiniz! Lütfen bir dil seçin:",
	"start":             "SmartCounterBot'a hoş geldiniz! Lütfen bir dil seçin:",
	"commands":          "Komutlar: /light /gas /water /status_all /payments /report",
	"invalid_selection": "Geçersiz seçim. Dili klavyeden seçin.",
	"unknown_command":   "Bilinmeyen komut. /help yazın",
	"light":             "Işık",
	"gas":               "Gaz",
	"water":             "Su",
	"value":             "Değer",
	"usage":             "Son ödemeden beri kullanım",
	"cost":              "Maliyet",
	"last_payment":      "Son ödeme",
	"no_payment":        "Henüz ödeme yok",
	"full_status":       "Genel Durum",
	"total_cost":        "Toplam maliyet",
	"payments":          "Son ödemeler",
	"no_payments":       "Kayıtlı ödeme yok.",
	"rfid_none":         "Algılanmadı",
}
