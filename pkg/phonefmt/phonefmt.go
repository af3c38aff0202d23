// Package phonefmt нормализует телефонные номера к международному формату.
package phonefmt

import "strings"

// DefaultCountryCode код страны, подставляемый для локальных номеров без префикса
const DefaultCountryCode = "230"

// Format нормализует номер к виду +230XXXXXXX.
// Поддерживаемые входные варианты: "5551234", "05551234", "+230 555-1234".
// Пустая строка возвращается как есть.
func Format(phone string) string {
	if phone == "" {
		return ""
	}

	// Убираем всё кроме цифр
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	// Убираем локальный префикс "0"
	cleaned = strings.TrimPrefix(cleaned, "0")

	// Добавляем код страны, если его нет
	if !strings.HasPrefix(cleaned, DefaultCountryCode) {
		cleaned = DefaultCountryCode + cleaned
	}

	return "+" + cleaned
}
