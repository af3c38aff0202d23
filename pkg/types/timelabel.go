package types

import (
	"errors"
	"fmt"
	"regexp"
)

// TimeLabel метка времени слота в 12-часовом формате, например "09:00 AM" или "01:00 PM".
// Это публичный формат виджета бронирования: метки приходят от клиента как есть
// и хранятся в конфигурации расписания.
type TimeLabel string

var (
	// ErrInvalidTimeLabel возвращается при некорректном формате метки времени
	ErrInvalidTimeLabel = errors.New("types: invalid time label format, expected HH:MM AM|PM")

	timeLabelRegex = regexp.MustCompile(`^(\d{2}):(\d{2}) (AM|PM)$`)
)

// NewTimeLabelFromString создает TimeLabel из строки с валидацией формата
func NewTimeLabelFromString(s string) (TimeLabel, error) {
	label := TimeLabel(s)
	if err := label.Validate(); err != nil {
		return "", err
	}
	return label, nil
}

// Validate проверяет формат метки и допустимость значений часов и минут
func (t TimeLabel) Validate() error {
	m := timeLabelRegex.FindStringSubmatch(string(t))
	if m == nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(t))
	}

	hour, minute := atoi2(m[1]), atoi2(m[2])
	if hour < 1 || hour > 12 {
		return fmt.Errorf("%w: hour %d out of range 1-12", ErrInvalidTimeLabel, hour)
	}
	if minute > 59 {
		return fmt.Errorf("%w: minute %d out of range 0-59", ErrInvalidTimeLabel, minute)
	}

	return nil
}

// Clock возвращает час и минуту в 24-часовом формате.
// Правила конвертации: 12 AM -> 0, 12 PM -> 12, PM добавляет 12 ко всем часам кроме 12.
func (t TimeLabel) Clock() (hour, minute int, err error) {
	m := timeLabelRegex.FindStringSubmatch(string(t))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(t))
	}

	hour, minute = atoi2(m[1]), atoi2(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, string(t))
	}

	switch {
	case m[3] == "AM" && hour == 12:
		hour = 0
	case m[3] == "PM" && hour != 12:
		hour += 12
	}

	return hour, minute, nil
}

// IsZero проверяет, что метка не задана
func (t TimeLabel) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление метки
func (t TimeLabel) String() string {
	return string(t)
}

// atoi2 конвертирует ровно две цифры в int.
// Вызывается только после regexp, поэтому ошибки невозможны.
func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
