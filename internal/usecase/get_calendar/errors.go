package get_calendar

import "errors"

var (
	// ErrUnavailable возвращается, когда хранилище недоступно.
	// Ошибка ретраябельна: расчёт доступности чистый и его можно повторить.
	ErrUnavailable = errors.New("get_calendar: availability temporarily unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
