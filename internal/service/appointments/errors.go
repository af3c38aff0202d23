package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrInvalidCode возвращается при некорректном формате кода подтверждения
	ErrInvalidCode = errors.New("appointments: invalid confirmation code format")

	// ErrCodeMismatch возвращается, когда код подтверждения не совпадает с сохранённым
	ErrCodeMismatch = errors.New("appointments: confirmation code does not match")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении.
	// Повторное подтверждение - явный отказ, а не тихий no-op:
	// двойную отправку формы нужно показать клиенту.
	ErrAlreadyConfirmed = errors.New("appointments: appointment already confirmed")

	// ErrAlreadyCancelled возвращается при попытке подтвердить отменённое бронирование.
	// Статус canceled терминальный.
	ErrAlreadyCancelled = errors.New("appointments: appointment already cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
