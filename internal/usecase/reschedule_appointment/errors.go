package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда бронирование не найдено по коду
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAlreadyCancelled возвращается при попытке перенести отменённое бронирование
	ErrAlreadyCancelled = errors.New("reschedule_appointment: appointment already cancelled")

	// ErrSlotNotAvailable возвращается, когда новый слот занят другим активным
	// бронированием. Старое бронирование при этом остаётся нетронутым.
	ErrSlotNotAvailable = errors.New("reschedule_appointment: new slot is not available")

	// ErrOutsideSchedule возвращается, когда новый слот не входит в каталог расписания
	ErrOutsideSchedule = errors.New("reschedule_appointment: new slot is outside the booking schedule")

	// ErrSlotInPast возвращается при попытке перенести бронирование на прошедший слот
	ErrSlotInPast = errors.New("reschedule_appointment: new slot is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
