package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrSlotNotAvailable возвращается, когда слот уже занят активным бронированием
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrOutsideSchedule возвращается, когда пара (дата, время) не входит
	// в каталог бронируемых слотов (нерабочий день, неизвестная метка времени,
	// дата вне окна бронирования)
	ErrOutsideSchedule = errors.New("create_appointment: slot is outside the booking schedule")

	// ErrSlotInPast возвращается при попытке забронировать уже прошедший слот
	ErrSlotInPast = errors.New("create_appointment: slot is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
