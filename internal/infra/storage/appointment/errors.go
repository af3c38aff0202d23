package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда бронирование не найдено
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается при нарушении уникальности активного слота.
	// Это единственный арбитр конфликта слотов: никакой предварительной проверки
	// наличия записи перед INSERT не делается.
	ErrSlotTaken = errors.New("appointment.repository: slot already taken by an active appointment")

	// ErrCodeConflict возвращается при коллизии кода подтверждения
	ErrCodeConflict = errors.New("appointment.repository: confirmation code already exists")

	// ErrStaleStatus возвращается, когда условное обновление статуса не нашло
	// запись в ожидаемом состоянии (статус уже изменён конкурентным запросом)
	ErrStaleStatus = errors.New("appointment.repository: appointment status already changed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
