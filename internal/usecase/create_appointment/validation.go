package create_appointment

import (
	"fmt"
	"regexp"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Правила валидации входных данных виджета.
// Валидация выполняется на границе, до любого обращения к хранилищу.
var (
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex  = regexp.MustCompile(`^\d{2}:\d{2} (AM|PM)$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z\s'-]{2,100}$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-\+\(\)]{7,20}$`)
)

// validateRequest валидирует форматы входных данных запроса
func validateRequest(req *Request) error {
	if err := validateDate(req.Date); err != nil {
		return err
	}
	if err := validateTime(req.Time); err != nil {
		return err
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	return validatePhone(req.Phone)
}

// validateDate проверяет формат даты YYYY-MM-DD
func validateDate(date string) error {
	if date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !dateRegex.MatchString(date) {
		return fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

// validateTime проверяет формат метки времени HH:MM AM|PM
func validateTime(t string) error {
	if t == "" {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}
	if !timeRegex.MatchString(t) {
		return fmt.Errorf("%w: invalid time format, expected HH:MM AM|PM", ErrInvalidInput)
	}
	return nil
}

// validateName проверяет имя клиента: буквы, пробелы, дефисы и апострофы
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name too long", ErrInvalidInput)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: invalid name format", ErrInvalidInput)
	}
	return nil
}

// validatePhone проверяет формат телефона: 7-20 символов из цифр,
// пробелов, скобок, дефисов и плюса
func validatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone number too long", ErrInvalidInput)
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("%w: invalid phone number format", ErrInvalidInput)
	}
	return nil
}
