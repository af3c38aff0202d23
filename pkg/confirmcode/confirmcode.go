// Package confirmcode генерирует и валидирует коды подтверждения бронирования.
//
// Код подтверждения - единственный публичный ключ доступа к бронированию
// (просмотр, отмена, перенос), поэтому генерация обязана использовать
// криптографически стойкий источник случайности.
package confirmcode

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// randomBytes количество случайных байт на код: 4 байта = 8 hex-символов
	randomBytes = 4

	// Length длина сгенерированного кода
	Length = randomBytes * 2
)

var (
	// ErrInvalidFormat возвращается при некорректном формате кода подтверждения
	ErrInvalidFormat = errors.New("confirmcode: invalid code format, expected 6-8 alphanumeric characters")

	// Коды старого формата были 6-символьными, поэтому при валидации допускаем 6-8
	codeRegex = regexp.MustCompile(`^[A-Z0-9]{6,8}$`)
)

// Generate генерирует новый код подтверждения: 4 случайных байта в верхнем hex-регистре
func Generate() (string, error) {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("confirmcode: failed to read random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Normalize приводит код к каноническому виду для поиска: верхний регистр без пробелов
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate нормализует код и проверяет его формат.
// Возвращает нормализованный код или ErrInvalidFormat.
func Validate(code string) (string, error) {
	normalized := Normalize(code)
	if !codeRegex.MatchString(normalized) {
		return "", ErrInvalidFormat
	}
	return normalized, nil
}
