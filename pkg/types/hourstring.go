package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidHourString возвращается при некорректном формате времени
var ErrInvalidHourString = errors.New("invalid hour string format, expected H:00")

// HourString время начала/конца слота с точностью до часа, например "8:00" или "14:00".
// Минуты всегда "00" - слоты в системе имеют часовую гранулярность.
type HourString string

// NewHourString создает HourString из целого часа (0-23)
func NewHourString(hour int) HourString {
	return HourString(fmt.Sprintf("%d:00", hour))
}

// ParseHourString парсит строку вида "H:00" и валидирует её
func ParseHourString(s string) (HourString, error) {
	hs := HourString(s)
	if err := hs.Validate(); err != nil {
		return "", err
	}
	return hs, nil
}

// Hour возвращает часовую компоненту
func (h HourString) Hour() (int, error) {
	parts := strings.SplitN(string(h), ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidHourString
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidHourString, err)
	}
	return hour, nil
}

// MustHour возвращает часовую компоненту, игнорируя ошибку парсинга.
// Использовать только для значений, прошедших Validate.
func (h HourString) MustHour() int {
	hour, _ := h.Hour()
	return hour
}

// Validate проверяет формат "H:00" и диапазон часа 0-23
func (h HourString) Validate() error {
	parts := strings.SplitN(string(h), ":", 2)
	if len(parts) != 2 || parts[1] != "00" {
		return ErrInvalidHourString
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHourString, err)
	}
	if hour < 0 || hour > 23 {
		return fmt.Errorf("%w: hour out of range", ErrInvalidHourString)
	}
	return nil
}

// IsZero проверяет, что значение пустое
func (h HourString) IsZero() bool {
	return h == ""
}

// IsBefore проверяет, что время строго раньше other
func (h HourString) IsBefore(other HourString) bool {
	return h.MustHour() < other.MustHour()
}

// IsAfter проверяет, что время строго позже other
func (h HourString) IsAfter(other HourString) bool {
	return h.MustHour() > other.MustHour()
}

// AddHours возвращает время, сдвинутое на hours часов вперед
func (h HourString) AddHours(hours int) HourString {
	return NewHourString(h.MustHour() + hours)
}

// String возвращает строковое представление
func (h HourString) String() string {
	return string(h)
}
