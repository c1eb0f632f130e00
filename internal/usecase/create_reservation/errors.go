package create_reservation

import (
	"errors"
	"fmt"
)

var (
	// ErrUserBanned возвращается, когда вызывающий находится в черном списке
	ErrUserBanned = errors.New("create_reservation: user is banned")

	// ErrCooldownActive возвращается, когда не истек интервал между бронированиями.
	// Конкретная ошибка - *CooldownError, несущая оставшееся время ожидания.
	ErrCooldownActive = errors.New("create_reservation: cooldown is active")

	// ErrDailyLimitReached возвращается при исчерпании дневной квоты броней
	ErrDailyLimitReached = errors.New("create_reservation: daily limit reached")

	// ErrTimeOverlap возвращается при пересечении с другой бронью пользователя в этот день
	ErrTimeOverlap = errors.New("create_reservation: overlaps with another reservation")

	// ErrSlotNotFound возвращается, когда слот с таким ID не существует на машине/дате
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrSlotExpired возвращается при попытке забронировать уже прошедший час
	ErrSlotExpired = errors.New("create_reservation: slot has expired")

	// ErrSlotTaken возвращается, когда слот уже занят другой бронью
	ErrSlotTaken = errors.New("create_reservation: slot already taken")

	// ErrMachineNotFound возвращается, когда машина не найдена
	ErrMachineNotFound = errors.New("create_reservation: machine not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// CooldownError ошибка активного cooldown с оставшимся временем ожидания.
// Минуты округлены вверх - значение предназначено для сообщения пользователю.
type CooldownError struct {
	RemainingMinutes int
}

// Error возвращает текст ошибки
func (e *CooldownError) Error() string {
	return fmt.Sprintf("%v: retry in %d minutes", ErrCooldownActive, e.RemainingMinutes)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrCooldownActive)
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
