package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда вызывающий не владелец и не администратор
	ErrAccessDenied = errors.New("reschedule_reservation: access denied")

	// ErrUserBanned возвращается, когда вызывающий находится в черном списке
	ErrUserBanned = errors.New("reschedule_reservation: user is banned")

	// ErrTimeOverlap возвращается при пересечении с другой бронью владельца в этот день
	ErrTimeOverlap = errors.New("reschedule_reservation: overlaps with another reservation")

	// ErrSlotNotFound возвращается, когда новый слот не существует на машине брони
	ErrSlotNotFound = errors.New("reschedule_reservation: slot not found")

	// ErrSlotExpired возвращается при попытке перенести на уже прошедший час
	ErrSlotExpired = errors.New("reschedule_reservation: slot has expired")

	// ErrSlotTaken возвращается, когда новый слот уже занят другой бронью
	ErrSlotTaken = errors.New("reschedule_reservation: slot already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
