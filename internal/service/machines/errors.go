package machines

import "errors"

var (
	// ErrMachineNotFound возвращается, когда машина не найдена
	ErrMachineNotFound = errors.New("machine not found")

	// ErrSlotNotFound возвращается, когда слот не принадлежит машине
	ErrSlotNotFound = errors.New("slot not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
